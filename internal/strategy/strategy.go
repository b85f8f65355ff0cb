// Package strategy implements signal generation over bar series. Strategies
// are pure: the decision is a function of the series alone, so a cycle can
// be replayed deterministically from the same history.
//
// Every strategy detects crossing events, not sustained levels. A BUY or
// SELL is emitted only on the bar where the underlying indicator changes
// state; while the state persists the strategy holds.
package strategy

import (
	"github.com/crestline-lab/tidal-trading/internal/types"
)

// Strategy is the interface every trading strategy implements.
type Strategy interface {
	// Name returns the strategy identifier used in order attribution
	Name() string
	// Config configures the strategy parameters
	Config(params ...any) error
	// MinBars returns the minimum series length needed for a meaningful
	// decision. Shorter input yields HOLD, never an error.
	MinBars() int
	// GenerateSignal evaluates the series and returns at most one signal
	// for the latest bar
	GenerateSignal(series *types.BarSeries) (types.Signal, error)
}
