package types

import (
	"time"

	"github.com/moznion/go-optional"
)

type SignalType string

const (
	// SignalTypeBuy tells the coordinator to open a long position
	SignalTypeBuy SignalType = "BUY"
	// SignalTypeSell tells the coordinator to close the long position
	SignalTypeSell SignalType = "SELL"
	// SignalTypeHold tells the coordinator to take no action
	SignalTypeHold SignalType = "HOLD"
)

// Signal is the outcome of one strategy evaluation for one symbol.
// It is produced once per cycle and never mutated.
type Signal struct {
	// Time is the timestamp of the bar the signal was generated on
	Time time.Time
	// Type is the decision: BUY, SELL, or HOLD
	Type SignalType
	// Symbol is the symbol the signal applies to
	Symbol string
	// Price is the reference price (close of the signal bar)
	Price float64
	// StopLoss is the strategy-supplied stop level for a BUY. None on
	// SELL/HOLD or when the strategy has no opinion.
	StopLoss optional.Option[float64]
	// Reason is a human-readable explanation for the decision
	Reason string
	// Indicator is the indicator family that generated the signal
	Indicator IndicatorType
}

// HoldSignal builds a HOLD signal for the given symbol. Used when history is
// insufficient or nothing crossed.
func HoldSignal(symbol string, t time.Time, reason string) Signal {
	return Signal{
		Time:      t,
		Type:      SignalTypeHold,
		Symbol:    symbol,
		Price:     0,
		StopLoss:  optional.None[float64](),
		Reason:    reason,
		Indicator: "",
	}
}
