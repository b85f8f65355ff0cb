package types

import (
	"time"

	"github.com/crestline-lab/tidal-trading/pkg/errors"
)

// DataOrigin identifies which tier of the fallback chain produced a series.
// Consumers that must not act on fabricated prices check for OriginSynthetic.
type DataOrigin string

const (
	OriginBinance   DataOrigin = "binance"
	OriginPolygon   DataOrigin = "polygon"
	OriginSynthetic DataOrigin = "synthetic"
)

// Bar is a single OHLCV observation for one time bucket. Immutable once produced.
type Bar struct {
	Symbol string    `yaml:"symbol" json:"symbol"`
	Time   time.Time `yaml:"time" json:"time"`
	Open   float64   `yaml:"open" json:"open"`
	High   float64   `yaml:"high" json:"high"`
	Low    float64   `yaml:"low" json:"low"`
	Close  float64   `yaml:"close" json:"close"`
	Volume float64   `yaml:"volume" json:"volume"`
}

// Validate checks the OHLC invariants for a single bar.
func (b Bar) Validate() error {
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return errors.Newf(errors.ErrCodeMarketDataInvalid, "non-positive price in bar at %s", b.Time)
	}

	if b.High < b.Open || b.High < b.Close {
		return errors.Newf(errors.ErrCodeMarketDataInvalid, "high below open/close in bar at %s", b.Time)
	}

	if b.Low > b.Open || b.Low > b.Close {
		return errors.Newf(errors.ErrCodeMarketDataInvalid, "low above open/close in bar at %s", b.Time)
	}

	if b.Volume < 0 {
		return errors.Newf(errors.ErrCodeMarketDataInvalid, "negative volume in bar at %s", b.Time)
	}

	return nil
}

// BarSeries is an ordered sequence of bars for one symbol and timeframe,
// sorted ascending by timestamp with no duplicates. The component that
// fetched it owns the slice; consumers treat it as read-only.
type BarSeries struct {
	Symbol    string
	Timeframe Timeframe
	Origin    DataOrigin
	Bars      []Bar
}

// Len returns the number of bars in the series.
func (s *BarSeries) Len() int {
	return len(s.Bars)
}

// Last returns the most recent bar. The second return value is false for an
// empty series.
func (s *BarSeries) Last() (Bar, bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}

	return s.Bars[len(s.Bars)-1], true
}

// Closes returns the close prices of all bars in order.
func (s *BarSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, bar := range s.Bars {
		closes[i] = bar.Close
	}

	return closes
}

// Validate checks per-bar OHLC invariants plus series-level ordering:
// timestamps strictly ascending, no duplicates.
func (s *BarSeries) Validate() error {
	for i, bar := range s.Bars {
		if err := bar.Validate(); err != nil {
			return err
		}

		if i > 0 && !bar.Time.After(s.Bars[i-1].Time) {
			return errors.Newf(errors.ErrCodeMarketDataInvalid,
				"bar timestamps not strictly ascending at index %d (%s)", i, bar.Time)
		}
	}

	return nil
}

// TailCopy returns a new series holding the trailing n bars (or all bars if
// the series is shorter). The bar slice is copied so the caller owns it.
func (s *BarSeries) TailCopy(n int) *BarSeries {
	start := 0
	if len(s.Bars) > n {
		start = len(s.Bars) - n
	}

	bars := make([]Bar, len(s.Bars)-start)
	copy(bars, s.Bars[start:])

	return &BarSeries{
		Symbol:    s.Symbol,
		Timeframe: s.Timeframe,
		Origin:    s.Origin,
		Bars:      bars,
	}
}
