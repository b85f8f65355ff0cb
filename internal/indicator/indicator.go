// Package indicator provides series-based technical indicator calculations
// over OHLCV bars.
//
// All indicators produce output slices aligned index-for-index with the
// input series. Indices without enough history hold NaN instead of raising
// an error; callers must check with math.IsNaN before using a value. The
// value at index i depends only on bars at index <= i.
package indicator

import (
	"math"

	"github.com/crestline-lab/tidal-trading/internal/types"
)

// Indicator is the interface every technical indicator implements.
type Indicator interface {
	// Name returns the indicator identifier
	Name() types.IndicatorType
	// Config configures the indicator parameters
	Config(params ...any) error
	// Compute calculates the indicator over the whole series
	Compute(series *types.BarSeries) (types.IndicatorResult, error)
}

// nanSlice returns a slice of length n filled with NaN.
func nanSlice(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = math.NaN()
	}

	return values
}

// emaSeries computes an exponential moving average with smoothing factor
// 2/(period+1), seeded at the first value. Matches an ewm with adjust=false.
func emaSeries(values []float64, period int) []float64 {
	if len(values) == 0 {
		return nil
	}

	alpha := 2.0 / (float64(period) + 1.0)
	out := make([]float64, len(values))
	out[0] = values[0]

	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out
}

// wilderSeries computes a Wilder-smoothed average (alpha = 1/period),
// seeded at the first value.
func wilderSeries(values []float64, period int) []float64 {
	if len(values) == 0 {
		return nil
	}

	alpha := 1.0 / float64(period)
	out := make([]float64, len(values))
	out[0] = values[0]

	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out
}

// trueRanges computes the per-bar true range:
// max(high-low, |high-prevClose|, |low-prevClose|). The first bar has no
// previous close, so its true range is high-low.
func trueRanges(bars []types.Bar) []float64 {
	tr := make([]float64, len(bars))

	for i, bar := range bars {
		if i == 0 {
			tr[i] = bar.High - bar.Low
			continue
		}

		prevClose := bars[i-1].Close
		tr[i] = math.Max(
			bar.High-bar.Low,
			math.Max(math.Abs(bar.High-prevClose), math.Abs(bar.Low-prevClose)),
		)
	}

	return tr
}
