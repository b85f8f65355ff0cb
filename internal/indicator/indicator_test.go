package indicator

import (
	"math"
	"time"

	"github.com/crestline-lab/tidal-trading/internal/types"
)

// seriesFromCloses builds a flat-bar series where open, high, low, and close
// all equal the given close. Useful for close-only indicators.
func seriesFromCloses(closes []float64) *types.BarSeries {
	bars := make([]types.Bar, len(closes))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, c := range closes {
		bars[i] = types.Bar{
			Symbol: "TEST/USD",
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 100,
		}
	}

	return &types.BarSeries{
		Symbol:    "TEST/USD",
		Timeframe: types.Timeframe1h,
		Origin:    types.OriginSynthetic,
		Bars:      bars,
	}
}

// seriesFromOHLC builds a series from parallel open/high/low/close slices.
func seriesFromOHLC(open, high, low, close []float64) *types.BarSeries {
	bars := make([]types.Bar, len(close))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := range close {
		bars[i] = types.Bar{
			Symbol: "TEST/USD",
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   open[i],
			High:   high[i],
			Low:    low[i],
			Close:  close[i],
			Volume: 100,
		}
	}

	return &types.BarSeries{
		Symbol:    "TEST/USD",
		Timeframe: types.Timeframe1h,
		Origin:    types.OriginSynthetic,
		Bars:      bars,
	}
}

// rangedSeries builds a series around the given closes with high and low
// offset by spread on each side, so true ranges are non-zero.
func rangedSeries(closes []float64, spread float64) *types.BarSeries {
	n := len(closes)
	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)

	for i, c := range closes {
		open[i] = c
		high[i] = c + spread
		low[i] = c - spread
	}

	return seriesFromOHLC(open, high, low, closes)
}

func countNaN(values []float64) int {
	count := 0
	for _, v := range values {
		if math.IsNaN(v) {
			count++
		}
	}

	return count
}
