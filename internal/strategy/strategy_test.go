package strategy

import (
	"time"

	"github.com/crestline-lab/tidal-trading/internal/types"
)

// rangedSeries builds a series around the given closes with a fixed spread
// on each side, so true ranges are non-zero.
func rangedSeries(closes []float64, spread float64) *types.BarSeries {
	bars := make([]types.Bar, len(closes))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, c := range closes {
		bars[i] = types.Bar{
			Symbol: "BTC/USD",
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   c,
			High:   c + spread,
			Low:    c - spread,
			Close:  c,
			Volume: 100,
		}
	}

	return &types.BarSeries{
		Symbol:    "BTC/USD",
		Timeframe: types.Timeframe1h,
		Origin:    types.OriginSynthetic,
		Bars:      bars,
	}
}

// prefix returns a view over the first n bars of the series.
func prefix(series *types.BarSeries, n int) *types.BarSeries {
	return &types.BarSeries{
		Symbol:    series.Symbol,
		Timeframe: series.Timeframe,
		Origin:    series.Origin,
		Bars:      series.Bars[:n],
	}
}
