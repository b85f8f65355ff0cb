// Package marketdata implements the tiered OHLCV retrieval chain: Binance
// first, Polygon second, and a deterministic synthetic generator as the
// terminal tier so callers always receive data.
package marketdata

import (
	"context"
	"strings"

	"github.com/crestline-lab/tidal-trading/internal/types"
)

// Provider fetches historical OHLCV bars from one upstream source.
type Provider interface {
	// Origin identifies the tier for provenance marking
	Origin() types.DataOrigin
	// FetchBars returns up to limit bars for the symbol and timeframe,
	// sorted ascending by timestamp
	FetchBars(ctx context.Context, symbol string, timeframe types.Timeframe, limit int) (*types.BarSeries, error)
}

// stripSeparators removes the separators commonly found in display symbols
// such as BTC/USD or ETH-USD.
func stripSeparators(symbol string) string {
	replacer := strings.NewReplacer("/", "", "-", "", "_", "")

	return replacer.Replace(strings.ToUpper(symbol))
}
