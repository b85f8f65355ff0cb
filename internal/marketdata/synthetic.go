package marketdata

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/crestline-lab/tidal-trading/internal/types"
)

// Base prices anchoring the synthetic random walk by symbol family.
const (
	syntheticBaseBTC     = 45000.0
	syntheticBaseETH     = 2000.0
	syntheticBaseDefault = 100.0

	// Per-bar close-to-close move is bounded to +/-2%.
	syntheticMaxStep = 0.02
)

// SyntheticProvider generates deterministic placeholder bars when every real
// source has failed. The walk is seeded from a stable hash of the symbol, so
// repeated calls for the same symbol produce the same price path. Series it
// produces carry OriginSynthetic so downstream consumers never mistake
// fabricated prices for market data.
type SyntheticProvider struct {
	now func() time.Time
}

// NewSyntheticProvider creates a synthetic market data provider.
func NewSyntheticProvider() *SyntheticProvider {
	return &SyntheticProvider{
		now: time.Now,
	}
}

// Origin implements the Provider interface.
func (p *SyntheticProvider) Origin() types.DataOrigin {
	return types.OriginSynthetic
}

// FetchBars generates exactly limit bars ending at the current time bucket.
// It never returns an error.
func (p *SyntheticProvider) FetchBars(_ context.Context, symbol string, timeframe types.Timeframe, limit int) (*types.BarSeries, error) {
	rng := rand.New(rand.NewSource(symbolSeed(symbol)))
	base := basePrice(symbol)
	step := timeframe.Duration()
	end := p.now().Truncate(step)

	bars := make([]types.Bar, limit)
	close := base

	for i := 0; i < limit; i++ {
		open := close
		close = open * (1 + (rng.Float64()-0.5)*2*syntheticMaxStep)

		high := math.Max(open, close) * (1 + rng.Float64()*0.005)
		low := math.Min(open, close) * (1 - rng.Float64()*0.005)
		volume := base * 1000 * (0.5 + rng.Float64())

		bars[i] = types.Bar{
			Symbol: symbol,
			Time:   end.Add(-time.Duration(limit-1-i) * step),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		}
	}

	return &types.BarSeries{
		Symbol:    symbol,
		Timeframe: timeframe,
		Origin:    types.OriginSynthetic,
		Bars:      bars,
	}, nil
}

// symbolSeed hashes the symbol with FNV-1a to a stable PRNG seed.
func symbolSeed(symbol string) int64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))

	return int64(h.Sum64())
}

// basePrice anchors the walk: majors get realistic levels, everything else
// a generic default.
func basePrice(symbol string) float64 {
	upper := strings.ToUpper(symbol)

	switch {
	case strings.Contains(upper, "BTC"):
		return syntheticBaseBTC
	case strings.Contains(upper, "ETH"):
		return syntheticBaseETH
	default:
		return syntheticBaseDefault
	}
}
