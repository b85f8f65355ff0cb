package marketdata

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/crestline-lab/tidal-trading/internal/logger"
	"github.com/crestline-lab/tidal-trading/internal/types"
	"github.com/crestline-lab/tidal-trading/pkg/errors"
)

// DefaultTierTimeout bounds each external source attempt so a hung upstream
// cannot stall the polling cycle.
const DefaultTierTimeout = 10 * time.Second

// TieredSource walks an ordered chain of providers and falls back to the
// synthetic generator when every real source fails. Its Fetch contract is
// total: it always returns a well-formed series of exactly limit bars.
type TieredSource struct {
	providers []Provider
	synthetic *SyntheticProvider
	timeout   time.Duration
	logger    *logger.Logger
}

// NewTieredSource creates a tiered source trying the given providers in
// order. A non-positive timeout falls back to DefaultTierTimeout.
func NewTieredSource(l *logger.Logger, timeout time.Duration, providers ...Provider) *TieredSource {
	if timeout <= 0 {
		timeout = DefaultTierTimeout
	}

	return &TieredSource{
		providers: providers,
		synthetic: NewSyntheticProvider(),
		timeout:   timeout,
		logger:    l,
	}
}

// Fetch returns exactly limit bars for the symbol and timeframe. Source
// errors are logged and absorbed, never propagated: a tier that errors,
// returns fewer than limit bars, or returns malformed bars is skipped and
// the next tier is tried. When the whole chain fails the synthetic
// generator answers, marked with OriginSynthetic.
func (s *TieredSource) Fetch(ctx context.Context, symbol string, timeframe types.Timeframe, limit int) *types.BarSeries {
	for _, provider := range s.providers {
		series, err := s.tryProvider(ctx, provider, symbol, timeframe, limit)
		if err != nil {
			s.logger.Warn("market data tier failed, falling back",
				zap.String("origin", string(provider.Origin())),
				zap.String("symbol", symbol),
				zap.String("timeframe", string(timeframe)),
				zap.Error(err),
			)

			continue
		}

		return series
	}

	s.logger.Warn("all market data sources failed, synthesizing bars",
		zap.String("symbol", symbol),
		zap.String("timeframe", string(timeframe)),
		zap.Int("limit", limit),
	)

	series, _ := s.synthetic.FetchBars(ctx, symbol, timeframe, limit)

	return series
}

// tryProvider runs one tier under the per-tier timeout and checks that the
// result satisfies the contract: at least limit well-formed bars in strictly
// ascending order.
func (s *TieredSource) tryProvider(ctx context.Context, provider Provider, symbol string, timeframe types.Timeframe, limit int) (*types.BarSeries, error) {
	tierCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	series, err := provider.FetchBars(tierCtx, symbol, timeframe, limit)
	if err != nil {
		return nil, err
	}

	if series.Len() < limit {
		return nil, errors.Newf(errors.ErrCodeMarketDataEmpty,
			"incomplete series: got %d bars, want %d", series.Len(), limit)
	}

	if err := series.Validate(); err != nil {
		return nil, err
	}

	return series.TailCopy(limit), nil
}
