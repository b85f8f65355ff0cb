package marketdata

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"github.com/crestline-lab/tidal-trading/internal/types"
	"github.com/crestline-lab/tidal-trading/pkg/errors"
)

// PolygonProvider fetches crypto aggregates from the Polygon REST API.
// An API key is required; a provider constructed without one reports a
// credentials error on every fetch so the chain falls through to the
// next tier.
type PolygonProvider struct {
	client *polygon.Client
	apiKey string
}

// NewPolygonProvider creates a Polygon market data provider.
func NewPolygonProvider(apiKey string) *PolygonProvider {
	return &PolygonProvider{
		client: polygon.New(apiKey),
		apiKey: apiKey,
	}
}

// Origin implements the Provider interface.
func (p *PolygonProvider) Origin() types.DataOrigin {
	return types.OriginPolygon
}

// FetchBars downloads aggregates for the symbol. Display symbols like
// BTC/USD are converted to Polygon crypto ticker grammar (X:BTCUSD).
func (p *PolygonProvider) FetchBars(ctx context.Context, symbol string, timeframe types.Timeframe, limit int) (*types.BarSeries, error) {
	if p.apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingCredentials, "polygon API key is not configured")
	}

	multiplier, timespan := polygonTimespan(timeframe)
	now := time.Now()
	// Over-fetch the window threefold to cover market gaps, then keep the
	// trailing limit bars.
	from := now.Add(-time.Duration(3*limit) * timeframe.Duration())

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     polygonTicker(symbol),
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       models.Millis(from),
		To:         models.Millis(now),
	}.WithLimit(50000).WithOrder(models.Asc)

	iter := p.client.ListAggs(ctx, params)

	var bars []types.Bar

	for iter.Next() {
		agg := iter.Item()
		bars = append(bars, types.Bar{
			Symbol: symbol,
			Time:   time.Time(agg.Timestamp),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}

	if iter.Err() != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, iter.Err(),
			"failed to fetch aggregates for %s", symbol)
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeMarketDataEmpty, "polygon returned no aggregates for %s", symbol)
	}

	series := &types.BarSeries{
		Symbol:    symbol,
		Timeframe: timeframe,
		Origin:    types.OriginPolygon,
		Bars:      bars,
	}

	return series.TailCopy(limit), nil
}

// polygonTicker converts a display symbol to Polygon crypto ticker grammar.
func polygonTicker(symbol string) string {
	return "X:" + stripSeparators(symbol)
}

// polygonTimespan maps a timeframe to a Polygon multiplier/timespan pair.
// Unknown timeframes fall back to the daily bucket.
func polygonTimespan(timeframe types.Timeframe) (int, models.Timespan) {
	switch timeframe {
	case types.Timeframe1m:
		return 1, models.Minute
	case types.Timeframe5m:
		return 5, models.Minute
	case types.Timeframe15m:
		return 15, models.Minute
	case types.Timeframe1h:
		return 1, models.Hour
	case types.Timeframe4h:
		return 4, models.Hour
	default:
		return 1, models.Day
	}
}
