package marketdata

import (
	"context"
	"strconv"
	"strings"
	"time"

	binance "github.com/adshao/go-binance/v2"

	"github.com/crestline-lab/tidal-trading/internal/types"
	"github.com/crestline-lab/tidal-trading/pkg/errors"
)

// BinanceProvider fetches spot klines from the public Binance REST API.
// No credentials are needed for historical kline data.
type BinanceProvider struct {
	client *binance.Client
}

// NewBinanceProvider creates a Binance market data provider.
func NewBinanceProvider() *BinanceProvider {
	return &BinanceProvider{
		client: binance.NewClient("", ""),
	}
}

// Origin implements the Provider interface.
func (p *BinanceProvider) Origin() types.DataOrigin {
	return types.OriginBinance
}

// FetchBars downloads klines for the symbol. Display symbols like BTC/USD
// are converted to Binance pair grammar (BTCUSDT).
func (p *BinanceProvider) FetchBars(ctx context.Context, symbol string, timeframe types.Timeframe, limit int) (*types.BarSeries, error) {
	klines, err := p.client.NewKlinesService().
		Symbol(binanceSymbol(symbol)).
		Interval(binanceInterval(timeframe)).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch klines for %s", symbol)
	}

	if len(klines) == 0 {
		return nil, errors.Newf(errors.ErrCodeMarketDataEmpty, "binance returned no klines for %s", symbol)
	}

	bars := make([]types.Bar, 0, len(klines))

	for _, k := range klines {
		bar, err := klineToBar(symbol, k)
		if err != nil {
			return nil, err
		}

		bars = append(bars, bar)
	}

	return &types.BarSeries{
		Symbol:    symbol,
		Timeframe: timeframe,
		Origin:    types.OriginBinance,
		Bars:      bars,
	}, nil
}

// klineToBar converts one Binance kline to a Bar. Binance serializes prices
// as strings.
func klineToBar(symbol string, k *binance.Kline) (types.Bar, error) {
	values := make([]float64, 5)

	for i, raw := range []string{k.Open, k.High, k.Low, k.Close, k.Volume} {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return types.Bar{}, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err,
				"failed to parse kline field %q for %s", raw, symbol)
		}

		values[i] = v
	}

	return types.Bar{
		Symbol: symbol,
		Time:   time.UnixMilli(k.OpenTime),
		Open:   values[0],
		High:   values[1],
		Low:    values[2],
		Close:  values[3],
		Volume: values[4],
	}, nil
}

// binanceSymbol converts a display symbol to Binance pair grammar: separators
// are stripped and a USD quote becomes USDT, the liquid equivalent on Binance
// spot markets.
func binanceSymbol(symbol string) string {
	pair := stripSeparators(symbol)
	if strings.HasSuffix(pair, "USD") {
		pair += "T"
	}

	return pair
}

// binanceInterval maps a timeframe to the Binance kline interval vocabulary.
// Unknown timeframes fall back to the daily bucket.
func binanceInterval(timeframe types.Timeframe) string {
	switch timeframe {
	case types.Timeframe1m, types.Timeframe5m, types.Timeframe15m, types.Timeframe1h, types.Timeframe4h:
		return string(timeframe)
	default:
		return string(types.Timeframe1d)
	}
}
