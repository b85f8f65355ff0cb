package strategy

import (
	"fmt"
	"math"

	"github.com/moznion/go-optional"

	"github.com/crestline-lab/tidal-trading/internal/indicator"
	"github.com/crestline-lab/tidal-trading/internal/types"
	"github.com/crestline-lab/tidal-trading/pkg/errors"
)

// RSI gates keeping the MACD crossover out of exhausted moves.
const (
	macdOverbought = 70.0
	macdOversold   = 30.0

	// Stop placed a fixed percentage under the entry; MACD has no natural
	// trailing level the way Supertrend does.
	macdStopLossPct = 0.02
)

// MACDStrategy trades MACD histogram zero-crossings filtered by RSI:
// BUY when the histogram crosses from at-or-below zero to above zero while
// RSI is under the overbought gate, SELL when it crosses from at-or-above
// zero to below zero while RSI is over the oversold gate. A sustained
// positive or negative histogram emits HOLD.
type MACDStrategy struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
	rsiPeriod    int

	macd *indicator.MACD
	rsi  *indicator.RSI
}

// NewMACDStrategy creates a MACD strategy with 12/26/9 MACD and 14-period
// RSI defaults.
func NewMACDStrategy() *MACDStrategy {
	return &MACDStrategy{
		fastPeriod:   12,
		slowPeriod:   26,
		signalPeriod: 9,
		rsiPeriod:    14,
		macd:         indicator.NewMACD(),
		rsi:          indicator.NewRSI(),
	}
}

// Name returns the strategy identifier.
func (s *MACDStrategy) Name() string {
	return "macd"
}

// Config configures the strategy.
// Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int), rsiPeriod (int).
func (s *MACDStrategy) Config(params ...any) error {
	if len(params) != 4 {
		return errors.New(errors.ErrCodeStrategyConfigError,
			"Config expects 4 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int), rsiPeriod (int)")
	}

	macd := indicator.NewMACD()
	if err := macd.Config(params[0], params[1], params[2]); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid macd strategy config", err)
	}

	rsi := indicator.NewRSI()
	if err := rsi.Config(params[3]); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid macd strategy config", err)
	}

	s.fastPeriod, _ = params[0].(int)
	s.slowPeriod, _ = params[1].(int)
	s.signalPeriod, _ = params[2].(int)
	s.rsiPeriod, _ = params[3].(int)
	s.macd = macd
	s.rsi = rsi

	return nil
}

// MinBars returns the minimum history for a stable histogram and a defined
// RSI at the latest bar.
func (s *MACDStrategy) MinBars() int {
	macdBars := s.slowPeriod + s.signalPeriod
	rsiBars := s.rsiPeriod + 2

	if macdBars > rsiBars {
		return macdBars
	}

	return rsiBars
}

// GenerateSignal evaluates the latest bar for a histogram zero-crossing.
func (s *MACDStrategy) GenerateSignal(series *types.BarSeries) (types.Signal, error) {
	last, ok := series.Last()
	if !ok || series.Len() < s.MinBars() {
		return types.HoldSignal(series.Symbol, last.Time, "insufficient history"), nil
	}

	_, _, histogram := s.macd.Lines(series)
	rsi := s.rsi.Values(series)
	i := series.Len() - 1

	rsiNow := rsi[i]
	if math.IsNaN(rsiNow) {
		return types.HoldSignal(series.Symbol, last.Time, "rsi undefined"), nil
	}

	crossedUp := histogram[i-1] <= 0 && histogram[i] > 0
	crossedDown := histogram[i-1] >= 0 && histogram[i] < 0

	switch {
	case crossedUp && rsiNow < macdOverbought:
		return types.Signal{
			Time:      last.Time,
			Type:      types.SignalTypeBuy,
			Symbol:    series.Symbol,
			Price:     last.Close,
			StopLoss:  optional.Some(last.Close * (1 - macdStopLossPct)),
			Reason:    fmt.Sprintf("macd histogram crossed above zero, rsi %.1f", rsiNow),
			Indicator: types.IndicatorTypeMACD,
		}, nil
	case crossedDown && rsiNow > macdOversold:
		return types.Signal{
			Time:      last.Time,
			Type:      types.SignalTypeSell,
			Symbol:    series.Symbol,
			Price:     last.Close,
			StopLoss:  optional.None[float64](),
			Reason:    fmt.Sprintf("macd histogram crossed below zero, rsi %.1f", rsiNow),
			Indicator: types.IndicatorTypeMACD,
		}, nil
	case crossedUp:
		return types.HoldSignal(series.Symbol, last.Time,
			fmt.Sprintf("bullish cross suppressed, rsi %.1f overbought", rsiNow)), nil
	case crossedDown:
		return types.HoldSignal(series.Symbol, last.Time,
			fmt.Sprintf("bearish cross suppressed, rsi %.1f oversold", rsiNow)), nil
	default:
		return types.HoldSignal(series.Symbol, last.Time, "no histogram crossing"), nil
	}
}
