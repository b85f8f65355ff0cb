package strategy

import (
	"fmt"

	"github.com/moznion/go-optional"

	"github.com/crestline-lab/tidal-trading/internal/indicator"
	"github.com/crestline-lab/tidal-trading/internal/types"
	"github.com/crestline-lab/tidal-trading/pkg/errors"
)

// SupertrendStrategy trades Supertrend direction flips: BUY when the
// direction flips from down to up on the latest bar, SELL when it flips
// from up to down, HOLD otherwise. The stop loss on a BUY is the Supertrend
// value at the signal bar, which is the trailing lower band.
type SupertrendStrategy struct {
	atrPeriod  int
	multiplier float64
	supertrend *indicator.Supertrend
}

// NewSupertrendStrategy creates a Supertrend strategy with the conventional
// 10-period, 3x-multiplier defaults.
func NewSupertrendStrategy() *SupertrendStrategy {
	s := &SupertrendStrategy{
		atrPeriod:  10,
		multiplier: 3.0,
		supertrend: indicator.NewSupertrend(),
	}

	return s
}

// Name returns the strategy identifier.
func (s *SupertrendStrategy) Name() string {
	return "supertrend"
}

// Config configures the strategy.
// Expected parameters: atrPeriod (int), multiplier (float64).
func (s *SupertrendStrategy) Config(params ...any) error {
	st := indicator.NewSupertrend()
	if err := st.Config(params...); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid supertrend strategy config", err)
	}

	period, _ := params[0].(int)
	multiplier, _ := params[1].(float64)

	s.atrPeriod = period
	s.multiplier = multiplier
	s.supertrend = st

	return nil
}

// MinBars returns the minimum history needed to detect a flip. One extra bar
// beyond the ATR period gives the crossing comparison a previous direction.
func (s *SupertrendStrategy) MinBars() int {
	return s.atrPeriod + 2
}

// GenerateSignal evaluates the latest bar for a direction flip.
func (s *SupertrendStrategy) GenerateSignal(series *types.BarSeries) (types.Signal, error) {
	last, ok := series.Last()
	if !ok || series.Len() < s.MinBars() {
		return types.HoldSignal(series.Symbol, last.Time, "insufficient history"), nil
	}

	bands := s.supertrend.Bands(series)
	i := series.Len() - 1

	switch {
	case bands.Direction[i] == 1 && bands.Direction[i-1] == -1:
		return types.Signal{
			Time:      last.Time,
			Type:      types.SignalTypeBuy,
			Symbol:    series.Symbol,
			Price:     last.Close,
			StopLoss:  optional.Some(bands.Value[i]),
			Reason:    fmt.Sprintf("supertrend flipped up at %.4f", bands.Value[i]),
			Indicator: types.IndicatorTypeSupertrend,
		}, nil
	case bands.Direction[i] == -1 && bands.Direction[i-1] == 1:
		return types.Signal{
			Time:      last.Time,
			Type:      types.SignalTypeSell,
			Symbol:    series.Symbol,
			Price:     last.Close,
			StopLoss:  optional.None[float64](),
			Reason:    fmt.Sprintf("supertrend flipped down at %.4f", bands.Value[i]),
			Indicator: types.IndicatorTypeSupertrend,
		}, nil
	default:
		return types.HoldSignal(series.Symbol, last.Time, "no direction flip"), nil
	}
}
