package indicator

import (
	"github.com/crestline-lab/tidal-trading/internal/types"
	"github.com/crestline-lab/tidal-trading/pkg/errors"
)

// EMA implements the Exponential Moving Average indicator.
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() *EMA {
	return &EMA{
		period: 20, // Default period
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config configures the EMA indicator. Expected parameters: period (int).
func (e *EMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for period parameter, expected int")
	}

	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	e.period = period

	return nil
}

// Values computes the EMA over the close prices of the series.
func (e *EMA) Values(series *types.BarSeries) []float64 {
	return emaSeries(series.Closes(), e.period)
}

// Compute implements the Indicator interface.
func (e *EMA) Compute(series *types.BarSeries) (types.IndicatorResult, error) {
	return types.IndicatorResult{
		Type:  e.Name(),
		Lines: map[string][]float64{"ema": e.Values(series)},
	}, nil
}
