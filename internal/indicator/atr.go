package indicator

import (
	"github.com/crestline-lab/tidal-trading/internal/types"
	"github.com/crestline-lab/tidal-trading/pkg/errors"
)

// ATR implements the Average True Range indicator: a rolling mean of the
// true range over the configured period. The first period-1 values are NaN.
type ATR struct {
	period int
}

// NewATR creates a new ATR indicator with default configuration.
func NewATR() *ATR {
	return &ATR{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (a *ATR) Name() types.IndicatorType {
	return types.IndicatorTypeATR
}

// Config configures the ATR indicator. Expected parameters: period (int).
func (a *ATR) Config(params ...any) error {
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

	a.period = period

	return nil
}

// Values computes the ATR over the series. Indices before period-1 are NaN.
func (a *ATR) Values(series *types.BarSeries) []float64 {
	tr := trueRanges(series.Bars)
	out := nanSlice(len(tr))

	if len(tr) < a.period {
		return out
	}

	var windowSum float64
	for i, v := range tr {
		windowSum += v
		if i >= a.period {
			windowSum -= tr[i-a.period]
		}

		if i >= a.period-1 {
			out[i] = windowSum / float64(a.period)
		}
	}

	return out
}

// Compute implements the Indicator interface.
func (a *ATR) Compute(series *types.BarSeries) (types.IndicatorResult, error) {
	return types.IndicatorResult{
		Type:  a.Name(),
		Lines: map[string][]float64{"atr": a.Values(series)},
	}, nil
}
