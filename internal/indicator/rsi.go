package indicator

import (
	"github.com/crestline-lab/tidal-trading/internal/types"
	"github.com/crestline-lab/tidal-trading/pkg/errors"
)

// RSI implements the Relative Strength Index with Wilder smoothing.
// The first period values are NaN; defined values are always in [0, 100].
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() *RSI {
	return &RSI{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSI) Config(params ...any) error {
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

	r.period = period

	return nil
}

// Values computes the RSI over the close prices of the series.
func (r *RSI) Values(series *types.BarSeries) []float64 {
	closes := series.Closes()
	out := nanSlice(len(closes))

	if len(closes) <= r.period {
		return out
	}

	// Seed the averages with the simple mean of the first period moves.
	var avgGain, avgLoss float64

	for i := 1; i <= r.period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}

	avgGain /= float64(r.period)
	avgLoss /= float64(r.period)
	out[r.period] = rsiFrom(avgGain, avgLoss)

	// Wilder smoothing for the remainder.
	for i := r.period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]

		var gain, loss float64
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}

		avgGain = (avgGain*float64(r.period-1) + gain) / float64(r.period)
		avgLoss = (avgLoss*float64(r.period-1) + loss) / float64(r.period)
		out[i] = rsiFrom(avgGain, avgLoss)
	}

	return out
}

// rsiFrom converts smoothed averages to an RSI value. A zero average loss
// means every move was up, which maps to 100.
func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss

	return 100 - 100/(1+rs)
}

// Compute implements the Indicator interface.
func (r *RSI) Compute(series *types.BarSeries) (types.IndicatorResult, error) {
	return types.IndicatorResult{
		Type:  r.Name(),
		Lines: map[string][]float64{"rsi": r.Values(series)},
	}, nil
}
