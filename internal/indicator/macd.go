package indicator

import (
	"github.com/crestline-lab/tidal-trading/internal/types"
	"github.com/crestline-lab/tidal-trading/pkg/errors"
)

// MACD implements Moving Average Convergence Divergence:
// macd line = EMA(fast) - EMA(slow), signal line = EMA(signal) of the macd
// line, histogram = macd - signal.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with the conventional 12/26/9 defaults.
func NewMACD() *MACD {
	return &MACD{
		fastPeriod:   12,
		slowPeriod:   26,
		signalPeriod: 9,
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator.
// Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int).
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter,
			"Config expects 3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)")
	}

	periods := make([]int, 3)

	for i, p := range params {
		period, ok := p.(int)
		if !ok {
			return errors.New(errors.ErrCodeInvalidType, "invalid type for period parameter, expected int")
		}

		if period <= 0 {
			return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
		}

		periods[i] = period
	}

	if periods[0] >= periods[1] {
		return errors.Newf(errors.ErrCodeInvalidPeriod,
			"fast period must be shorter than slow period, got %d >= %d", periods[0], periods[1])
	}

	m.fastPeriod = periods[0]
	m.slowPeriod = periods[1]
	m.signalPeriod = periods[2]

	return nil
}

// Lines computes the macd, signal, and histogram series.
func (m *MACD) Lines(series *types.BarSeries) (macd, signal, histogram []float64) {
	closes := series.Closes()
	if len(closes) == 0 {
		return nil, nil, nil
	}

	fast := emaSeries(closes, m.fastPeriod)
	slow := emaSeries(closes, m.slowPeriod)

	macd = make([]float64, len(closes))
	for i := range closes {
		macd[i] = fast[i] - slow[i]
	}

	signal = emaSeries(macd, m.signalPeriod)

	histogram = make([]float64, len(closes))
	for i := range closes {
		histogram[i] = macd[i] - signal[i]
	}

	return macd, signal, histogram
}

// Compute implements the Indicator interface.
func (m *MACD) Compute(series *types.BarSeries) (types.IndicatorResult, error) {
	macd, signal, histogram := m.Lines(series)

	return types.IndicatorResult{
		Type: m.Name(),
		Lines: map[string][]float64{
			"macd":      macd,
			"signal":    signal,
			"histogram": histogram,
		},
	}, nil
}
