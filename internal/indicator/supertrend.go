package indicator

import (
	"github.com/crestline-lab/tidal-trading/internal/types"
	"github.com/crestline-lab/tidal-trading/pkg/errors"
)

// Supertrend implements the Supertrend trailing-band indicator.
//
// Basic bands are the bar midpoint +/- multiplier * ATR (Wilder-smoothed).
// Direction at index i is decided against the previous final bands: it
// flips up when close exceeds the previous upper band, flips down when
// close drops below the previous lower band, and persists otherwise. While
// direction is unchanged, the active band ratchets toward price: the lower
// band never decreases during an uptrend and the upper band never increases
// during a downtrend.
type Supertrend struct {
	atrPeriod  int
	multiplier float64
}

// SupertrendResult holds the per-bar Supertrend output.
type SupertrendResult struct {
	// Value is the active band: lower band in an uptrend, upper in a downtrend
	Value []float64
	// Direction is +1 for uptrend, -1 for downtrend
	Direction []int
	// Upper and Lower are the final (ratcheted) bands
	Upper []float64
	Lower []float64
}

// NewSupertrend creates a new Supertrend indicator with the conventional
// 10-period, 3x-multiplier defaults.
func NewSupertrend() *Supertrend {
	return &Supertrend{
		atrPeriod:  10,
		multiplier: 3.0,
	}
}

// Name returns the name of the indicator.
func (s *Supertrend) Name() types.IndicatorType {
	return types.IndicatorTypeSupertrend
}

// Config configures the Supertrend indicator.
// Expected parameters: atrPeriod (int), multiplier (float64).
func (s *Supertrend) Config(params ...any) error {
	if len(params) != 2 {
		return errors.New(errors.ErrCodeMissingParameter,
			"Config expects 2 parameters: atrPeriod (int), multiplier (float64)")
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for atrPeriod parameter, expected int")
	}

	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "atrPeriod must be a positive integer, got %d", period)
	}

	multiplier, ok := params[1].(float64)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for multiplier parameter, expected float64")
	}

	if multiplier <= 0 {
		return errors.Newf(errors.ErrCodeInvalidMultiplier, "multiplier must be positive, got %f", multiplier)
	}

	s.atrPeriod = period
	s.multiplier = multiplier

	return nil
}

// Bands computes the Supertrend over the series.
func (s *Supertrend) Bands(series *types.BarSeries) SupertrendResult {
	bars := series.Bars
	n := len(bars)

	result := SupertrendResult{
		Value:     make([]float64, n),
		Direction: make([]int, n),
		Upper:     make([]float64, n),
		Lower:     make([]float64, n),
	}

	if n == 0 {
		return result
	}

	atr := wilderSeries(trueRanges(bars), s.atrPeriod)

	for i, bar := range bars {
		mid := (bar.High + bar.Low) / 2
		result.Upper[i] = mid + s.multiplier*atr[i]
		result.Lower[i] = mid - s.multiplier*atr[i]
	}

	result.Direction[0] = 1
	result.Value[0] = result.Lower[0]

	for i := 1; i < n; i++ {
		switch {
		case bars[i].Close > result.Upper[i-1]:
			result.Direction[i] = 1
		case bars[i].Close < result.Lower[i-1]:
			result.Direction[i] = -1
		default:
			result.Direction[i] = result.Direction[i-1]
		}

		// Ratchet the active band toward price while the trend holds.
		if result.Direction[i] == 1 && result.Lower[i] < result.Lower[i-1] {
			result.Lower[i] = result.Lower[i-1]
		}

		if result.Direction[i] == -1 && result.Upper[i] > result.Upper[i-1] {
			result.Upper[i] = result.Upper[i-1]
		}

		if result.Direction[i] == 1 {
			result.Value[i] = result.Lower[i]
		} else {
			result.Value[i] = result.Upper[i]
		}
	}

	return result
}

// Compute implements the Indicator interface.
func (s *Supertrend) Compute(series *types.BarSeries) (types.IndicatorResult, error) {
	bands := s.Bands(series)

	direction := make([]float64, len(bands.Direction))
	for i, d := range bands.Direction {
		direction[i] = float64(d)
	}

	return types.IndicatorResult{
		Type: s.Name(),
		Lines: map[string][]float64{
			"supertrend": bands.Value,
			"direction":  direction,
			"upperband":  bands.Upper,
			"lowerband":  bands.Lower,
		},
	}, nil
}
