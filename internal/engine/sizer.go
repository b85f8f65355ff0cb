package engine

import (
	"math"

	"github.com/shopspring/decimal"
)

// PositionSizer converts a signal plus risk parameters into an order
// quantity. Pure: no state, no side effects.
type PositionSizer struct{}

// NewPositionSizer creates a position sizer.
func NewPositionSizer() *PositionSizer {
	return &PositionSizer{}
}

// Size returns the quantity that risks riskPerTradePct percent of capital
// between the entry and the stop: (capital * pct/100) / |entry - stop|.
// When entry equals stop the stop distance is zero and the answer is 0,
// not an error. Capital and prices must be positive; that is the caller's
// precondition.
func (s *PositionSizer) Size(capital, riskPerTradePct, entryPrice, stopLoss float64) float64 {
	distance := math.Abs(entryPrice - stopLoss)
	if distance == 0 {
		return 0
	}

	riskAmount := decimal.NewFromFloat(capital).
		Mul(decimal.NewFromFloat(riskPerTradePct)).
		Div(decimal.NewFromInt(100))

	quantity, _ := riskAmount.Div(decimal.NewFromFloat(distance)).Float64()
	if quantity < 0 {
		return 0
	}

	return quantity
}
