package types

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
)

type OrderTestSuite struct {
	suite.Suite
}

func TestOrderSuite(t *testing.T) {
	suite.Run(t, new(OrderTestSuite))
}

func validOrder() ExecuteOrder {
	return ExecuteOrder{
		ID:           uuid.New().String(),
		Symbol:       "BTC/USD",
		Side:         PurchaseTypeBuy,
		Price:        45000,
		Quantity:     0.1,
		Timestamp:    time.Now(),
		StrategyName: "supertrend",
		Reason:       Reason{Reason: OrderReasonStrategy, Message: "direction flip"},
		StopLoss:     optional.Some(44000.0),
		TakeProfit:   optional.None[float64](),
	}
}

func (suite *OrderTestSuite) TestValidateOK() {
	order := validOrder()
	suite.NoError(order.Validate())
}

func (suite *OrderTestSuite) TestValidateRejectsBadID() {
	order := validOrder()
	order.ID = "not-a-uuid"
	suite.Error(order.Validate())
}

func (suite *OrderTestSuite) TestValidateRejectsBadSide() {
	order := validOrder()
	order.Side = "SHORT"
	suite.Error(order.Validate())
}

func (suite *OrderTestSuite) TestValidateRejectsNonPositiveQuantity() {
	order := validOrder()
	order.Quantity = 0
	suite.Error(order.Validate())

	order = validOrder()
	order.Price = -1
	suite.Error(order.Validate())
}

func (suite *OrderTestSuite) TestOrderResultFilled() {
	result := OrderResult{OrderID: uuid.New().String(), Status: OrderStatusFilled}
	suite.True(result.Filled())

	result.Status = OrderStatusRejected
	suite.False(result.Filled())
}

func (suite *OrderTestSuite) TestPosition() {
	pos := Position{
		Symbol:        "BTC/USD",
		Quantity:      0.5,
		AvgEntryPrice: 40000,
		StopLoss:      39000,
		OpenTimestamp: time.Now(),
		StrategyName:  "supertrend",
	}

	suite.True(pos.IsOpen())
	suite.Equal(22500.0, pos.Notional(45000))

	suite.False(Position{}.IsOpen())
}

func (suite *OrderTestSuite) TestHoldSignal() {
	now := time.Now()
	signal := HoldSignal("ETH/USD", now, "insufficient history")

	suite.Equal(SignalTypeHold, signal.Type)
	suite.Equal("ETH/USD", signal.Symbol)
	suite.Equal(now, signal.Time)
	suite.True(signal.StopLoss.IsNone())
}
