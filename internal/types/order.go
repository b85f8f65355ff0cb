package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"

	"github.com/crestline-lab/tidal-trading/pkg/errors"
)

type PurchaseType string

type OrderStatus string

const (
	OrderStatusFilled   OrderStatus = "FILLED"
	OrderStatusRejected OrderStatus = "REJECTED"
	OrderStatusFailed   OrderStatus = "FAILED"
)

const (
	PurchaseTypeBuy  PurchaseType = "BUY"
	PurchaseTypeSell PurchaseType = "SELL"
)

const (
	OrderReasonStrategy            string = "strategy"
	OrderReasonStopLoss            string = "stop_loss"
	OrderReasonInsufficientBalance string = "insufficient_balance"
	OrderReasonRiskGate            string = "risk_gate"
)

type Reason struct {
	Reason  string `yaml:"reason" json:"reason" validate:"required"`
	Message string `yaml:"message" json:"message"`
}

// ExecuteOrder is a request to the trading provider to buy or sell.
type ExecuteOrder struct {
	ID           string       `yaml:"id" json:"id" validate:"required,uuid"`
	Symbol       string       `yaml:"symbol" json:"symbol" validate:"required"`
	Side         PurchaseType `yaml:"side" json:"side" validate:"required,oneof=BUY SELL"`
	Price        float64      `yaml:"price" json:"price" validate:"required,gt=0"`
	Quantity     float64      `yaml:"quantity" json:"quantity" validate:"required,gt=0"`
	Timestamp    time.Time    `yaml:"timestamp" json:"timestamp" validate:"required"`
	StrategyName string       `yaml:"strategy_name" json:"strategy_name" validate:"required"`
	Reason       Reason       `yaml:"reason" json:"reason" validate:"required"`
	// StopLoss is the stop level attached to a buy. None if not set.
	StopLoss optional.Option[float64] `yaml:"stop_loss" json:"stop_loss"`
	// TakeProfit is the profit target attached to a buy. None if not set.
	TakeProfit optional.Option[float64] `yaml:"take_profit" json:"take_profit"`
}

// Validate validates the ExecuteOrder struct.
func (eo *ExecuteOrder) Validate() error {
	validate := validator.New()

	if err := validate.Struct(eo); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidExecuteOrder, "invalid execute order", err)
	}

	return nil
}

// OrderResult reports the broker's disposition of an ExecuteOrder.
type OrderResult struct {
	OrderID       string      `yaml:"order_id" json:"order_id"`
	Status        OrderStatus `yaml:"status" json:"status"`
	ExecutedQty   float64     `yaml:"executed_qty" json:"executed_qty"`
	ExecutedPrice float64     `yaml:"executed_price" json:"executed_price"`
	ExecutedAt    time.Time   `yaml:"executed_at" json:"executed_at"`
	// Message carries the rejection reason when Status is not FILLED.
	Message string `yaml:"message" json:"message"`
}

// Filled reports whether the order fully executed.
func (r OrderResult) Filled() bool {
	return r.Status == OrderStatusFilled
}

// Trade is an executed order with fill details.
type Trade struct {
	Order         ExecuteOrder `yaml:"order" json:"order"`
	ExecutedAt    time.Time    `yaml:"executed_at" json:"executed_at"`
	ExecutedQty   float64      `yaml:"executed_qty" json:"executed_qty"`
	ExecutedPrice float64      `yaml:"executed_price" json:"executed_price"`
	// PnL is the realized profit or loss. Zero for buys; for sells it is
	// (exit - average entry) * quantity.
	PnL float64 `yaml:"pnl" json:"pnl"`
}

// Position is the current holding for one symbol. Positive quantity means
// long. The execution coordinator (or the paper broker's ledger) is the
// only writer.
type Position struct {
	Symbol        string    `yaml:"symbol" json:"symbol"`
	Quantity      float64   `yaml:"quantity" json:"quantity"`
	AvgEntryPrice float64   `yaml:"avg_entry_price" json:"avg_entry_price"`
	StopLoss      float64   `yaml:"stop_loss" json:"stop_loss"`
	OpenTimestamp time.Time `yaml:"open_timestamp" json:"open_timestamp"`
	StrategyName  string    `yaml:"strategy_name" json:"strategy_name"`
}

// IsOpen reports whether the position holds any quantity.
func (p Position) IsOpen() bool {
	return p.Quantity > 0
}

// Notional returns the position's value at the given price.
func (p Position) Notional(price float64) float64 {
	return p.Quantity * price
}
