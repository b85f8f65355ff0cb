// Package trading defines the broker-facing provider interface and the
// paper trading implementation used for dry runs.
package trading

import (
	"context"

	"github.com/crestline-lab/tidal-trading/internal/types"
)

// TradingSystemProvider is the broker surface the execution coordinator
// talks to. A rejection is reported in the OrderResult, not as an error;
// errors mean the provider itself failed.
type TradingSystemProvider interface {
	// PlaceOrder submits an order and reports its disposition
	PlaceOrder(ctx context.Context, order types.ExecuteOrder) (types.OrderResult, error)
	// GetPosition returns the current position for a symbol. A flat symbol
	// yields a zero-quantity position, not an error.
	GetPosition(ctx context.Context, symbol string) (types.Position, error)
	// GetPositions returns all open positions
	GetPositions(ctx context.Context) ([]types.Position, error)
	// GetAccountInfo returns balances and realized PnL
	GetAccountInfo(ctx context.Context) (types.AccountInfo, error)
	// Close releases provider resources
	Close() error
}
