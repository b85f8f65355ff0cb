package trading

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/crestline-lab/tidal-trading/internal/logger"
	"github.com/crestline-lab/tidal-trading/internal/types"
	"github.com/crestline-lab/tidal-trading/pkg/errors"
)

// PaperTradingProvider simulates a broker against an in-memory DuckDB
// ledger. Orders fill instantly at their limit price; buys are rejected
// when they exceed the cash balance and sells when they exceed the held
// quantity. Positions and balances are derived from the trade ledger, so
// the ledger is the single source of truth.
type PaperTradingProvider struct {
	db             *sql.DB
	sq             squirrel.StatementBuilderType
	logger         *logger.Logger
	initialBalance decimal.Decimal
}

// NewPaperTradingProvider creates a paper broker with the given starting
// cash balance.
func NewPaperTradingProvider(l *logger.Logger, initialBalance float64) (*PaperTradingProvider, error) {
	// go-duckdb v1.8.2 spells the in-memory database as the empty DSN;
	// ":memory:" support arrived in later releases.
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTradingStateFailed, "failed to open ledger database", err)
	}

	p := &PaperTradingProvider{
		db:             db,
		sq:             squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		logger:         l,
		initialBalance: decimal.NewFromFloat(initialBalance),
	}

	if err := p.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return p, nil
}

// initialize creates the ledger tables.
func (p *PaperTradingProvider) initialize() error {
	_, err := p.db.Exec(`
		CREATE TABLE IF NOT EXISTS orders (
			order_id TEXT PRIMARY KEY,
			symbol TEXT,
			side TEXT,
			quantity DOUBLE,
			price DOUBLE,
			timestamp TIMESTAMP,
			status TEXT,
			reason TEXT,
			message TEXT,
			strategy_name TEXT,
			stop_loss DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTradingStateFailed, "failed to create orders table", err)
	}

	_, err = p.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			order_id TEXT,
			symbol TEXT,
			side TEXT,
			quantity DOUBLE,
			price DOUBLE,
			timestamp TIMESTAMP,
			strategy_name TEXT,
			executed_at TIMESTAMP,
			executed_qty DOUBLE,
			executed_price DOUBLE,
			pnl DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTradingStateFailed, "failed to create trades table", err)
	}

	return nil
}

// PlaceOrder fills the order against the ledger. Balance or inventory
// violations come back as a REJECTED result with a nil error.
func (p *PaperTradingProvider) PlaceOrder(ctx context.Context, order types.ExecuteOrder) (types.OrderResult, error) {
	if err := order.Validate(); err != nil {
		return types.OrderResult{}, err
	}

	cost := decimal.NewFromFloat(order.Price).Mul(decimal.NewFromFloat(order.Quantity))

	var pnl decimal.Decimal

	switch order.Side {
	case types.PurchaseTypeBuy:
		account, err := p.GetAccountInfo(ctx)
		if err != nil {
			return types.OrderResult{}, err
		}

		if cost.GreaterThan(decimal.NewFromFloat(account.Balance)) {
			return p.reject(ctx, order, types.OrderReasonInsufficientBalance,
				"order cost exceeds cash balance")
		}
	case types.PurchaseTypeSell:
		position, err := p.GetPosition(ctx, order.Symbol)
		if err != nil {
			return types.OrderResult{}, err
		}

		if order.Quantity > position.Quantity {
			return p.reject(ctx, order, types.OrderReasonInsufficientBalance,
				"sell quantity exceeds held position")
		}

		entry := decimal.NewFromFloat(position.AvgEntryPrice).Mul(decimal.NewFromFloat(order.Quantity))
		pnl = cost.Sub(entry)
	}

	return p.fill(ctx, order, pnl)
}

// fill records the order and its trade atomically.
func (p *PaperTradingProvider) fill(ctx context.Context, order types.ExecuteOrder, pnl decimal.Decimal) (types.OrderResult, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return types.OrderResult{}, errors.Wrap(errors.ErrCodeTradingStateFailed, "failed to begin transaction", err)
	}

	executedAt := order.Timestamp

	if err := p.insertOrder(tx, order, types.OrderStatusFilled, ""); err != nil {
		tx.Rollback()

		return types.OrderResult{}, err
	}

	pnlFloat, _ := pnl.Float64()

	insertTrade := p.sq.
		Insert("trades").
		Columns(
			"order_id", "symbol", "side", "quantity", "price", "timestamp",
			"strategy_name", "executed_at", "executed_qty", "executed_price", "pnl",
		).
		Values(
			order.ID, order.Symbol, order.Side, order.Quantity, order.Price,
			order.Timestamp, order.StrategyName, executedAt, order.Quantity,
			order.Price, pnlFloat,
		).
		RunWith(tx)

	if _, err := insertTrade.Exec(); err != nil {
		tx.Rollback()

		return types.OrderResult{}, errors.Wrap(errors.ErrCodeTradingStateFailed, "failed to insert trade", err)
	}

	if err := tx.Commit(); err != nil {
		return types.OrderResult{}, errors.Wrap(errors.ErrCodeTradingStateFailed, "failed to commit transaction", err)
	}

	p.logger.Info("paper order filled",
		zap.String("order_id", order.ID),
		zap.String("symbol", order.Symbol),
		zap.String("side", string(order.Side)),
		zap.Float64("quantity", order.Quantity),
		zap.Float64("price", order.Price),
		zap.Float64("pnl", pnlFloat),
	)

	return types.OrderResult{
		OrderID:       order.ID,
		Status:        types.OrderStatusFilled,
		ExecutedQty:   order.Quantity,
		ExecutedPrice: order.Price,
		ExecutedAt:    executedAt,
		Message:       "",
	}, nil
}

// reject records the order as rejected without touching the trade ledger.
func (p *PaperTradingProvider) reject(ctx context.Context, order types.ExecuteOrder, reason, message string) (types.OrderResult, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return types.OrderResult{}, errors.Wrap(errors.ErrCodeTradingStateFailed, "failed to begin transaction", err)
	}

	order.Reason = types.Reason{Reason: reason, Message: message}

	if err := p.insertOrder(tx, order, types.OrderStatusRejected, message); err != nil {
		tx.Rollback()

		return types.OrderResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.OrderResult{}, errors.Wrap(errors.ErrCodeTradingStateFailed, "failed to commit transaction", err)
	}

	p.logger.Info("paper order rejected",
		zap.String("order_id", order.ID),
		zap.String("symbol", order.Symbol),
		zap.String("side", string(order.Side)),
		zap.String("message", message),
	)

	return types.OrderResult{
		OrderID:       order.ID,
		Status:        types.OrderStatusRejected,
		ExecutedQty:   0,
		ExecutedPrice: 0,
		ExecutedAt:    order.Timestamp,
		Message:       message,
	}, nil
}

func (p *PaperTradingProvider) insertOrder(tx *sql.Tx, order types.ExecuteOrder, status types.OrderStatus, message string) error {
	stopLoss := order.StopLoss.TakeOr(0)

	insert := p.sq.
		Insert("orders").
		Columns(
			"order_id", "symbol", "side", "quantity", "price", "timestamp",
			"status", "reason", "message", "strategy_name", "stop_loss",
		).
		Values(
			order.ID, order.Symbol, order.Side, order.Quantity, order.Price,
			order.Timestamp, status, order.Reason.Reason, message,
			order.StrategyName, stopLoss,
		).
		RunWith(tx)

	if _, err := insert.Exec(); err != nil {
		return errors.Wrap(errors.ErrCodeTradingStateFailed, "failed to insert order", err)
	}

	return nil
}

// GetPosition derives the holding for a symbol from the trade ledger.
// The aggregation restarts at the last point the net quantity reached
// zero, so a closed round trip never dilutes the entry price of a
// position opened afterwards.
func (p *PaperTradingProvider) GetPosition(ctx context.Context, symbol string) (types.Position, error) {
	query := `
		WITH ordered AS (
			SELECT
				side,
				executed_qty,
				executed_price,
				executed_at,
				strategy_name,
				ROW_NUMBER() OVER (ORDER BY executed_at, rowid) AS seq,
				SUM(CASE WHEN side = ? THEN executed_qty ELSE -executed_qty END)
					OVER (ORDER BY executed_at, rowid) AS net_qty
			FROM trades
			WHERE symbol = ?
		),
		anchor AS (
			SELECT COALESCE(MAX(seq), 0) AS flat_seq
			FROM ordered
			WHERE ABS(net_qty) < 1e-9
		),
		open_trades AS (
			SELECT o.* FROM ordered o, anchor a WHERE o.seq > a.flat_seq
		)
		SELECT
			COALESCE(SUM(CASE WHEN side = ? THEN executed_qty ELSE -executed_qty END), 0) AS quantity,
			COALESCE(SUM(CASE WHEN side = ? THEN executed_qty * executed_price ELSE 0 END), 0) AS total_in_amount,
			COALESCE(SUM(CASE WHEN side = ? THEN executed_qty ELSE 0 END), 0) AS total_in_qty,
			COALESCE(MIN(executed_at), CURRENT_TIMESTAMP) AS open_timestamp,
			COALESCE(MAX(strategy_name), '') AS strategy_name
		FROM open_trades
	`

	var (
		quantity      float64
		totalInAmount float64
		totalInQty    float64
		openTimestamp time.Time
		strategyName  string
	)

	row := p.db.QueryRowContext(ctx, query,
		types.PurchaseTypeBuy, symbol,
		types.PurchaseTypeBuy, types.PurchaseTypeBuy, types.PurchaseTypeBuy,
	)

	err := row.Scan(&quantity, &totalInAmount, &totalInQty, &openTimestamp, &strategyName)
	if err == sql.ErrNoRows {
		return types.Position{Symbol: symbol}, nil
	}

	if err != nil {
		return types.Position{}, errors.Wrap(errors.ErrCodeTradingQueryFailed, "failed to query position", err)
	}

	avgEntry := 0.0
	if totalInQty > 0 {
		avgEntry, _ = decimal.NewFromFloat(totalInAmount).
			Div(decimal.NewFromFloat(totalInQty)).
			Float64()
	}

	stopLoss, err := p.latestStopLoss(ctx, symbol)
	if err != nil {
		return types.Position{}, err
	}

	return types.Position{
		Symbol:        symbol,
		Quantity:      quantity,
		AvgEntryPrice: avgEntry,
		StopLoss:      stopLoss,
		OpenTimestamp: openTimestamp,
		StrategyName:  strategyName,
	}, nil
}

// latestStopLoss returns the stop level attached to the most recent filled
// buy for the symbol, 0 when none exists.
func (p *PaperTradingProvider) latestStopLoss(ctx context.Context, symbol string) (float64, error) {
	query, args, err := p.sq.
		Select("stop_loss").
		From("orders").
		Where(squirrel.Eq{"symbol": symbol, "side": types.PurchaseTypeBuy, "status": types.OrderStatusFilled}).
		OrderBy("timestamp DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeTradingQueryFailed, "failed to build stop loss query", err)
	}

	var stopLoss float64

	row := p.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&stopLoss); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}

		return 0, errors.Wrap(errors.ErrCodeTradingQueryFailed, "failed to query stop loss", err)
	}

	return stopLoss, nil
}

// GetPositions returns every open position in the ledger.
func (p *PaperTradingProvider) GetPositions(ctx context.Context) ([]types.Position, error) {
	query, args, err := p.sq.
		Select("DISTINCT symbol").
		From("trades").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTradingQueryFailed, "failed to build symbols query", err)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTradingQueryFailed, "failed to query symbols", err)
	}
	defer rows.Close()

	var symbols []string

	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTradingQueryFailed, "failed to scan symbol", err)
		}

		symbols = append(symbols, symbol)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTradingQueryFailed, "failed to iterate symbols", err)
	}

	positions := make([]types.Position, 0, len(symbols))

	for _, symbol := range symbols {
		position, err := p.GetPosition(ctx, symbol)
		if err != nil {
			return nil, err
		}

		if position.IsOpen() {
			positions = append(positions, position)
		}
	}

	return positions, nil
}

// GetAccountInfo derives balances from the ledger: cash is the initial
// balance minus buys plus sells, equity adds open positions at cost.
func (p *PaperTradingProvider) GetAccountInfo(ctx context.Context) (types.AccountInfo, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN side = ? THEN executed_qty * executed_price ELSE 0 END), 0) AS bought,
			COALESCE(SUM(CASE WHEN side = ? THEN executed_qty * executed_price ELSE 0 END), 0) AS sold,
			COALESCE(SUM(pnl), 0) AS realized_pnl
		FROM trades
	`

	var bought, sold, realizedPnL float64

	row := p.db.QueryRowContext(ctx, query, types.PurchaseTypeBuy, types.PurchaseTypeSell)
	if err := row.Scan(&bought, &sold, &realizedPnL); err != nil {
		return types.AccountInfo{}, errors.Wrap(errors.ErrCodeTradingQueryFailed, "failed to query account", err)
	}

	balance := p.initialBalance.
		Sub(decimal.NewFromFloat(bought)).
		Add(decimal.NewFromFloat(sold))

	positions, err := p.GetPositions(ctx)
	if err != nil {
		return types.AccountInfo{}, err
	}

	equity := balance

	for _, position := range positions {
		equity = equity.Add(
			decimal.NewFromFloat(position.Quantity).Mul(decimal.NewFromFloat(position.AvgEntryPrice)),
		)
	}

	balanceFloat, _ := balance.Float64()
	equityFloat, _ := equity.Float64()

	return types.AccountInfo{
		Balance:     balanceFloat,
		Equity:      equityFloat,
		BuyingPower: balanceFloat,
		RealizedPnL: realizedPnL,
	}, nil
}

// Close releases the ledger database.
func (p *PaperTradingProvider) Close() error {
	return p.db.Close()
}
