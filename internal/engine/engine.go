package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/crestline-lab/tidal-trading/internal/logger"
	"github.com/crestline-lab/tidal-trading/internal/marketdata"
	"github.com/crestline-lab/tidal-trading/internal/strategy"
	"github.com/crestline-lab/tidal-trading/internal/trading"
	"github.com/crestline-lab/tidal-trading/internal/types"
)

// BarSource is the data dependency of the coordinator. Satisfied by
// marketdata.TieredSource.
type BarSource interface {
	Fetch(ctx context.Context, symbol string, timeframe types.Timeframe, limit int) *types.BarSeries
}

var _ BarSource = (*marketdata.TieredSource)(nil)

// ExecutionCoordinator drives the trading loop: every poll interval it
// fetches bars for each tracked symbol, evaluates the strategy, sizes the
// resulting order, passes it through the risk gate, and submits it to the
// trading provider. A panic or error inside one symbol's cycle is contained
// there; other symbols and later cycles are unaffected.
type ExecutionCoordinator struct {
	config      *Config
	timeframe   types.Timeframe
	historyBars int
	data        BarSource
	strategy    strategy.Strategy
	broker      trading.TradingSystemProvider
	sizer       *PositionSizer
	gate        *RiskGate
	logger      *logger.Logger
}

// NewExecutionCoordinator wires the coordinator from its collaborators.
func NewExecutionCoordinator(
	l *logger.Logger,
	config *Config,
	data BarSource,
	strat strategy.Strategy,
	broker trading.TradingSystemProvider,
	gate *RiskGate,
) *ExecutionCoordinator {
	// The strategy needs room for its crossing comparison, whatever the
	// configured window says.
	historyBars := config.HistoryBars
	if min := strat.MinBars() + 2; historyBars < min {
		historyBars = min
	}

	return &ExecutionCoordinator{
		config:      config,
		timeframe:   types.ParseTimeframe(config.Timeframe),
		historyBars: historyBars,
		data:        data,
		strategy:    strat,
		broker:      broker,
		sizer:       NewPositionSizer(),
		gate:        gate,
		logger:      l,
	}
}

// Run executes cycles on the poll cadence until the context is canceled.
// The first cycle runs immediately.
func (c *ExecutionCoordinator) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.config.PollInterval())
	defer ticker.Stop()

	c.logger.Info("execution coordinator started",
		zap.Strings("symbols", c.config.Symbols),
		zap.String("timeframe", string(c.timeframe)),
		zap.String("strategy", c.strategy.Name()),
		zap.Duration("poll_interval", c.config.PollInterval()),
	)

	c.RunCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("execution coordinator stopped")

			return nil
		case <-ticker.C:
			c.RunCycle(ctx)
		}
	}
}

// RunCycle evaluates every tracked symbol once, sequentially by default
// or in parallel when configured. Symbols never share position state, so
// parallel cycles only contend on the broker ledger and the risk gate,
// both of which are safe for concurrent use.
func (c *ExecutionCoordinator) RunCycle(ctx context.Context) {
	if !c.config.Concurrent {
		for _, symbol := range c.config.Symbols {
			c.evaluateSymbol(ctx, symbol)
		}

		return
	}

	var wg sync.WaitGroup

	for _, symbol := range c.config.Symbols {
		wg.Add(1)

		go func(symbol string) {
			defer wg.Done()
			c.evaluateSymbol(ctx, symbol)
		}(symbol)
	}

	wg.Wait()
}

// evaluateSymbol runs one symbol's cycle with panic containment.
func (c *ExecutionCoordinator) evaluateSymbol(ctx context.Context, symbol string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("symbol cycle panicked",
				zap.String("symbol", symbol),
				zap.Any("panic", r),
			)
		}
	}()

	series := c.data.Fetch(ctx, symbol, c.timeframe, c.historyBars)
	if series.Origin == types.OriginSynthetic {
		c.logger.Warn("trading cycle running on synthetic data",
			zap.String("symbol", symbol),
		)
	}

	last, ok := series.Last()
	if !ok {
		return
	}

	position, err := c.broker.GetPosition(ctx, symbol)
	if err != nil {
		c.logger.Error("failed to load position", zap.String("symbol", symbol), zap.Error(err))

		return
	}

	// Stop loss outranks the strategy: close first, let the next cycle
	// re-enter if the signal holds.
	if position.IsOpen() && position.StopLoss > 0 && last.Close <= position.StopLoss {
		c.closePosition(ctx, position, last, types.OrderReasonStopLoss)

		return
	}

	signal, err := c.strategy.GenerateSignal(series)
	if err != nil {
		c.logger.Error("strategy evaluation failed", zap.String("symbol", symbol), zap.Error(err))

		return
	}

	switch signal.Type {
	case types.SignalTypeBuy:
		c.handleBuy(ctx, signal, position, last)
	case types.SignalTypeSell:
		c.handleSell(ctx, signal, position, last)
	case types.SignalTypeHold:
		c.logger.Debug("holding",
			zap.String("symbol", symbol),
			zap.String("reason", signal.Reason),
		)
	}
}

// handleBuy opens a position when none exists. A BUY against an open
// position is suppressed: one position per symbol.
func (c *ExecutionCoordinator) handleBuy(ctx context.Context, signal types.Signal, position types.Position, last types.Bar) {
	if position.IsOpen() {
		c.logger.Info("buy suppressed, position already open",
			zap.String("symbol", signal.Symbol),
			zap.Float64("quantity", position.Quantity),
		)

		return
	}

	account, err := c.broker.GetAccountInfo(ctx)
	if err != nil {
		c.logger.Error("failed to load account", zap.String("symbol", signal.Symbol), zap.Error(err))

		return
	}

	stopLoss := signal.StopLoss.TakeOr(last.Close * (1 - c.config.Risk.StopLossPct/100))

	quantity := c.sizer.Size(account.Equity, c.config.Risk.RiskPerTradePct, last.Close, stopLoss)
	if quantity <= 0 {
		c.logger.Info("sized to zero, skipping buy", zap.String("symbol", signal.Symbol))

		return
	}

	order := types.ExecuteOrder{
		ID:           uuid.New().String(),
		Symbol:       signal.Symbol,
		Side:         types.PurchaseTypeBuy,
		Price:        last.Close,
		Quantity:     quantity,
		Timestamp:    signal.Time,
		StrategyName: c.strategy.Name(),
		Reason:       types.Reason{Reason: types.OrderReasonStrategy, Message: signal.Reason},
		StopLoss:     optional.Some(stopLoss),
		TakeProfit:   optional.None[float64](),
	}

	positions, err := c.broker.GetPositions(ctx)
	if err != nil {
		c.logger.Error("failed to load positions", zap.String("symbol", signal.Symbol), zap.Error(err))

		return
	}

	if err := c.gate.Check(order, account, len(positions)); err != nil {
		c.logger.Info("buy rejected by risk gate",
			zap.String("symbol", signal.Symbol),
			zap.String("reason", err.Error()),
		)

		return
	}

	c.submit(ctx, order)
}

// handleSell closes the open position. A SELL with no position is ignored.
func (c *ExecutionCoordinator) handleSell(ctx context.Context, signal types.Signal, position types.Position, last types.Bar) {
	if !position.IsOpen() {
		c.logger.Debug("sell ignored, no open position", zap.String("symbol", signal.Symbol))

		return
	}

	c.closePosition(ctx, position, last, types.OrderReasonStrategy)
}

// closePosition sells the full held quantity at the latest close.
func (c *ExecutionCoordinator) closePosition(ctx context.Context, position types.Position, last types.Bar, reason string) {
	order := types.ExecuteOrder{
		ID:           uuid.New().String(),
		Symbol:       position.Symbol,
		Side:         types.PurchaseTypeSell,
		Price:        last.Close,
		Quantity:     position.Quantity,
		Timestamp:    last.Time,
		StrategyName: c.strategy.Name(),
		Reason:       types.Reason{Reason: reason, Message: ""},
		StopLoss:     optional.None[float64](),
		TakeProfit:   optional.None[float64](),
	}

	result, submitErr := c.broker.PlaceOrder(ctx, order)
	if submitErr != nil {
		c.logger.Error("order submission failed",
			zap.String("symbol", order.Symbol),
			zap.Error(submitErr),
		)

		return
	}

	if !result.Filled() {
		c.logger.Warn("close order not filled",
			zap.String("symbol", order.Symbol),
			zap.String("status", string(result.Status)),
			zap.String("message", result.Message),
		)

		return
	}

	pnl := (result.ExecutedPrice - position.AvgEntryPrice) * result.ExecutedQty

	account, err := c.broker.GetAccountInfo(ctx)
	if err == nil {
		c.gate.RecordPnL(pnl, account.Equity)
	}

	c.logger.Info("position closed",
		zap.String("symbol", order.Symbol),
		zap.String("reason", reason),
		zap.Float64("quantity", result.ExecutedQty),
		zap.Float64("price", result.ExecutedPrice),
		zap.Float64("pnl", pnl),
	)
}

// submit places an order and logs the disposition.
func (c *ExecutionCoordinator) submit(ctx context.Context, order types.ExecuteOrder) {
	result, err := c.broker.PlaceOrder(ctx, order)
	if err != nil {
		c.logger.Error("order submission failed",
			zap.String("symbol", order.Symbol),
			zap.Error(err),
		)

		return
	}

	if !result.Filled() {
		c.logger.Warn("order not filled",
			zap.String("symbol", order.Symbol),
			zap.String("status", string(result.Status)),
			zap.String("message", result.Message),
		)

		return
	}

	c.logger.Info("order filled",
		zap.String("symbol", order.Symbol),
		zap.String("side", string(order.Side)),
		zap.Float64("quantity", result.ExecutedQty),
		zap.Float64("price", result.ExecutedPrice),
	)
}
