package engine

import (
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/crestline-lab/tidal-trading/internal/logger"
	"github.com/crestline-lab/tidal-trading/internal/types"
	"github.com/crestline-lab/tidal-trading/pkg/errors"
)

// dailyResetSchedule clears the loss counter at midnight.
const dailyResetSchedule = "0 0 * * *"

// RiskGate is the pre-submission check between the coordinator and the
// broker. It enforces the per-position notional cap, the open-position
// count cap, and the daily-loss circuit breaker. Only buys are gated;
// sells always pass so positions can be reduced under stress.
//
// The daily loss counter resets at midnight via an internal cron schedule.
type RiskGate struct {
	mu     sync.Mutex
	config RiskConfig
	logger *logger.Logger
	cron   *cron.Cron

	dailyLoss decimal.Decimal
	halted    bool
}

// NewRiskGate creates a risk gate and starts its daily reset schedule.
func NewRiskGate(l *logger.Logger, config RiskConfig) *RiskGate {
	g := &RiskGate{
		config:    config,
		logger:    l,
		cron:      cron.New(),
		dailyLoss: decimal.Zero,
		halted:    false,
	}

	if _, err := g.cron.AddFunc(dailyResetSchedule, g.ResetDaily); err != nil {
		// The schedule is a package constant; a parse failure means the
		// breaker would latch forever once tripped.
		panic(err)
	}

	g.cron.Start()

	return g
}

// Check decides whether the order may be submitted. A nil return means
// allowed; a non-nil return carries the rejection reason. Rejection is a
// normal decision outcome, not a provider failure.
func (g *RiskGate) Check(order types.ExecuteOrder, account types.AccountInfo, openPositions int) error {
	if order.Side == types.PurchaseTypeSell {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.halted {
		return errors.New(errors.ErrCodeDailyLossBreached,
			"daily loss limit breached, buys halted until next trading day")
	}

	notional := order.Price * order.Quantity
	maxNotional := account.Equity * g.config.MaxPositionPct / 100

	if notional > maxNotional {
		return errors.Newf(errors.ErrCodeRiskLimitExceeded,
			"order notional %.2f exceeds %.1f%% of equity (%.2f)",
			notional, g.config.MaxPositionPct, maxNotional)
	}

	if openPositions >= g.config.MaxOpenPositions {
		return errors.Newf(errors.ErrCodeRiskLimitExceeded,
			"open position count %d at limit %d", openPositions, g.config.MaxOpenPositions)
	}

	return nil
}

// RecordPnL feeds a realized result into the daily loss counter. Once
// accumulated losses reach MaxDailyLossPct of equity, buys halt until the
// daily reset.
func (g *RiskGate) RecordPnL(pnl, equity float64) {
	if pnl >= 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.dailyLoss = g.dailyLoss.Add(decimal.NewFromFloat(-pnl))
	limit := decimal.NewFromFloat(equity).
		Mul(decimal.NewFromFloat(g.config.MaxDailyLossPct)).
		Div(decimal.NewFromInt(100))

	if !g.halted && g.dailyLoss.GreaterThanOrEqual(limit) {
		g.halted = true
		lossFloat, _ := g.dailyLoss.Float64()
		g.logger.Warn("daily loss limit breached, halting buys",
			zap.Float64("daily_loss", lossFloat),
			zap.Float64("max_daily_loss_pct", g.config.MaxDailyLossPct),
		)
	}
}

// Halted reports whether the daily-loss circuit breaker has tripped.
func (g *RiskGate) Halted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.halted
}

// ResetDaily clears the daily loss counter and re-enables buys. Runs at
// midnight; exposed for an operator-driven reset.
func (g *RiskGate) ResetDaily() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.dailyLoss = decimal.Zero
	g.halted = false
	g.logger.Info("daily risk counters reset")
}

// Stop halts the reset schedule.
func (g *RiskGate) Stop() {
	g.cron.Stop()
}
