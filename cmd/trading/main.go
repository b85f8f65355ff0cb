package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/crestline-lab/tidal-trading/internal/engine"
	"github.com/crestline-lab/tidal-trading/internal/logger"
	"github.com/crestline-lab/tidal-trading/internal/marketdata"
	"github.com/crestline-lab/tidal-trading/internal/strategy"
	"github.com/crestline-lab/tidal-trading/internal/trading"
)

// runAction loads configuration, wires the data chain, paper broker, and
// coordinator, and runs until interrupted.
func runAction(ctx context.Context, cmd *cli.Command) error {
	l, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer l.Sync()

	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	strat, err := selectStrategy(config.Strategy)
	if err != nil {
		return err
	}

	source := marketdata.NewTieredSource(
		l,
		config.SourceTimeout(),
		marketdata.NewBinanceProvider(),
		marketdata.NewPolygonProvider(config.PolygonAPIKey),
	)

	broker, err := trading.NewPaperTradingProvider(l, config.InitialBalance)
	if err != nil {
		return fmt.Errorf("failed to create paper broker: %w", err)
	}
	defer broker.Close()

	gate := engine.NewRiskGate(l, config.Risk)
	defer gate.Stop()

	coordinator := engine.NewExecutionCoordinator(l, config, source, strat, broker, gate)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := coordinator.Run(runCtx); err != nil {
		return err
	}

	account, err := broker.GetAccountInfo(context.Background())
	if err != nil {
		return err
	}

	l.Info("final account state",
		zap.Float64("balance", account.Balance),
		zap.Float64("equity", account.Equity),
		zap.Float64("realized_pnl", account.RealizedPnL),
	)

	return nil
}

// loadConfig reads the YAML config when given, otherwise builds one from
// flags and defaults.
func loadConfig(cmd *cli.Command) (*engine.Config, error) {
	var (
		config *engine.Config
		err    error
	)

	if path := cmd.String("config"); path != "" {
		config, err = engine.LoadConfig(path)
	} else {
		config, err = engine.ParseConfig([]byte("symbols: [BTC/USD, ETH/USD]"))
	}

	if err != nil {
		return nil, err
	}

	if symbols := cmd.StringSlice("symbols"); len(symbols) > 0 {
		config.Symbols = symbols
	}

	if key := cmd.String("polygon-api-key"); key != "" {
		config.PolygonAPIKey = key
	}

	if balance := cmd.Float("paper-balance"); balance > 0 {
		config.InitialBalance = balance
	}

	return config, nil
}

// selectStrategy maps the config name to a strategy implementation.
func selectStrategy(name string) (strategy.Strategy, error) {
	switch name {
	case "supertrend":
		return strategy.NewSupertrendStrategy(), nil
	case "macd":
		return strategy.NewMACDStrategy(), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "tidal-trading",
		Usage: "Run the paper trading loop with tiered market data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML configuration file",
			},
			&cli.StringSliceFlag{
				Name:    "symbols",
				Aliases: []string{"s"},
				Usage:   "Symbols to track, overrides the config file",
			},
			&cli.StringFlag{
				Name:    "polygon-api-key",
				Usage:   "Polygon API key for the secondary data tier",
				Sources: cli.EnvVars("POLYGON_API_KEY"),
			},
			&cli.FloatFlag{
				Name:  "paper-balance",
				Usage: "Starting cash balance for the paper broker",
			},
		},
		Action: runAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
