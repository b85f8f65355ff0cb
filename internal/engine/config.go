// Package engine hosts the execution coordinator: the polling loop that
// turns market data into signals, signals into sized orders, and orders
// into broker submissions behind a risk gate.
package engine

import (
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/crestline-lab/tidal-trading/pkg/errors"
)

// RiskConfig bounds what the coordinator may do per trade and per day.
// Loaded once at startup, read-only thereafter.
type RiskConfig struct {
	// RiskPerTradePct is the share of equity risked between entry and stop
	RiskPerTradePct float64 `yaml:"risk_per_trade_pct" default:"1.0" validate:"gt=0,lte=100"`
	// MaxPositionPct caps a single position's notional as a share of equity
	MaxPositionPct float64 `yaml:"max_position_pct" default:"20.0" validate:"gt=0,lte=100"`
	// MaxOpenPositions caps concurrent open positions
	MaxOpenPositions int `yaml:"max_open_positions" default:"5" validate:"gt=0"`
	// StopLossPct is the fallback stop distance when a strategy supplies none
	StopLossPct float64 `yaml:"stop_loss_pct" default:"2.0" validate:"gt=0,lt=100"`
	// MaxDailyLossPct halts new buys for the day once realized losses
	// reach this share of equity
	MaxDailyLossPct float64 `yaml:"max_daily_loss_pct" default:"5.0" validate:"gt=0,lte=100"`
}

// Config is the coordinator configuration.
type Config struct {
	// Symbols are the tracked display symbols, e.g. BTC/USD
	Symbols []string `yaml:"symbols" validate:"required,min=1,dive,required"`
	// Timeframe is the bar bucket evaluated each cycle
	Timeframe string `yaml:"timeframe" default:"1h"`
	// HistoryBars is how much history each evaluation sees
	HistoryBars int `yaml:"history_bars" default:"100" validate:"gte=10"`
	// PollIntervalSeconds is the cycle cadence
	PollIntervalSeconds int `yaml:"poll_interval_seconds" default:"60" validate:"gt=0"`
	// SourceTimeoutSeconds bounds each market data tier attempt
	SourceTimeoutSeconds int `yaml:"source_timeout_seconds" default:"10" validate:"gt=0"`
	// Concurrent evaluates symbols in parallel within a cycle
	Concurrent bool `yaml:"concurrent"`
	// Strategy selects the signal generator
	Strategy string `yaml:"strategy" default:"supertrend" validate:"oneof=supertrend macd"`
	// InitialBalance seeds the paper broker
	InitialBalance float64 `yaml:"initial_balance" default:"10000" validate:"gt=0"`
	// PolygonAPIKey enables the secondary market data tier when set
	PolygonAPIKey string `yaml:"polygon_api_key"`

	Risk RiskConfig `yaml:"risk"`
}

// PollInterval returns the cycle cadence as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// SourceTimeout returns the per-tier market data timeout as a duration.
func (c *Config) SourceTimeout() time.Duration {
	return time.Duration(c.SourceTimeoutSeconds) * time.Second
}

// ParseConfig unmarshals a YAML config, fills defaults for omitted fields,
// and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	config := &Config{}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := defaults.Set(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to apply config defaults", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return config, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to read config file", err)
	}

	return ParseConfig(data)
}
