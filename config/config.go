package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rustyeddy/swingtrader/exits"
	"github.com/rustyeddy/swingtrader/risk"
	"github.com/rustyeddy/swingtrader/walkforward"
	"gopkg.in/yaml.v3"
)

// Config represents the complete backtest configuration.
type Config struct {
	Account     AccountConfig     `json:"account" yaml:"account"`
	Risk        risk.Limits       `json:"risk" yaml:"risk"`
	Sizing      risk.SizingParams `json:"sizing" yaml:"sizing"`
	Stops       exits.StopParams  `json:"stops" yaml:"stops"`
	Decay       exits.DecayParams `json:"decay" yaml:"decay"`
	WalkForward WalkForwardConfig `json:"walkforward" yaml:"walkforward"`
	Journal     JournalConfig     `json:"journal" yaml:"journal"`
}

// AccountConfig contains account initialization parameters.
type AccountConfig struct {
	ID             string  `json:"id" yaml:"id"`
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	TrailStops     bool    `json:"trail_stops" yaml:"trail_stops"`
}

// WalkForwardConfig contains rolling-window parameters.
type WalkForwardConfig struct {
	TrainDays int `json:"train_days" yaml:"train_days"`
	TestDays  int `json:"test_days" yaml:"test_days"`
	StepDays  int `json:"step_days" yaml:"step_days"`
	Workers   int `json:"workers" yaml:"workers"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	TradesFile  string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile  string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	SignalsFile string `json:"signals_file,omitempty" yaml:"signals_file,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML first, JSON fallback).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file; format follows the extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Account.InitialCapital <= 0 {
		return fmt.Errorf("account.initial_capital must be positive")
	}
	if c.Risk.MinPrice <= 0 || c.Risk.MaxPrice <= c.Risk.MinPrice {
		return fmt.Errorf("risk.min_price/max_price must satisfy 0 < min < max")
	}
	if c.Risk.MaxSectorExposure <= 0 || c.Risk.MaxSectorExposure > 1 {
		return fmt.Errorf("risk.max_sector_exposure must be in (0, 1]")
	}
	if c.Sizing.BaseRiskPct <= 0 || c.Sizing.BaseRiskPct > 0.1 {
		return fmt.Errorf("sizing.base_risk_pct must be in (0, 0.1]")
	}
	if c.Sizing.ATRStopMultiplier <= 0 {
		return fmt.Errorf("sizing.atr_stop_multiplier must be positive")
	}
	if c.Stops.TightK <= 0 || c.Stops.NormalK < c.Stops.TightK || c.Stops.WideK < c.Stops.NormalK {
		return fmt.Errorf("stops k-factors must satisfy 0 < tight <= normal <= wide")
	}
	if c.WalkForward.TrainDays <= 0 || c.WalkForward.TestDays <= 0 || c.WalkForward.StepDays <= 0 {
		return fmt.Errorf("walkforward train/test/step days must be positive")
	}
	if c.WalkForward.Workers < 1 {
		return fmt.Errorf("walkforward.workers must be at least 1")
	}

	switch c.Journal.Type {
	case "none", "":
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite type")
		}
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" || c.Journal.SignalsFile == "" {
			return fmt.Errorf("journal trades_file, equity_file and signals_file required for csv type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	return nil
}

// FrozenParams flattens the policy thresholds into the opaque parameter
// map walk-forward windows receive. The sweep never re-reads the config.
func (c *Config) FrozenParams() walkforward.Params {
	return walkforward.Params{
		walkforward.ParamInitialCapital:      c.Account.InitialCapital,
		walkforward.ParamMinConfidence:       c.Risk.MinConfidence,
		walkforward.ParamMaxPositionSize:     float64(c.Risk.MaxPositionSize),
		walkforward.ParamMaxSectorExposure:   c.Risk.MaxSectorExposure,
		walkforward.ParamMinLiquidity:        c.Risk.MinLiquidity,
		walkforward.ParamForceExitConfidence: c.Risk.ForceExitConfidence,
		walkforward.ParamMaxDrawdown:         c.Risk.MaxDrawdown,
	}
}

// Default returns a configuration with the standard parameters.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:             "SIM-001",
			InitialCapital: 100_000,
			TrailStops:     true,
		},
		Risk:   risk.DefaultLimits(),
		Sizing: risk.DefaultSizing(),
		Stops:  exits.DefaultStops(),
		Decay:  exits.DefaultDecay(),
		WalkForward: WalkForwardConfig{
			TrainDays: 252,
			TestDays:  63,
			StepDays:  21,
			Workers:   1,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./backtest.sqlite",
		},
	}
}
