package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/swingtrader/walkforward"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero_capital", func(c *Config) { c.Account.InitialCapital = 0 }, "initial_capital"},
		{"inverted_prices", func(c *Config) { c.Risk.MaxPrice = c.Risk.MinPrice }, "min_price/max_price"},
		{"bad_exposure", func(c *Config) { c.Risk.MaxSectorExposure = 1.5 }, "max_sector_exposure"},
		{"huge_risk_pct", func(c *Config) { c.Sizing.BaseRiskPct = 0.5 }, "base_risk_pct"},
		{"zero_atr_mult", func(c *Config) { c.Sizing.ATRStopMultiplier = 0 }, "atr_stop_multiplier"},
		{"inverted_k", func(c *Config) { c.Stops.WideK = 1.0 }, "k-factors"},
		{"zero_test_days", func(c *Config) { c.WalkForward.TestDays = 0 }, "train/test/step"},
		{"zero_workers", func(c *Config) { c.WalkForward.Workers = 0 }, "workers"},
		{"sqlite_no_path", func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} }, "db_path"},
		{"csv_no_files", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }, "trades_file"},
		{"bad_type", func(c *Config) { c.Journal = JournalConfig{Type: "kafka"} }, "journal.type"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSaveAndLoadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Account.InitialCapital = 250_000
	cfg.Risk.MinConfidence = 70
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.InDelta(t, 250_000.0, got.Account.InitialCapital, 1e-9)
	assert.InDelta(t, 70.0, got.Risk.MinConfidence, 1e-9)
	assert.Equal(t, cfg.Journal.Type, got.Journal.Type)
}

func TestSaveAndLoadJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.WalkForward.Workers = 4
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, got.WalkForward.Workers)
}

func TestLoadFromFile_Errors(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("account:\n  initial_capital: -1\n"), 0o644))
	_, err = LoadFromFile(bad)
	assert.ErrorContains(t, err, "invalid config")
}

func TestFrozenParams(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Account.InitialCapital = 75_000
	cfg.Risk.MinConfidence = 65

	p := cfg.FrozenParams()

	assert.InDelta(t, 75_000.0, p[walkforward.ParamInitialCapital], 1e-9)
	assert.InDelta(t, 65.0, p[walkforward.ParamMinConfidence], 1e-9)
	assert.InDelta(t, float64(cfg.Risk.MaxPositionSize), p[walkforward.ParamMaxPositionSize], 1e-9)
	assert.InDelta(t, cfg.Risk.MaxDrawdown, p[walkforward.ParamMaxDrawdown], 1e-9)
}
