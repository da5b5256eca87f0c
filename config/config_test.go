package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rustyeddy/liquidity/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, 0.04, cfg.Thresholds.VolatilityThreshold)
	assert.Equal(t, 10, cfg.Thresholds.VolatilityWindow)
	assert.Equal(t, "csv", cfg.Feed.Type)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
		cfgErr  bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "zero sell target",
			mutate:  func(c *Config) { c.Thresholds.TargetSellMXN = 0 },
			wantErr: true,
			errMsg:  "target_sell_mxn must be positive",
			cfgErr:  true,
		},
		{
			name:    "negative usd limit",
			mutate:  func(c *Config) { c.Thresholds.USDExposureLimit = -5 },
			wantErr: true,
			errMsg:  "usd_exposure_limit must be positive",
			cfgErr:  true,
		},
		{
			name:    "zero cost basis",
			mutate:  func(c *Config) { c.Thresholds.CostBasis = 0 },
			wantErr: true,
			errMsg:  "cost_basis must be positive",
			cfgErr:  true,
		},
		{
			name:    "negative block size",
			mutate:  func(c *Config) { c.Thresholds.BlockSize = -1 },
			wantErr: true,
			errMsg:  "block_size must be positive",
			cfgErr:  true,
		},
		{
			name:    "negative volatility threshold",
			mutate:  func(c *Config) { c.Thresholds.VolatilityThreshold = -0.01 },
			wantErr: true,
			errMsg:  "volatility_threshold must not be negative",
			cfgErr:  true,
		},
		{
			name:    "window too small",
			mutate:  func(c *Config) { c.Thresholds.VolatilityWindow = 1 },
			wantErr: true,
			errMsg:  "volatility_window must be at least 2",
			cfgErr:  true,
		},
		{
			name:    "bad bucket width",
			mutate:  func(c *Config) { c.Thresholds.BucketWidth = "hourly" },
			wantErr: true,
			errMsg:  "bucket_width",
			cfgErr:  true,
		},
		{
			name:    "unknown feed type",
			mutate:  func(c *Config) { c.Feed.Type = "kafka" },
			wantErr: true,
			errMsg:  "feed.type must be 'csv' or 'sqlite'",
		},
		{
			name:    "missing feed path",
			mutate:  func(c *Config) { c.Feed.Path = "" },
			wantErr: true,
			errMsg:  "feed.path is required",
		},
		{
			name: "sqlite table injection",
			mutate: func(c *Config) {
				c.Feed.Type = "sqlite"
				c.Feed.Table = "trades; DROP TABLE trades"
			},
			wantErr: true,
			errMsg:  "not a valid table name",
		},
		{
			name:    "bad refresh",
			mutate:  func(c *Config) { c.Feed.Refresh = "soon" },
			wantErr: true,
			errMsg:  "feed.refresh",
		},
		{
			name:    "sqlite journal",
			mutate:  func(c *Config) { c.Journal = JournalConfig{Type: "sqlite", Path: "cycles.db"} },
			wantErr: false,
		},
		{
			name:    "journal without path",
			mutate:  func(c *Config) { c.Journal.Type = "csv" },
			wantErr: true,
			errMsg:  "journal.path required for csv type",
		},
		{
			name:    "unknown journal type",
			mutate:  func(c *Config) { c.Journal.Type = "postgres" },
			wantErr: true,
			errMsg:  "journal.type",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: true,
			errMsg:  "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
				assert.Equal(t, tt.cfgErr, errors.Is(err, risk.ErrConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			path := filepath.Join(tmpDir, "test"+tt.ext)

			// Save
			err := cfg.SaveToFile(path)
			require.NoError(t, err)

			// Verify file exists
			_, err = os.Stat(path)
			require.NoError(t, err)

			// Load
			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "min.yaml")
	data := `
thresholds:
  mxn_exposure_limit: 50000
  usd_exposure_limit: 150000
  target_sell_mxn: 5000
  target_sell_usd: 80000
  cost_basis: 20.2
  block_size: 500
feed:
  type: sqlite
  path: ./bot.sqlite
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	th := cfg.Thresholds
	assert.Equal(t, 80000.0, th.TargetBuyUSD)
	assert.Equal(t, 0.0, th.LegacyTargetSellUSD)
	assert.Equal(t, 0.04, th.VolatilityThreshold)
	assert.Equal(t, 10, th.VolatilityWindow)
	assert.Equal(t, "1h", th.BucketWidth)
	assert.Equal(t, "trades", cfg.Feed.Table)
	assert.Equal(t, "60s", cfg.Feed.Refresh)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "none", cfg.Journal.Type)
	assert.False(t, cfg.Journal.Enabled())
}

func TestLoadCanonicalBuyTargetWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "both.json")
	data := `{"thresholds": {"mxn_exposure_limit": 1, "usd_exposure_limit": 1, "target_sell_mxn": 1,
	"target_buy_usd": 100, "target_sell_usd": 5, "cost_basis": 20, "block_size": 1},
	"feed": {"path": "x.csv"}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 100.0, cfg.Thresholds.TargetBuyUSD)
}

func TestLoadMissingRequired(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feed:\n  path: x.csv\n"), 0o644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.True(t, errors.Is(err, risk.ErrConfig))
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "garbage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("thresholds: [1, 2\n"), 0o644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestDurations(t *testing.T) {
	tests := []struct {
		in       string
		expected time.Duration
		wantErr  bool
	}{
		{"1h", time.Hour, false},
		{"15m", 15 * time.Minute, false},
		{"", 0, false},
		{"invalid", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := Thresholds{BucketWidth: tt.in}.Bucket()
			r, rerr := FeedConfig{Refresh: tt.in}.RefreshInterval()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Error(t, rerr)
			} else {
				assert.NoError(t, err)
				assert.NoError(t, rerr)
				assert.Equal(t, tt.expected, d)
				assert.Equal(t, tt.expected, r)
			}
		})
	}
}
