package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/liquidity/indicators"
	"github.com/rustyeddy/liquidity/risk"
)

// Config represents the complete monitor configuration
type Config struct {
	Thresholds Thresholds `json:"thresholds" yaml:"thresholds"`
	Feed       FeedConfig    `json:"feed" yaml:"feed"`
	Journal    JournalConfig `json:"journal" yaml:"journal"`
	Log        LogConfig     `json:"log" yaml:"log"`
}

// Thresholds are the numbers one evaluation is judged against. They are
// passed into every evaluation; nothing reads them from global state.
type Thresholds struct {
	MXNExposureLimit float64 `json:"mxn_exposure_limit" yaml:"mxn_exposure_limit"`
	USDExposureLimit float64 `json:"usd_exposure_limit" yaml:"usd_exposure_limit"`
	TargetSellMXN    float64 `json:"target_sell_mxn" yaml:"target_sell_mxn"`
	TargetBuyUSD     float64 `json:"target_buy_usd" yaml:"target_buy_usd"`

	// Older dashboards called the buy target target_sell_usd. It is read
	// into TargetBuyUSD on load when target_buy_usd is absent.
	LegacyTargetSellUSD float64 `json:"target_sell_usd,omitempty" yaml:"target_sell_usd,omitempty"`

	CostBasis           float64 `json:"cost_basis" yaml:"cost_basis"` // reference exchange rate
	BlockSize           float64 `json:"block_size" yaml:"block_size"` // suggested trade size
	VolatilityThreshold float64 `json:"volatility_threshold" yaml:"volatility_threshold"`
	VolatilityWindow    int     `json:"volatility_window" yaml:"volatility_window"`
	BucketWidth         string  `json:"bucket_width" yaml:"bucket_width"` // e.g., "1h", "15m"
}

// FeedConfig says where the fill log is read from
type FeedConfig struct {
	Type    string `json:"type" yaml:"type"` // "csv" or "sqlite"
	Path    string `json:"path" yaml:"path"`
	Table   string `json:"table,omitempty" yaml:"table,omitempty"` // sqlite only
	Refresh string `json:"refresh" yaml:"refresh"`                 // e.g., "60s"
}

// JournalConfig says where evaluation cycles are recorded. The fill log
// itself is never written.
type JournalConfig struct {
	Type string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level string `json:"level" yaml:"level"` // debug, info, warn, error
}

const (
	DefaultVolatilityThreshold = 0.04
	DefaultBucketWidth         = "1h"
	DefaultRefresh             = "60s"
	DefaultTable               = "trades"
	DefaultLogLevel            = "info"
)

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Bucket converts the bucket width string to time.Duration
func (t Thresholds) Bucket() (time.Duration, error) {
	if t.BucketWidth == "" {
		return 0, nil
	}
	return time.ParseDuration(t.BucketWidth)
}

// Policy returns the limits and targets the risk evaluator checks.
func (t Thresholds) Policy() risk.Policy {
	return risk.Policy{
		MXNExposureLimit: t.MXNExposureLimit,
		USDExposureLimit: t.USDExposureLimit,
		TargetSellMXN:    t.TargetSellMXN,
		TargetBuyUSD:     t.TargetBuyUSD,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", risk.ErrConfig, fmt.Sprintf(format, args...))
}

// Validate checks the thresholds. Every error wraps risk.ErrConfig.
func (t Thresholds) Validate() error {
	if err := t.Policy().Validate(); err != nil {
		return err
	}
	if !(t.CostBasis > 0) {
		return invalid("cost_basis must be positive")
	}
	if !(t.BlockSize > 0) {
		return invalid("block_size must be positive")
	}
	if !(t.VolatilityThreshold >= 0) {
		return invalid("volatility_threshold must not be negative")
	}
	if t.VolatilityWindow < indicators.MinWindow {
		return invalid("volatility_window must be at least %d", indicators.MinWindow)
	}
	d, err := t.Bucket()
	if err != nil {
		return invalid("bucket_width: %v", err)
	}
	if d < 0 {
		return invalid("bucket_width must not be negative")
	}
	return nil
}

// RefreshInterval converts the refresh string to time.Duration
func (f FeedConfig) RefreshInterval() (time.Duration, error) {
	if f.Refresh == "" {
		return 0, nil
	}
	return time.ParseDuration(f.Refresh)
}

func (f FeedConfig) Validate() error {
	if f.Type != "csv" && f.Type != "sqlite" {
		return fmt.Errorf("feed.type must be 'csv' or 'sqlite'")
	}
	if f.Path == "" {
		return fmt.Errorf("feed.path is required")
	}
	if f.Type == "sqlite" && !identRE.MatchString(f.Table) {
		return fmt.Errorf("feed.table %q is not a valid table name", f.Table)
	}
	d, err := f.RefreshInterval()
	if err != nil {
		return fmt.Errorf("feed.refresh: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("feed.refresh must not be negative")
	}
	return nil
}

// Enabled reports whether cycles should be recorded.
func (j JournalConfig) Enabled() bool {
	return j.Type != "" && j.Type != "none"
}

func (j JournalConfig) Validate() error {
	switch j.Type {
	case "", "none":
		return nil
	case "csv", "sqlite":
		if j.Path == "" {
			return fmt.Errorf("journal.path required for %s type", j.Type)
		}
		return nil
	}
	return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.applyDefaults()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyDefaults fills settings a file may leave out. Limits, targets, the
// cost basis and the block size have no default and must be set.
func (c *Config) applyDefaults() {
	th := &c.Thresholds
	if th.TargetBuyUSD == 0 && th.LegacyTargetSellUSD > 0 {
		th.TargetBuyUSD = th.LegacyTargetSellUSD
	}
	th.LegacyTargetSellUSD = 0
	if th.VolatilityThreshold == 0 {
		th.VolatilityThreshold = DefaultVolatilityThreshold
	}
	if th.VolatilityWindow == 0 {
		th.VolatilityWindow = indicators.DefaultVolatilityWindow
	}
	if th.BucketWidth == "" {
		th.BucketWidth = DefaultBucketWidth
	}
	if c.Feed.Type == "" {
		c.Feed.Type = "csv"
	}
	if c.Feed.Type == "sqlite" && c.Feed.Table == "" {
		c.Feed.Table = DefaultTable
	}
	if c.Feed.Refresh == "" {
		c.Feed.Refresh = DefaultRefresh
	}
	if c.Journal.Type == "" {
		c.Journal.Type = "none"
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	// Determine format by extension
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

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if err := c.Feed.Validate(); err != nil {
		return err
	}
	if err := c.Journal.Validate(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Thresholds: Thresholds{
			MXNExposureLimit:    50000,
			USDExposureLimit:    150000,
			TargetSellMXN:       5000,
			TargetBuyUSD:        100000,
			CostBasis:           20.00,
			BlockSize:           1000,
			VolatilityThreshold: DefaultVolatilityThreshold,
			VolatilityWindow:    indicators.DefaultVolatilityWindow,
			BucketWidth:         DefaultBucketWidth,
		},
		Feed: FeedConfig{
			Type:    "csv",
			Path:    "./bitso_trades.csv",
			Refresh: DefaultRefresh,
		},
		Journal: JournalConfig{
			Type: "none",
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}
