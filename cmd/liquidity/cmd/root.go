package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/liquidity/config"
	"github.com/rustyeddy/liquidity/feed"
	"github.com/rustyeddy/liquidity/fills"
	"github.com/rustyeddy/liquidity/journal"
)

var rootCmd = &cobra.Command{
	Use:   "liquidity",
	Short: "Monitor a liquidity bot's fill log",
	Long: `Liquidity reads the fill log of a currency-pair liquidity bot and reports
operational signals:

  - Cumulative exposure per side and progress against fulfillment targets
  - Exposure limit and target alerts
  - Short-term price volatility
  - Profit and loss against a configured cost basis
  - A SELL / HOLD / WAIT suggestion

It never places orders and never writes to the bot's log.`,
	SilenceUsage: true,
}

var (
	cfgFile    string
	sourcePath string
	logLevel   string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default settings when empty)")
	rootCmd.PersistentFlags().StringVarP(&sourcePath, "source", "s", "", "override feed.path from the config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level from the config")
}

// loadConfig reads the config file, applies flag overrides and configures
// logging.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.LoadFromFile(cfgFile); err != nil {
			return nil, err
		}
	}
	if sourcePath != "" {
		cfg.Feed.Path = sourcePath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := setupLogging(cfg.Log.Level); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	return nil
}

// loadTrades reads and normalizes the fill log once.
func loadTrades(ctx context.Context, cfg *config.Config) (fills.Log, error) {
	src, err := feed.New(cfg.Feed)
	if err != nil {
		return nil, err
	}
	rows, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	trades, st := fills.Normalize(rows)
	if st.Dropped() > 0 {
		log.Warn().
			Int("seen", st.Seen).
			Int("dropped", st.Dropped()).
			Str("path", cfg.Feed.Path).
			Msg("dropped malformed trade rows")
	}
	return trades, nil
}

// recordCycle appends one cycle to the configured journal.
func recordCycle(cfg *config.Config, c journal.Cycle) error {
	if !cfg.Journal.Enabled() {
		return nil
	}
	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if err := j.RecordCycle(c); err != nil {
		j.Close()
		return err
	}
	return j.Close()
}
