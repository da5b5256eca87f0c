package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/liquidity/journal"
	"github.com/rustyeddy/liquidity/monitor"
	"github.com/rustyeddy/liquidity/pkg/id"
	"github.com/rustyeddy/liquidity/report"
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate the fill log once and print a report",
	Long: `Read the fill log, run one evaluation and print an Org-mode report with
exposure, progress, alerts, P&L, volatility and the trade suggestion.

Examples:
  liquidity eval -c liquidity.yaml
  liquidity eval -s ./bitso_trades.csv`,
	Args: cobra.NoArgs,
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	trades, err := loadTrades(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("load trades: %w", err)
	}
	if len(trades) == 0 {
		log.Info().Str("path", cfg.Feed.Path).Msg("no trades yet")
	}

	res, err := monitor.Evaluate(trades, cfg.Thresholds)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	now := time.Now()
	cycle := id.At(now)
	if err := recordCycle(cfg, journal.FromResult(cycle, now, res)); err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), report.Org(cycle, now, res))
	return nil
}
