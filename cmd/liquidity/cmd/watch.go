package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/liquidity/config"
	"github.com/rustyeddy/liquidity/feed"
	"github.com/rustyeddy/liquidity/journal"
	"github.com/rustyeddy/liquidity/monitor"
	"github.com/rustyeddy/liquidity/pkg/id"
	"github.com/rustyeddy/liquidity/report"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-evaluate the fill log on an interval",
	Long: `Evaluate the fill log every --every interval until interrupted. The log
is re-read at most once per feed.refresh; each cycle logs the suggestion and
any alerts under a cycle ID and is appended to the journal when one is
configured.

Examples:
  liquidity watch -c liquidity.yaml
  liquidity watch -c liquidity.yaml --every 30s --report`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var (
	watchEvery  time.Duration
	watchReport bool
	watchCount  int
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchEvery, "every", 0, "evaluation interval (default feed.refresh)")
	watchCmd.Flags().BoolVar(&watchReport, "report", false, "print the full report every cycle")
	watchCmd.Flags().IntVar(&watchCount, "count", 0, "stop after this many cycles (0 runs until interrupted)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	refresh, err := cfg.Feed.RefreshInterval()
	if err != nil {
		return err
	}
	every := watchEvery
	if every <= 0 {
		every = refresh
	}
	if every <= 0 {
		return fmt.Errorf("watch interval must be positive, got %s", every)
	}

	src, err := feed.New(cfg.Feed)
	if err != nil {
		return err
	}
	cache := feed.NewCached(src, refresh)

	jrnl, err := journal.Open(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer jrnl.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("path", cfg.Feed.Path).
		Dur("every", every).
		Dur("refresh", refresh).
		Msg("watching trade log")

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for n := 1; ; n++ {
		if err := watchCycle(ctx, cmd, cache, jrnl, cfg); err != nil {
			// Keep watching; the bot may be mid-write.
			log.Error().Err(err).Msg("evaluation failed")
		}
		if watchCount > 0 && n >= watchCount {
			return nil
		}

		select {
		case <-ctx.Done():
			log.Info().Msg("stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func watchCycle(ctx context.Context, cmd *cobra.Command, cache *feed.Cached, jrnl journal.Journal, cfg *config.Config) error {
	now := time.Now()
	cycle := id.At(now)

	trades, err := cache.Trades(ctx)
	if err != nil {
		return fmt.Errorf("load trades: %w", err)
	}
	res, err := monitor.Evaluate(trades, cfg.Thresholds)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	for _, a := range res.Risk.Alerts {
		log.Warn().
			Str("cycle", cycle).
			Str("code", a.Code).
			Float64("value", a.Value).
			Float64("threshold", a.Threshold).
			Msg(a.Msg)
	}

	log.Info().
		Str("cycle", cycle).
		Int("trades", res.Summary.Trades).
		Float64("sell_progress", res.Risk.SellProgress).
		Float64("buy_progress", res.Risk.BuyProgress).
		Float64("volatility", res.Volatility.Latest).
		Float64("net_pnl", res.PnL.NetPnL).
		Str("action", string(res.Suggestion.Action)).
		Float64("size", res.Suggestion.Size).
		Msg(res.Suggestion.Reason)

	if err := jrnl.RecordCycle(journal.FromResult(cycle, now, res)); err != nil {
		return fmt.Errorf("journal: %w", err)
	}

	if watchReport {
		fmt.Fprint(cmd.OutOrStdout(), report.Org(cycle, now, res))
	}
	return nil
}
