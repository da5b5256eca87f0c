package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/liquidity/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded evaluation cycles",
	Long: `Print cycles recorded in a sqlite journal as an Org table, newest first.
With --since only cycles run within that window are shown, oldest first.

Examples:
  liquidity history -c liquidity.yaml
  liquidity history -c liquidity.yaml --since 24h
  liquidity history -c liquidity.yaml --id 01HQXYZABCDEFGH`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var (
	historyLimit int
	historySince time.Duration
	historyID    string
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of cycles to show (0 for all)")
	historyCmd.Flags().DurationVar(&historySince, "since", 0, "show cycles run within this window")
	historyCmd.Flags().StringVar(&historyID, "id", "", "show a single cycle")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Journal.Type != "sqlite" {
		return fmt.Errorf("history needs a sqlite journal, journal.type is %q", cfg.Journal.Type)
	}

	j, err := journal.NewSQLite(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	var cycles []journal.Cycle
	switch {
	case historyID != "":
		c, err := j.GetCycle(historyID)
		if err != nil {
			return err
		}
		cycles = []journal.Cycle{c}
	case historySince > 0:
		now := time.Now()
		cycles, err = j.ListCyclesBetween(now.Add(-historySince), now.Add(time.Second))
	default:
		cycles, err = j.Recent(historyLimit)
	}
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, journal.FormatCyclesOrg(cycles))
	if historyID != "" {
		for _, a := range cycles[0].Alerts {
			fmt.Fprintf(out, "- %s: %s\n", a.Code, a.Msg)
		}
	}
	return nil
}
