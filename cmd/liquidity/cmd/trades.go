package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/liquidity/report"
)

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "List the most recent fills",
	Long: `Print the normalized fill log as an Org table, newest first. Malformed
rows are dropped and counted in the log output.

Examples:
  liquidity trades -c liquidity.yaml
  liquidity trades -n 50`,
	Args: cobra.NoArgs,
	RunE: runTrades,
}

var tradesLimit int

func init() {
	rootCmd.AddCommand(tradesCmd)

	tradesCmd.Flags().IntVarP(&tradesLimit, "limit", "n", 20, "number of trades to show (0 for all)")
}

func runTrades(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	trades, err := loadTrades(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("load trades: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), report.TradesOrg(trades, tradesLimit))
	return nil
}
