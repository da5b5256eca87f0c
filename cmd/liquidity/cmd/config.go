package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/liquidity/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage monitor configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  liquidity config init -o liquidity.yaml
  liquidity config validate -f liquidity.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with default thresholds.

Example:
  liquidity config init -o liquidity.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Check if a configuration file is valid and can be loaded.

Example:
  liquidity config validate -f liquidity.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "liquidity.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(out, "\nEdit the thresholds and run with:")
	fmt.Fprintf(out, "  liquidity eval -c %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	th := cfg.Thresholds
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(out, "  Limits: %.2f MXN / %.2f USD\n", th.MXNExposureLimit, th.USDExposureLimit)
	fmt.Fprintf(out, "  Targets: sell %.2f MXN, buy %.2f USD\n", th.TargetSellMXN, th.TargetBuyUSD)
	fmt.Fprintf(out, "  Cost basis: %.4f (block %.2f)\n", th.CostBasis, th.BlockSize)
	fmt.Fprintf(out, "  Volatility: STDDEV(%d) > %.4f\n", th.VolatilityWindow, th.VolatilityThreshold)
	fmt.Fprintf(out, "  Feed: %s %s (refresh %s)\n", cfg.Feed.Type, cfg.Feed.Path, cfg.Feed.Refresh)
	return nil
}
