package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the liquidity CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "liquidity version %s\n", version)
		fmt.Fprintln(out, "A read-only monitor for liquidity bot fill logs")
		fmt.Fprintln(out, "https://github.com/rustyeddy/liquidity")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
