package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dcapal-cli",
	Short: "DCA-Pal web CLI tool",
	Long: `dcapal-cli inspects the DCA-Pal web front end.

Available commands:
  routes     Print the browser route table
  version    Print the version number

Use "dcapal-cli [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
