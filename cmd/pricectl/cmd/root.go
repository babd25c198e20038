// Package cmd provides the pricectl commands.
package cmd

import (
	"github.com/guttosm/print-pricing-service/internal/logger"
	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pricectl",
	Short: "Operate the print pricing engine from the command line",
	Long: `pricectl runs the print pricing engine outside the HTTP service.

Examples:
  pricectl quote --file postcards.json
  pricectl seed --file catalog.yaml --mongo-uri mongodb://localhost:27017
  pricectl keys`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logger.Init(level, true)
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newQuoteCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newKeysCmd())
}
