package main

import (
	"github.com/spf13/cobra"
)

var presetsFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "impas",
		Short: "Break-even analysis from the command line",
		Long: `impas computes break-even units and revenue, profit metrics and a
price sensitivity table for a product scenario.

Examples:
  impas presets
  impas analyze --preset coffee-shop
  impas analyze --fixed 10000000 --variable 30000 --price 50000
  impas sensitivity --fixed 10000000 --variable 30000 --low 25 --high 75`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&presetsFile, "presets-file", "", "YAML presets file (default: built-in presets)")

	root.AddCommand(newAnalyzeCmd(), newSensitivityCmd(), newPresetsCmd())
	return root
}
