// Package cmd implements the ascript command line interface.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var flagQuiet bool

var rootCmd = &cobra.Command{
	Use:   "ascript",
	Short: "Generate scripted asciinema recordings",
	Long: "ascript records terminal sessions from script files: it types the\n" +
		"scripted input into an asciinema recording with human-like pacing,\n" +
		"then merges markers and status-bar comments into the cast and applies\n" +
		"the script's filter chain.",
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}
