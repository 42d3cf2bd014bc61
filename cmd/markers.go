package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/robmoss/asciinema-scripted/internal/cast"
	"github.com/robmoss/asciinema-scripted/internal/report"
)

var flagMarkersDataID string

var markersCmd = &cobra.Command{
	Use:   "markers <cast-file>",
	Short: "Print a cast's markers as a numbered Markdown list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cast.Load(args[0])
		if err != nil {
			return err
		}
		return report.WriteMarkerList(os.Stdout, c, flagMarkersDataID)
	},
}

func init() {
	markersCmd.Flags().StringVar(&flagMarkersDataID, "data-id", "", "HTML element ID for the video element in marker links")
	rootCmd.AddCommand(markersCmd)
}
