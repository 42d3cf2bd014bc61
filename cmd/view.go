package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/robmoss/asciinema-scripted/internal/cast"
	"github.com/robmoss/asciinema-scripted/internal/tui"
)

var plainOutput bool

var viewCmd = &cobra.Command{
	Use:   "view <cast-file>",
	Short: "Inspect a cast file's header, markers and events",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		c, err := cast.Load(path)
		if err != nil {
			return err
		}
		if plainOutput {
			printCast(c)
			return nil
		}
		return tui.Run(c, path)
	},
}

// printCast writes a plain-text summary to stdout.
func printCast(c *cast.AsciiCast) {
	h := c.Header
	fmt.Println("## Header")
	fmt.Printf("  Version:   %d\n", h.Version)
	fmt.Printf("  Geometry:  %dx%d\n", h.Width, h.Height)
	if h.Title != "" {
		fmt.Printf("  Title:     %s\n", h.Title)
	}
	if h.Command != "" {
		fmt.Printf("  Command:   %s\n", h.Command)
	}
	if h.Duration != nil {
		fmt.Printf("  Duration:  %ss\n", strconv.FormatFloat(*h.Duration, 'f', -1, 64))
	}
	fmt.Println()

	var markers []cast.Event
	counts := map[cast.EventKind]int{}
	for _, ev := range c.Events {
		counts[ev.Kind]++
		if ev.Kind == cast.Marker {
			markers = append(markers, ev)
		}
	}

	fmt.Println("## Events")
	fmt.Printf("  Output: %d  Input: %d  Markers: %d  Resizes: %d\n",
		counts[cast.Output], counts[cast.Input], counts[cast.Marker], counts[cast.Resize])
	fmt.Println()

	fmt.Println("## Markers")
	if len(markers) == 0 {
		fmt.Println("  (none)")
	} else {
		for i, ev := range markers {
			fmt.Printf("  %d. [%ss] %s\n", i+1,
				strconv.FormatFloat(ev.Time, 'f', -1, 64), ev.Data)
		}
	}
}

func init() {
	viewCmd.Flags().BoolVar(&plainOutput, "plain", false, "Print a plain summary instead of the TUI")
	rootCmd.AddCommand(viewCmd)
}
