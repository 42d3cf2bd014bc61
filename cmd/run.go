package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/robmoss/asciinema-scripted/internal/cast"
	"github.com/robmoss/asciinema-scripted/internal/driver"
	"github.com/robmoss/asciinema-scripted/internal/report"
	"github.com/robmoss/asciinema-scripted/internal/script"
)

var (
	flagFormat       string
	flagDryRun       bool
	flagPrintMarkers bool
	flagDataID       string
)

var runCmd = &cobra.Command{
	Use:   "run <script-file>",
	Short: "Record a scripted session and post-process the cast",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scriptPath, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		s, err := loadScript(scriptPath, flagFormat)
		if err != nil {
			return err
		}
		// The output file is resolved relative to the script directory.
		outputPath := s.OutputFile
		if !filepath.IsAbs(outputPath) {
			outputPath = filepath.Join(filepath.Dir(scriptPath), s.OutputFile)
		}

		if !flagDryRun {
			if err := record(s, outputPath); err != nil {
				return err
			}
		}

		if flagPrintMarkers {
			c, err := cast.Load(outputPath)
			if err != nil {
				return err
			}
			return report.WriteMarkerList(os.Stdout, c, flagDataID)
		}
		return nil
	},
}

// record runs the driver, then merges the observed marker and comment
// events into the cast and applies the script's filter chain.
func record(s *script.Script, outputPath string) error {
	if s.WithComments {
		// Guarantee a CommentFilter stage so comments become
		// serializable output events.
		s = s.WithCommentsEnabled(s.CommentsAtTop)
	}
	filters, err := script.BuildFilters(s.Filters)
	if err != nil {
		return err
	}

	if !term.IsTerminal(os.Stdin.Fd()) && !flagQuiet {
		fmt.Fprintln(os.Stderr, "warning: stdin is not a terminal; recording anyway")
	}

	run := *s
	run.OutputFile = outputPath
	pending, err := driver.Run(&run, driver.Options{Quiet: flagQuiet})
	if err != nil {
		return err
	}

	c, err := cast.Load(outputPath)
	if err != nil {
		return err
	}
	c, err = c.InsertEvents(pending)
	if err != nil {
		return err
	}
	c = c.FilterEvents(filters)
	return c.Save(outputPath)
}

// loadScript reads a script file, honoring an explicit format over the
// file extension.
func loadScript(path, format string) (*script.Script, error) {
	if format == "" {
		return script.Load(path)
	}
	f, err := script.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return script.LoadFormat(path, f)
}

func init() {
	runCmd.Flags().StringVarP(&flagFormat, "format", "f", "", "Script format: toml, json or yaml (default: by extension)")
	runCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "d", false, "Load the script but don't record")
	runCmd.Flags().BoolVarP(&flagPrintMarkers, "print-markers", "m", false, "Print markers as a Markdown list afterwards")
	runCmd.Flags().StringVar(&flagDataID, "data-id", "", "HTML element ID for the video element in marker links")
	rootCmd.AddCommand(runCmd)
}
