package cmd

import (
	"github.com/spf13/cobra"

	"github.com/robmoss/asciinema-scripted/internal/script"
)

var (
	flagConvertFrom string
	flagConvertTo   string
)

var convertCmd = &cobra.Command{
	Use:   "convert <in-script> <out-script>",
	Short: "Convert a script file between TOML, JSON and YAML",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return convertScript(args[0], args[1], flagConvertFrom, flagConvertTo)
	},
}

func convertScript(in, out, from, to string) error {
	s, err := loadScript(in, from)
	if err != nil {
		return err
	}
	if to == "" {
		return s.Save(out)
	}
	format, err := script.ParseFormat(to)
	if err != nil {
		return err
	}
	return s.SaveFormat(out, format)
}

func init() {
	convertCmd.Flags().StringVar(&flagConvertFrom, "from", "", "Input format: toml, json or yaml (default: by extension)")
	convertCmd.Flags().StringVar(&flagConvertTo, "to", "", "Output format: toml, json or yaml (default: by extension)")
	rootCmd.AddCommand(convertCmd)
}
