package cmd

import (
	"path/filepath"
	"strings"

	"github.com/agentic-research/themec/internal/gen"
	"github.com/spf13/cobra"
)

var (
	themeOutputDir string
	themeTimestamp bool
)

var themeCmd = &cobra.Command{
	Use:   "theme [input]",
	Short: "Generate a 'c2theme' from a style sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flat, err := parseTheme(args[0], newLogger())
		if err != nil {
			return err
		}

		stem := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		if stem == "" {
			stem = "ChatterinoTheme"
		}
		base := filepath.Join(themeOutputDir, stem)

		if err := writeGenerated(base+".c2theme", func(p *gen.Printer) error {
			return gen.WriteTheme(p, flat)
		}); err != nil {
			return err
		}

		if themeTimestamp {
			return writeTimestamp(base + ".timestamp")
		}
		return nil
	},
}

func init() {
	themeCmd.Flags().StringVarP(&themeOutputDir, "output-dir", "o", ".",
		"Output directory for all generated files")
	themeCmd.Flags().BoolVarP(&themeTimestamp, "timestamp", "t", false,
		"Whether to generate an additional .timestamp file")
	rootCmd.AddCommand(themeCmd)
}
