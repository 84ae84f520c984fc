package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentic-research/themec/internal/gen"
	"github.com/agentic-research/themec/internal/layout"
	"github.com/spf13/cobra"
)

var (
	codeLayoutPath string
	codeOutputDir  string
	codeTimestamp  bool
)

var codeCmd = &cobra.Command{
	Use:   "code [default-style]",
	Short: "Generate code to manage a theme",
	Long: "Generate GeneratedTheme.cpp and GeneratedTheme.hpp from a layout.yml " +
		"and the default style sheet loaded on reset().",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layoutSrc, err := os.ReadFile(codeLayoutPath)
		if err != nil {
			return fmt.Errorf("read layout: %w", err)
		}
		l, err := layout.Parse(layoutSrc)
		if err != nil {
			return err
		}

		flat, err := parseTheme(args[0], newLogger())
		if err != nil {
			return err
		}

		base := filepath.Join(codeOutputDir, "GeneratedTheme")

		if err := writeGenerated(base+".cpp", func(p *gen.Printer) error {
			return gen.WriteImpl(p, l, flat)
		}); err != nil {
			return err
		}
		if err := writeGenerated(base+".hpp", func(p *gen.Printer) error {
			return gen.WriteHeader(p, l)
		}); err != nil {
			return err
		}

		if codeTimestamp {
			return writeTimestamp(base + ".timestamp")
		}
		return nil
	},
}

func init() {
	codeCmd.Flags().StringVarP(&codeLayoutPath, "layout", "l", "layout.yml",
		"Path to a layout.yml file that contains the theme layout")
	codeCmd.Flags().StringVarP(&codeOutputDir, "output-dir", "o", ".",
		"Output directory for all generated files")
	codeCmd.Flags().BoolVarP(&codeTimestamp, "timestamp", "t", false,
		"Whether to generate an additional 'GeneratedTheme.timestamp' file")
	rootCmd.AddCommand(codeCmd)
}

// writeGenerated creates path and runs one generator against it.
func writeGenerated(path string, write func(*gen.Printer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := write(gen.NewPrinter(f)); err != nil {
		return fmt.Errorf("generate %s: %w", path, err)
	}
	return f.Close()
}
