package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/agentic-research/themec/internal/diag"
	"github.com/agentic-research/themec/internal/theme"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "themec",
	Short:         "Themec: theme code generator for the chat client",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// parseTheme parses a style sheet, pretty-printing fatal parse errors
// against the source before reporting failure.
func parseTheme(path string, logger *zap.Logger) (*theme.FlatTheme, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read style sheet: %w", err)
	}

	parsed, err := theme.Parse(string(source), logger)
	if err != nil {
		var perr *theme.ParseError
		if errors.As(err, &perr) {
			diag.PrintError(os.Stderr, path, string(source), perr.Msg, perr.Line, perr.Column)
			return nil, fmt.Errorf("parsing %s failed", path)
		}
		return nil, err
	}

	flat, err := parsed.Flatten()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve values: %w", err)
	}
	return flat, nil
}

func writeTimestamp(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create timestamp: %w", err)
	}
	return f.Close()
}
