package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/confparse/pkg/classifier"
	"github.com/ccollicutt/confparse/pkg/config"
	"github.com/ccollicutt/confparse/pkg/dispatcher"
	"github.com/ccollicutt/confparse/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a confparse configuration file without classifying anything.

Checks:
  - YAML or TOML syntax
  - Log level and format
  - Output format
  - Handler label names and strict coverage
  - Input file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	table, err := dispatcher.DefaultTable(nil, dispatcher.WithoutLabels(cfg.Handlers.DisabledLabels()...))
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if cfg.Handlers.Strict {
		if err := table.CheckCoverage(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Inputs:     %s\n", strings.Join(cfg.InputNames(), ", "))
	fmt.Fprintf(out, "  Log:        %s (%s)\n", cfg.Log.Level, cfg.Log.Format)
	if cfg.Log.File != "" {
		fmt.Fprintf(out, "  Log file:   %s\n", cfg.Log.File)
	}
	fmt.Fprintf(out, "  Output:     %s\n", cfg.Output)

	fmt.Fprintf(out, "\nHandlers:\n")
	for _, l := range classifier.Labels() {
		status := "ok"
		if _, ok := table.Lookup(l); !ok {
			status = "disabled"
		}
		fmt.Fprintf(out, "  %-13s %s\n", l, status)
	}

	// Inputs are only checked for presence, never read
	files, err := parser.ExpandInputs(cfg.InputNames())
	if err != nil {
		fmt.Fprintf(out, "\nWarning: Error expanding input patterns: %v\n", err)
		return nil
	}

	fmt.Fprintf(out, "\nInputs matched: %d\n", len(files))
	for _, f := range files {
		if f != parser.StdinName && !fileExists(f) {
			fmt.Fprintf(out, "  - %s (warning: not found)\n", f)
			continue
		}
		fmt.Fprintf(out, "  - %s\n", f)
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
