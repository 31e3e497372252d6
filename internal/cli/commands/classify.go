package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/confparse/pkg/config"
	"github.com/ccollicutt/confparse/pkg/dispatcher"
	"github.com/ccollicutt/confparse/pkg/logging"
	"github.com/ccollicutt/confparse/pkg/output"
	"github.com/ccollicutt/confparse/pkg/parser"
	"github.com/ccollicutt/confparse/pkg/pipeline"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ClassifyOptions holds command-line options for the classify command.
type ClassifyOptions struct {
	ConfigFile string
	Output     string
	Style      string
	Verbose    bool
	Quiet      bool

	// Logging options
	LogLevel  string
	LogFormat string
	LogFile   string

	// Handler table options
	Strict  bool
	Disable []string
}

// NewClassifyCommand creates the classify command.
func NewClassifyCommand() *cobra.Command {
	opts := &ClassifyOptions{}

	cmd := &cobra.Command{
		Use:   "classify [input...]",
		Short: "Classify every line of a configuration file",
		Long: `Classify each line of one or more configuration files and dispatch it to
the handler for its label.

Labels, in match priority order:
  interface     line starts with "interface "
  emptyline     whitespace only
  continuation  indented line with content
  comment       line starts with "!"
  other         anything else

Inputs may be file names, glob patterns, or "-" for stdin. Without
arguments the inputs from the configuration are used (default
play_firewall_config.txt).

Exit codes:
  0 - Every line reached a handler
  1 - Some lines had no handler for their label
  2 - Configuration or runtime error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Configuration file (YAML or .toml)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json|markdown)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "Markdown style (dark|light|ascii|notty); default picks from the terminal")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show the label of every line")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Diagnostic level (trace|debug|info|warn|error)")
	cmd.Flags().StringVar(&opts.LogFormat, "log-format", "", "Diagnostic format (text|json)")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Write diagnostics to this file instead of stderr")

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail unless every label has a handler")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Leave label(s) out of the handler table (can be repeated)")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string, opts *ClassifyOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, opts.ConfigFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := applyFlags(cmd, cfg, args, opts); err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.Log.ParsedLevel(),
		Format: logging.Format(cfg.Log.Format),
		File:   cfg.Log.File,
	}, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer closeLog()

	table, err := dispatcher.DefaultTable(logger, dispatcher.WithoutLabels(cfg.Handlers.DisabledLabels()...))
	if err != nil {
		return fmt.Errorf("building handler table: %w", err)
	}

	p, err := pipeline.New(table,
		pipeline.WithLogger(logger),
		pipeline.WithStrict(cfg.Handlers.Strict),
		pipeline.WithRecordLines(opts.Verbose),
	)
	if err != nil {
		return fmt.Errorf("creating pipeline: %w", err)
	}

	inputs, err := parser.ExpandInputs(cfg.InputNames())
	if err != nil {
		return fmt.Errorf("expanding inputs: %w", err)
	}

	// One pipeline run per input, one after another
	results := make([]*pipeline.Result, 0, len(inputs))
	for _, name := range inputs {
		result, err := classifyInput(ctx, p, name, cmd.InOrStdin(), logger)
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	report := output.NewReport(results, opts.ConfigFile, table.Missing())

	formatter, err := createFormatter(cfg.Output, opts)
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if report.HasUnhandled() {
		ExitCode = 1
	}

	return nil
}

func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		return config.LoadDefault(ctx)
	}
	return config.Load(ctx, path)
}

// applyFlags layers explicitly set flags and positional inputs over the
// loaded configuration, then validates the result again.
func applyFlags(cmd *cobra.Command, cfg *config.Config, args []string, opts *ClassifyOptions) error {
	flags := cmd.Flags()

	if len(args) > 0 {
		cfg.Inputs = args
	}
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = opts.LogFormat
	}
	if flags.Changed("log-file") {
		cfg.Log.File = opts.LogFile
	}
	if flags.Changed("strict") {
		cfg.Handlers.Strict = opts.Strict
	}
	if flags.Changed("disable") {
		cfg.Handlers.Disabled = opts.Disable
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

func classifyInput(ctx context.Context, p *pipeline.Pipeline, name string, stdin io.Reader, logger *slog.Logger) (*pipeline.Result, error) {
	var src parser.LineSource
	if name == parser.StdinName {
		name = "stdin"
		src = parser.NewReaderSource(name, stdin)
	} else {
		src = parser.NewFileSource(name)
	}
	defer src.Close()

	result, err := p.Run(ctx, name, src)
	if err != nil {
		logger.ErrorContext(ctx, "classification failed", "input", name, "err", err)
		return nil, fmt.Errorf("classifying %s: %w", name, err)
	}
	return result, nil
}

func createFormatter(format string, opts *ClassifyOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	}

	switch format {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	case "markdown":
		return output.NewMarkdownFormatter(formatOpts, opts.Style), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text, json or markdown)", format)
	}
}
