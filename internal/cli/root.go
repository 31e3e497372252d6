// Package cli provides the command-line interface for confparse.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/confparse/internal/cli/commands"
	"github.com/ccollicutt/confparse/internal/cli/plugins"
)

// Execute runs confparse with the process arguments and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, os.Args[1:], plugins.OSStreams())
}

// Run executes confparse with args and returns the exit code.
func Run(ctx context.Context, args []string, streams plugins.Streams) int {
	commands.ExitCode = 0

	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.Err)

	// An unknown first word may name a plugin
	potentialCommand := ""
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' && !isBuiltinCommand(rootCmd, args[0]) {
		potentialCommand = args[0]
		if pluginPath, err := plugins.FindPlugin(potentialCommand); err == nil {
			return plugins.Execute(ctx, pluginPath, args[1:], streams)
		}
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if potentialCommand != "" {
			_, _ = fmt.Fprintln(streams.Err, plugins.FormatNotFoundError(potentialCommand))
			return 2
		}
		if errors.Is(err, context.Canceled) {
			_, _ = fmt.Fprintln(streams.Err, "Interrupted")
			return 2
		}
		// SilenceErrors keeps cobra from printing this itself
		_, _ = fmt.Fprintf(streams.Err, "Error: %v\n", err)
		return 2
	}
	return commands.ExitCode
}

func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	return name == "help" || name == "completion"
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "confparse",
		Short: "Classify the lines of network device configuration files",
		Long: `confparse reads device configuration files line by line, gives each line
exactly one label, and hands it to the handler registered for that label.

Labels:
  interface, emptyline, continuation, comment, other

Diagnostics go to stderr (or --log-file) through a leveled logger; use
--log-level trace to follow every line through classification and dispatch.

PLUGINS:
  Unknown commands are looked up as standalone binaries named
  confparse-<command>, searched in:
    1. $CONFPARSE_PLUGIN_DIR
    2. Same directory as the confparse binary
    3. ~/.confparse/plugins/
    4. Anywhere in PATH`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewClassifyCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewLabelsCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
