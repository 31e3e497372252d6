// Package plugins provides exec-based extension commands for confparse.
// An extension is a separate binary named confparse-<command> that is run
// when confparse is invoked with a command it does not know, in the manner
// of git and kubectl.
package plugins

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Prefix is prepended to a command name to form the plugin binary name.
const Prefix = "confparse-"

// EnvPluginDir names an extra directory searched before all others.
const EnvPluginDir = "CONFPARSE_PLUGIN_DIR"

// KnownPlugins lists commands that are commonly provided by plugins, with a
// short description shown when the binary is missing.
var KnownPlugins = map[string]string{
	"interfaces": "Groups interface headers with their continuation lines.",
	"lint":       "Flags comment and other lines inside interface blocks.",
}

// ErrPluginNotFound is returned when no plugin binary can be located.
var ErrPluginNotFound = errors.New("plugin not found")

// SearchDirs returns the directories searched for plugins, in order:
//  1. $CONFPARSE_PLUGIN_DIR, if set
//  2. Same directory as the confparse binary
//  3. ~/.confparse/plugins/
//
// PATH is searched after these.
func SearchDirs() []string {
	var dirs []string
	if dir := os.Getenv(EnvPluginDir); dir != "" {
		dirs = append(dirs, dir)
	}
	if execPath, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(execPath))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(homeDir, ".confparse", "plugins"))
	}
	return dirs
}

// FindPlugin returns the full path of the confparse-<command> binary.
func FindPlugin(command string) (string, error) {
	if command == "" || strings.ContainsRune(command, filepath.Separator) {
		return "", ErrPluginNotFound
	}
	pluginName := Prefix + command

	for _, dir := range SearchDirs() {
		candidate := filepath.Join(dir, pluginName)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath(pluginName); err == nil {
		return path, nil
	}

	return "", ErrPluginNotFound
}

// Streams are the standard streams handed to a plugin process.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// OSStreams returns the process's own standard streams.
func OSStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Execute runs a plugin with args and returns its exit code. The plugin is
// killed if ctx is cancelled.
func Execute(ctx context.Context, pluginPath string, args []string, streams Streams) int {
	cmd := exec.CommandContext(ctx, pluginPath, args...) // #nosec G204 -- plugin path comes from FindPlugin
	cmd.Stdin = streams.In
	cmd.Stdout = streams.Out
	cmd.Stderr = streams.Err

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(streams.Err, "Error executing plugin: %v\n", err)
		return 2
	}

	return 0
}

// FormatNotFoundError returns the message shown for an unknown command.
func FormatNotFoundError(command string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "unknown command %q for \"confparse\"\n", command)

	if info, ok := KnownPlugins[command]; ok {
		fmt.Fprintf(&sb, "\n%q is available as a plugin.\n", command)
		sb.WriteString(info)
		sb.WriteString("\n\nInstall the plugin binary as one of:\n")
	} else {
		sb.WriteString("\nIf this is a plugin, install the binary as one of:\n")
	}

	fmt.Fprintf(&sb, "  - $%s/%s%s\n", EnvPluginDir, Prefix, command)
	fmt.Fprintf(&sb, "  - %s%s in the same directory as confparse\n", Prefix, command)
	fmt.Fprintf(&sb, "  - ~/.confparse/plugins/%s%s\n", Prefix, command)
	fmt.Fprintf(&sb, "  - %s%s anywhere in your PATH\n", Prefix, command)

	sb.WriteString("\nRun 'confparse --help' for usage.")

	return sb.String()
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode()&0111 != 0
}
