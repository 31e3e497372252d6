// Package logging builds the slog loggers used for confparse's diagnostic
// trace.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace sits below debug and carries the per-line events.
const LevelTrace = slog.Level(-8)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options controls logger construction.
type Options struct {
	// Level is the minimum level emitted.
	Level slog.Level

	// Format is text or json. Empty means text.
	Format Format

	// File, if set, receives the log instead of the fallback writer.
	// The file is truncated on open.
	File string

	// AddSource records the calling function, file and line. It is always
	// on at LevelTrace.
	AddSource bool
}

// ParseLevel converts a level name into a slog level. Accepts trace,
// debug, info, warn and error, case-insensitively.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (must be trace, debug, info, warn, or error)", name)
	}
}

// LevelName renders a level, naming LevelTrace as TRACE.
func LevelName(l slog.Level) string {
	if l == LevelTrace {
		return "TRACE"
	}
	return l.String()
}

// New creates a logger per opts. Output goes to opts.File when set,
// otherwise to fallback. The returned close function releases the log file
// and is always safe to call.
func New(opts Options, fallback io.Writer) (*slog.Logger, func() error, error) {
	w := fallback
	closeFn := func() error { return nil }

	if opts.File != "" {
		f, err := os.Create(opts.File) // #nosec G304 -- user-provided log path is expected
		if err != nil {
			return nil, closeFn, fmt.Errorf("opening log file %s: %w", opts.File, err)
		}
		w = f
		closeFn = f.Close
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     opts.Level,
		AddSource: opts.AddSource || opts.Level <= LevelTrace,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(LevelName(lvl))
				}
			}
			return a
		},
	}

	var h slog.Handler
	switch opts.Format {
	case FormatJSON:
		h = slog.NewJSONHandler(w, handlerOpts)
	case FormatText, "":
		h = slog.NewTextHandler(w, handlerOpts)
	default:
		_ = closeFn()
		return nil, func() error { return nil }, fmt.Errorf("unknown log format %q (must be text or json)", opts.Format)
	}

	return slog.New(h), closeFn, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
