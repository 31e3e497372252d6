package parser

import "context"

// LineSource provides a forward-only iterator over raw lines.
// Implementations must be safe for sequential access (not concurrent).
// A source is not resumable; to read again, create a new one.
type LineSource interface {
	// Next returns the next line.
	// Returns io.EOF when no more lines are available.
	Next(ctx context.Context) (*Line, error)

	// Close releases any resources held by the source.
	Close() error
}
