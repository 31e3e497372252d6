package dispatcher

import (
	"context"
	"log/slog"

	"github.com/ccollicutt/confparse/pkg/classifier"
	"github.com/ccollicutt/confparse/pkg/logging"
	"github.com/ccollicutt/confparse/pkg/parser"
)

// Dispatcher invokes the handler registered for a classification's label.
type Dispatcher struct {
	table  *Table
	logger *slog.Logger
}

// New creates a dispatcher over table. A nil logger discards diagnostics.
func New(table *Table, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		table:  table,
		logger: logging.OrDiscard(logger),
	}
}

// Table returns the handler table.
func (d *Dispatcher) Table() *Table {
	return d.table
}

// Dispatch runs the handler for c.Label exactly once with the unmodified
// line. If the table has no handler for the label, the anomaly is logged
// and an *UnknownLabelError is returned; callers are expected to carry on
// with the next line.
func (d *Dispatcher) Dispatch(ctx context.Context, c classifier.Classification, line parser.Line) error {
	fn, ok := d.table.Lookup(c.Label)
	if !ok {
		d.logger.WarnContext(ctx, "unknown label encountered",
			"label", c.Label.String(),
			"input", line.Source,
			"line", line.LineNum,
		)
		return &UnknownLabelError{Label: c.Label}
	}

	d.logger.Log(ctx, logging.LevelTrace, "handler about to run",
		"label", c.Label.String(),
		"line", line.LineNum,
	)
	fn(ctx, line)
	return nil
}
