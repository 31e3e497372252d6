package dispatcher

import (
	"context"
	"log/slog"

	"github.com/ccollicutt/confparse/pkg/classifier"
	"github.com/ccollicutt/confparse/pkg/logging"
	"github.com/ccollicutt/confparse/pkg/parser"
)

// TraceHandlers returns the stock handler set: one handler per label that
// only records a trace event. Real consumers replace these with handlers
// that build interface blocks, collect comments, and so on.
func TraceHandlers(logger *slog.Logger) map[classifier.Label]HandlerFunc {
	logger = logging.OrDiscard(logger)

	handlers := make(map[classifier.Label]HandlerFunc, len(classifier.Labels()))
	for _, label := range classifier.Labels() {
		handlers[label] = traceHandler(logger, label)
	}
	return handlers
}

func traceHandler(logger *slog.Logger, label classifier.Label) HandlerFunc {
	name := label.String() + " handler"
	return func(ctx context.Context, line parser.Line) {
		logger.Log(ctx, logging.LevelTrace, "reached "+name,
			"input", line.Source,
			"line", line.LineNum,
			"text", line.Raw,
		)
	}
}

// DefaultTable builds a table from TraceHandlers.
func DefaultTable(logger *slog.Logger, opts ...TableOption) (*Table, error) {
	return NewTable(TraceHandlers(logger), opts...)
}
