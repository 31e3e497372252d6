// Package pipeline runs the one-pass pump, classify, dispatch loop over a
// line source.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ccollicutt/confparse/pkg/classifier"
	"github.com/ccollicutt/confparse/pkg/dispatcher"
	"github.com/ccollicutt/confparse/pkg/logging"
	"github.com/ccollicutt/confparse/pkg/parser"
)

// Pipeline classifies each line from a source and dispatches it.
// A Pipeline holds only read-only state, so one value may run any number
// of sources, one after another or side by side.
type Pipeline struct {
	classifier *classifier.Classifier
	dispatcher *dispatcher.Dispatcher
	logger     *slog.Logger

	// Options
	strict      bool
	recordLines bool
}

// Option configures pipeline behavior.
type Option func(*Pipeline)

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithStrict makes New fail unless the table covers every label.
func WithStrict(strict bool) Option {
	return func(p *Pipeline) {
		p.strict = strict
	}
}

// WithRecordLines keeps a Record per line in the Result.
func WithRecordLines(record bool) Option {
	return func(p *Pipeline) {
		p.recordLines = record
	}
}

// New creates a pipeline that dispatches through table.
func New(table *dispatcher.Table, opts ...Option) (*Pipeline, error) {
	if table == nil {
		return nil, errors.New("handler table is required")
	}

	p := &Pipeline{
		classifier: classifier.New(),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.logger = logging.OrDiscard(p.logger)

	if p.strict {
		if err := table.CheckCoverage(); err != nil {
			return nil, err
		}
	}

	p.dispatcher = dispatcher.New(table, p.logger)
	return p, nil
}

// Run pumps every line from source, classifies it, and dispatches it.
// Lines whose label has no handler are counted and skipped. Errors from
// the source end the run.
func (p *Pipeline) Run(ctx context.Context, name string, source parser.LineSource) (*Result, error) {
	result := &Result{
		Source:    name,
		Counts:    make(map[classifier.Label]int),
		Unhandled: make(map[classifier.Label]int),
		StartTime: time.Now(),
	}

	p.logger.InfoContext(ctx, "Start parsing", "input", name)

	for {
		line, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}

		p.logger.Log(ctx, logging.LevelTrace, "line received",
			"line", line.LineNum,
			"text", line.Raw,
		)

		c := p.classifier.Classify(line.Raw)
		p.logger.Log(ctx, logging.LevelTrace, "classification result",
			"line", line.LineNum,
			"label", c.Label.String(),
		)

		result.LinesProcessed++
		result.Counts[c.Label]++

		handled := true
		if err := p.dispatcher.Dispatch(ctx, c, *line); err != nil {
			if !errors.Is(err, dispatcher.ErrUnknownLabel) {
				return nil, fmt.Errorf("dispatching line %d: %w", line.LineNum, err)
			}
			handled = false
			result.Unhandled[c.Label]++
		}

		if p.recordLines {
			result.Records = append(result.Records, Record{
				LineNum: line.LineNum,
				Label:   c.Label,
				Handled: handled,
			})
		}
	}

	result.EndTime = time.Now()

	p.logger.InfoContext(ctx, "End of parsing",
		"input", name,
		"lines", result.LinesProcessed,
		"unhandled", result.TotalUnhandled(),
		"duration", result.Duration(),
	)

	return result, nil
}
