// Package dispatcher routes classified lines to per-label handlers.
package dispatcher

import (
	"context"
	"fmt"

	"github.com/ccollicutt/confparse/pkg/classifier"
	"github.com/ccollicutt/confparse/pkg/parser"
)

// HandlerFunc processes one line of a given label. Handlers act through side
// effects only.
type HandlerFunc func(ctx context.Context, line parser.Line)

// Table maps labels to handlers. It is built once and never modified, so a
// single Table may back any number of dispatchers.
type Table struct {
	handlers map[classifier.Label]HandlerFunc
}

// TableOption configures table construction.
type TableOption func(map[classifier.Label]HandlerFunc)

// WithoutLabels leaves the given labels out of the table. Lines with those
// labels are then reported as unknown at dispatch time.
func WithoutLabels(labels ...classifier.Label) TableOption {
	return func(m map[classifier.Label]HandlerFunc) {
		for _, l := range labels {
			delete(m, l)
		}
	}
}

// NewTable copies handlers into a new Table. Keys must belong to the closed
// label set and handlers must be non-nil.
func NewTable(handlers map[classifier.Label]HandlerFunc, opts ...TableOption) (*Table, error) {
	m := make(map[classifier.Label]HandlerFunc, len(handlers))
	for label, fn := range handlers {
		if !label.Valid() {
			return nil, fmt.Errorf("handler registered for invalid label %v", label)
		}
		if fn == nil {
			return nil, fmt.Errorf("nil handler for label %s", label)
		}
		m[label] = fn
	}

	for _, opt := range opts {
		opt(m)
	}

	return &Table{handlers: m}, nil
}

// Lookup returns the handler for label.
func (t *Table) Lookup(label classifier.Label) (HandlerFunc, bool) {
	fn, ok := t.handlers[label]
	return fn, ok
}

// Labels returns the labels that have handlers, in priority order.
func (t *Table) Labels() []classifier.Label {
	var labels []classifier.Label
	for _, l := range classifier.Labels() {
		if _, ok := t.handlers[l]; ok {
			labels = append(labels, l)
		}
	}
	return labels
}

// Missing returns the labels without handlers, in priority order.
func (t *Table) Missing() []classifier.Label {
	var missing []classifier.Label
	for _, l := range classifier.Labels() {
		if _, ok := t.handlers[l]; !ok {
			missing = append(missing, l)
		}
	}
	return missing
}

// CheckCoverage returns a *CoverageError unless every label has a handler.
func (t *Table) CheckCoverage() error {
	if missing := t.Missing(); len(missing) > 0 {
		return &CoverageError{Missing: missing}
	}
	return nil
}
