package dispatcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ccollicutt/confparse/pkg/classifier"
)

var (
	// ErrUnknownLabel is matched by errors returned from Dispatch when the
	// table has no handler for a label.
	ErrUnknownLabel = errors.New("no handler for label")

	// ErrIncompleteTable is matched by coverage errors from CheckCoverage.
	ErrIncompleteTable = errors.New("handler table does not cover every label")
)

// UnknownLabelError reports a classification whose label has no handler.
type UnknownLabelError struct {
	Label classifier.Label
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownLabel, e.Label)
}

func (e *UnknownLabelError) Unwrap() error {
	return ErrUnknownLabel
}

// CoverageError lists the labels a table is missing.
type CoverageError struct {
	Missing []classifier.Label
}

func (e *CoverageError) Error() string {
	names := make([]string, len(e.Missing))
	for i, l := range e.Missing {
		names[i] = l.String()
	}
	return fmt.Sprintf("%s: missing %s", ErrIncompleteTable, strings.Join(names, ", "))
}

func (e *CoverageError) Unwrap() error {
	return ErrIncompleteTable
}
