package pipeline

import (
	"time"

	"github.com/ccollicutt/confparse/pkg/classifier"
)

// Result summarizes one run over one line source.
type Result struct {
	// Source is the name of the resource that was read.
	Source string

	// LinesProcessed is the number of lines pumped from the source.
	LinesProcessed int

	// Counts is the number of lines per label, handled or not.
	Counts map[classifier.Label]int

	// Unhandled is the number of lines per label that had no handler.
	Unhandled map[classifier.Label]int

	// Records lists every line's classification when line recording is on.
	Records []Record

	// StartTime is when the run began.
	StartTime time.Time

	// EndTime is when the run completed.
	EndTime time.Time
}

// Record is the classification of a single line.
type Record struct {
	LineNum int
	Label   classifier.Label
	Handled bool
}

// TotalUnhandled returns the number of lines no handler saw.
func (r *Result) TotalUnhandled() int {
	total := 0
	for _, n := range r.Unhandled {
		total += n
	}
	return total
}

// HasUnhandled reports whether any line hit the unknown-label path.
func (r *Result) HasUnhandled() bool {
	return r.TotalUnhandled() > 0
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}
