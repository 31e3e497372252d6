// Package output provides formatting and output generation for
// classification reports.
package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/confparse/pkg/classifier"
	"github.com/ccollicutt/confparse/pkg/pipeline"
)

// Report is the complete classification output.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary

	// Files holds per-input results in processing order.
	Files []FileReport

	// Metadata provides context about the run.
	Metadata Metadata
}

// Summary provides aggregate statistics.
type Summary struct {
	// FilesProcessed is the number of inputs read.
	FilesProcessed int

	// LinesProcessed is the total number of lines classified.
	LinesProcessed int

	// Counts is the number of lines per label across all inputs.
	Counts map[classifier.Label]int

	// TotalUnhandled is the number of lines that had no handler.
	TotalUnhandled int
}

// FileReport is the result for one input.
type FileReport struct {
	Source    string
	Lines     int
	Counts    map[classifier.Label]int
	Unhandled map[classifier.Label]int `json:",omitempty"`
	Records   []pipeline.Record        `json:",omitempty"`
}

// Metadata provides context about the run.
type Metadata struct {
	// RunID identifies this run in logs and downstream tooling.
	RunID string

	// ConfigFile is the path to the configuration file used, if any.
	ConfigFile string

	// Sources lists the inputs that were read.
	Sources []string

	// MissingHandlers lists labels the handler table did not cover.
	MissingHandlers []classifier.Label `json:",omitempty"`

	// AnalyzedAt is when the run completed.
	AnalyzedAt time.Time

	// Duration is how long the run took across all inputs.
	Duration time.Duration
}

// NewReport creates a Report from pipeline results.
func NewReport(results []*pipeline.Result, configFile string, missing []classifier.Label) *Report {
	report := &Report{
		Files: make([]FileReport, 0, len(results)),
		Summary: Summary{
			Counts: make(map[classifier.Label]int),
		},
		Metadata: Metadata{
			RunID:           uuid.New().String(),
			ConfigFile:      configFile,
			MissingHandlers: missing,
		},
	}

	var start, end time.Time
	for _, r := range results {
		report.Files = append(report.Files, FileReport{
			Source:    r.Source,
			Lines:     r.LinesProcessed,
			Counts:    r.Counts,
			Unhandled: r.Unhandled,
			Records:   r.Records,
		})
		report.Metadata.Sources = append(report.Metadata.Sources, r.Source)

		report.Summary.FilesProcessed++
		report.Summary.LinesProcessed += r.LinesProcessed
		report.Summary.TotalUnhandled += r.TotalUnhandled()
		for l, n := range r.Counts {
			report.Summary.Counts[l] += n
		}

		if start.IsZero() || r.StartTime.Before(start) {
			start = r.StartTime
		}
		if r.EndTime.After(end) {
			end = r.EndTime
		}
	}

	report.Metadata.AnalyzedAt = end
	report.Metadata.Duration = end.Sub(start)

	return report
}

// HasUnhandled returns true if any line missed its handler.
func (r *Report) HasUnhandled() bool {
	return r.Summary.TotalUnhandled > 0
}
