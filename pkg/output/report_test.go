package output

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/confparse/pkg/classifier"
	"github.com/ccollicutt/confparse/pkg/pipeline"
)

func createTestResults() []*pipeline.Result {
	baseTime := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	return []*pipeline.Result{
		{
			Source:         "core-sw1.cfg",
			LinesProcessed: 5,
			Counts: map[classifier.Label]int{
				classifier.LabelInterface:    1,
				classifier.LabelContinuation: 1,
				classifier.LabelComment:      1,
				classifier.LabelEmptyLine:    1,
				classifier.LabelOther:        1,
			},
			Unhandled: map[classifier.Label]int{classifier.LabelComment: 1},
			Records: []pipeline.Record{
				{LineNum: 1, Label: classifier.LabelInterface, Handled: true},
				{LineNum: 2, Label: classifier.LabelContinuation, Handled: true},
				{LineNum: 3, Label: classifier.LabelComment, Handled: false},
				{LineNum: 4, Label: classifier.LabelEmptyLine, Handled: true},
				{LineNum: 5, Label: classifier.LabelOther, Handled: true},
			},
			StartTime: baseTime,
			EndTime:   baseTime.Add(40 * time.Millisecond),
		},
		{
			Source:         "edge.cfg",
			LinesProcessed: 2,
			Counts: map[classifier.Label]int{
				classifier.LabelInterface: 1,
				classifier.LabelOther:     1,
			},
			Unhandled: map[classifier.Label]int{},
			StartTime: baseTime.Add(50 * time.Millisecond),
			EndTime:   baseTime.Add(100 * time.Millisecond),
		},
	}
}

func createTestReport() *Report {
	return NewReport(createTestResults(), "confparse.yaml", []classifier.Label{classifier.LabelComment})
}

func TestNewReport(t *testing.T) {
	report := createTestReport()

	if report.Summary.FilesProcessed != 2 {
		t.Errorf("FilesProcessed = %d, want 2", report.Summary.FilesProcessed)
	}
	if report.Summary.LinesProcessed != 7 {
		t.Errorf("LinesProcessed = %d, want 7", report.Summary.LinesProcessed)
	}
	if report.Summary.TotalUnhandled != 1 {
		t.Errorf("TotalUnhandled = %d, want 1", report.Summary.TotalUnhandled)
	}
	if report.Summary.Counts[classifier.LabelInterface] != 2 {
		t.Errorf("Counts[interface] = %d, want 2", report.Summary.Counts[classifier.LabelInterface])
	}
	if !report.HasUnhandled() {
		t.Error("HasUnhandled() = false, want true")
	}

	if len(report.Metadata.Sources) != 2 || report.Metadata.Sources[1] != "edge.cfg" {
		t.Errorf("Sources = %v", report.Metadata.Sources)
	}
	if report.Metadata.Duration != 100*time.Millisecond {
		t.Errorf("Duration = %v, want 100ms", report.Metadata.Duration)
	}
	if _, err := uuid.Parse(report.Metadata.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", report.Metadata.RunID, err)
	}
	if report.Metadata.ConfigFile != "confparse.yaml" {
		t.Errorf("ConfigFile = %q", report.Metadata.ConfigFile)
	}
}

func TestNewReport_Empty(t *testing.T) {
	report := NewReport(nil, "", nil)
	if report.Summary.FilesProcessed != 0 || report.HasUnhandled() {
		t.Errorf("empty report = %+v", report.Summary)
	}
	if report.Metadata.Duration != 0 {
		t.Errorf("Duration = %v, want 0", report.Metadata.Duration)
	}
}

func TestNewReport_UniqueRunIDs(t *testing.T) {
	a := NewReport(nil, "", nil)
	b := NewReport(nil, "", nil)
	if a.Metadata.RunID == b.Metadata.RunID {
		t.Error("two reports share a RunID")
	}
}
