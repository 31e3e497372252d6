package output

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ccollicutt/confparse/pkg/classifier"
)

// Theme defines the styles used for text output.
type Theme struct {
	Header  lipgloss.Style
	Source  lipgloss.Style
	Label   lipgloss.Style
	Count   lipgloss.Style
	Warning lipgloss.Style
	Summary lipgloss.Style
	Dim     lipgloss.Style
}

// DefaultTheme is the default color scheme.
var DefaultTheme = Theme{
	Header:  lipgloss.NewStyle().Bold(true),
	Source:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
	Count:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
	Warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	Summary: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82")),
	Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts  FormatOptions
	theme Theme
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts, theme: DefaultTheme}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "confparse: %d files, %d lines, %d unhandled\n",
		report.Summary.FilesProcessed,
		report.Summary.LinesProcessed,
		report.Summary.TotalUnhandled)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, f.theme.Header.Render("=== confparse Classification Report ==="))
	fmt.Fprintln(w)

	if len(report.Metadata.MissingHandlers) > 0 {
		fmt.Fprintf(w, "%s no handler for: %s\n\n",
			f.theme.Warning.Render("Warning:"),
			joinLabels(report.Metadata.MissingHandlers))
	}

	for i := range report.Files {
		f.formatFile(&report.Files[i], w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %s files, %s lines, %s unhandled\n",
		f.theme.Summary.Render(fmt.Sprintf("%d", report.Summary.FilesProcessed)),
		f.theme.Summary.Render(fmt.Sprintf("%d", report.Summary.LinesProcessed)),
		f.theme.Summary.Render(fmt.Sprintf("%d", report.Summary.TotalUnhandled)))

	if f.opts.Verbose {
		fmt.Fprintf(w, "Run: %s\n", f.theme.Dim.Render(report.Metadata.RunID))
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(time.Millisecond))
	}

	return nil
}

func (f *TextFormatter) formatFile(fr *FileReport, w io.Writer) {
	fmt.Fprintf(w, "[FILE] %s (%d lines)\n", f.theme.Source.Render(fr.Source), fr.Lines)

	for _, l := range classifier.Labels() {
		n := fr.Counts[l]
		if n == 0 && !f.opts.Verbose {
			continue
		}
		fmt.Fprintf(w, "  %s %s\n",
			f.theme.Label.Render(fmt.Sprintf("%-13s", l.String())),
			f.theme.Count.Render(fmt.Sprintf("%d", n)))
	}

	if total := sum(fr.Unhandled); total > 0 {
		var labels []classifier.Label
		for _, l := range classifier.Labels() {
			if fr.Unhandled[l] > 0 {
				labels = append(labels, l)
			}
		}
		fmt.Fprintf(w, "  %s %d line(s) with no handler (%s)\n",
			f.theme.Warning.Render("Unhandled:"), total, joinLabels(labels))
	}

	if f.opts.Verbose && len(fr.Records) > 0 {
		fmt.Fprintln(w, "  Lines:")
		for _, rec := range fr.Records {
			suffix := ""
			if !rec.Handled {
				suffix = " " + f.theme.Warning.Render("(unhandled)")
			}
			fmt.Fprintf(w, "    %s %s%s\n",
				f.theme.Dim.Render(fmt.Sprintf("%5d", rec.LineNum)),
				rec.Label,
				suffix)
		}
	}

	fmt.Fprintln(w)
}

func joinLabels(labels []classifier.Label) string {
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.String()
	}
	return strings.Join(names, ", ")
}

func sum(m map[classifier.Label]int) int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}
