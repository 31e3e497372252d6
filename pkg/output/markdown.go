package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/ccollicutt/confparse/pkg/classifier"
)

// MarkdownFormatter renders reports as Markdown, styled for the terminal.
type MarkdownFormatter struct {
	opts  FormatOptions
	style string
}

// NewMarkdownFormatter creates a Markdown formatter. style names a glamour
// standard style (dark, light, ascii, notty, ...); empty picks one from the
// terminal.
func NewMarkdownFormatter(opts FormatOptions, style string) *MarkdownFormatter {
	return &MarkdownFormatter{opts: opts, style: style}
}

// Name returns the format name.
func (f *MarkdownFormatter) Name() string {
	return "markdown"
}

// Format renders the report through glamour.
func (f *MarkdownFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	styleOpt := glamour.WithAutoStyle()
	if f.style != "" {
		styleOpt = glamour.WithStandardStyle(f.style)
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}

	out, err := r.Render(Markdown(report, f.opts))
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}

// Markdown returns the unrendered Markdown for a report.
func Markdown(report *Report, opts FormatOptions) string {
	var sb strings.Builder

	sb.WriteString("# confparse Classification Report\n\n")
	fmt.Fprintf(&sb, "**%d** files, **%d** lines, **%d** unhandled\n\n",
		report.Summary.FilesProcessed,
		report.Summary.LinesProcessed,
		report.Summary.TotalUnhandled)

	if opts.Quiet {
		return sb.String()
	}

	if len(report.Metadata.MissingHandlers) > 0 {
		fmt.Fprintf(&sb, "> **Warning:** no handler for %s\n\n", joinLabels(report.Metadata.MissingHandlers))
	}

	for _, fr := range report.Files {
		fmt.Fprintf(&sb, "## %s\n\n", codeSpan(fr.Source))
		sb.WriteString("| Label | Lines | Unhandled |\n")
		sb.WriteString("|-------|------:|----------:|\n")
		for _, l := range classifier.Labels() {
			fmt.Fprintf(&sb, "| %s | %d | %d |\n", l, fr.Counts[l], fr.Unhandled[l])
		}
		sb.WriteString("\n")

		if opts.Verbose && len(fr.Records) > 0 {
			for _, rec := range fr.Records {
				mark := ""
				if !rec.Handled {
					mark = " *(unhandled)*"
				}
				fmt.Fprintf(&sb, "- %d: %s%s\n", rec.LineNum, rec.Label, mark)
			}
			sb.WriteString("\n")
		}
	}

	if opts.Verbose {
		fmt.Fprintf(&sb, "Run `%s`\n", report.Metadata.RunID)
	}

	return sb.String()
}

// codeSpan wraps s in a backtick fence one longer than the longest backtick
// run inside it. Padding keeps a leading or trailing backtick off the fence.
func codeSpan(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}

	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}
