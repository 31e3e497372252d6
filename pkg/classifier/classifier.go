package classifier

import (
	"regexp"
	"strings"
)

// alternatives lists each label's sub-pattern in priority order. The
// composite pattern is built from these, so the order here is the order in
// which alternatives are tried.
var alternatives = []struct {
	label Label
	expr  string
}{
	{LabelInterface, `interface .*`},                   // interface definition
	{LabelEmptyLine, space + `*`},                      // blank or whitespace only
	{LabelContinuation, space + `+` + nonSpace + `.*`}, // indented, belongs to the previous primary line
	{LabelComment, `!.*`},                              // exclamation point at the start
	{LabelOther, `.*`},                                 // anything not matched above
}

// RE2's \s is ASCII-only and leaves out \v. These classes cover every
// Unicode White_Space character plus the \x1c-\x1f separators, so lines
// of vertical tabs, no-break or ideographic spaces count as whitespace.
const (
	space    = `[\s\v\p{Z}\x{85}\x{1c}-\x{1f}]`
	nonSpace = `[^\s\v\p{Z}\x{85}\x{1c}-\x{1f}]`
)

// Classification is the outcome of classifying one line.
type Classification struct {
	// Label is the first alternative that matched the whole line.
	Label Label

	// Text is the text captured by the matching alternative.
	Text string
}

// Classifier labels lines with one composite pattern. It holds no mutable
// state and is safe for concurrent use.
type Classifier struct {
	pattern *regexp.Regexp

	// groups maps subexpression index to label.
	groups map[int]Label
}

// New compiles the composite pattern.
func New() *Classifier {
	re := regexp.MustCompile(CompositePattern())

	groups := make(map[int]Label, len(alternatives))
	for _, alt := range alternatives {
		groups[re.SubexpIndex(alt.label.String())] = alt.label
	}

	return &Classifier{
		pattern: re,
		groups:  groups,
	}
}

// CompositePattern returns the source of the composite pattern. Dot matches
// newlines and the whole input is anchored, so trailing line terminators are
// part of the remaining content and every string matches some alternative.
func CompositePattern() string {
	parts := make([]string, 0, len(alternatives))
	for _, alt := range alternatives {
		parts = append(parts, "(?P<"+alt.label.String()+">"+alt.expr+")")
	}
	return `(?s)\A(?:` + strings.Join(parts, "|") + `)\z`
}

// Expression returns the sub-pattern for l, or "" when l is not in the
// closed set.
func Expression(l Label) string {
	for _, alt := range alternatives {
		if alt.label == l {
			return alt.expr
		}
	}
	return ""
}

// Pattern returns the compiled composite pattern.
func (c *Classifier) Pattern() *regexp.Regexp {
	return c.pattern
}

// Classify returns the label of the first alternative, in priority order,
// that matches the entire line. The catch-all alternative makes this total:
// every string gets a label.
func (c *Classifier) Classify(line string) Classification {
	loc := c.pattern.FindStringSubmatchIndex(line)
	if loc == nil {
		// Unreachable while the catch-all alternative is last.
		return Classification{Label: LabelOther, Text: line}
	}

	// Alternation is leftmost-first, so exactly one group participated.
	for i := 1; i*2 < len(loc); i++ {
		if loc[2*i] < 0 {
			continue
		}
		if label, ok := c.groups[i]; ok {
			return Classification{
				Label: label,
				Text:  line[loc[2*i]:loc[2*i+1]],
			}
		}
	}

	return Classification{Label: LabelOther, Text: line}
}
