// Package parser provides the line pump: it reads configuration text and
// yields raw lines one at a time for classification.
package parser

// Line is a single line of input text.
type Line struct {
	// Raw is the original line content, including its terminator if it
	// had one. Only the last line of a resource can lack a terminator.
	Raw string

	// Source is the name of the resource this line came from.
	Source string

	// LineNum is the 1-based line number in the source.
	LineNum int
}
