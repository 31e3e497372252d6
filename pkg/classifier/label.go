// Package classifier assigns each configuration line exactly one label
// using a single composite pattern.
package classifier

import "fmt"

// Label identifies the kind of a configuration line.
type Label int

// The closed label set, in match priority order.
const (
	LabelInterface Label = iota + 1
	LabelEmptyLine
	LabelContinuation
	LabelComment
	LabelOther
)

var labelNames = map[Label]string{
	LabelInterface:    "interface",
	LabelEmptyLine:    "emptyline",
	LabelContinuation: "continuation",
	LabelComment:      "comment",
	LabelOther:        "other",
}

// Labels returns every label in priority order.
func Labels() []Label {
	return []Label{
		LabelInterface,
		LabelEmptyLine,
		LabelContinuation,
		LabelComment,
		LabelOther,
	}
}

// String returns the label's group name as used in the composite pattern.
func (l Label) String() string {
	if name, ok := labelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("label(%d)", int(l))
}

// Valid reports whether l belongs to the closed label set.
func (l Label) Valid() bool {
	_, ok := labelNames[l]
	return ok
}

// ParseLabel converts a label name back into a Label.
func ParseLabel(name string) (Label, error) {
	for l, n := range labelNames {
		if n == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown label %q (must be interface, emptyline, continuation, comment, or other)", name)
}

// MarshalText implements encoding.TextMarshaler so labels render by name in
// JSON map keys and values.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := ParseLabel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
