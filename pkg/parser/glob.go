package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

// StdinName is the input name that selects standard input.
const StdinName = "-"

// ExpandInputs resolves input names and glob patterns into a deduplicated,
// sorted list of paths. A pattern with no matches is kept as a literal name
// so that opening it later reports a proper file-not-found error. The
// stdin name is passed through unchanged and always sorts first.
func ExpandInputs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	stdin := false

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, pattern := range patterns {
		if pattern == "" {
			return nil, errors.New("empty input name")
		}
		if pattern == StdinName {
			stdin = true
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}

	sort.Strings(paths)

	if stdin {
		paths = append([]string{StdinName}, paths...)
	}
	return paths, nil
}
