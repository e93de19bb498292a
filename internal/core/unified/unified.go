// Package unified renders line removals as a unified diff
package unified

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ContextLines is the number of unchanged lines shown around each hunk
const ContextLines = 3

// header prefixes for the two sides of a file diff
const (
	FromPrefix = "before/"
	ToPrefix   = "after/"
)

// Diff returns a unified diff from original to filtered. Lines carry their terminators;
// a final line without one is given "\n" in the diff only. Identical inputs give ""
func Diff(original, filtered []string, fromFile, toFile string) (string, error) {
	if !Changed(original, filtered) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        terminated(original),
		B:        terminated(filtered),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  ContextLines,
	})
}

// File returns the diff for path with before/ and after/ headers
func File(path string, original, filtered []string) (string, error) {
	return Diff(original, filtered, FromPrefix+path, ToPrefix+path)
}

// Changed reports whether filtered differs from original
func Changed(original, filtered []string) bool {
	if len(original) != len(filtered) {
		return true
	}
	for i := range original {
		if original[i] != filtered[i] {
			return true
		}
	}
	return false
}

func terminated(lines []string) []string {
	if len(lines) == 0 || strings.HasSuffix(lines[len(lines)-1], "\n") {
		return lines
	}
	out := make([]string, len(lines))
	copy(out, lines)
	out[len(out)-1] += "\n"
	return out
}
