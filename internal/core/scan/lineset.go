package scan

import "slices"

// LineSet is an add-only set of 1-based line numbers
type LineSet struct {
	m map[int]struct{}
}

// NewLineSet returns an empty set
func NewLineSet() *LineSet { return &LineSet{m: make(map[int]struct{})} }

// Add inserts lines, reporting whether any was new
func (s *LineSet) Add(lines ...int) bool {
	grew := false
	for _, n := range lines {
		if _, ok := s.m[n]; !ok {
			s.m[n] = struct{}{}
			grew = true
		}
	}
	return grew
}

// Has reports whether n is in the set
func (s *LineSet) Has(n int) bool {
	_, ok := s.m[n]
	return ok
}

// Len returns the number of lines in the set
func (s *LineSet) Len() int { return len(s.m) }

// Sorted returns the lines in ascending order
func (s *LineSet) Sorted() []int {
	out := make([]int, 0, len(s.m))
	for n := range s.m {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Filter returns lines, numbered from 1, without the members of flagged
func Filter(lines []string, flagged *LineSet) []string {
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if !flagged.Has(i + 1) {
			out = append(out, line)
		}
	}
	return out
}
