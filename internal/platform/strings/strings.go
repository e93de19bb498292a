// Package strings provides line and slice helpers shared by the scanner and the runner
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// Dedupe returns in without repeated elements, keeping first occurrences in order
func Dedupe[T comparable](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// SplitLines splits s after every "\n", keeping the terminators.
// A final line without "\n" is kept as-is; an empty s yields no lines
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := std.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines concatenates lines that already carry their terminators
func JoinLines(lines []string) string { return std.Join(lines, "") }

// TrimEOL strips a trailing "\n" or "\r\n"
func TrimEOL(s string) string {
	s = std.TrimSuffix(s, "\n")
	return std.TrimSuffix(s, "\r")
}

// LeadingSpace returns the run of spaces, tabs and form feeds that starts s
func LeadingSpace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\f') {
		i++
	}
	return s[:i]
}

// CommonPrefix returns the longest shared byte prefix of a and b
func CommonPrefix(a, b string) string {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// IsBlank reports whether s has no non-whitespace content
func IsBlank(s string) bool { return std.TrimSpace(s) == "" }
