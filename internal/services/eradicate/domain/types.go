// Package domain defines the core types and interfaces for the eradicate service
package domain

import "io"

// Options controls one run over a set of paths
type Options struct {
	InPlace    bool     `flag:"in-place"`
	Recursive  bool     `flag:"recursive"`
	Jobs       int      `flag:"jobs" validate:"min=1,max=256"`
	Color      string   `flag:"color" validate:"oneof=auto always never"`
	Extensions []string `json:"extensions" validate:"dive,startswith=."`
}

// Streams are the writers a run reports to. A nil Stderr silences per-file errors
type Streams struct {
	Stdout io.Writer // required
	Stderr io.Writer
}

// Result is the outcome of fixing one file
type Result struct {
	Path    string
	Removed []int  // flagged line numbers, ascending
	Diff    string // empty with InPlace or when nothing changed
	Changed bool
	Err     error
}

// Summary counts the files of a run
type Summary struct {
	Files   int
	Changed int
	Failed  int
}
