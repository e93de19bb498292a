package domain

import "context"

// RunnerPort is the external port for fixing files
type RunnerPort interface {
	// Run expands paths, fixes every file and reports in argument order.
	// Per-file failures are counted in the summary; the error is only set when ctx ends the run
	Run(ctx context.Context, paths []string) (Summary, error)

	// FixFile fixes a single file without reporting
	FixFile(ctx context.Context, path string) Result
}
