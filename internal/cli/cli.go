// Package cli parses the eradicate command line and drives one run
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"eradicate/internal/core/version"
	"eradicate/internal/modkit"
	"eradicate/internal/platform/config"
	perr "eradicate/internal/platform/errors"
	"eradicate/internal/platform/logger"
	"eradicate/internal/services/eradicate/domain"
	"eradicate/internal/services/eradicate/module"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

// Exit statuses
const (
	ExitOK    = 0
	ExitRun   = 1
	ExitUsage = 2
)

// Run executes one invocation with args (program name excluded) and returns the exit status
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := config.New()
	opts := module.FromConfig(cfg)

	fs := pflag.NewFlagSet("eradicate", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false

	var showVersion bool
	fs.BoolVarP(&opts.InPlace, "in-place", "i", opts.InPlace, "make changes to files instead of printing diffs")
	fs.BoolVarP(&opts.Recursive, "recursive", "r", opts.Recursive, "drill down directories recursively")
	fs.IntVarP(&opts.Jobs, "jobs", "j", opts.Jobs, "number of files processed in parallel")
	fs.StringVar(&opts.Color, "color", opts.Color, "colour diff output: auto, always or never")
	fs.StringSliceVarP(&opts.Extensions, "extension", "e", opts.Extensions, "file extensions collected by --recursive")
	fs.BoolVar(&showVersion, "version", false, "print the version and exit")

	fs.Usage = func() {
		_, _ = fmt.Fprintln(stderr, "Usage: eradicate [flags] PATH...")
		_, _ = fmt.Fprintln(stderr, "\nRemove commented-out code from Python files.")
		_, _ = fmt.Fprintln(stderr, "\nFlags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ExitOK
		}
		_, _ = fmt.Fprintf(stderr, "eradicate: %s\n", err)
		return ExitUsage
	}
	if showVersion {
		_, _ = fmt.Fprintln(stdout, version.Info())
		return ExitOK
	}
	paths := fs.Args()
	if len(paths) == 0 {
		fs.Usage()
		return ExitUsage
	}

	runID := uuid.NewString()
	ctx = logger.WithRun(ctx, runID)
	log := logger.C(ctx)

	deps := modkit.Deps{Log: logger.Named("eradicate"), Cfg: cfg}
	m, err := module.New(deps, opts, modkit.WithPorts(domain.Streams{Stdout: stdout, Stderr: stderr}))
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "eradicate: %s\n", err)
		return perr.Exit(err)
	}

	sum, err := modkit.MustPortsOf[module.Ports](m).Runner.Run(ctx, paths)
	log.Debug().
		Int("files", sum.Files).
		Int("changed", sum.Changed).
		Int("failed", sum.Failed).
		Msg("done")
	if err != nil {
		log.Warn().Err(err).Msg("run interrupted")
		return ExitRun
	}
	return ExitOK
}
