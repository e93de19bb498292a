// Package service implements the eradicate runner
package service

import (
	"context"
	"fmt"
	"io"

	"eradicate/internal/adapters/pyfile"
	"eradicate/internal/core/scan"
	"eradicate/internal/core/unified"
	perr "eradicate/internal/platform/errors"
	"eradicate/internal/platform/logger"
	pstrings "eradicate/internal/platform/strings"
	"eradicate/internal/platform/term"
	"eradicate/internal/services/eradicate/domain"

	"golang.org/x/sync/errgroup"
)

// Service implements domain.RunnerPort
type Service struct {
	Scan *scan.Scanner
	Opt  domain.Options

	out   io.Writer
	errw  io.Writer
	paint *term.Painter
}

// New constructs a runner. Jobs below one run serially and a nil scanner uses the default
func New(sc *scan.Scanner, opt domain.Options, streams domain.Streams) *Service {
	if sc == nil {
		sc = scan.Default()
	}
	if opt.Jobs <= 0 {
		opt.Jobs = 1
	}
	out := streams.Stdout
	if out == nil {
		out = io.Discard
	}
	return &Service{
		Scan:  sc,
		Opt:   opt,
		out:   out,
		errw:  streams.Stderr,
		paint: term.New(out, opt.Color),
	}
}

// Run fixes the files named by paths, at most Opt.Jobs at a time
func (s *Service) Run(ctx context.Context, paths []string) (domain.Summary, error) {
	files, werr := pyfile.Expand(paths, pyfile.WalkOptions{
		Recursive:  s.Opt.Recursive,
		Extensions: s.Opt.Extensions,
	})
	if werr != nil {
		s.report(werr)
		logger.C(ctx).Warn().Err(werr).Msg("walk failed for some entries")
	}

	results := make([]domain.Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Opt.Jobs)

	scheduled := 0
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		scheduled++
		g.Go(func() error {
			results[i] = s.FixFile(gctx, path)
			return nil
		})
	}
	_ = g.Wait()

	sum := domain.Summary{Failed: btoi(werr != nil)}
	for _, r := range results[:scheduled] {
		sum.Files++
		switch {
		case r.Err != nil:
			sum.Failed++
			s.report(r.Err)
		case r.Changed:
			sum.Changed++
			if r.Diff != "" {
				_, _ = io.WriteString(s.out, s.paint.Diff(r.Diff))
			}
		}
	}

	logger.C(ctx).Debug().
		Int("files", sum.Files).
		Int("changed", sum.Changed).
		Int("failed", sum.Failed).
		Msg("run finished")

	if err := ctx.Err(); err != nil {
		return sum, err
	}
	return sum, nil
}

// FixFile reads path, removes commented-out code and either rewrites the file or renders a diff
func (s *Service) FixFile(ctx context.Context, path string) (res domain.Result) {
	res.Path = path
	defer func() {
		if r := recover(); r != nil {
			res.Err = perr.WithField(perr.PanicErrf("%s: panic: %v", path, r), path)
		}
	}()
	log := logger.C(logger.WithPath(ctx, path))

	src, err := pyfile.Read(path)
	if err != nil {
		res.Err = err
		return res
	}

	lines := src.Lines()
	flagged := s.Scan.Flag(src.Text)
	res.Removed = flagged.Sorted()

	filtered := scan.Filter(lines, flagged)
	if !unified.Changed(lines, filtered) {
		log.Debug().Msg("nothing to remove")
		return res
	}
	res.Changed = true

	if s.Opt.InPlace {
		if err := src.Write(pstrings.JoinLines(filtered)); err != nil {
			res.Err = err
			return res
		}
		log.Info().Ints("lines", res.Removed).Str("encoding", src.Encoding).Msg("rewrote file")
		return res
	}

	diff, err := unified.File(path, lines, filtered)
	if err != nil {
		res.Err = perr.WithField(perr.Wrap(err, perr.ErrorCodeUnknown, "diff"), path)
		return res
	}
	res.Diff = diff
	log.Debug().Ints("lines", res.Removed).Msg("diff ready")
	return res
}

func (s *Service) report(err error) {
	if s.errw == nil {
		return
	}
	_, _ = fmt.Fprintln(s.errw, err)
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
