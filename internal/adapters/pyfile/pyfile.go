// Package pyfile reads, rewrites and collects Python source files
package pyfile

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	perr "eradicate/internal/platform/errors"
	pstrings "eradicate/internal/platform/strings"
)

// DefaultExtensions are the suffixes collected when none are configured
var DefaultExtensions = []string{".py"}

// Source is a decoded source file
type Source struct {
	Path     string
	Encoding string
	Text     string
}

// Lines splits the text into lines that keep their terminators
func (s *Source) Lines() []string { return pstrings.SplitLines(s.Text) }

// DetectFile returns the encoding of the file at path, see DetectEncoding
func DetectFile(path string) (string, error) {
	data, err := readAll(path)
	if err != nil {
		return "", err
	}
	return DetectEncoding(data), nil
}

// Read loads and decodes the file at path
func Read(path string) (*Source, error) {
	data, err := readAll(path)
	if err != nil {
		return nil, err
	}
	enc := DetectEncoding(data)
	c, _ := lookup(enc)
	text, err := c.decode(data)
	if err != nil {
		return nil, perr.WithField(perr.WithOp(err, "pyfile.Read"), path)
	}
	return &Source{Path: path, Encoding: enc, Text: text}, nil
}

func readAll(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.WithOp(perr.WrapFS(err, path), "pyfile.Read")
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, perr.WithOp(perr.WrapFS(err, path), "pyfile.Read")
	}
	return data, nil
}

// WriteInPlace overwrites the existing file at path with text encoded as enc
func WriteInPlace(path, text, enc string) (err error) {
	c, ok := lookup(enc)
	if !ok {
		return perr.WithField(perr.Encodingf("unknown encoding %q", enc), path)
	}
	data, err := c.encode(text)
	if err != nil {
		return perr.WithField(err, path)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return perr.WithOp(perr.WrapFS(err, path), "pyfile.WriteInPlace")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = perr.WithOp(perr.WrapFS(cerr, path), "pyfile.WriteInPlace")
		}
	}()

	if _, err = f.Write(data); err != nil {
		return perr.WithOp(perr.WrapFS(err, path), "pyfile.WriteInPlace")
	}
	return nil
}

// Write rewrites the source file with text in its original encoding
func (s *Source) Write(text string) error { return WriteInPlace(s.Path, text, s.Encoding) }

// WalkOptions controls Expand
type WalkOptions struct {
	Recursive  bool
	Extensions []string
}

// Expand turns command line paths into files. With Recursive, directories are walked: hidden
// entries below the root are skipped and only files with a listed extension are kept. Other
// paths pass through unchanged. The result has no duplicates; walk failures are joined into err
func Expand(paths []string, opt WalkOptions) ([]string, error) {
	exts := pstrings.IfEmpty(opt.Extensions, DefaultExtensions)
	var (
		out  []string
		errs []error
	)
	for _, root := range paths {
		if !opt.Recursive {
			out = append(out, root)
			continue
		}
		if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
			out = append(out, root)
			continue
		}
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				errs = append(errs, perr.WithOp(perr.WrapFS(err, path), "pyfile.Expand"))
				return nil
			}
			if path == root {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && hasExt(d.Name(), exts) {
				out = append(out, path)
			}
			return nil
		})
	}
	return pstrings.Dedupe(out), errors.Join(errs...)
}

func hasExt(name string, exts []string) bool {
	for _, e := range exts {
		if strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}
