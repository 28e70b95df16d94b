package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/j-fro/greprs/internal/config"
	"github.com/j-fro/greprs/internal/logging"
	"github.com/j-fro/greprs/internal/match"
)

// ErrIo is wrapped by every *IoError.
var ErrIo = errors.New("i/o error")

// IoError reports a failure to open or fully read the target file.
type IoError struct {
	Op   string
	Path string
	Err  error
}

func (e *IoError) Error() string { return e.Op + " " + e.Path + ": " + e.Err.Error() }

func (e *IoError) Unwrap() []error { return []error{ErrIo, e.Err} }

var errInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// Run reads cfg.Filename, filters it and writes the matching lines to out.
// Nothing is written unless the whole file was read.
func Run(ctx context.Context, out io.Writer, cfg *config.Config) error {
	log := logging.FromContext(ctx)

	contents, err := readAll(ctx, cfg.Filename)
	if err != nil {
		return err
	}
	log.Debug("file loaded", "path", cfg.Filename, "bytes", len(contents))

	results := match.Find(cfg.Search, contents, cfg.CaseSensitive)
	log.Debug("search finished",
		"search", cfg.Search,
		"case_sensitive", cfg.CaseSensitive,
		"matches", len(results))

	for _, line := range results {
		if err := put(out, cfg, line); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	return nil
}

// readAll loads the whole file as text.
func readAll(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", &IoError{Op: "open", Path: path, Err: unwrapPath(err)}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", &IoError{Op: "stat", Path: path, Err: unwrapPath(err)}
	}
	if !info.Mode().IsRegular() {
		return "", &IoError{Op: "open", Path: path, Err: fmt.Errorf("not a regular file (%s)", info.Mode().Type())}
	}

	var b strings.Builder
	b.Grow(int(info.Size()))
	if _, err := io.Copy(&b, f); err != nil {
		return "", &IoError{Op: "read", Path: path, Err: unwrapPath(err)}
	}

	contents := b.String()
	if !utf8.ValidString(contents) {
		return "", &IoError{Op: "read", Path: path, Err: errInvalidUTF8}
	}
	return contents, nil
}

// unwrapPath strips *os.PathError so the path is not reported twice.
func unwrapPath(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
