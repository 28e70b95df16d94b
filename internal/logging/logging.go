// Package logging builds the diagnostic logger. Diagnostics never share
// the result stream.
package logging

import (
	"context"
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for -log-file.
const (
	MaxSizeMB  = 10
	MaxBackups = 3
	MaxAgeDays = 28
)

// New returns a logger writing to w at levelStr in formatStr ("text" or
// "json"). Unknown levels fall back to warn.
func New(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Sink picks the log destination: a size-rotated file when path is set,
// fallback otherwise. The returned closer must be called at exit.
func Sink(path string, fallback io.Writer) io.WriteCloser {
	if path == "" {
		return nopCloser{fallback}
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    MaxSizeMB,
		MaxBackups: MaxBackups,
		MaxAge:     MaxAgeDays,
		Compress:   true,
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

type key struct{}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// FromContext returns the logger stored by WithLogger, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(key{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
