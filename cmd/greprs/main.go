package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/j-fro/greprs/internal/config"
	"github.com/j-fro/greprs/internal/logging"
	"github.com/j-fro/greprs/internal/search"
)

// Exit codes.
const (
	exitOK    = 0
	exitUsage = 1
	exitRun   = 2
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr, os.Args, os.Environ()))
}

// run is main without the process globals.
func run(stdout, stderr io.Writer, args, environ []string) int {
	cfg, err := config.Parse(args, config.Environ(environ), stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		// User-supplied arguments are invalid → exit 1
		fmt.Fprintln(stderr, "problem parsing arguments:", err)
		return exitUsage
	}

	sink := logging.Sink(cfg.LogFile, stderr)
	defer sink.Close()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, sink)

	ctx := logging.WithLogger(context.Background(), logger)
	if err := search.Run(ctx, stdout, cfg); err != nil {
		// File could not be searched → exit 2
		logger.Debug("run failed", "error", err)
		fmt.Fprintln(stderr, "application error:", err)
		return exitRun
	}
	return exitOK
}
