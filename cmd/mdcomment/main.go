// Package main is the entry point for the mdcomment CLI.
package main

import (
	"errors"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/yaklabco/mdcomment/internal/cli"
	"github.com/yaklabco/mdcomment/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := logging.Default()

	// Match GOMAXPROCS to the container CPU quota before sizing the worker pool.
	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debugf(format, args...)
	}))
	if err != nil {
		logger.Debug("automaxprocs", logging.FieldError, err)
	}
	defer undo()

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	if err := cli.NewRootCommand(info).Execute(); err != nil {
		// ErrConversionFailed only selects the exit code; the files were reported.
		if !errors.Is(err, cli.ErrConversionFailed) {
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
