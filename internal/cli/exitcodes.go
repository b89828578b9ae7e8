package cli

import (
	"errors"

	"github.com/yaklabco/mdcomment/pkg/runner"
)

// Exit codes for mdcomment.
const (
	// ExitSuccess indicates every file converted.
	ExitSuccess = 0

	// ExitConversionError indicates at least one file failed to convert.
	ExitConversionError = 1

	// ExitUsageError indicates invalid usage or configuration.
	ExitUsageError = 2
)

// ErrConversionFailed is returned when a run finished with failed files.
// The failures have already been reported.
var ErrConversionFailed = errors.New("conversion failed")

// ExitCodeFromResult determines the exit code of a finished run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasErrors() {
		return ExitConversionError
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrConversionFailed):
		return ExitConversionError
	default:
		return ExitUsageError
	}
}
