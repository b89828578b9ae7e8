package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/mdcomment/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer receives the markup, page table or JSON (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter receives failures and summaries (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary prints a summary block instead of the one-line summary.
	ShowSummary bool

	// OutputDir is set when pages were written to disk. A table of pages
	// is printed instead of the markup.
	OutputDir string

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string

	// Width is the terminal width used to fit the page table; 0 means
	// no limit.
	Width int
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      config.FormatText,
		Color:       "auto",
	}
}
