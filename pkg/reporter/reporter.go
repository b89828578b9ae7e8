// Package reporter prints the results of a conversion run.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdcomment/pkg/config"
	"github.com/yaklabco/mdcomment/pkg/runner"
)

// Compile-time interface checks.
var (
	_ Reporter = (*TextReporter)(nil)
	_ Reporter = (*JSONReporter)(nil)
)

// Reporter formats and writes conversion results.
type Reporter interface {
	// Report writes the output of a finished run.
	Report(ctx context.Context, result *runner.Result) error

	// ReportFile writes a single file converted in watch mode.
	ReportFile(ctx context.Context, outcome runner.FileOutcome) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}
	if opts.Format == "" {
		opts.Format = defaults.Format
	}

	switch opts.Format {
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}
