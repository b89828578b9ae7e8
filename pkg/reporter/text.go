package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdcomment/internal/ui/pretty"
	"github.com/yaklabco/mdcomment/pkg/runner"
)

// TextReporter prints markup, or a table of written pages, followed by
// styled failures and a summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Report implements Reporter. A single converted file is printed as is;
// several files are printed as consecutive comment blocks.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (err error) {
	out := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := out.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("write output: %w", flushErr)
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	for _, outcome := range result.Files {
		if outcome.Error != nil {
			fmt.Fprint(r.opts.ErrorWriter, r.styles.FormatOutcome(outcome, r.opts.WorkingDir))
		}
	}

	if r.opts.OutputDir != "" {
		table := pretty.NewTableFormatter(r.styles, r.opts.Width).FormatTable(result, r.opts.WorkingDir)
		if _, err := out.WriteString(table); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	} else {
		converted := converted(result)
		for _, outcome := range converted {
			data := outcome.Markup
			if len(converted) > 1 {
				data = runner.WrapComment(outcome.Markup)
			}
			if _, err := out.Write(data); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
	}

	switch {
	case r.opts.ShowSummary:
		fmt.Fprint(r.opts.ErrorWriter, r.styles.FormatSummary(result.Stats))
	case len(result.Files) != 1 || r.opts.OutputDir != "":
		fmt.Fprint(r.opts.ErrorWriter, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return nil
}

// ReportFile implements Reporter. Without an output directory the markup
// is printed as a comment block; otherwise the file is listed.
func (r *TextReporter) ReportFile(_ context.Context, outcome runner.FileOutcome) error {
	if r.opts.OutputDir == "" && outcome.Error == nil {
		if _, err := r.opts.Writer.Write(runner.WrapComment(outcome.Markup)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	if _, err := fmt.Fprint(r.opts.ErrorWriter, r.styles.FormatOutcome(outcome, r.opts.WorkingDir)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// converted returns the outcomes that did not fail.
func converted(result *runner.Result) []runner.FileOutcome {
	var files []runner.FileOutcome
	for _, outcome := range result.Files {
		if outcome.Error == nil {
			files = append(files, outcome)
		}
	}
	return files
}
