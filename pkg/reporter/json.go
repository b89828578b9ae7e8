package reporter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdcomment/internal/ui/pretty"
	"github.com/yaklabco/mdcomment/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Files []JSONFile `json:"files"`
	Stats JSONStats  `json:"stats"`
}

// JSONFile is the JSON form of one converted file.
type JSONFile struct {
	Path       string `json:"path"`
	ID         string `json:"id,omitempty"`
	Title      string `json:"title,omitempty"`
	Markup     string `json:"markup,omitempty"`
	BytesIn    int    `json:"bytes_in"`
	BytesOut   int    `json:"bytes_out"`
	OutputPath string `json:"output_path,omitempty"`
	Written    bool   `json:"written,omitempty"`
	Error      string `json:"error,omitempty"`
}

// JSONStats contains aggregate statistics.
type JSONStats struct {
	FilesDiscovered int `json:"files_discovered"`
	FilesConverted  int `json:"files_converted"`
	FilesErrored    int `json:"files_errored"`
	FilesWritten    int `json:"files_written"`
	BytesIn         int `json:"bytes_in"`
	BytesOut        int `json:"bytes_out"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// Report implements Reporter. The whole run is written as one indented
// document.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) error {
	if result == nil {
		result = &runner.Result{}
	}
	doc := JSONOutput{
		Files: make([]JSONFile, 0, len(result.Files)),
		Stats: JSONStats(result.Stats),
	}
	for _, outcome := range result.Files {
		doc.Files = append(doc.Files, r.file(outcome))
	}

	enc := json.NewEncoder(r.opts.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// ReportFile implements Reporter. Each file is written as one line.
func (r *JSONReporter) ReportFile(_ context.Context, outcome runner.FileOutcome) error {
	if err := json.NewEncoder(r.opts.Writer).Encode(r.file(outcome)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func (r *JSONReporter) file(outcome runner.FileOutcome) JSONFile {
	f := JSONFile{
		Path:       pretty.DisplayPath(outcome.Path, r.opts.WorkingDir),
		ID:         outcome.ID,
		Title:      outcome.Title,
		Markup:     string(outcome.Markup),
		BytesIn:    outcome.BytesIn,
		BytesOut:   outcome.BytesOut,
		OutputPath: outcome.OutputPath,
		Written:    outcome.Written,
	}
	if outcome.Error != nil {
		f.Error = outcome.Error.Error()
	}
	return f
}
