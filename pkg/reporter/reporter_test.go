package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcomment/pkg/config"
	"github.com/yaklabco/mdcomment/pkg/reporter"
	"github.com/yaklabco/mdcomment/pkg/runner"
)

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "/work/docs/a.md", ID: "md_docs_a", Title: "Alpha", Markup: []byte("alpha\n"), BytesIn: 6, BytesOut: 6},
			{Path: "/work/docs/b.md", ID: "md_docs_b", Markup: []byte("beta */ end"), BytesIn: 11, BytesOut: 11},
			{Path: "/work/docs/c.md", Error: errors.New("permission denied")},
		},
		Stats: runner.Stats{FilesDiscovered: 3, FilesConverted: 2, FilesErrored: 1, BytesIn: 17, BytesOut: 17},
	}
}

func newReporter(t *testing.T, opts reporter.Options) (reporter.Reporter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts.Writer = &stdout
	opts.ErrorWriter = &stderr
	opts.Color = "never"
	opts.WorkingDir = "/work"
	rep, err := reporter.New(opts)
	require.NoError(t, err)
	return rep, &stdout, &stderr
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  config.OutputFormat
		want    any
		wantErr bool
	}{
		{name: "empty defaults to text", format: "", want: &reporter.TextReporter{}},
		{name: "text", format: config.FormatText, want: &reporter.TextReporter{}},
		{name: "json", format: config.FormatJSON, want: &reporter.JSONReporter{}},
		{name: "unknown", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rep, err := reporter.New(reporter.Options{Format: tt.format})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, rep)
		})
	}
}

func TestTextReporter_Markup(t *testing.T) {
	t.Parallel()

	rep, stdout, stderr := newReporter(t, reporter.Options{})
	require.NoError(t, rep.Report(context.Background(), sampleResult()))

	assert.Equal(t, "/**\nalpha\n*/\n/**\nbeta *&#47; end\n*/\n", stdout.String())
	assert.Contains(t, stderr.String(), "docs/c.md")
	assert.Contains(t, stderr.String(), "permission denied")
	assert.Contains(t, stderr.String(), "Converted 2 files")
	assert.Contains(t, stderr.String(), "1 failed")
}

func TestTextReporter_SingleFile(t *testing.T) {
	t.Parallel()

	rep, stdout, stderr := newReporter(t, reporter.Options{})
	result := &runner.Result{
		Files: []runner.FileOutcome{{Path: "/work/a.md", Markup: []byte("alpha\n")}},
		Stats: runner.Stats{FilesDiscovered: 1, FilesConverted: 1},
	}
	require.NoError(t, rep.Report(context.Background(), result))

	assert.Equal(t, "alpha\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestTextReporter_OutputDir(t *testing.T) {
	t.Parallel()

	rep, stdout, stderr := newReporter(t, reporter.Options{OutputDir: "/out", ShowSummary: true})
	require.NoError(t, rep.Report(context.Background(), sampleResult()))

	assert.Contains(t, stdout.String(), "PAGE")
	assert.Contains(t, stdout.String(), "md_docs_a")
	assert.NotContains(t, stdout.String(), "alpha\n")
	assert.Contains(t, stderr.String(), "Summary")
	assert.Contains(t, stderr.String(), "Conversion failed for 1 file")
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	rep, stdout, stderr := newReporter(t, reporter.Options{})
	require.NoError(t, rep.Report(context.Background(), nil))

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "No Markdown files found")
}

func TestTextReporter_ReportFile(t *testing.T) {
	t.Parallel()

	rep, stdout, _ := newReporter(t, reporter.Options{})
	require.NoError(t, rep.ReportFile(context.Background(), runner.FileOutcome{Path: "/work/a.md", Markup: []byte("x")}))
	assert.Equal(t, "/**\nx\n*/\n", stdout.String())

	rep, stdout, stderr := newReporter(t, reporter.Options{OutputDir: "/out"})
	require.NoError(t, rep.ReportFile(context.Background(), runner.FileOutcome{
		Path: "/work/a.md", ID: "md_a", OutputPath: "/out/md_a.dox", Written: true,
	}))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "a.md")
	assert.Contains(t, stderr.String(), "/out/md_a.dox")
}

func TestJSONReporter_Report(t *testing.T) {
	t.Parallel()

	rep, stdout, stderr := newReporter(t, reporter.Options{Format: config.FormatJSON})
	require.NoError(t, rep.Report(context.Background(), sampleResult()))
	assert.Empty(t, stderr.String())

	var doc reporter.JSONOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	require.Len(t, doc.Files, 3)
	assert.Equal(t, "docs/a.md", doc.Files[0].Path)
	assert.Equal(t, "Alpha", doc.Files[0].Title)
	assert.Equal(t, "beta */ end", doc.Files[1].Markup)
	assert.Equal(t, "permission denied", doc.Files[2].Error)
	assert.Equal(t, 2, doc.Stats.FilesConverted)
	assert.Equal(t, 1, doc.Stats.FilesErrored)
}

func TestJSONReporter_ReportFile(t *testing.T) {
	t.Parallel()

	rep, stdout, _ := newReporter(t, reporter.Options{Format: config.FormatJSON})
	ctx := context.Background()
	require.NoError(t, rep.ReportFile(ctx, runner.FileOutcome{Path: "/work/a.md", ID: "md_a"}))
	require.NoError(t, rep.ReportFile(ctx, runner.FileOutcome{Path: "/work/b.md", ID: "md_b"}))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	var f reporter.JSONFile
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &f))
	assert.Equal(t, "md_b", f.ID)
	assert.Equal(t, "b.md", f.Path)
}
