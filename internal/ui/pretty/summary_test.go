package pretty_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdcomment/internal/ui/pretty"
	"github.com/yaklabco/mdcomment/pkg/runner"
)

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name    string
		stats   runner.Stats
		want    []string
		notWant []string
	}{
		{
			name:    "all converted",
			stats:   runner.Stats{FilesDiscovered: 4, FilesConverted: 4, BytesIn: 4100, BytesOut: 512},
			want:    []string{"Files found:     4", "Files converted: 4", "4.1 kB", "512 B", "Conversion complete"},
			notWant: []string{"Files failed", "Files written"},
		},
		{
			name:  "with failures",
			stats: runner.Stats{FilesDiscovered: 3, FilesConverted: 2, FilesErrored: 1, FilesWritten: 2},
			want:  []string{"Files written:   2", "Files failed:    1", "Conversion failed for 1 file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := styles.FormatSummary(tt.stats)
			assert.Contains(t, out, "Summary")
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{"nothing found", runner.Stats{}, "No Markdown files found\n"},
		{
			"one file",
			runner.Stats{FilesDiscovered: 1, FilesConverted: 1, BytesIn: 10, BytesOut: 20},
			"Converted 1 file (10 B -> 20 B)\n",
		},
		{
			"written and failed",
			runner.Stats{FilesDiscovered: 3, FilesConverted: 2, FilesWritten: 2, FilesErrored: 1},
			"Converted 2 files (0 B -> 0 B), 2 written, 1 failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatOutcome(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	workDir := filepath.FromSlash("/work")

	tests := []struct {
		name    string
		outcome runner.FileOutcome
		want    string
	}{
		{
			name:    "page",
			outcome: runner.FileOutcome{Path: filepath.FromSlash("/work/docs/guide.md"), ID: "md_docs_guide", Title: "Guide"},
			want:    "  " + filepath.FromSlash("docs/guide.md") + "  md_docs_guide  \"Guide\"\n",
		},
		{
			name: "written",
			outcome: runner.FileOutcome{
				Path: filepath.FromSlash("/work/a.md"), ID: "md_a",
				OutputPath: filepath.FromSlash("/work/out/md_a.dox"), Written: true,
			},
			want: "  a.md  md_a  -> " + filepath.FromSlash("out/md_a.dox") + "\n",
		},
		{
			name:    "unchanged",
			outcome: runner.FileOutcome{Path: filepath.FromSlash("/work/a.md"), ID: "md_a", OutputPath: "x.dox"},
			want:    "  a.md  md_a  unchanged\n",
		},
		{
			name:    "error outside workdir",
			outcome: runner.FileOutcome{Path: filepath.FromSlash("/elsewhere/a.md"), Error: errors.New("boom")},
			want:    "  " + filepath.FromSlash("/elsewhere/a.md") + "  error  boom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatOutcome(tt.outcome, workDir))
		})
	}
}
