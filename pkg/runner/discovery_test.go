package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdcomment/pkg/config"
	"github.com/yaklabco/mdcomment/pkg/runner"
)

// writeTree creates files under dir, all with the same content.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("# Title\n\ntext\n"), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func discover(t *testing.T, opts runner.Options) []string {
	t.Helper()
	files, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	rel := make([]string, len(files))
	for i, f := range files {
		r, err := filepath.Rel(opts.WorkingDir, f)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		rel[i] = filepath.ToSlash(r)
	}
	return rel
}

func assertFiles(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d files %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "readme.md", "docs/guide.md", "docs/api.markdown", "src/main.go", "notes.txt")

	got := discover(t, runner.Options{Paths: []string{"."}, WorkingDir: dir})
	assertFiles(t, got, []string{"docs/api.markdown", "docs/guide.md", "readme.md"})
}

func TestDiscover_DefaultsToWorkingDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "test.md")

	got := discover(t, runner.Options{WorkingDir: dir})
	assertFiles(t, got, []string{"test.md"})
}

func TestDiscover_ExplicitFileSkipsMarkdownCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "notes.txt")

	got := discover(t, runner.Options{Paths: []string{"notes.txt"}, WorkingDir: dir})
	assertFiles(t, got, []string{"notes.txt"})
}

func TestDiscover_ExtensionMapping(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md", "b.txt", "c.go")

	cfg := config.NewConfig()
	cfg.ExtensionMapping = map[string]string{"txt": "markdown"}
	got := discover(t, runner.Options{WorkingDir: dir, Config: cfg})
	assertFiles(t, got, []string{"a.md", "b.txt"})
}

func TestDiscover_Globs(t *testing.T) {
	t.Parallel()

	files := []string{"readme.md", "docs/guide.md", "docs/internal/notes.md", "vendor/lib/readme.md"}

	tests := []struct {
		name    string
		include []string
		exclude []string
		ignore  []string
		want    []string
	}{
		{
			name:    "exclude directory",
			exclude: []string{"vendor/**"},
			want:    []string{"docs/guide.md", "docs/internal/notes.md", "readme.md"},
		},
		{
			name:   "config ignore",
			ignore: []string{"**/internal"},
			want:   []string{"docs/guide.md", "readme.md", "vendor/lib/readme.md"},
		},
		{
			name:    "base name pattern",
			exclude: []string{"readme.md"},
			want:    []string{"docs/guide.md", "docs/internal/notes.md"},
		},
		{
			name:    "include",
			include: []string{"docs/**/*.md"},
			want:    []string{"docs/guide.md", "docs/internal/notes.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, files...)

			cfg := config.NewConfig()
			cfg.Ignore = tt.ignore
			got := discover(t, runner.Options{
				WorkingDir:   dir,
				IncludeGlobs: tt.include,
				ExcludeGlobs: tt.exclude,
				Config:       cfg,
			})
			assertFiles(t, got, tt.want)
		})
	}
}

func TestDiscover_SkipsHidden(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, ".hidden.md", ".git/readme.md", "visible.md")

	got := discover(t, runner.Options{WorkingDir: dir})
	assertFiles(t, got, []string{"visible.md"})
}

func TestDiscover_Deduplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "docs/a.md")

	got := discover(t, runner.Options{Paths: []string{"docs", "docs/a.md", "."}, WorkingDir: dir})
	assertFiles(t, got, []string{"docs/a.md"})
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, outside, "linked.md")
	writeTree(t, dir, "a.md")
	if err := os.Symlink(outside, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got := discover(t, runner.Options{WorkingDir: dir})
	assertFiles(t, got, []string{"a.md"})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("FollowSymlinks: got %v, want 2 files", files)
	}
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Discover() error = %v, want not exist", err)
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Discover() error = %v, want context.Canceled", err)
	}
}
