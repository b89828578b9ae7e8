package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdcomment/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates missing directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "pages", "md_guide.dox")
		content := []byte("/** @page md_guide Guide */\n")
		if err := fsutil.WriteAtomic(context.Background(), path, content, 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if stat.Mode().Perm() != fsutil.DefaultFileMode {
			t.Errorf("mode = %o, want %o", stat.Mode().Perm(), fsutil.DefaultFileMode)
		}
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "page.dox")
		for _, content := range []string{"first", "second"} {
			if err := fsutil.WriteAtomic(context.Background(), path, []byte(content), 0o600); err != nil {
				t.Fatalf("WriteAtomic() error = %v", err)
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("read dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("directory has %d entries, want 1", len(entries))
		}
		got, _ := os.ReadFile(path)
		if string(got) != "second" {
			t.Errorf("content = %q, want %q", got, "second")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		path := filepath.Join(t.TempDir(), "page.dox")
		if err := fsutil.WriteAtomic(ctx, path, []byte("x"), 0); err == nil {
			t.Fatal("expected error for cancelled context")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("file should not exist, stat error = %v", err)
		}
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "page.dox")
	ctx := context.Background()

	steps := []struct {
		content string
		want    bool
	}{
		{"v1", true},
		{"v1", false},
		{"v2", true},
	}
	for _, step := range steps {
		written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte(step.content), 0)
		if err != nil {
			t.Fatalf("WriteAtomicIfChanged(%q) error = %v", step.content, err)
		}
		if written != step.want {
			t.Errorf("WriteAtomicIfChanged(%q) = %v, want %v", step.content, written, step.want)
		}
	}
}
