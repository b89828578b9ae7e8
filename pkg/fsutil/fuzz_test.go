package fsutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdcomment/pkg/fsutil"
)

func FuzzWriteAtomicReadFile(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("# Title\n\ntext\n"))
	f.Add([]byte("\x00\x01\x02\x03"))
	f.Add(make([]byte, 1024))

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "page.dox")
		ctx := context.Background()

		if err := fsutil.WriteAtomic(ctx, path, content, 0); err != nil {
			t.Fatalf("WriteAtomic failed: %v", err)
		}

		got, snap, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Fatalf("content mismatch: got %d bytes, want %d", len(got), len(content))
		}

		changed, err := fsutil.Changed(ctx, snap)
		if err != nil {
			t.Fatalf("Changed failed: %v", err)
		}
		if changed {
			t.Error("file should not be reported as changed")
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("stat: %v", err)
		}
	})
}
