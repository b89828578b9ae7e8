// Package imageindex registers the images found under the configured image
// directories so that Markdown images can be referred to by name.
package imageindex

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Index maps image names to files. Names are matched case-insensitively,
// either by base name or by the path relative to the image directory.
// The first directory listing a name wins.
type Index struct {
	files map[string]string
}

// Build walks dirs and indexes every regular file below them.
func Build(ctx context.Context, dirs []string) (*Index, error) {
	idx := &Index{files: make(map[string]string)}
	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve image path %s: %w", dir, err)
		}
		if _, err := os.Stat(abs); err != nil {
			return nil, fmt.Errorf("image path %s: %w", dir, err)
		}
		err = doublestar.GlobWalk(os.DirFS(abs), "**/*", func(rel string, _ fs.DirEntry) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			file := filepath.Join(abs, filepath.FromSlash(rel))
			idx.add(path.Base(rel), file)
			idx.add(rel, file)
			return nil
		}, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("walk image path %s: %w", dir, err)
		}
	}
	return idx, nil
}

func (idx *Index) add(name, file string) {
	key := strings.ToLower(name)
	if _, ok := idx.files[key]; !ok {
		idx.files[key] = file
	}
}

// Lookup returns the file registered for name.
func (idx *Index) Lookup(name string) (string, bool) {
	if idx == nil {
		return "", false
	}
	name = strings.TrimPrefix(filepath.ToSlash(strings.TrimSpace(name)), "./")
	file, ok := idx.files[strings.ToLower(name)]
	return file, ok
}

// Len returns the number of indexed names.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.files)
}
