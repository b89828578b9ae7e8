package fsutil

import (
	"os"
	"path/filepath"
)

// Prober resolves link targets to readable files. Relative paths are
// taken relative to Dir, or to the working directory when Dir is empty.
type Prober struct {
	Dir string
}

// Resolve returns the absolute path of path when it names a readable
// regular file.
func (p Prober) Resolve(path string) (string, bool) {
	if !filepath.IsAbs(path) && p.Dir != "" {
		path = filepath.Join(p.Dir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	stat, err := os.Stat(abs)
	if err != nil || !stat.Mode().IsRegular() {
		return "", false
	}
	f, err := os.Open(abs)
	if err != nil {
		return "", false
	}
	_ = f.Close()
	return abs, true
}
