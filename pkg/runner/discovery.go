package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/mdcomment/pkg/langdetect"
)

// filter decides which discovered paths are converted.
type filter struct {
	workDir    string
	classifier *langdetect.Classifier
	include    []string
	exclude    []string
}

// Discover finds Markdown files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	f, err := newFilter(opts)
	if err != nil {
		return nil, err
	}
	workDir := f.workDir

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			// Files named explicitly skip the Markdown check but not the excludes.
			if !f.excluded(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := f.walk(ctx, absPath, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		for _, path := range discovered {
			add(path)
		}
	}

	sort.Strings(files)
	return files, nil
}

func newFilter(opts Options) (filter, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return filter{}, fmt.Errorf("resolve working directory: %w", err)
	}
	return filter{
		workDir:    workDir,
		classifier: opts.classifier(),
		include:    opts.IncludeGlobs,
		exclude:    opts.effectiveExcludes(),
	}, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

// walk recursively collects the Markdown files under root.
func (f filter) walk(ctx context.Context, root string, followSymlinks bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if path != root && f.excluded(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(realPath)
			if err != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				if !followSymlinks {
					return nil
				}
				// Walk the target: WalkDir does not descend into a symlinked root.
				sub, err := f.walk(ctx, realPath, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		if f.matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// matches reports whether a walked file is converted.
func (f filter) matches(path string) bool {
	if !f.classifier.IsMarkdown(path) || f.excluded(path) {
		return false
	}
	return len(f.include) == 0 || matchAny(f.rel(path), f.include)
}

func (f filter) excluded(path string) bool {
	return matchAny(f.rel(path), f.exclude)
}

func (f filter) rel(path string) string {
	rel, err := filepath.Rel(f.workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// matchAny matches a slash-separated relative path against glob patterns.
// Patterns without a slash also match the base name, so "*.md" and
// "vendor" behave the way they do in ignore files.
func matchAny(relPath string, patterns []string) bool {
	base := relPath[strings.LastIndexByte(relPath, '/')+1:]
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
		}
	}
	return false
}
