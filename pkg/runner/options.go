// Package runner converts many Markdown files concurrently.
package runner

import (
	"github.com/yaklabco/mdcomment/pkg/config"
	"github.com/yaklabco/mdcomment/pkg/langdetect"
	"github.com/yaklabco/mdcomment/pkg/markup"
)

// Options controls a conversion run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// IncludeGlobs restrict discovery to matching paths, relative to
	// WorkingDir. Empty means every Markdown file.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories. The config's
	// ignore patterns are added to them.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// IDs numbers generated anchors. A fresh sequence is used per run
	// when nil.
	IDs *markup.IDSequence

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// effectiveExcludes combines the exclude globs with the config's ignores.
func (o Options) effectiveExcludes() []string {
	if o.Config == nil || len(o.Config.Ignore) == 0 {
		return o.ExcludeGlobs
	}
	return append(append([]string(nil), o.ExcludeGlobs...), o.Config.Ignore...)
}

// classifier builds the Markdown classifier from the extension mapping.
func (o Options) classifier() *langdetect.Classifier {
	if o.Config == nil {
		return langdetect.NewClassifier(nil)
	}
	return langdetect.NewClassifier(o.Config.ExtensionMapping)
}
