package markup

import (
	"fmt"
	"sync/atomic"
)

// Default option values.
const (
	DefaultTabSize            = 4
	DefaultTOCIncludeHeadings = 5
)

// maxTOCLevel is the deepest heading level `[TOC]` can list.
const maxTOCLevel = 5

// ImageRegistry resolves image names registered from the configured image
// directories. Lookups are case-insensitive.
type ImageRegistry interface {
	Lookup(name string) (path string, ok bool)
}

// FileProber reports the absolute path of a readable file.
type FileProber interface {
	Resolve(path string) (abs string, ok bool)
}

// LanguageClassifier decides whether a link target is itself a Markdown page.
type LanguageClassifier interface {
	IsMarkdown(fileName string) bool
}

// CodeLanguageGuesser names the language of an untagged code block.
// An empty result leaves the block untagged.
type CodeLanguageGuesser interface {
	GuessLanguage(code []byte) string
}

// IDSequence hands out the numbers used for generated header anchors.
// A single sequence may be shared by the engines of one run so that
// anchors stay unique across documents. It is safe for concurrent use.
type IDSequence struct {
	next atomic.Int64
}

// NewIDSequence returns a sequence starting at 0.
func NewIDSequence() *IDSequence {
	return &IDSequence{}
}

// Next returns the next anchor id, e.g. "autotoc_md3".
func (s *IDSequence) Next() string {
	n := s.next.Add(1) - 1
	return fmt.Sprintf("autotoc_md%d", n)
}

// Options configures an Engine.
type Options struct {
	// TabSize is the tab stop width used when expanding tabs.
	TabSize int

	// TOCIncludeHeadings is the deepest heading level that receives a
	// generated anchor. Zero disables generated anchors.
	TOCIncludeHeadings int

	// Disabled turns Process into a passthrough.
	Disabled bool

	// PlantUMLJarPath enables plantuml fenced blocks when non-empty.
	PlantUMLJarPath string

	// HaveDot enables dot fenced blocks.
	HaveDot bool

	// ExtLinksInWindow opens external links in a new window.
	ExtLinksInWindow bool

	// IDs supplies generated anchor ids. A private sequence is used when nil.
	IDs *IDSequence

	Images    ImageRegistry
	Files     FileProber
	Languages LanguageClassifier
	CodeGuess CodeLanguageGuesser
}

// DefaultOptions returns the options used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		TabSize:            DefaultTabSize,
		TOCIncludeHeadings: DefaultTOCIncludeHeadings,
	}
}

// externalLinkTarget returns the attribute text added to external anchors.
func (o Options) externalLinkTarget() string {
	if o.ExtLinksInWindow {
		return `target="_blank" `
	}
	return ""
}
