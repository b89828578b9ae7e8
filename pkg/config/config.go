// Package config defines the configuration types for mdcomment.
// These types are plain data; loading and merging live in internal/configloader.
package config

import "github.com/yaklabco/mdcomment/pkg/markup"

// Default values for settings that are not taken from markup.
const (
	DefaultJobs = 0 // 0 means use GOMAXPROCS
)

// Config is the root configuration structure.
//
// Settings whose zero value is meaningful are pointers, so that a layer
// which does not mention them leaves the lower layer's value alone.
type Config struct {
	// TabSize is the tab stop width used when expanding tabs.
	TabSize int `yaml:"tab_size"`

	// TOCIncludeHeadings is the deepest heading level that gets an anchor
	// and is listed by `[TOC]`. 0 disables both.
	TOCIncludeHeadings *int `yaml:"toc_include_headings"`

	// MarkdownSupport turns the translation on. When off, input is copied.
	MarkdownSupport *bool `yaml:"markdown_support"`

	// PlantUMLJarPath enables plantuml fenced blocks when set.
	PlantUMLJarPath string `yaml:"plantuml_jar_path"`

	// HaveDot enables dot fenced blocks.
	HaveDot *bool `yaml:"have_dot"`

	// ExtLinksInWindow opens external links in a new window.
	ExtLinksInWindow *bool `yaml:"ext_links_in_window"`

	// ImagePath lists directories searched for images.
	ImagePath []string `yaml:"image_path"`

	// ExtensionMapping maps file extensions (without dot) to languages.
	ExtensionMapping map[string]string `yaml:"extension_mapping"`

	// UseMDFileAsMainPage names the Markdown file used as the main page.
	UseMDFileAsMainPage string `yaml:"use_mdfile_as_mainpage"`

	// StripFromPath lists prefixes removed from paths before page ids are
	// derived. The working directory is used when empty.
	StripFromPath []string `yaml:"strip_from_path"`

	// InferCodeLanguage guesses the language of untagged fenced blocks.
	InferCodeLanguage *bool `yaml:"infer_code_language"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// OutputDir, when set, receives one `.dox` file per converted page.
	OutputDir string `yaml:"-"`

	// Page runs the page builder instead of translating documents as
	// comment blocks.
	Page bool `yaml:"-"`
}

// NewConfig returns a Config with every setting at its default.
func NewConfig() *Config {
	return &Config{
		TabSize:            markup.DefaultTabSize,
		TOCIncludeHeadings: ptr(markup.DefaultTOCIncludeHeadings),
		MarkdownSupport:    ptr(true),
		HaveDot:            ptr(false),
		ExtLinksInWindow:   ptr(false),
		ExtensionMapping:   make(map[string]string),
		InferCodeLanguage:  ptr(false),
		Format:             FormatText,
		Jobs:               DefaultJobs,
	}
}

// MarkupOptions returns the engine options described by c. Collaborators
// such as the image registry are left for the caller to fill in.
func (c *Config) MarkupOptions() markup.Options {
	opts := markup.DefaultOptions()
	if c == nil {
		return opts
	}
	if c.TabSize > 0 {
		opts.TabSize = c.TabSize
	}
	opts.TOCIncludeHeadings = valueOr(c.TOCIncludeHeadings, markup.DefaultTOCIncludeHeadings)
	opts.Disabled = !valueOr(c.MarkdownSupport, true)
	opts.PlantUMLJarPath = c.PlantUMLJarPath
	opts.HaveDot = valueOr(c.HaveDot, false)
	opts.ExtLinksInWindow = valueOr(c.ExtLinksInWindow, false)
	return opts
}

// InferLanguage reports whether untagged fenced blocks get a guessed language.
func (c *Config) InferLanguage() bool {
	return c != nil && valueOr(c.InferCodeLanguage, false)
}

func ptr[T any](v T) *T { return &v }

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
