package configloader

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/mdcomment/pkg/config"
)

// maxTOCIncludeHeadings is the largest accepted toc_include_headings.
const maxTOCIncludeHeadings = 99

// Sentinel errors for validation failures, matched via errors.Is.
var (
	ErrInvalidTabSize  = errors.New("invalid tab size")
	ErrInvalidTOCLevel = errors.New("invalid toc level")
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrInvalidJobs     = errors.New("invalid jobs")
	ErrInvalidPattern  = errors.New("invalid glob pattern")
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the config key, e.g. "tab_size" or "ignore[2]".
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the problem.
	Message string

	// FilePath is the config file containing the error, if known.
	FilePath string

	// Err is the sentinel the error matches, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// Unwrap returns the sentinel error.
func (e *ValidationError) Unwrap() error { return e.Err }

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues, e.g. a missing image directory.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, sentinel error, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field: field, Value: value, Err: sentinel, Message: fmt.Sprintf(format, args...),
	})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{
		Field: field, Value: value, Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.TabSize < 1 {
		result.fail("tab_size", cfg.TabSize, ErrInvalidTabSize, "tab_size must be >= 1")
	}
	if lvl := cfg.TOCIncludeHeadings; lvl != nil && (*lvl < 0 || *lvl > maxTOCIncludeHeadings) {
		result.fail("toc_include_headings", *lvl, ErrInvalidTOCLevel,
			"toc_include_headings must be between 0 and %d", maxTOCIncludeHeadings)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, ErrInvalidFormat,
			"invalid format %q; must be one of: text, json", cfg.Format)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, ErrInvalidJobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, ErrInvalidPattern,
				"invalid glob pattern %q", pattern)
		}
	}

	for i, dir := range cfg.ImagePath {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			result.warn(fmt.Sprintf("image_path[%d]", i), dir, "image directory %q does not exist", dir)
		}
	}
	if jar := cfg.PlantUMLJarPath; jar != "" && !fileExists(jar) {
		result.warn("plantuml_jar_path", jar, "plantuml jar %q does not exist; plantuml blocks stay enabled", jar)
	}
	for ext, lang := range cfg.ExtensionMapping {
		if strings.TrimSpace(lang) == "" {
			result.warn("extension_mapping."+ext, lang, "empty language for extension %q", ext)
		}
	}

	return result
}

// ValidateWithFile validates configuration and records filePath in findings.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
