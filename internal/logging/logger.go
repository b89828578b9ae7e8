// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// prefix is shown in front of every interactive log line.
const prefix = "mdcomment"

//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var (
	defaultMu     sync.Mutex
	defaultLogger *log.Logger
)

// New creates a logger writing logfmt records to w, for output that is
// read by tools rather than people.
func New(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// NewInteractive creates a logger for a terminal: coloured text, a prefix
// and no timestamps.
func NewInteractive(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:    prefix,
		Formatter: log.TextFormatter,
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel maps "debug", "info", "warn" and "error" to a level.
// Unknown names mean info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Default returns the package-level default logger.
func Default() *log.Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewInteractive(os.Stderr, "info")
	}
	return defaultLogger
}

// SetDefault sets the package-level default logger.
func SetDefault(logger *log.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// SetLevel updates the log level of the default logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
