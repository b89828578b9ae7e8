// Package langdetect names the language of code snippets and files.
// It backs two collaborators of the translator: the guesser that tags
// fenced code blocks written without a language, and the classifier that
// decides whether a link points at another Markdown page.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names as reported by go-enry.
const (
	langGo         = "Go"
	langPython     = "Python"
	langJavaScript = "JavaScript"
	langJSON       = "JSON"
	langYAML       = "YAML"
	langHTML       = "HTML"
	langSQL        = "SQL"
	langRust       = "Rust"
	langDockerfile = "Dockerfile"
	langMarkdown   = "Markdown"
)

// classifierCandidates limits the statistical classifier to languages that
// commonly appear in documentation.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// sample is a snippet prepared once for all pattern rules.
type sample struct {
	raw     []byte
	trimmed []byte
	text    string
	upper   string
}

func newSample(content []byte) sample {
	trimmed := bytes.TrimSpace(content)
	return sample{
		raw:     content,
		trimmed: trimmed,
		text:    string(content),
		upper:   strings.ToUpper(string(trimmed)),
	}
}

// patternRule recognizes a language from distinctive text.
type patternRule struct {
	lang  string
	match func(s sample) bool
}

// patternRules are tried in order; earlier rules are more specific.
var patternRules = []patternRule{
	{langGo, func(s sample) bool {
		return bytes.HasPrefix(s.trimmed, []byte("package "))
	}},
	{langPython, isPython},
	{langHTML, func(s sample) bool {
		lower := bytes.ToLower(s.trimmed)
		for _, tag := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
			if bytes.Contains(lower, []byte(tag)) {
				return true
			}
		}
		return false
	}},
	{langJSON, func(s sample) bool {
		return (bytes.HasPrefix(s.trimmed, []byte("{")) || bytes.HasPrefix(s.trimmed, []byte("["))) &&
			bytes.Contains(s.trimmed, []byte(`"`))
	}},
	{langDockerfile, func(s sample) bool {
		return bytes.HasPrefix(s.trimmed, []byte("FROM ")) ||
			(bytes.Contains(s.raw, []byte("\nFROM ")) && bytes.Contains(s.raw, []byte("\nRUN "))) ||
			(bytes.Contains(s.raw, []byte("WORKDIR ")) && bytes.Contains(s.raw, []byte("COPY ")))
	}},
	{langSQL, func(s sample) bool {
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(s.upper, kw) {
				return true
			}
		}
		return false
	}},
	{langRust, func(s sample) bool {
		return strings.Contains(s.text, "fn main()") ||
			strings.Contains(s.text, "println!") ||
			strings.Contains(s.text, "let mut ")
	}},
	{langJavaScript, func(s sample) bool {
		return strings.Contains(s.text, "=>") ||
			strings.Contains(s.text, "const ") ||
			strings.Contains(s.text, "let ") ||
			strings.Contains(s.text, "console.log")
	}},
	{langYAML, isYAML},
}

// Detect returns the go-enry name of the language of content, or "" when
// it cannot be told with confidence.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}

	s := newSample(content)
	for _, rule := range patternRules {
		if rule.match(s) {
			return rule.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe {
		return lang
	}
	return ""
}

func isPython(s sample) bool {
	if strings.Contains(s.text, "def ") && strings.Contains(s.text, "):") {
		return true
	}
	// Go imports use "import (".
	if strings.Contains(s.text, "import ") && !strings.Contains(s.text, "import (") &&
		(strings.Contains(s.text, "from ") || bytes.HasPrefix(s.trimmed, []byte("import "))) {
		return true
	}
	return strings.Contains(s.text, "__name__") || strings.Contains(s.text, "__main__")
}

// isYAML counts `key: value` lines and list items.
func isYAML(s sample) bool {
	count := 0
	for _, line := range bytes.Split(s.raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") && line[0] != '"' {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}
