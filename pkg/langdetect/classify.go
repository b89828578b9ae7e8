package langdetect

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// markdownLanguage is the name Classifier uses for Markdown.
const markdownLanguage = "markdown"

// Guesser tags untagged code blocks with the file extension of the language
// Detect finds, e.g. "py" for Python, which is how code blocks name their
// language.
type Guesser struct{}

// GuessLanguage returns the extension for the language of code, or "".
func (Guesser) GuessLanguage(code []byte) string {
	lang := Detect(code)
	if lang == "" {
		return ""
	}
	if exts := enry.GetLanguageExtensions(lang); len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}
	return strings.ToLower(lang)
}

// Classifier names the language of a file from its extension.
// User mappings take precedence over the go-enry extension table.
type Classifier struct {
	mapping map[string]string
}

// NewClassifier returns a classifier with the given extension to language
// mapping. Extensions may be given with or without a leading dot.
func NewClassifier(mapping map[string]string) *Classifier {
	c := &Classifier{mapping: make(map[string]string, len(mapping))}
	for ext, lang := range mapping {
		c.mapping[normalizeExt(ext)] = strings.ToLower(strings.TrimSpace(lang))
	}
	return c
}

// Language returns the lowercase language of fileName, or "" when the
// extension is unknown.
func (c *Classifier) Language(fileName string) string {
	ext := normalizeExt(filepath.Ext(fileName))
	if ext == "" {
		return ""
	}
	if c != nil {
		if lang, ok := c.mapping[ext]; ok {
			return lang
		}
	}
	langs := enry.GetLanguagesByExtension(fileName, nil, nil)
	switch {
	case slices.Contains(langs, langMarkdown):
		return markdownLanguage
	case len(langs) > 0:
		return strings.ToLower(langs[0])
	}
	return ""
}

// IsMarkdown reports whether fileName names a Markdown document.
func (c *Classifier) IsMarkdown(fileName string) bool {
	return c.Language(fileName) == markdownLanguage
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
