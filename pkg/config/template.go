package config

import (
	"bytes"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value. Otherwise the
	// settings are written commented out.
	Full bool
}

// SettingInfo documents one configuration key.
type SettingInfo struct {
	Key         string
	Description string
	// Default is the YAML text of the default value.
	Default string
}

// Settings returns the documented configuration keys in file order.
func Settings() []SettingInfo {
	return []SettingInfo{
		{"tab_size", "Tab stop width used when expanding tabs.", "4"},
		{"toc_include_headings", "Deepest heading level that gets an anchor and is listed by [TOC]. 0 disables anchors.", "5"},
		{"markdown_support", "Translate Markdown. When false, documents are copied unchanged.", "true"},
		{"plantuml_jar_path", "Path to plantuml.jar. Enables ```plantuml blocks.", `""`},
		{"have_dot", "Graphviz dot is available. Enables ```dot blocks.", "false"},
		{"ext_links_in_window", "Open external links in a new window.", "false"},
		{"image_path", "Directories searched for images referenced by name.", "[]"},
		{"extension_mapping", "Map file extensions to languages, e.g. {txt: markdown}.", "{}"},
		{"use_mdfile_as_mainpage", "Markdown file whose page becomes the main page.", `""`},
		{"strip_from_path", "Prefixes removed from paths before page ids are derived. Defaults to the working directory.", "[]"},
		{"infer_code_language", "Guess the language of fenced blocks without one.", "false"},
		{"ignore", "Glob patterns for files to skip.", "[]"},
	}
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n")

	prefix := "# "
	if opts.Full {
		prefix = ""
	}
	for _, s := range Settings() {
		fmt.Fprintf(&buf, "\n# %s\n", wrapComment(s.Description, commentWrapWidth))
		fmt.Fprintf(&buf, "%s%s: %s\n", prefix, s.Key, s.Default)
	}
	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdcomment configuration
# See: https://github.com/yaklabco/mdcomment`
}
