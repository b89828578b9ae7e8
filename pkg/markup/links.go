package markup

import (
	"fmt"
	"path/filepath"
	"strings"
)

// urlSchemes are the schemes that mark a link target as a URL.
var urlSchemes = map[string]bool{
	"http": true, "https": true, "ftp": true, "ftps": true, "sftp": true,
	"file": true, "news": true, "irc": true, "ircs": true,
}

func isURL(link string) bool {
	link = strings.TrimSpace(link)
	scheme, _, ok := strings.Cut(link, ":")
	return ok && urlSchemes[scheme]
}

// imageFormats are the output formats an image is registered for.
var imageFormats = []string{"html", "latex", "rtf", "docbook", "xml"}

// parsedLink is a link or image after its syntax has been read.
type parsedLink struct {
	image         bool
	inline        bool
	toc           bool
	content       string
	link          string
	title         string
	explicitTitle bool
	attributes    string
	newlines      int
}

// processLink translates inline links, reference links, images and `[TOC]`.
func (e *Engine) processLink(data []byte, off int) int {
	pl, n := e.parseLink(data, off)
	if n == 0 {
		return 0
	}
	switch {
	case pl.toc:
		if lvl := e.opts.TOCIncludeHeadings; lvl > 0 && lvl <= maxTOCLevel {
			fmt.Fprintf(&e.out, "@tableofcontents{html:%d}", lvl)
		}
	case pl.image:
		e.writeImageLink(pl)
	default:
		if !e.writeLink(pl) {
			return 0
		}
	}
	return n
}

// parseLink reads the link starting at data[off]. It returns the number of
// bytes the link spans, or 0 when there is no link.
func (e *Engine) parseLink(data []byte, off int) (parsedLink, int) {
	var pl parsedLink
	d := data[off:]
	size := len(d)
	i := 1
	if d[0] == '!' {
		pl.image = true
		if size < 2 || d[1] != '[' {
			return pl, 0
		}
		// An image with text before it on its line, or the line above, is
		// rendered inline.
		need := 2
		for pos := off - 1; pos >= 0 && need > 0; pos-- {
			if data[pos] == '\n' {
				need--
			} else if data[pos] != ' ' {
				pl.inline = true
				break
			}
		}
		i++
	}

	contentStart := i
	level, nl := 1, 0
	for i < size {
		if d[i-1] != '\\' {
			if d[i] == '[' {
				level++
			} else if d[i] == ']' {
				level--
				if level <= 0 {
					break
				}
			} else if d[i] == '\n' {
				nl++
				if nl > 1 {
					return pl, 0
				}
			}
		}
		i++
	}
	pl.newlines += nl
	if i >= size {
		return pl, 0
	}
	contentEnd := i
	pl.content = string(d[contentStart:contentEnd])
	if !pl.image && pl.content == "" {
		return pl, 0
	}
	i++

	ws := false
	for i < size && d[i] == ' ' {
		ws = true
		i++
	}
	if i < size && d[i] == '\n' {
		ws = true
		pl.newlines++
		i = skipSpaces(d, i+1)
	}
	if ws && i < size && (d[i] == '(' || d[i] == '[') {
		return pl, 0
	}

	switch {
	case i < size && d[i] == '(':
		if i = e.parseInlineTarget(d, i+1, &pl); i == 0 {
			return pl, 0
		}
	case i < size && d[i] == '[':
		i++
		linkStart := i
		nl = 0
		for i < size && d[i] != ']' {
			if d[i] == '\n' {
				nl++
				if nl > 1 {
					return pl, 0
				}
			}
			i++
		}
		if i >= size {
			return pl, 0
		}
		label := strings.TrimSpace(string(d[linkStart:i]))
		if label == "" {
			label = pl.content
		}
		ref, ok := e.linkRefs.lookup(label)
		if !ok {
			return pl, 0
		}
		pl.link, pl.title = ref.Link, ref.Title
		i++
	case at(d, i) != ':' && pl.content != "":
		if ref, ok := e.linkRefs.lookup(pl.content); ok {
			pl.link, pl.title = ref.Link, ref.Title
			pl.explicitTitle = true
		} else if pl.content == "TOC" {
			pl.toc = true
		} else {
			return pl, 0
		}
		i = contentEnd + 1
	default:
		return pl, 0
	}

	if pl.image {
		var ok bool
		if i, ok = e.parseImageAttributes(d, i, &pl); !ok {
			return pl, 0
		}
	}
	return pl, i
}

// parseInlineTarget reads `url "title")` starting at i, just after the
// opening parenthesis, and returns the position after the closing one.
func (e *Engine) parseInlineTarget(d []byte, i int, pl *parsedLink) int {
	size := len(d)
	i = skipSpaces(d, i)
	angled := false
	if i < size && d[i] == '<' {
		angled = true
		i++
	}
	linkStart := i
	nl, braces := 0, 1
	for i < size && d[i] != '\'' && d[i] != '"' && braces > 0 {
		switch d[i] {
		case '\n':
			nl++
			if nl > 1 {
				return 0
			}
		case '(':
			braces++
		case ')':
			braces--
		}
		if braces > 0 {
			i++
		}
	}
	pl.newlines += nl
	if i >= size || d[i] == '\n' {
		return 0
	}
	pl.link = strings.TrimSpace(string(d[linkStart:i]))
	if pl.link == "" {
		return 0
	}
	if angled {
		pl.link = strings.TrimSuffix(pl.link, ">")
	}

	if q := d[i]; q == '\'' || q == '"' {
		i++
		titleStart := i
		nl = 0
		for i < size {
			if d[i] == '\n' {
				if nl > 1 {
					return 0
				}
				nl++
			} else if d[i] == '\\' {
				i++
			} else if d[i] == q {
				i++
				break
			}
			i++
		}
		if i >= size {
			return 0
		}
		titleEnd := i - 1
		for titleEnd > titleStart && d[titleEnd] == ' ' {
			titleEnd--
		}
		if d[titleEnd] != q {
			return 0
		}
		pl.title = string(d[titleStart:titleEnd])
		pl.explicitTitle = true
		for i < size && d[i] != ')' {
			if d[i] != ' ' {
				return 0
			}
			i++
		}
		if i >= size {
			return 0
		}
	}
	return i + 1
}

// parseImageAttributes reads an optional `{...}` attribute list after an
// image and decides whether a block image is followed by text on its line.
func (e *Engine) parseImageAttributes(d []byte, i int, pl *parsedLink) (int, bool) {
	size := len(d)
	if j := skipSpaces(d, i); j < size && d[j] == '{' {
		i = j + 1
		start := i
		level, nl := 1, 0
		for i < size {
			if d[i-1] != '\\' {
				if d[i] == '{' {
					level++
				} else if d[i] == '}' {
					level--
					if level <= 0 {
						break
					}
				} else if d[i] == '\n' {
					nl++
					if nl > 1 {
						return 0, false
					}
				}
			}
			i++
		}
		pl.newlines += nl
		if i >= size {
			return 0, false
		}
		pl.attributes = string(d[start:i])
		i++
	}
	if !pl.inline {
		need := 2
		for pos := i; pos < size && need > 0; pos++ {
			if d[pos] == '\n' {
				need--
			} else if d[pos] != ' ' {
				pl.inline = true
				break
			}
		}
	}
	return i, true
}

// refCommandIndex returns the position of an explicit `@ref ` or `\ref `
// in link, or -1.
func refCommandIndex(link string) int {
	if i := strings.Index(link, "@ref "); i >= 0 {
		return i
	}
	return strings.Index(link, `\ref `)
}

// writeImageLink writes an image as an `@image` command per output format
// when the image is known and as an `<img>` tag otherwise.
func (e *Engine) writeImageLink(pl parsedLink) {
	link := pl.link
	known := false
	if p := refCommandIndex(link); p >= 0 {
		link, known = link[p+len("@ref "):], true
	} else if e.opts.Images != nil {
		_, known = e.opts.Images.Lookup(link)
	}
	if !known {
		e.out.WriteString(`<img src="` + link + `" alt="` + pl.content + `"`)
		if pl.title != "" {
			e.out.WriteString(` title="` + strings.ReplaceAll(collapseSpace(pl.title), `"`, "&quot;") + `"`)
		}
		e.out.WriteString("/>")
		return
	}
	for _, format := range imageFormats {
		e.writeImageCommand(format, pl, link)
	}
}

func (e *Engine) writeImageCommand(format string, pl parsedLink, link string) {
	attributes := filteredImageAttributes(format, pl.attributes)
	e.out.WriteString("@image")
	if pl.inline {
		e.out.WriteString("{inline}")
	}
	e.out.WriteString(" " + format + " " + link)
	switch {
	case !pl.explicitTitle && pl.content != "":
		e.out.WriteString(` "` + escapeDoubleQuotes(pl.content) + `"`)
	case (pl.content == "" || pl.explicitTitle) && pl.title != "":
		e.out.WriteString(` "` + escapeDoubleQuotes(pl.title) + `"`)
	default:
		e.out.WriteString(" ")
	}
	if attributes != "" {
		e.out.WriteString(" " + attributes + " ")
	}
	e.out.WriteString(lineBreakToken + " ")
}

// writeLink writes a non-image link. It reports false when the target is
// neither a reference, a Markdown page, an anchor nor a path or URL.
func (e *Engine) writeLink(pl parsedLink) bool {
	link := pl.link
	ref := refCommandIndex(link) >= 0
	isPage := e.opts.Languages != nil && e.opts.Languages.IsMarkdown(link)
	switch {
	case ref || (isPage && !isURL(link)):
		if !ref {
			e.out.WriteString("@ref ")
			link = e.resolvePageLink(link)
		}
		text := pl.content
		if pl.explicitTitle && pl.title != "" {
			text = pl.title
		}
		e.out.WriteString(link + ` "` + strings.ReplaceAll(text, `"`, `\"`) + `"`)
	case strings.ContainsAny(link, "/.#"):
		if link[0] == '#' {
			e.out.WriteString("@ref " + link[1:] + ` "` +
				strings.ReplaceAll(collapseSpace(pl.content), `"`, `\"`) + `"`)
			return true
		}
		e.out.WriteString(`<a href="` + link + `"`)
		e.out.WriteString(strings.Repeat("\n", pl.newlines))
		if pl.title != "" {
			e.out.WriteString(` title="` + strings.ReplaceAll(collapseSpace(pl.title), `"`, "&quot;") + `"`)
		}
		e.out.WriteString(" " + e.opts.externalLinkTarget() + ">")
		content := strings.ReplaceAll(collapseSpace(pl.content), `"`, `\"`)
		e.processInline([]byte(content))
		e.out.WriteString("</a>")
	default:
		return false
	}
	return true
}

// resolvePageLink turns a relative Markdown page link into an absolute path
// when the file exists, trying the link as given and then relative to the
// directory of the current document.
func (e *Engine) resolvePageLink(link string) string {
	if e.opts.Files == nil || filepath.IsAbs(link) {
		return link
	}
	if abs, ok := e.opts.Files.Resolve(link); ok {
		return abs
	}
	if abs, ok := e.opts.Files.Resolve(filepath.Join(filepath.Dir(e.fileName), link)); ok {
		return abs
	}
	return link
}

// filteredImageAttributes picks the attributes for format from a comma
// separated list of `format:attrs` entries. An entry without a format
// applies to every format.
func filteredImageAttributes(format, attrs string) string {
	for _, attr := range strings.Split(attrs, ",") {
		attr = strings.TrimSpace(attr)
		if attr == "" {
			continue
		}
		name, value, ok := strings.Cut(attr, ":")
		if !ok {
			return attr
		}
		if strings.ToLower(strings.TrimSpace(name)) == format {
			return value
		}
	}
	return ""
}

// escapeDoubleQuotes escapes `"` unless it is already escaped.
func escapeDoubleQuotes(s string) string {
	var b strings.Builder
	var prev byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' && prev != '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
		prev = c
	}
	return b.String()
}
