// Package page turns a whole Markdown file into a single documentation page.
//
// The builder decides how the file declares its page, adds the page or
// mainpage command in front of the translated body and names the page after
// the file when the document does not name it itself.
package page

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yaklabco/mdcomment/pkg/markup"
)

// Command fragments written in front of the page body.
const (
	lineBreak   = `\ilinebr `
	autoIDStart = "autotoc_md"
	idPrefix    = "md_"
)

// mainPageIDs are the explicit ids that turn a page into the main page.
var mainPageIDs = map[string]bool{"mainpage": true, "index": true}

// explicitPagePattern matches the `\page label title` line of a document
// that declares its own page.
var explicitPagePattern = regexp.MustCompile(`[\\@]page[ \t]+(\pL[\w-]*)([^\n]*)\n`)

// Options configures Build.
type Options struct {
	// Markup configures the translation of the page body.
	Markup markup.Options

	// MainPageFile names the file, by base name or path, whose page becomes
	// the main page.
	MainPageFile string

	// StripFromPath lists the directory prefixes removed from file paths
	// before the page id is derived. The working directory is used when empty.
	StripFromPath []string
}

// Page is a translated Markdown file.
type Page struct {
	ID    string
	Title string
	Kind  markup.PageKind

	// Markup is the translated document, starting with its page command.
	Markup []byte

	// StartNewlines is the number of blank lines stripped from the front.
	StartNewlines int
}

// Build translates content, the text of fileName, into a page.
func Build(fileName string, content []byte, opts Options) Page {
	fileID := FileNameToID(fileName, opts.StripFromPath)
	e := markup.New(fileName, 1, 0, opts.Markup)

	pt := e.ExtractPageTitle(content)
	id := pt.ID
	if strings.HasPrefix(id, autoIDStart) {
		id = ""
	}
	if pt.Title != "" {
		e.SetIndentLevel(-1)
	}

	pg := Page{Title: strings.TrimSpace(pt.Title), Kind: markup.DetectExplicitPage(pt.Body)}
	var docs []byte
	switch pg.Kind {
	case markup.ImplicitPage:
		docs, pg = implicitPage(fileName, fileID, id, pt, pg, opts)
	case markup.ExplicitPage:
		docs, pg = explicitPage(fileID, pt.Body, pg)
	case markup.MainPage:
		pg.ID = "index"
		docs = pt.Body
	}

	pg.Markup, pg.StartNewlines = e.Process(docs)
	return pg
}

// implicitPage prepends the page or mainpage command to a document that
// does not declare its own page.
func implicitPage(fileName, fileID, id string, pt markup.PageTitle, pg Page, opts Options) ([]byte, Page) {
	explicitID := id != ""
	if !explicitID {
		id = fileID
	}
	prepend := pt.Prepend

	var head strings.Builder
	switch {
	case isMainPageFile(fileName, opts.MainPageFile):
		pg.Kind = markup.MainPage
		head.WriteString("@mainpage " + pg.Title + lineBreak + "@anchor " + id + lineBreak)
	case mainPageIDs[id]:
		pg.Kind = markup.MainPage
		if pg.Title == "" {
			pg.Title = baseNameNoExt(fileName)
		}
		head.WriteString("@mainpage " + pg.Title + lineBreak + "@anchor " + id + lineBreak)
	default:
		if pg.Title == "" {
			pg.Title = baseNameNoExt(fileName)
			prepend = 0
		}
		head.WriteString("@page " + id + " " + pg.Title + lineBreak)
		if explicitID {
			head.WriteString("@anchor " + fileID + lineBreak)
		}
	}
	pg.ID = id

	docs := make([]byte, 0, prepend+head.Len()+len(pt.Body))
	docs = append(docs, bytes.Repeat([]byte{'\n'}, prepend)...)
	docs = append(docs, head.String()...)
	docs = append(docs, pt.Body...)
	return docs, pg
}

// explicitPage relabels a document's own `\page` command with the file id
// and keeps the original label as an anchor.
func explicitPage(fileID string, body []byte, pg Page) ([]byte, Page) {
	m := explicitPagePattern.FindSubmatchIndex(body)
	if m == nil {
		return body, pg
	}
	label := string(body[m[2]:m[3]])
	rest := body[m[4]:m[5]]

	docs := make([]byte, 0, len(body)+len(fileID)+len(label)+16)
	docs = append(docs, body[:m[2]]...)
	docs = append(docs, fileID...)
	docs = append(docs, rest...)
	docs = append(docs, lineBreak+"@anchor "+label+"\n"...)
	docs = append(docs, body[m[1]:]...)

	pg.ID = fileID
	pg.Title = strings.TrimSpace(string(rest))
	return docs, pg
}

// isMainPageFile reports whether fileName is the configured main page,
// compared by base name or by absolute path.
func isMainPageFile(fileName, mainPage string) bool {
	if mainPage == "" {
		return false
	}
	if filepath.Base(fileName) == mainPage {
		return true
	}
	return absPath(fileName) == absPath(mainPage)
}

// FileNameToID derives a page id from fileName: the path relative to the
// longest matching prefix in stripFromPath, without extension, with every
// byte that cannot appear in an identifier replaced by `_`.
func FileNameToID(fileName string, stripFromPath []string) string {
	name := stripPath(filepath.ToSlash(absPath(fileName)), stripFromPath)
	if dot := strings.LastIndexByte(name, '.'); dot > strings.LastIndexByte(name, '/') {
		name = name[:dot]
	}
	var b strings.Builder
	b.WriteString(idPrefix)
	for i := 0; i < len(name); i++ {
		if c := name[i]; isIDByte(c) {
			b.WriteByte(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// stripPath removes the longest prefix of name found in prefixes, compared
// case-insensitively.
func stripPath(name string, prefixes []string) string {
	if len(prefixes) == 0 {
		if wd, err := os.Getwd(); err == nil {
			prefixes = []string{wd}
		}
	}
	best := 0
	for _, p := range prefixes {
		p = filepath.ToSlash(absPath(p))
		if !strings.HasSuffix(p, "/") {
			p += "/"
		}
		if len(p) > best && len(name) >= len(p) && strings.EqualFold(name[:len(p)], p) {
			best = len(p)
		}
	}
	return name[best:]
}

func isIDByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '_' || c == '$' || c >= 0x80
}

func absPath(name string) string {
	if abs, err := filepath.Abs(name); err == nil {
		return abs
	}
	return name
}

func baseNameNoExt(fileName string) string {
	base := filepath.Base(fileName)
	if dot := strings.LastIndexByte(base, '.'); dot > 0 {
		return base[:dot]
	}
	return base
}
