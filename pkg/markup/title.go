package markup

import "bytes"

// PageTitle is the title found at the top of a Markdown page.
type PageTitle struct {
	// Title is empty when the page does not start with a heading.
	Title string
	// ID is the explicit `{#id}` of the heading, if any.
	ID string
	// Body is the document with the title lines replaced by as many
	// newlines, so that line numbers are preserved.
	Body []byte
	// Prepend is the number of blank lines in front of the title.
	Prepend int
}

// ExtractPageTitle looks for a Setext or level-1 ATX heading on the first
// non-blank line of docs.
func (e *Engine) ExtractPageTitle(docs []byte) PageTitle {
	size := len(docs)
	i, prepend := 0, 0
	for i < size && (docs[i] == ' ' || docs[i] == '\n') {
		if docs[i] == '\n' {
			prepend++
		}
		i++
	}
	if i >= size {
		return PageTitle{Prepend: prepend}
	}

	end1 := lineEnd(docs, i)
	if end1 < size {
		end2 := lineEnd(docs, end1)
		if e.isHeaderline(docs[end1:], false) > 0 {
			title, id := e.extractTitleID(string(docs[i:end1-1]), 0)
			return PageTitle{
				Title:   title,
				ID:      id,
				Body:    append([]byte("\n\n"), docs[end2:]...),
				Prepend: prepend,
			}
		}
	}
	if level, title, id := e.isAtxHeader(docs[i:end1], false); level > 0 {
		return PageTitle{
			Title:   title,
			ID:      id,
			Body:    append([]byte("\n"), docs[end1:]...),
			Prepend: prepend,
		}
	}
	return PageTitle{Body: docs, Prepend: prepend}
}

// PageKind tells how a document declares its page.
type PageKind int

const (
	// ImplicitPage documents become a page named after their file.
	ImplicitPage PageKind = iota
	// ExplicitPage documents start with their own `@page` command.
	ExplicitPage
	// MainPage documents start with `@mainpage`.
	MainPage
)

// DetectExplicitPage reports whether docs opens with a `\page` or
// `\mainpage` command, ignoring leading blank space.
func DetectExplicitPage(docs []byte) PageKind {
	rest := bytes.TrimLeft(docs, " \n")
	if len(rest) == 0 || !isCommandChar(rest[0]) {
		return ImplicitPage
	}
	switch name := rest[1:]; {
	case bytes.HasPrefix(name, []byte("page ")):
		return ExplicitPage
	case bytes.HasPrefix(name, []byte("mainpage")):
		return MainPage
	}
	return ImplicitPage
}
