package markup

import "bytes"

// inlineHandler handles the construct starting at data[off]. It returns the
// number of bytes consumed, or 0 when data[off] is not the start of a
// construct it recognizes. Handlers append their output to the engine.
type inlineHandler func(data []byte, off int) int

// Engine translates the Markdown of one document or comment block.
// An Engine is not safe for concurrent use; create one per document.
type Engine struct {
	fileName    string
	lineNr      int
	indentLevel int
	opts        Options
	ids         *IDSequence
	linkRefs    linkRefs
	out         bytes.Buffer
	handlers    map[byte]inlineHandler
}

// New creates an engine for the document fileName starting at lineNr.
// indentLevel is 0 for plain documents and -1 when the first level-1
// heading should be promoted to the page title.
func New(fileName string, lineNr, indentLevel int, opts Options) *Engine {
	ids := opts.IDs
	if ids == nil {
		ids = NewIDSequence()
	}
	e := &Engine{
		fileName:    fileName,
		lineNr:      lineNr,
		indentLevel: indentLevel,
		opts:        opts,
		ids:         ids,
		linkRefs:    make(linkRefs),
	}
	e.handlers = map[byte]inlineHandler{
		'_':  e.processEmphasis,
		'*':  e.processEmphasis,
		'~':  e.processEmphasis,
		'`':  e.processCodeSpan,
		'\\': e.processSpecialCommand,
		'@':  e.processSpecialCommand,
		'[':  e.processLink,
		'!':  e.processLink,
		'<':  e.processHTMLTag,
		'-':  e.processNmdash,
		'"':  e.processQuoted,
	}
	return e
}

// FileName returns the name of the document being translated.
func (e *Engine) FileName() string { return e.fileName }

// LineNr returns the line the document starts at.
func (e *Engine) LineNr() int { return e.lineNr }

// IndentLevel returns the current heading offset.
func (e *Engine) IndentLevel() int { return e.indentLevel }

// SetIndentLevel sets the heading offset used for the next Process call.
func (e *Engine) SetIndentLevel(level int) { e.indentLevel = level }

// LinkRef returns the link reference defined for label, if any.
func (e *Engine) LinkRef(label string) (LinkRef, bool) {
	return e.linkRefs.lookup(label)
}

// Process translates input and returns the markup together with the
// number of leading newlines that were stripped from it.
func (e *Engine) Process(input []byte) ([]byte, int) {
	if len(input) == 0 || e.opts.Disabled {
		return input, 0
	}

	s := input
	if s[len(s)-1] != '\n' {
		s = append(s[:len(s):len(s)], '\n')
	}

	s, refIndent := detab(s, e.opts.TabSize)
	s = e.stage(func() { e.processQuotations(s, refIndent) })
	s = e.stage(func() { e.processBlocks(s, refIndent) })
	s = e.stage(func() { e.processInline(s) })

	result := bytes.ReplaceAll(s, []byte(doxyNbsp), []byte("&nbsp;"))
	return trimLeading(result)
}

// stage runs fn against an empty output buffer and returns what it wrote.
func (e *Engine) stage(fn func()) []byte {
	e.out.Reset()
	fn()
	return bytes.Clone(e.out.Bytes())
}

// trimLeading strips leading spaces, then leading newlines, then a single
// `<br>`, and returns the number of newlines removed.
func trimLeading(b []byte) ([]byte, int) {
	i := 0
	for i < len(b) && b[i] == ' ' {
		i++
	}
	newlines := 0
	for i < len(b) && b[i] == '\n' {
		newlines++
		i++
	}
	if bytes.HasPrefix(b[i:], []byte("<br>")) {
		i += len("<br>")
	}
	return b[i:], newlines
}
