package markup

import "bytes"

// emphKind tells the emphasis resolver what a span parser found.
type emphKind int

const (
	emphNoMatch emphKind = iota
	emphConsumed
	emphDelegate
)

// emphResult is the outcome of parsing a triple delimiter run. A delegate
// result asks the resolver to reparse from offset from of the opening run
// as single (level 1) or double (level 2) emphasis.
type emphResult struct {
	kind  emphKind
	n     int
	level int
	from  int
}

// processEmphasis resolves `*`, `_` and `~` runs into emphasis, strong,
// strike-through or combined markup.
func (e *Engine) processEmphasis(data []byte, off int) int {
	c := cursor{data: data, pos: off}
	d := data[off:]
	size := len(d)
	ch := d[0]

	canFollow := func(b byte) bool { return isIDChar(b) || isExtraChar(b) || b == '[' }
	if (off > 0 && !isOpenEmphChar(c.peek(-1))) ||
		(size > 1 && d[1] != ch && !canFollow(d[1])) ||
		(size > 2 && d[1] == ch && !canFollow(d[2])) {
		return 0
	}

	switch {
	case size > 2 && ch != '~' && d[1] != ch:
		if n := e.emphasis1(d[1:], ch); n > 0 {
			return n + 1
		}
	case size > 3 && d[1] == ch && d[2] != ch:
		if n := e.emphasis2(d[2:], ch); n > 0 {
			return n + 2
		}
	case size > 4 && ch != '~' && d[1] == ch && d[2] == ch && d[3] != ch:
		return e.resolveTriple(d, ch)
	}
	return 0
}

// resolveTriple handles a run of three delimiters at the start of d.
func (e *Engine) resolveTriple(d []byte, ch byte) int {
	res := e.emphasis3(d[3:], ch)
	switch res.kind {
	case emphConsumed:
		return res.n + 3
	case emphDelegate:
		var n int
		if res.level == 1 {
			n = e.emphasis1(d[res.from:], ch)
		} else {
			n = e.emphasis2(d[res.from:], ch)
		}
		if n > 0 {
			return n + res.from
		}
	}
	return 0
}

// emphasis1 parses single emphasis; d starts after the opening delimiter.
func (e *Engine) emphasis1(d []byte, ch byte) int {
	if len(d) == 0 || d[0] == ' ' || d[0] == '\n' {
		return 0
	}
	size := len(d)
	i := 0
	// Coming from a triple run, skip the delimiter left in front.
	if size > 1 && d[0] == ch && d[1] == ch {
		i = 1
	}
	for i < size {
		n := e.findEmphasisChar(d[i:], ch, 1)
		if n == 0 {
			return 0
		}
		i += n
		if i >= size {
			return 0
		}
		if i+1 < size && d[i+1] == ch {
			i++
			continue
		}
		if d[i] == ch && d[i-1] != ' ' && d[i-1] != '\n' {
			e.out.WriteString("<em>")
			e.processInline(d[:i])
			e.out.WriteString("</em>")
			return i + 1
		}
	}
	return 0
}

// emphasis2 parses strong emphasis or, for `~~`, strike-through.
func (e *Engine) emphasis2(d []byte, ch byte) int {
	if len(d) == 0 || d[0] == ' ' || d[0] == '\n' {
		return 0
	}
	open, close := "<strong>", "</strong>"
	if ch == '~' {
		open, close = "<strike>", "</strike>"
	}
	size := len(d)
	i := 0
	for i < size {
		n := e.findEmphasisChar(d[i:], ch, 2)
		if n == 0 {
			return 0
		}
		i += n
		if i+1 < size && d[i] == ch && d[i+1] == ch && d[i-1] != ' ' && d[i-1] != '\n' {
			e.out.WriteString(open)
			e.processInline(d[:i])
			e.out.WriteString(close)
			return i + 2
		}
		i++
	}
	return 0
}

// emphasis3 looks for the closer of a triple run. A triple closer yields
// combined markup; a shorter one is delegated back to the resolver.
func (e *Engine) emphasis3(d []byte, ch byte) emphResult {
	if len(d) == 0 || d[0] == ' ' || d[0] == '\n' {
		return emphResult{}
	}
	size := len(d)
	i := 0
	for i < size {
		n := e.findEmphasisChar(d[i:], ch, 3)
		if n == 0 {
			return emphResult{}
		}
		i += n
		if d[i] != ch || d[i-1] == ' ' || d[i-1] == '\n' {
			continue
		}
		switch {
		case i+2 < size && d[i+1] == ch && d[i+2] == ch:
			e.out.WriteString("<em><strong>")
			e.processInline(d[:i])
			e.out.WriteString("</strong></em>")
			return emphResult{kind: emphConsumed, n: i + 3}
		case i+1 < size && d[i+1] == ch:
			return emphResult{kind: emphDelegate, level: 1, from: 1}
		default:
			return emphResult{kind: emphDelegate, level: 2, from: 2}
		}
	}
	return emphResult{}
}

// acceptsRun reports whether a closing run of length run can end emphasis
// opened with want delimiters. A triple opener also accepts shorter closers,
// which are then delegated.
func acceptsRun(run, want int) bool {
	if want == 3 {
		return run <= 3
	}
	return run == want
}

// findEmphasisChar returns the offset of the closing delimiter run in d,
// searching from offset 1, or 0 when emphasis cannot be closed. Code spans
// and block commands are skipped; an HTML end tag, another command or a
// blank line ends the search.
func (e *Engine) findEmphasisChar(d []byte, ch byte, want int) int {
	size := len(d)
	i := 1
	for i < size {
		for i < size && d[i] != ch && d[i] != '`' && !isCommandChar(d[i]) &&
			!(d[i] == '/' && d[i-1] == '<') && d[i] != '\n' {
			i++
		}

		// Delimiters after an opening bracket or an escape do not close.
		if ignoreCloseEmphChar(cursor{data: d, pos: i - 1}) {
			i++
			continue
		}

		run := 0
		for i+run < size && d[i+run] == ch {
			run++
		}
		if run > 0 {
			// A delimiter inside some_identifier does not close.
			if !acceptsRun(run, want) || (i+run < size && isIDChar(d[i+run])) {
				i += run
				continue
			}
			return i
		}

		switch c := at(d, i); {
		case c == '`':
			open := 0
			for i < size && d[i] == '`' {
				open++
				i++
			}
			closed := 0
			for i < size && closed < open {
				if d[i] == '`' {
					closed++
				}
				if open == 1 && d[i] == '\'' {
					break
				}
				i++
			}
		case isCommandChar(c):
			if endName := blockCommandEnd(d, i); endName != "" {
				j := findBlockEnd(d, i+1, endName)
				if j < 0 {
					return 0
				}
				i = j + 1 + len(endName)
			} else if i < size-1 && isIDChar(d[i+1]) {
				return 0
			} else {
				i++
			}
		case c == '/' && at(d, i-1) == '<':
			return 0
		case c == '\n':
			i++
			for i < size && d[i] == ' ' {
				i++
			}
			if i >= size || d[i] == '\n' {
				return 0
			}
		default:
			i++
		}
	}
	return 0
}

// escapeSpecialChars escapes the characters that have a meaning to the
// command interpreter, outside of double quoted strings.
func escapeSpecialChars(s []byte) string {
	var b bytes.Buffer
	insideQuote := false
	var prev byte
	for k := 0; k < len(s); k++ {
		c := s[k]
		switch c {
		case '"':
			if prev != '\\' {
				insideQuote = !insideQuote
			}
			b.WriteByte(c)
		case '<', '>':
			if insideQuote {
				b.WriteByte(c)
				break
			}
			b.WriteByte('\\')
			b.WriteByte(c)
			if at(s, k+1) == ':' && at(s, k+2) == ':' {
				b.WriteString(`\:`)
				k++
				c = ':'
			}
		case '\\', '@', '#', '$', '&':
			if !insideQuote {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
		prev = c
	}
	return b.String()
}
