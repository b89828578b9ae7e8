package markup

import (
	"bytes"
	"strings"
)

// fencedBlock locates a fenced code block relative to its opening line.
type fencedBlock struct {
	lang   string
	start  int // newline ending the opening fence
	end    int // first byte of the closing fence run
	offset int // end of the closing fence line, excluding its newline
}

// isFencedCodeBlock reports whether data starts with a fenced code block:
// at least three `~` or backticks, an optional `{lang}` or `lang`, and a
// closing line holding a run of the same character at least as long.
func isFencedCodeBlock(data []byte, refIndent int) (fencedBlock, bool) {
	size := len(data)
	i := leadingSpaces(data)
	if i >= refIndent+codeBlockIndent {
		return fencedBlock{}, false
	}

	fence := byte('~')
	if at(data, i) == '`' {
		fence = '`'
	}
	run := 0
	for i < size && data[i] == fence {
		run++
		i++
	}
	if run < 3 {
		return fencedBlock{}, false
	}

	if at(data, i) == '{' {
		i++
	}
	langStart := i
	for i < size && data[i] != '\n' && data[i] != '}' && data[i] != ' ' {
		i++
	}
	lang := string(data[langStart:i])
	for i < size && data[i] != '\n' {
		i++
	}
	start := i

	for i < size {
		lineStart := i + 1
		j := lineStart + leadingSpaces(data[lineStart:])
		k := j
		for k < size && data[k] == fence {
			k++
		}
		m := k
		for m < size && data[m] == ' ' {
			m++
		}
		if k-j >= run && (m == size || data[m] == '\n') {
			return fencedBlock{lang: lang, start: start, end: j, offset: m}, true
		}
		next := bytes.IndexByte(data[lineStart:], '\n')
		if next < 0 {
			break
		}
		i = lineStart + next
	}
	return fencedBlock{}, false
}

// writeFencedCodeBlock writes the block as an `@icode` command, keeping the
// indentation in front of the opening fence.
func (e *Engine) writeFencedCodeBlock(data []byte, fb fencedBlock) {
	lang := strings.TrimPrefix(fb.lang, ".")
	code := data[fb.start:fb.end]
	if lang == "" && e.opts.CodeGuess != nil {
		lang = e.opts.CodeGuess.GuessLanguage(code)
	}

	for k := 0; k < len(data) && (data[k] == ' ' || data[k] == '\t'); k++ {
		e.out.WriteByte(data[k])
	}
	e.out.WriteString("@icode")
	if lang != "" {
		e.out.WriteString("{" + lang + "}")
	}
	e.writeNbspRestored(code)
	e.out.WriteString("@endicode")
}

// writeFencedOrDiagram wraps blocks tagged with an enabled diagram tool in
// that tool's commands and writes every other block as code.
func (e *Engine) writeFencedOrDiagram(data []byte, fb fencedBlock) {
	switch {
	case fb.lang == "plantuml" && e.opts.PlantUMLJarPath != "":
		e.writeDiagram(data, fb, "startuml", "enduml")
	case fb.lang == "dot" && e.opts.HaveDot:
		e.writeDiagram(data, fb, "dot", "enddot")
	case fb.lang == "msc":
		e.writeDiagram(data, fb, "msc", "endmsc")
	default:
		e.writeFencedCodeBlock(data, fb)
	}
}

// writeDiagram emits the block body between startCmd and endCmd unless the
// body already opens with startCmd.
func (e *Engine) writeDiagram(data []byte, fb fencedBlock, startCmd, endCmd string) {
	body := string(data[min(fb.start+1, fb.end):fb.end])
	ii := 0
	for ii < len(body) && isSpace(body[ii]) {
		ii++
	}
	if ii+len(startCmd) >= len(body) ||
		!isCommandChar(body[ii]) ||
		!strings.HasPrefix(body[ii+1:], startCmd) {
		body = "@" + startCmd + lineBreakToken + " " + body + " @" + endCmd
	}
	e.processSpecialCommand([]byte(body), 0)
}

// isSpace reports whether b is ASCII white space.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
