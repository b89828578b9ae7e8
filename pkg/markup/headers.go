package markup

import (
	"fmt"
	"regexp"
	"strings"
)

// titleIDPattern matches a trailing `{#id}` anchor on a heading.
var titleIDPattern = regexp.MustCompile(`\{#(\pL[\pL\pN_-]*)\}\s*$`)

// Section commands by heading level.
var sectionCommands = [...]string{"", "@section ", "@subsection ", "@subsubsection ", "@paragraph "}

// isHeaderline returns the heading level when the first line of data is a
// Setext underline (`===` or `---`), adjusted by the indent level, else 0.
// With allowAdjust set, a level-1 underline undoes title promotion.
func (e *Engine) isHeaderline(data []byte, allowAdjust bool) int {
	i := leadingSpaces(data)
	c := at(data, i)
	if c != '=' && c != '-' {
		return 0
	}
	run := 0
	for i < len(data) && data[i] == c {
		i++
		run++
	}
	for i < len(data) && data[i] == ' ' {
		i++
	}
	if run < 2 || (i < len(data) && data[i] != '\n') {
		return 0
	}
	if c == '-' {
		return e.indentLevel + 2
	}
	if allowAdjust && e.indentLevel == -1 {
		e.indentLevel = 0
	}
	return e.indentLevel + 1
}

// isAtxHeader parses a `#` heading on the first line of data. It returns
// the adjusted level (0 when the line is not a heading), the heading text
// and its anchor id.
func (e *Engine) isAtxHeader(data []byte, allowAdjust bool) (int, string, string) {
	size := len(data)
	i := leadingSpaces(data)
	if at(data, i) != '#' {
		return 0, "", ""
	}
	level := 0
	for i < size && level < 6 && data[i] == '#' {
		i++
		level++
	}
	blanks := 0
	for i < size && data[i] == ' ' {
		i++
		blanks++
	}
	// `#word` is a reference, not a heading.
	if level == 1 && blanks == 0 {
		return 0, "", ""
	}

	end := i
	for end < size && data[end] != '\n' {
		end++
	}
	for end > i && (data[end-1] == '#' || data[end-1] == ' ') {
		end--
	}

	header, id := e.extractTitleID(string(data[i:end]), level)
	if id != "" {
		header = strings.TrimRight(header, "# ")
	}

	if allowAdjust && level == 1 && e.indentLevel == -1 {
		e.indentLevel = 0
	}
	return level + e.indentLevel, header, id
}

// extractTitleID splits a trailing `{#id}` off title. Without one, headings
// up to the configured depth get a generated id.
func (e *Engine) extractTitleID(title string, level int) (string, string) {
	if m := titleIDPattern.FindStringSubmatchIndex(title); m != nil {
		return title[:m[0]], title[m[2]:m[3]]
	}
	if level > 0 && level <= e.opts.TOCIncludeHeadings {
		return title, e.ids.Next()
	}
	return title, ""
}

// isHRuler reports whether line is a horizontal rule: three or more of the
// same `*`, `-` or `_`, optionally separated by spaces.
func isHRuler(line []byte) bool {
	size := len(line)
	if size > 0 && line[size-1] == '\n' {
		size--
	}
	i := leadingSpaces(line[:size])
	if i >= size {
		return false
	}
	c := line[i]
	if c != '*' && c != '-' && c != '_' {
		return false
	}
	n := 0
	for ; i < size; i++ {
		switch line[i] {
		case c:
			n++
		case ' ':
		default:
			return false
		}
	}
	return n >= 3
}

// hasLineBreak reports whether a non-blank line ends in two spaces.
func hasLineBreak(line []byte) bool {
	i, nonBlank := 0, 0
	for i < len(line) && line[i] != '\n' {
		if line[i] != ' ' && line[i] != '\t' {
			nonBlank++
		}
		i++
	}
	if i >= len(line) || i < 2 {
		return false
	}
	return nonBlank > 0 && line[i-1] == ' ' && line[i-2] == ' '
}

// writeOneLineHeaderOrRuler writes a single line that is a rule, an ATX
// heading or plain text.
func (e *Engine) writeOneLineHeaderOrRuler(line []byte) {
	if isHRuler(line) {
		e.out.WriteString("<hr>\n")
		return
	}
	if level, header, id := e.isAtxHeader(line, true); level > 0 {
		if level < len(sectionCommands) && id != "" {
			e.out.WriteString(sectionCommands[level] + id + " " + header + "\n")
			return
		}
		if id != "" {
			e.out.WriteString(`\anchor ` + id + lineBreakToken + " ")
		}
		fmt.Fprintf(&e.out, "<h%d>%s</h%d>\n", level, header, level)
		return
	}
	if len(line) == 0 {
		return
	}
	n := len(line)
	if line[n-1] == '\n' {
		n--
	}
	e.out.Write(line[:n])
	if hasLineBreak(line) {
		e.out.WriteString("<br>")
	}
	if n != len(line) {
		e.out.WriteByte('\n')
	}
}

// writeSetextHeader writes the heading whose text is line and whose
// underline gave level.
func (e *Engine) writeSetextHeader(line []byte, level int) {
	text := strings.TrimRight(string(line[leadingSpaces(line):]), "\n")
	header, id := e.extractTitleID(text, level)
	header = strings.TrimRight(header, " ")
	switch {
	case header == "":
		e.out.WriteString("\n<hr>\n")
	case id != "":
		cmd := sectionCommands[2]
		if level == 1 {
			cmd = sectionCommands[1]
		}
		e.out.WriteString(cmd + id + " " + header + "\n\n")
	case level == 1:
		e.out.WriteString("<h1>" + header + "\n</h1>\n")
	default:
		e.out.WriteString("<h2>" + header + "\n</h2>\n")
	}
}
