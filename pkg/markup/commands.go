package markup

import "bytes"

// endBlockFunc returns the command that closes the block opened by name.
type endBlockFunc func(name string, openBracket bool, next byte) string

func endBlock(name string, _ bool, _ byte) string { return "end" + name }

func endCode(name string, openBracket bool, _ byte) string {
	if openBracket {
		return "}"
	}
	return "end" + name
}

func endUML(string, bool, byte) string { return "enduml" }

func endFormula(_ string, _ bool, next byte) string {
	switch next {
	case '$':
		return "f$"
	case '(':
		return "f)"
	case '[':
		return "f]"
	case '{':
		return "f}"
	}
	return ""
}

// blockCommands maps commands whose content is copied unprocessed to the
// function computing their end marker.
var blockCommands = map[string]endBlockFunc{
	"dot":         endBlock,
	"code":        endCode,
	"icode":       endBlock,
	"msc":         endBlock,
	"verbatim":    endBlock,
	"iverbatim":   endBlock,
	"iliteral":    endBlock,
	"latexonly":   endBlock,
	"htmlonly":    endBlock,
	"xmlonly":     endBlock,
	"rtfonly":     endBlock,
	"manonly":     endBlock,
	"docbookonly": endBlock,
	"startuml":    endUML,
	"f":           endFormula,
}

// isCommandChar reports whether b starts a command.
func isCommandChar(b byte) bool { return b == '\\' || b == '@' }

// commandName returns the end of the lowercase command name that follows
// the command character at data[pos].
func commandName(data []byte, pos int) int {
	end := pos + 1
	for end < len(data) && data[end] >= 'a' && data[end] <= 'z' {
		end++
	}
	return end
}

// blockCommandEnd returns the end marker of the block command starting at
// data[pos], or "" when there is none. A command directly after `{` is a
// `{@code ...}` span closed by `}`.
func blockCommandEnd(data []byte, pos int) string {
	c := cursor{data: data, pos: pos}
	if isCommandChar(c.peek(-1)) {
		return ""
	}
	end := commandName(data, pos)
	if end == pos+1 {
		return ""
	}
	fn, ok := blockCommands[string(data[pos+1:end])]
	if !ok {
		return ""
	}
	return fn(string(data[pos+1:end]), c.peek(-1) == '{', at(data, end))
}

// findBlockEnd returns the position of the unescaped command character that
// starts endName at or after from, or -1.
func findBlockEnd(data []byte, from int, endName string) int {
	marker := []byte(endName)
	for j := from; j < len(data)-len(marker); j++ {
		if isCommandChar(data[j]) && !isCommandChar(at(data, j-1)) &&
			bytes.HasPrefix(data[j+1:], marker) {
			return j
		}
	}
	return -1
}

// endArgsFunc returns the position just past the arguments of a command
// whose name ends at off, or 0 when the arguments are malformed.
type endArgsFunc func(data []byte, off int) int

// endOfLine skips to the end of the line, honouring `\` continuations.
func endOfLine(data []byte, off int) int {
	var last byte
	for off < len(data) && (data[off] != '\n' || last == '\\') {
		switch data[off] {
		case '\\':
			last = '\\'
		case ' ':
		default:
			last = 0
		}
		off++
	}
	return off
}

// endOfLabel skips a space separated single word argument.
func endOfLabel(data []byte, off int) int {
	if at(data, off) != ' ' {
		return 0
	}
	off++
	for off < len(data) && data[off] == ' ' {
		off++
	}
	for off < len(data) {
		switch data[off] {
		case ' ', '\\', '@', '\n':
			return off
		}
		off++
	}
	return off
}

// endOfParam skips an optional `[in,out]` direction and the parameter name.
func endOfParam(data []byte, off int) int {
	idx := off
	if at(data, idx) == ' ' {
		idx++
		for idx < len(data) && data[idx] == ' ' {
			idx++
		}
	}
	if at(data, idx) == '[' {
		idx++
		for idx < len(data) && data[idx] != ']' && data[idx] != '\n' {
			idx++
		}
		if at(data, idx) != ']' {
			return 0
		}
		off = idx + 1
	}
	return endOfLabel(data, off)
}

// endOfFuncLike skips a name optionally followed by a balanced argument list.
func endOfFuncLike(data []byte, off int, allowSpaces bool) int {
	if at(data, off) != ' ' {
		return 0
	}
	off++
	for off < len(data) && data[off] == ' ' {
		off++
	}
	var c byte
	for off < len(data) {
		c = data[off]
		if c == '\n' || (!allowSpaces && c == ' ') || c == '(' {
			break
		}
		off++
	}
	if c == '(' {
		depth := 1
		off++
		for off < len(data) {
			c = data[off]
			off++
			switch c {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth == 0 {
				return off
			}
		}
	}
	return off
}

func endOfFunc(data []byte, off int) int  { return endOfFuncLike(data, off, true) }
func endOfGuard(data []byte, off int) int { return endOfFuncLike(data, off, false) }

// argCommands lists commands whose arguments must not be read as Markdown.
var argCommands = map[string]endArgsFunc{
	"a":              endOfLabel,
	"addindex":       endOfLine,
	"addtogroup":     endOfLabel,
	"anchor":         endOfLabel,
	"b":              endOfLabel,
	"c":              endOfLabel,
	"category":       endOfLine,
	"cite":           endOfLabel,
	"class":          endOfLine,
	"concept":        endOfLine,
	"copybrief":      endOfFunc,
	"copydetails":    endOfFunc,
	"copydoc":        endOfFunc,
	"def":            endOfFunc,
	"defgroup":       endOfLabel,
	"diafile":        endOfLine,
	"dir":            endOfLine,
	"docbookinclude": endOfLine,
	"dontinclude":    endOfLine,
	"dotfile":        endOfLine,
	"e":              endOfLabel,
	"elseif":         endOfGuard,
	"em":             endOfLabel,
	"emoji":          endOfLabel,
	"enum":           endOfLabel,
	"example":        endOfLine,
	"exception":      endOfLine,
	"extends":        endOfLabel,
	"file":           endOfLine,
	"fn":             endOfFunc,
	"headerfile":     endOfLine,
	"htmlinclude":    endOfLine,
	"idlexcept":      endOfLine,
	"if":             endOfGuard,
	"ifnot":          endOfGuard,
	"image":          endOfLine,
	"implements":     endOfLine,
	"include":        endOfLine,
	"includedoc":     endOfLine,
	"includelineno":  endOfLine,
	"ingroup":        endOfLabel,
	"interface":      endOfLine,
	"latexinclude":   endOfLine,
	"maninclude":     endOfLine,
	"memberof":       endOfLabel,
	"mscfile":        endOfLine,
	"namespace":      endOfLabel,
	"noop":           endOfLine,
	"overload":       endOfLine,
	"p":              endOfLabel,
	"package":        endOfLabel,
	"page":           endOfLabel,
	"paragraph":      endOfLabel,
	"param":          endOfParam,
	"property":       endOfLine,
	"protocol":       endOfLine,
	"qualifier":      endOfLine,
	"ref":            endOfLabel,
	"refitem":        endOfLine,
	"related":        endOfLabel,
	"relatedalso":    endOfLabel,
	"relates":        endOfLabel,
	"relatesalso":    endOfLabel,
	"retval":         endOfLabel,
	"rtfinclude":     endOfLine,
	"section":        endOfLabel,
	"skip":           endOfLine,
	"skipline":       endOfLine,
	"snippet":        endOfLine,
	"snippetdoc":     endOfLine,
	"snippetlineno":  endOfLine,
	"struct":         endOfLine,
	"subpage":        endOfLabel,
	"subsection":     endOfLabel,
	"subsubsection":  endOfLabel,
	"throw":          endOfLabel,
	"throws":         endOfLabel,
	"tparam":         endOfLabel,
	"typedef":        endOfLine,
	"union":          endOfLine,
	"until":          endOfLine,
	"var":            endOfLine,
	"verbinclude":    endOfLine,
	"weakgroup":      endOfLabel,
	"xmlinclude":     endOfLine,
	"xrefitem":       endOfLabel,
}

// specialCommandEnd returns the position just past the arguments of the
// command starting at data[pos], or 0 when it is not a known command.
func specialCommandEnd(data []byte, pos int) int {
	if isCommandChar(at(data, pos-1)) {
		return 0
	}
	end := commandName(data, pos)
	if end == pos+1 {
		return 0
	}
	fn, ok := argCommands[string(data[pos+1:end])]
	if !ok {
		return 0
	}
	return fn(data, end)
}

// writeNbspRestored writes b with the internal nbsp escape turned back into
// the UTF-8 character, as verbatim blocks must keep the original bytes.
func (e *Engine) writeNbspRestored(b []byte) {
	e.out.Write(bytes.ReplaceAll(b, []byte(doxyNbsp), []byte("\u00a0")))
}

// processSpecialCommand copies block commands and commands with arguments
// unprocessed, and resolves backslash escapes of Markdown punctuation.
func (e *Engine) processSpecialCommand(data []byte, off int) int {
	if endName := blockCommandEnd(data, off); endName != "" {
		if j := findBlockEnd(data, off+1, endName); j >= 0 {
			end := j + 1 + len(endName)
			e.writeNbspRestored(data[off:end])
			return end - off
		}
	}
	if end := specialCommandEnd(data, off); end > 0 {
		e.out.Write(data[off:end])
		return end - off
	}
	if data[off] != '\\' || off+1 >= len(data) {
		return 0
	}
	switch c := data[off+1]; c {
	case '[', ']', '*', '!', '(', ')', '`', '_':
		e.out.WriteByte(c)
		return 2
	case '-':
		if at(data, off+2) == '-' && at(data, off+3) == '-' {
			e.out.WriteString("---")
			return 4
		}
		if at(data, off+2) == '-' {
			e.out.WriteString("--")
			return 3
		}
	}
	return 0
}
