package markup

// span returns data[from:to], or nil when the range is empty or inverted.
func span(data []byte, from, to int) []byte {
	if from < 0 || to > len(data) || from >= to {
		return nil
	}
	return data[from:to]
}

// isCodeBlock reports whether the line data[lineStart:lineEnd] starts an
// indented code block. The reference indent is raised to that of the text
// two lines up (list markers excluded) when the line in between is blank,
// so code nested in a list item needs to be indented past the item text.
// It returns the reference indent to use for the block.
func isCodeBlock(data []byte, lineStart, lineEnd, indent int) (int, bool) {
	line := data[lineStart:lineEnd]
	indent0 := leadingSpaces(line)
	if indent0 < codeBlockIndent {
		return indent, false
	}
	if indent0 >= len(line) || line[indent0] == '\n' {
		return indent, false
	}

	// Starts of the current line and of the two lines above it.
	var nlPos [3]int
	nl := 0
	k := lineStart - 1
	for ; k >= 0 && nl < 3; k-- {
		if n := isNewline(data, k); n > 0 {
			nlPos[nl] = k + n
			nl++
		}
	}
	if k < 0 && nl == 2 {
		nlPos[nl] = 0
		nl++
	}

	if nl == 3 {
		if !isEmptyLine(span(data, nlPos[1], nlPos[0]-1)) {
			return indent, false
		}
		indent = max(indent, indentExcludingListMarkers(span(data, nlPos[2], nlPos[1])))
		return indent, indent0 >= indent+codeBlockIndent
	}
	if nl == 1 && !isEmptyLine(span(data, 0, lineStart-1)) {
		return indent, false
	}
	return indent, indent0 >= indent+codeBlockIndent
}

// writeCodeBlock writes the indented code block at the start of data as an
// `@iverbatim` section and returns the number of bytes consumed. Blank lines
// inside the block are kept; trailing ones are emitted after the block.
func (e *Engine) writeCodeBlock(data []byte, refIndent int) int {
	e.out.WriteString("@iverbatim\n")
	emptyLines := 0
	i := 0
	for i < len(data) {
		end := lineEnd(data, i)
		indent := leadingSpaces(data[i:end])
		j := i + indent
		switch {
		case j == end || data[j] == '\n':
			emptyLines++
		case indent >= refIndent+codeBlockIndent:
			e.writeNewlines(emptyLines)
			emptyLines = 0
			e.out.Write(data[i+refIndent+codeBlockIndent : end])
		default:
			e.out.WriteString("@endiverbatim" + lineBreakToken + " ")
			e.writeNewlines(emptyLines)
			return i
		}
		i = end
	}
	e.out.WriteString("@endiverbatim" + lineBreakToken + " ")
	e.writeNewlines(emptyLines)
	return i
}

func (e *Engine) writeNewlines(n int) {
	for range n {
		e.out.WriteByte('\n')
	}
}
