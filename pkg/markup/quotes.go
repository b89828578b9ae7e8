package markup

// processQuotations rewrites `>` quoted sections into blockquote markup.
// Fenced code blocks are converted first so a `>` inside one stays literal.
func (e *Engine) processQuotations(data []byte, refIndent int) {
	size := len(data)
	state := newListState(refIndent)
	i, pi := 0, -1
	for i < size {
		end := findEndOfLine(data, i)
		state.update(data[i:end])

		if pi != -1 {
			if fb, ok := isFencedCodeBlock(data[pi:], state.current); ok {
				e.writeFencedOrDiagram(data[pi:], fb)
				i = pi + fb.offset
				pi = -1
				continue
			}
			if isBlockQuote(data[pi:i], state.current) {
				i = pi + e.writeBlockQuote(data[pi:])
				pi = -1
				continue
			}
			e.out.Write(data[pi:i])
		}
		pi = i
		i = end
	}

	if pi != -1 && pi < size {
		if isBlockQuote(data[pi:], state.current) {
			e.writeBlockQuote(data[pi:])
		} else {
			e.out.Write(data[pi:])
		}
	}
}

// isBlockQuote reports whether line starts a quoted section. A single `>`
// must be followed by a space or the end of the line, so `>=` is not a quote.
func isBlockQuote(line []byte, indent int) bool {
	i := leadingSpaces(line)
	if i >= indent+codeBlockIndent {
		return false
	}
	level := 0
	for i < len(line) && (line[i] == '>' || line[i] == ' ') {
		if line[i] == '>' {
			level++
		}
		i++
	}
	if level > 1 {
		return true
	}
	return level > 0 && i < len(line) && (line[i-1] == ' ' || line[i] == '\n')
}

// writeBlockQuote writes the quoted section at the start of data and returns
// the number of bytes consumed. A line without markers continues the
// current level unless it is blank.
func (e *Engine) writeBlockQuote(data []byte) int {
	size := len(data)
	i, curLevel := 0, 0
	for i < size {
		end := lineEnd(data, i)
		j, level, indent := i, 0, i
		for j < end && (data[j] == ' ' || data[j] == '>') {
			if data[j] == '>' {
				level++
				indent = j + 1
			} else if j > 0 && data[j-1] == '>' {
				indent = j + 1
			}
			j++
		}
		// A trailing '>' directly followed by text is not a marker.
		if j > i && data[j-1] == '>' && j < size && data[j] != '\n' {
			indent--
			level--
		}
		if level == 0 && !isEmptyLine(data[i:end]) {
			level = curLevel
		}

		switch {
		case level > curLevel:
			for range level - 1 - curLevel {
				e.out.WriteString("<blockquote>")
			}
			e.out.WriteString("<blockquote>&zwj;")
		case level < curLevel:
			for range curLevel - level {
				e.out.WriteString("</blockquote>")
			}
		}
		curLevel = level
		if level == 0 {
			break
		}
		e.out.Write(data[indent:end])
		i = end
	}
	for range curLevel {
		e.out.WriteString("</blockquote>")
	}
	return i
}
