package markup

// listState tracks the indentation threshold while scanning lines. It is
// shared by the quotation and block stages.
type listState struct {
	refIndent  int
	current    int
	insideList bool
	newBlock   bool
}

func newListState(refIndent int) listState {
	return listState{refIndent: refIndent, current: refIndent}
}

// update advances the state past line. The checks run in a fixed order:
// list marker, then the end-of-list sentinel, then blank line.
func (s *listState) update(line []byte) {
	if s.newBlock {
		if s.insideList && leadingSpaces(line) < s.current {
			s.current = s.refIndent
			s.insideList = false
		}
		s.newBlock = false
	}

	switch listIndent := isListMarker(line); {
	case listIndent > 0:
		// A marker nested much deeper than the current item is ordinary
		// indented text.
		if listIndent < s.current+codeBlockIndent {
			s.insideList = true
			s.current = listIndent
		}
	case isEndOfList(line):
		s.insideList = false
		s.current = s.refIndent
	case isEmptyLine(line):
		s.newBlock = true
	}
}

// isLiTag reports whether data[i:] starts with a case-insensitive `<li>`.
func isLiTag(data []byte, i int) bool {
	return i+3 < len(data) &&
		data[i] == '<' &&
		(data[i+1] == 'l' || data[i+1] == 'L') &&
		(data[i+2] == 'i' || data[i+2] == 'I') &&
		data[i+3] == '>'
}

// indentExcludingListMarkers returns the indentation of the text on the
// line, skipping at most one list marker (`-`, `+`, `*`, `-#`, `1.` or
// `<li>`) together with the spaces around it.
func indentExcludingListMarkers(data []byte) int {
	i, indent := 0, 0
	skipped := false
	for i < len(data) {
		c := data[i]
		if c != ' ' {
			if skipped {
				break
			}
			isDigit := c >= '1' && c <= '9'
			isLi := !isDigit && isLiTag(data, i)
			isMarker := c == '+' || c == '-' || c == '*' ||
				(c == '#' && at(data, i-1) == '-') ||
				isDigit || isLi
			if !isMarker {
				break
			}

			switch {
			case isDigit:
				// "10. " is a marker, "10.5" is not.
				for j := i + 1; j < len(data) && ((data[j] >= '0' && data[j] <= '9') || data[j] == '.'); j++ {
					if data[j] == '.' {
						if at(data, j+1) == ' ' {
							skipped = true
							indent += j + 1 - i
							i = j + 1
						}
						break
					}
				}
			case isLi:
				i += 3
				indent += 3
				skipped = true
			case c == '-' && at(data, i+1) == '#' && at(data, i+2) == ' ':
				skipped = true
				i++
				indent++
			case at(data, i+1) == ' ':
				skipped = true
			}
			if !skipped {
				break
			}
		}
		indent++
		i++
	}
	return indent
}

// isListMarker returns the indentation of the text after a list marker, or
// 0 when the line does not start with one.
func isListMarker(line []byte) int {
	normal := leadingSpaces(line)
	if listIndent := indentExcludingListMarkers(line); listIndent > normal {
		return listIndent
	}
	return 0
}

// isEndOfList reports whether line consists of a single '.' and blanks.
func isEndOfList(line []byte) bool {
	dots := 0
	for _, b := range line {
		switch b {
		case '.':
			dots++
		case '\n':
			return dots == 1
		case ' ', '\t':
		default:
			return false
		}
	}
	return dots == 1
}
