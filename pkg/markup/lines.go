package markup

// findEndOfLine returns the end (exclusive) of the logical line starting at
// i. Block commands and `<pre>` sections are skipped as a whole, so their
// newlines do not end the line, and a line break inside a backtick span is
// only honoured outside the span.
func findEndOfLine(data []byte, i int) int {
	size := len(data)
	nb := 0
	end := i + 1
	nl := 0
	for end <= size {
		if nl = isNewline(data, end-1); nl > 0 {
			break
		}
		c := data[end-1]
		escaped := isCommandChar(at(data, end-2))
		switch {
		case isCommandChar(c) && !escaped:
			endName := blockCommandEnd(data, end-1)
			end++
			if endName == "" {
				continue
			}
			if j := findBlockEnd(data, end, endName); j >= 0 {
				end = j + len(endName) + 2
			} else {
				end = max(end, size-len(endName)-1)
			}
		case nb == 0 && c == '<' && !escaped && isPreTag(data, end):
			if n := htmlTagLength(data, end-1); n > 0 {
				end = end - 1 + n + 1
			} else {
				end++
			}
		case c == '`':
			run := 0
			for end <= size && data[end-1] == '`' {
				end++
				run++
			}
			switch {
			case nb == 0:
				nb = run
			case run == nb:
				nb = 0
			}
		default:
			end++
		}
	}
	if nl > 0 {
		end += nl - 1
	}
	return min(end, size)
}

// isPreTag reports whether data[i:] continues a `<pre>` or `<pre ` tag whose
// `<` is at i-1.
func isPreTag(data []byte, i int) bool {
	return i+3 < len(data) &&
		lower(data[i]) == 'p' && lower(data[i+1]) == 'r' && lower(data[i+2]) == 'e' &&
		(data[i+3] == '>' || data[i+3] == ' ')
}

// lower folds an ASCII letter to lower case.
func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}
