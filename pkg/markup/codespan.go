package markup

// processCodeSpan translates a backtick code span to `<tt>` markup. The
// closer is the next run of exactly as many backticks as the opener, and
// the span may cross at most one newline. A single backtick closed by a
// quote is a typographic quotation instead.
func (e *Engine) processCodeSpan(data []byte, off int) int {
	d := data[off:]
	size := len(d)

	open := 0
	for open < size && d[open] == '`' {
		open++
	}

	end := open
	newlines := 0
	closed := false
	for end < size && newlines < 2 && !closed {
		switch c := d[end]; {
		case c == '`':
			run := 0
			for end < size && d[end] == '`' {
				run++
				end++
			}
			closed = run == open
		case c == '\n':
			newlines++
			end++
		case c == '\'' && open == 1 && (end == size-1 || !isIDChar(d[end+1])):
			e.out.WriteString("&lsquo;")
			e.out.Write(d[open:end])
			e.out.WriteString("&rsquo;")
			return end + 1
		default:
			end++
		}
	}
	if !closed {
		return 0
	}

	from, to := open, end-open
	for from < to && d[from] == ' ' {
		from++
	}
	for to > from && d[to-1] == ' ' {
		to--
	}
	if from < to {
		e.out.WriteString("<tt>")
		e.out.WriteString(escapeSpecialChars(d[from:to]))
		e.out.WriteString("</tt>")
	}
	return end
}
