package markup

// processNmdash turns `--` into an en dash and `---` into an em dash.
// Runs inside an HTML comment opener and after `operator` stay literal.
func (e *Engine) processNmdash(data []byte, off int) int {
	c := cursor{data: data, pos: off}
	count := 1
	for count < 4 && c.peek(count) == '-' {
		count++
	}

	if count >= 2 && c.hasPrefix(-2, "<!") {
		// Skip the whole run so the comment opener stays intact.
		return 1 - count
	}
	if count == 2 && c.peek(2) == '>' {
		return 0
	}
	if count == 2 && !c.hasPrefix(-len("operator"), "operator") {
		e.out.WriteString("&ndash;")
		return 2
	}
	if count == 3 {
		e.out.WriteString("&mdash;")
		return 3
	}
	return 0
}

// processQuoted copies a "..." run spanning at most one newline unchanged,
// so its contents are not read as Markdown.
func (e *Engine) processQuoted(data []byte, off int) int {
	i := off + 1
	nl := 0
	for i < len(data) && data[i] != '"' && nl < 2 {
		if data[i] == '\n' {
			nl++
		}
		i++
	}
	if i < len(data) && data[i] == '"' && nl < 2 {
		e.out.Write(data[off : i+1])
		return i + 1 - off
	}
	return 0
}
