package markup

// processBlocks classifies each line as heading, rule, link reference,
// code, table or text and writes the block markup. A line is handled once
// the line after it is known, since Setext underlines, tables and indented
// code depend on the following or preceding line.
func (e *Engine) processBlocks(data []byte, indent int) {
	size := len(data)
	state := newListState(indent)
	i, pi := 0, -1
	for i < size {
		end := findEndOfLine(data, i)
		state.update(data[i:end])

		if pi != -1 {
			if endName := blockCommandAt(data, i); endName != "" {
				e.writeLineOrLinkRef(data[pi:i])
				i = e.copyBlockCommand(data, i, endName)
				pi = i
				i = max(i, end)
				continue
			}
			if level := e.isHeaderline(data[i:], true); level > 0 {
				e.writeSetextHeader(data[pi:i], level)
				pi = -1
				i = end
				continue
			}
			if n, label, ref := parseLinkRef(data[pi:]); n > 0 {
				e.linkRefs.add(label, ref)
				pi += n
				i = pi + 1
				continue
			}
			if fb, ok := isFencedCodeBlock(data[pi:], state.current); ok {
				e.writeFencedCodeBlock(data[pi:], fb)
				i = pi + fb.offset
				pi = -1
				continue
			}
			if blockIndent, ok := isCodeBlock(data, i, end, state.current); ok {
				// The blank line before the block is dropped.
				i += e.writeCodeBlock(data[i:], blockIndent)
				pi = -1
				continue
			}
			if isTableBlock(data[pi:]) {
				i = pi + e.writeTableBlock(data[pi:])
				pi = -1
				continue
			}
			e.writeOneLineHeaderOrRuler(data[pi:i])
		}
		pi = i
		i = end
	}

	if pi != -1 && pi < size {
		e.writeLineOrLinkRef(data[pi:])
	}
}

// blockCommandAt returns the end marker when a block command starts at i.
func blockCommandAt(data []byte, i int) string {
	if !isCommandChar(data[i]) {
		return ""
	}
	return blockCommandEnd(data, i)
}

// writeLineOrLinkRef records line as a link reference when it is one and
// writes it as a single line otherwise.
func (e *Engine) writeLineOrLinkRef(line []byte) {
	if n, label, ref := parseLinkRef(line); n > 0 {
		e.linkRefs.add(label, ref)
		return
	}
	e.writeOneLineHeaderOrRuler(line)
}

// copyBlockCommand copies the block command starting at i up to and
// including its end marker and returns the position after it. Without an
// end marker it stops short of the buffer end; the caller copies the rest
// as ordinary text.
func (e *Engine) copyBlockCommand(data []byte, i int, endName string) int {
	j := findBlockEnd(data, i+1, endName)
	if j < 0 {
		stop := max(i+1, len(data)-len(endName))
		e.out.Write(data[i:stop])
		return stop
	}
	stop := j + 1 + len(endName)
	e.out.Write(data[i:stop])
	return stop
}
