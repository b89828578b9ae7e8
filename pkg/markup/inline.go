package markup

// processInline copies data to the output, handing each trigger byte to its
// handler. A handler that does not recognize a construct returns 0 (or a
// negative count of bytes to pass through) and the bytes are copied as is.
func (e *Engine) processInline(data []byte) {
	size := len(data)
	i, end := 0, 0
	for i < size {
		var handler inlineHandler
		for end < size {
			if handler = e.handlers[data[end]]; handler != nil {
				break
			}
			end++
		}
		e.out.Write(data[i:end])
		if end >= size {
			break
		}
		i = end
		if n := handler(data, i); n > 0 {
			i += n
			end = i
		} else {
			end = i + 1 - n
		}
	}
}
