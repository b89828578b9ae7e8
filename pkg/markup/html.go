package markup

import "strings"

// htmlTagLength returns the length of the HTML tag starting at data[off],
// or 0 when there is no well formed tag. A `<pre>` tag extends up to and
// including its `</pre>`.
func htmlTagLength(data []byte, off int) int {
	if at(data, off-1) == '\\' {
		return 0
	}
	d := data[off:]
	size := len(d)

	i := 1
	for i < size && isIDChar(d[i]) {
		i++
	}
	nameLen := i - 1

	if strings.EqualFold(string(d[1:i]), "pre") {
		insideStr := false
		for ; i+6 <= size; i++ {
			c := d[i]
			switch {
			case !insideStr && c == '<':
				if d[i+1] == '/' && lower(d[i+2]) == 'p' && lower(d[i+3]) == 'r' &&
					lower(d[i+4]) == 'e' && d[i+5] == '>' {
					return i + 6
				}
			case insideStr && c == '"':
				if d[i-1] != '\\' {
					insideStr = false
				}
			case c == '"':
				insideStr = true
			}
		}
		return 0
	}

	if nameLen == 0 || i >= size {
		return 0
	}
	switch d[i] {
	case '/':
		if i+1 < size && d[i+1] == '>' {
			return i + 2
		}
	case '>':
		return i + 1
	case ' ':
		insideAttr := false
		for i++; i < size; i++ {
			switch {
			case !insideAttr && d[i] == '"':
				insideAttr = true
			case d[i] == '"' && d[i-1] != '\\':
				insideAttr = false
			case !insideAttr && d[i] == '>':
				return i + 1
			}
		}
	}
	return 0
}

// processHTMLTag copies an HTML tag, or a whole `<pre>` section, verbatim.
func (e *Engine) processHTMLTag(data []byte, off int) int {
	n := htmlTagLength(data, off)
	if n > 0 {
		e.out.Write(data[off : off+n])
	}
	return n
}
