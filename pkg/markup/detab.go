package markup

import (
	"bytes"
	"unicode/utf8"
)

// doxyNbsp is the internal stand-in for a UTF-8 non-breaking space.
const doxyNbsp = "&_doxy_nbsp;"

// maxIndent stands for "no indented text seen".
const maxIndent = 1 << 30

// detab expands tabs to the next multiple of tabSize, replaces UTF-8
// non-breaking spaces with doxyNbsp and returns the smallest column at
// which a non-blank character occurs.
func detab(in []byte, tabSize int) ([]byte, int) {
	if tabSize < 1 {
		tabSize = DefaultTabSize
	}
	var out bytes.Buffer
	out.Grow(len(in))

	col := 0
	minIndent := maxIndent
	for i := 0; i < len(in); {
		c := in[i]
		switch c {
		case '\t':
			stop := tabSize - col%tabSize
			col += stop
			for range stop {
				out.WriteByte(' ')
			}
			i++
			continue
		case '\n':
			out.WriteByte(c)
			col = 0
			i++
			continue
		case ' ':
			out.WriteByte(c)
			col++
			i++
			continue
		}

		if c < utf8.RuneSelf {
			out.WriteByte(c)
			i++
		} else {
			r, size := utf8.DecodeRune(in[i:])
			if r == '\u00a0' {
				out.WriteString(doxyNbsp)
			} else {
				// Invalid bytes decode with size 1 and are copied as is.
				out.Write(in[i : i+size])
			}
			i += size
		}
		minIndent = min(minIndent, col)
		col++
	}

	if minIndent == maxIndent {
		minIndent = 0
	}
	return out.Bytes(), minIndent
}
