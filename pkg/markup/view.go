package markup

import (
	"bytes"
	"strings"
)

// lineBreakToken is the synthetic newline used to join multi-line constructs.
const lineBreakToken = `\ilinebr`

// codeBlockIndent is the extra indentation that turns a line into code.
const codeBlockIndent = 4

// at returns data[i], or 0 when i is outside data.
func at(data []byte, i int) byte {
	if i < 0 || i >= len(data) {
		return 0
	}
	return data[i]
}

// cursor is a position inside a buffer with clamped relative access.
type cursor struct {
	data []byte
	pos  int
}

// peek returns the byte at pos+rel, or 0 outside the buffer.
func (c cursor) peek(rel int) byte {
	return at(c.data, c.pos+rel)
}

// hasPrefix reports whether the bytes starting at pos+rel equal s.
func (c cursor) hasPrefix(rel int, s string) bool {
	start := c.pos + rel
	if start < 0 || start > len(c.data) {
		return false
	}
	return bytes.HasPrefix(c.data[start:], []byte(s))
}

// isNewline returns the length of the line break at data[i]: 1 for '\n',
// 8 or 9 for `\ilinebr` (with its optional trailing space), 0 otherwise.
func isNewline(data []byte, i int) int {
	if i < 0 || i >= len(data) {
		return 0
	}
	if data[i] == '\n' {
		return 1
	}
	if data[i] == '\\' && bytes.HasPrefix(data[i+1:], []byte("ilinebr ")) {
		if at(data, i+8) == ' ' {
			return 9
		}
		return 8
	}
	return 0
}

// isIDChar reports whether b can be part of an identifier.
// Bytes of multibyte UTF-8 sequences count as identifier bytes.
func isIDChar(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b >= 0x80
}

// isExtraChar reports whether b may directly follow an opening emphasis run.
func isExtraChar(b byte) bool {
	switch b {
	case '-', '+', '!', '?', '$', '@', '&', '*', '%':
		return true
	}
	return false
}

// isOpenEmphChar reports whether b may precede an opening emphasis run.
func isOpenEmphChar(b byte) bool {
	switch b {
	case '\n', ' ', '\'', '<', '>', '{', '(', '[', ',', ':', ';':
		return true
	}
	return false
}

// ignoreCloseEmphChar reports whether the byte at c prevents the byte after
// it from closing an emphasis span, as in `*bla (*.txt) is cool*`.
func ignoreCloseEmphChar(c cursor) bool {
	switch c.peek(0) {
	case '(', '{', '[', '\\', '@':
		return true
	case '<':
		return c.peek(1) != '/'
	}
	return false
}

// isEmptyLine reports whether line holds only spaces up to its newline.
func isEmptyLine(line []byte) bool {
	for _, b := range line {
		if b == '\n' {
			return true
		}
		if b != ' ' {
			return false
		}
	}
	return true
}

// leadingSpaces counts the spaces at the start of data.
func leadingSpaces(data []byte) int {
	n := 0
	for n < len(data) && data[n] == ' ' {
		n++
	}
	return n
}

// lineEnd returns the index just past the '\n' that ends the line starting
// at i, or len(data) when the last line has no newline.
func lineEnd(data []byte, i int) int {
	if j := bytes.IndexByte(data[i:], '\n'); j >= 0 {
		return i + j + 1
	}
	return len(data)
}

// collapseSpace trims s and folds internal whitespace runs to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
