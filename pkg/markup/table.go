package markup

import (
	"strconv"
	"strings"
)

// Alignment of a table column.
type Alignment int

// Column alignments, set by `:` markers in the separator row.
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the suffix used in the cell class attribute.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignCenter:
		return "Center"
	case AlignRight:
		return "Right"
	default:
		return "None"
	}
}

func markersToAlignment(left, right bool) Alignment {
	switch {
	case left && right:
		return AlignCenter
	case left:
		return AlignLeft
	case right:
		return AlignRight
	default:
		return AlignNone
	}
}

// tableCell is one cell of a parsed table. spanMarker is set when the raw
// cell was empty, which `||` uses to merge a cell into its left neighbour.
type tableCell struct {
	text       string
	spanMarker bool
}

func newTableCell(raw []byte) tableCell {
	return tableCell{
		text:       strings.TrimSpace(string(raw)),
		spanMarker: len(raw) == 0,
	}
}

// tableLine describes the first line of data as a table row.
type tableLine struct {
	start   int // first byte of the row content
	end     int // last byte of the row content
	columns int
	next    int // start of the next line
}

// isUnescapedPipe reports whether data[i] is a column separator.
func isUnescapedPipe(data []byte, i int) bool {
	return data[i] == '|' && (i == 0 || data[i-1] != '\\')
}

// findTableColumns locates the row content on the first line of data,
// dropping one leading and one trailing `|`, and counts its columns. A row
// with separators has one column more than it has separators; `|a|` is a
// single column.
func findTableColumns(data []byte) tableLine {
	size := len(data)
	var tl tableLine
	i := leadingSpaces(data)
	pipes := 0
	if i < size && data[i] == '|' {
		i++
		pipes++
	}
	tl.start = i

	nl := 0
	for i < size {
		if nl = isNewline(data, i); nl > 0 {
			break
		}
		i++
	}
	tl.next = i + nl

	i--
	for i > 0 && data[i] == ' ' {
		i--
	}
	if i > 0 && data[i-1] != '\\' && data[i] == '|' {
		i--
		pipes++
	}
	tl.end = i

	if tl.end > tl.start {
		for j := tl.start; j <= tl.end; j++ {
			if isUnescapedPipe(data, j) {
				tl.columns++
			}
			if tl.columns == 1 {
				tl.columns++
			}
		}
	}
	if pipes == 2 && tl.columns == 0 {
		tl.columns = 1
	}
	return tl
}

// isTableBlock reports whether data starts with a header row followed by a
// separator row of `:`, `-`, `|` and spaces with the same column count.
func isTableBlock(data []byte) bool {
	header := findTableColumns(data)
	if header.next >= len(data) || header.columns < 1 {
		return false
	}
	rest := data[header.next:]
	sep := findTableColumns(rest)
	for j := sep.start; j <= sep.end; j++ {
		switch rest[j] {
		case ':', '-', '|', ' ':
		default:
			return false
		}
	}
	return sep.columns == header.columns
}

// writeTableBlock writes the table at the start of data and returns the
// number of bytes consumed. Body rows are read until one has a different
// column count.
func (e *Engine) writeTableBlock(data []byte) int {
	header := findTableColumns(data)
	columns := header.columns
	i := header.next

	sep := findTableColumns(data[i:])
	alignment := make([]Alignment, columns)
	k := 0
	left, right, startFound := false, false, false
	for j := sep.start + i; j <= sep.end+i; j++ {
		if !startFound {
			switch data[j] {
			case ':':
				left, startFound = true, true
			case '-':
				startFound = true
			}
		}
		switch data[j] {
		case '-':
			right = false
		case ':':
			right = true
		}
		if isUnescapedPipe(data, j) {
			if k < columns {
				alignment[k] = markersToAlignment(left, right)
				left, right, startFound = false, false, false
			}
			k++
		}
	}
	if k < columns {
		alignment[k] = markersToAlignment(left, right)
	}
	i += sep.next

	rows := make([][]tableCell, 0, 4)
	headerCells := make([]tableCell, columns)
	m := header.start
	for c := range columns {
		from := m
		for m <= header.end && !isUnescapedPipe(data, m) {
			m++
		}
		headerCells[c] = newTableCell(span(data, from, min(m, header.end+1)))
		m++
	}
	rows = append(rows, headerCells)

	for i < len(data) {
		tl := findTableColumns(data[i:])
		if tl.columns != columns {
			break
		}
		row := make([]tableCell, columns)
		c := 0
		from := tl.start + i
		for j := tl.start + i; j <= tl.end+i; j++ {
			if isUnescapedPipe(data, j) {
				if c < columns {
					row[c] = newTableCell(data[from:j])
				}
				c++
				from = j + 1
			}
		}
		if c < columns {
			row[c] = newTableCell(span(data, from, tl.end+i+1))
		}
		rows = append(rows, row)
		i += tl.next
	}

	e.renderTable(rows, alignment)
	return i
}

// renderTable writes rows as HTML table markup. A `^` cell extends the cell
// above it; an empty cell produced by `||` extends the cell to its left.
func (e *Engine) renderTable(rows [][]tableCell, alignment []Alignment) {
	columns := len(alignment)
	e.out.WriteString(`<table class="markdownTable">`)
	tag, class := "th", `class="markdownTableHead`
	for r, row := range rows {
		switch {
		case r == 0:
			e.out.WriteString("\n  <tr class=\"markdownTableHead\">")
		case r%2 == 1:
			e.out.WriteString("\n<tr class=\"markdownTableRowOdd\">")
		default:
			e.out.WriteString("\n<tr class=\"markdownTableRowEven\">")
		}
		for c := 0; c < columns; c++ {
			text := row[c].text
			if text == "^" {
				continue
			}
			if row[c].spanMarker {
				owner := c
				for owner >= 0 && row[owner].spanMarker {
					owner--
				}
				if owner >= 0 && row[owner].text == "^" {
					continue
				}
			}
			rowSpan := 1
			for below := r + 1; below < len(rows) && rows[below][c].text == "^"; below++ {
				rowSpan++
			}

			e.out.WriteString("    <" + tag + " " + class + alignment[c].String() + `"`)
			if rowSpan > 1 {
				e.out.WriteString(` rowspan="` + strconv.Itoa(rowSpan) + `"`)
			}
			colSpan := 1
			for c < columns-1 && row[c+1].spanMarker {
				c++
				colSpan++
			}
			if colSpan > 1 {
				e.out.WriteString(` colspan="` + strconv.Itoa(colSpan) + `"`)
			}
			e.out.WriteString("> " + text + " " + lineBreakToken + " </" + tag + ">")
		}
		tag, class = "td", `class="markdownTableBody`
		e.out.WriteString("  </tr>")
	}
	e.out.WriteString("</table>\n")
}
