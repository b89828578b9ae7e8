package markup

import "github.com/yuin/goldmark/util"

// LinkRef is the target of a `[label]: url "title"` definition.
type LinkRef struct {
	Link  string
	Title string
}

// linkRefs maps folded labels to their definitions.
type linkRefs map[string]LinkRef

// add stores ref under label unless the label is already defined.
func (r linkRefs) add(label string, ref LinkRef) {
	key := util.ToLinkReference([]byte(label))
	if _, ok := r[key]; ok {
		return
	}
	r[key] = ref
}

func (r linkRefs) lookup(label string) (LinkRef, bool) {
	ref, ok := r[util.ToLinkReference([]byte(label))]
	return ref, ok
}

// skipSpaces returns the first index at or after i that is not a space.
func skipSpaces(data []byte, i int) int {
	for i < len(data) && data[i] == ' ' {
		i++
	}
	return i
}

// parseLinkRef parses a link reference definition at the start of data.
// The url may sit on the line after the label and the optional title, in
// quotes or parentheses, on the line after the url. It returns the number
// of bytes the definition occupies, or 0 when data does not start with one.
func parseLinkRef(data []byte) (int, string, LinkRef) {
	size := len(data)
	i := leadingSpaces(data)
	if at(data, i) != '[' {
		return 0, "", LinkRef{}
	}
	i++
	labelStart := i
	for i < size && data[i] != '\n' && data[i] != ']' {
		i++
	}
	if at(data, i) != ']' || i == labelStart {
		return 0, "", LinkRef{}
	}
	label := string(data[labelStart:i])
	i++
	if at(data, i) != ':' {
		return 0, "", LinkRef{}
	}
	i = skipSpaces(data, i+1)
	if at(data, i) == '\n' {
		i = skipSpaces(data, i+1)
	}
	if i >= size {
		return 0, "", LinkRef{}
	}

	angled := data[i] == '<'
	if angled {
		i++
	}
	linkStart := i
	for i < size && data[i] != ' ' && data[i] != '\n' {
		i++
	}
	linkEnd := i
	if angled && linkEnd > linkStart && data[linkEnd-1] == '>' {
		linkEnd--
	}
	if linkStart == linkEnd {
		return 0, "", LinkRef{}
	}
	ref := LinkRef{Link: string(data[linkStart:linkEnd])}
	if ref.Link == "@ref" || ref.Link == `\ref` {
		argStart := i
		for i < size && data[i] != '\n' && data[i] != '"' {
			i++
		}
		ref.Link += string(data[argStart:i])
	}

	eol := 0
	i = skipSpaces(data, i)
	if at(data, i) == '\n' {
		eol = i
		i = skipSpaces(data, i+1)
	}
	if i >= size {
		return i, label, ref
	}

	if c := data[i]; c == '\'' || c == '"' || c == '(' {
		if c == '(' {
			c = ')'
		}
		i++
		titleStart := i
		for i < size && data[i] != '\n' {
			i++
		}
		eol = i
		end := i - 1
		for end > titleStart && data[end] != c {
			end--
		}
		if end > titleStart {
			ref.Title = string(data[titleStart:end])
		}
	}
	i = skipSpaces(data, i)
	switch {
	case i >= size:
		return i, label, ref
	case eol > 0:
		return eol, label, ref
	}
	return 0, "", LinkRef{}
}
