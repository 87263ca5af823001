package catalog

import "strings"

// Span is a half-open byte range [Start, End) of the document.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// MatchClose returns the offset of the closing tag that balances an element
// of type tag whose opening tag ends just before start.
//
// Every further opening tag of the same element type increments the depth and
// every closing tag decrements it; the scan stops when the depth returns to
// zero. Other element types, comments and attributes are ignored, so the
// result is only correct if elements of this type are balanced in the buffer.
//
// Returns -1 if no matching closing tag exists before the end of buf.
func MatchClose(buf string, start int, tag string) int {
	closeTag := "</" + tag + ">"
	depth := 1
	pos := start

	for pos < len(buf) {
		nextClose := strings.Index(buf[pos:], closeTag)
		if nextClose == -1 {
			return -1
		}
		nextClose += pos

		nextOpen := indexOpenTag(buf, pos, tag)
		if nextOpen != -1 && nextOpen < nextClose {
			depth++
			pos = nextOpen + len(tag) + 1
			continue
		}

		depth--
		if depth == 0 {
			return nextClose
		}
		pos = nextClose + len(closeTag)
	}

	return -1
}

// indexOpenTag returns the offset of the next "<tag" at or after from that is
// followed by a tag-name boundary, so "<a" does not match "<abbr".
func indexOpenTag(buf string, from int, tag string) int {
	open := "<" + tag
	for from < len(buf) {
		i := strings.Index(buf[from:], open)
		if i == -1 {
			return -1
		}
		i += from
		after := i + len(open)
		if after >= len(buf) {
			return -1
		}
		switch buf[after] {
		case ' ', '\t', '\n', '\r', '>', '/':
			return i
		}
		from = after
	}
	return -1
}

// tagEnd returns the offset just past the '>' closing the tag opened at i.
func tagEnd(buf string, i int) int {
	j := strings.IndexByte(buf[i:], '>')
	if j == -1 {
		return -1
	}
	return i + j + 1
}

// elementEnd returns the span of the element whose opening tag starts at
// open, including its closing tag.
func elementEnd(buf string, open int, tag string) (Span, bool) {
	inner := tagEnd(buf, open)
	if inner == -1 {
		return Span{}, false
	}
	closeAt := MatchClose(buf, inner, tag)
	if closeAt == -1 {
		return Span{}, false
	}
	return Span{Start: open, End: closeAt + len("</"+tag+">")}, true
}
