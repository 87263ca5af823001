package catalog

import (
	"fmt"
	"strings"

	"github.com/consumethetangible/music-2025/internal/model"
)

const (
	sectionOpen    = `<div class="section"`
	markerPrefix   = "<!-- "
	scriptBoundary = "<script"
)

// SectionBounds is the location of one section in the document.
type SectionBounds struct {
	// Marker is the offset of the "<!-- Name Section -->" comment.
	Marker int

	// BlockEnd is the offset of the next marker comment, the first <script
	// tag, or the end of the document.
	BlockEnd int

	// Open is the offset of the section's <div class="section"> tag.
	Open int

	// ContentStart is just after the section heading (or after the section
	// open tag when there is no heading).
	ContentStart int

	// ContentEnd is the offset of the section's closing </div>.
	ContentEnd int
}

// Block returns the marker-delimited block of the section.
func (b SectionBounds) Block() Span {
	return Span{Start: b.Marker, End: b.BlockEnd}
}

// Content returns the range holding the section's shelves.
func (b SectionBounds) Content() Span {
	return Span{Start: b.ContentStart, End: b.ContentEnd}
}

// LocateSection finds sec in doc.
//
// The section is introduced by its marker comment; the block runs to the next
// marker comment or <script>. The section container must start inside that
// block and its end is found by depth matching.
func LocateSection(doc string, sec model.Section) (SectionBounds, error) {
	marker := sec.Marker()
	m := strings.Index(doc, marker)
	if m == -1 {
		return SectionBounds{}, fmt.Errorf("%w: %s", ErrSectionNotFound, sec.Name)
	}

	afterMarker := m + len(marker)
	b := SectionBounds{
		Marker:   m,
		BlockEnd: nextBoundary(doc, afterMarker),
	}

	rel := strings.Index(doc[afterMarker:b.BlockEnd], sectionOpen)
	if rel == -1 {
		return SectionBounds{}, fmt.Errorf("%w: %s has no section container", ErrSectionNotFound, sec.Name)
	}
	b.Open = afterMarker + rel

	openEnd := tagEnd(doc, b.Open)
	if openEnd == -1 {
		return SectionBounds{}, fmt.Errorf("%w: unterminated section tag for %s", ErrUnbalancedMarkup, sec.Name)
	}
	closeAt := MatchClose(doc, openEnd, "div")
	if closeAt == -1 {
		return SectionBounds{}, fmt.Errorf("%w: no closing tag for section %s", ErrUnbalancedMarkup, sec.Name)
	}

	b.ContentStart = openEnd
	b.ContentEnd = closeAt

	// Skip the <h2> heading when it leads the section.
	lead := strings.TrimLeft(doc[openEnd:closeAt], " \t\r\n")
	if strings.HasPrefix(lead, "<h2") {
		if h := strings.Index(doc[openEnd:closeAt], "</h2>"); h != -1 {
			b.ContentStart = openEnd + h + len("</h2>")
		}
	}

	return b, nil
}

// nextBoundary returns the offset of the next marker comment or script tag
// at or after from, or len(doc). A marker comment starts with a word
// character; "<!-- -->" and similar comments do not end a block.
func nextBoundary(doc string, from int) int {
	end := len(doc)
	if i := nextMarker(doc, from); i != -1 && i < end {
		end = i
	}
	if i := strings.Index(doc[from:], scriptBoundary); i != -1 && from+i < end {
		end = from + i
	}
	return end
}

func nextMarker(doc string, from int) int {
	for from < len(doc) {
		i := strings.Index(doc[from:], markerPrefix)
		if i == -1 {
			return -1
		}
		at := from + i
		if next := at + len(markerPrefix); next < len(doc) && isWordByte(doc[next]) {
			return at
		}
		from = at + len(markerPrefix)
	}
	return -1
}

func isWordByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// Container is one genre-tagged entry container and its shelf wrapper.
type Container struct {
	// Open is the offset of the container's opening tag.
	Open int

	// Inner is the offset just after the opening tag.
	Inner int

	// Close is the offset of the container's closing </div>.
	Close int

	// Shelf covers the enclosing shelf wrapper including its closing tag.
	// When the container is not wrapped, Shelf covers the container itself.
	Shelf Span
}

// FindContainers returns every container tagged with the genre key, in
// document order.
func FindContainers(doc string, style model.Style, key string) ([]Container, error) {
	open := style.ContainerOpen(key)
	shelfOpen := style.ShelfOpen()

	var out []Container
	pos := 0
	for {
		i := strings.Index(doc[pos:], open)
		if i == -1 {
			break
		}
		i += pos

		c := Container{Open: i, Inner: i + len(open)}
		c.Close = MatchClose(doc, c.Inner, "div")
		if c.Close == -1 {
			return nil, fmt.Errorf("%w: container %q at offset %d", ErrUnbalancedMarkup, key, i)
		}
		c.Shelf = Span{Start: c.Open, End: c.Close + len("</div>")}

		if s := strings.LastIndex(doc[:i], shelfOpen); s != -1 {
			if shelf, ok := elementEnd(doc, s, "div"); ok && shelf.End > c.Close {
				c.Shelf = shelf
			}
		}

		out = append(out, c)
		pos = c.Close
	}

	return out, nil
}

// FindEntries returns the spans of every entry of the given style between
// from and to.
func FindEntries(doc string, style model.Style, from, to int) ([]Span, error) {
	marker := style.EntryMarker()

	var out []Span
	pos := from
	for pos < to {
		i := strings.Index(doc[pos:to], marker)
		if i == -1 {
			break
		}
		i += pos

		span, ok := elementEnd(doc, i, style.EntryTag)
		if !ok || span.End > to {
			return nil, fmt.Errorf("%w: entry at offset %d", ErrUnbalancedMarkup, i)
		}
		out = append(out, span)
		pos = span.End
	}

	return out, nil
}
