package catalog

import (
	"fmt"
	"strings"

	"github.com/consumethetangible/music-2025/internal/model"
)

// Engine applies catalog operations to a document buffer according to a
// schema. It holds no document state; every method takes the current buffer
// and returns the updated one, leaving the input untouched on error.
type Engine struct {
	schema *model.Schema
}

// New returns an Engine for schema.
func New(schema *model.Schema) *Engine {
	return &Engine{schema: schema}
}

// Schema returns the engine's schema.
func (e *Engine) Schema() *model.Schema {
	return e.schema
}

func (e *Engine) section(key string) (model.Section, model.Style, error) {
	sec, ok := e.schema.Section(key)
	if !ok {
		return model.Section{}, model.Style{}, fmt.Errorf("%w: %q", ErrUnknownGenre, key)
	}
	return sec, e.schema.Style(sec), nil
}

func validate(entry model.Entry) error {
	switch {
	case entry.Artist == "":
		return fmt.Errorf("%w: artist is required", ErrInvalidEntry)
	case entry.Album == "":
		return fmt.Errorf("%w: album is required", ErrInvalidEntry)
	case entry.Link == "":
		return fmt.Errorf("%w: link is required", ErrInvalidEntry)
	}
	return nil
}

func splice(doc string, at int, text string) string {
	return doc[:at] + text + doc[at:]
}

func cut(doc string, s Span) string {
	return doc[:s.Start] + doc[s.End:]
}

// Add renders entry and inserts it as the last entry of the genre.
//
// The entry joins the last shelf unless that shelf is full, in which case a
// new shelf is created after it. A section without any shelf gets its first
// shelf at the end of its content.
func (e *Engine) Add(doc, key string, entry model.Entry) (string, error) {
	entry = entry.Normalize()
	if err := validate(entry); err != nil {
		return doc, err
	}

	sec, style, err := e.section(key)
	if err != nil {
		return doc, err
	}
	bounds, err := LocateSection(doc, sec)
	if err != nil {
		return doc, err
	}
	l, err := locateGenre(doc, style, key)
	if err != nil {
		return doc, err
	}

	markup := Render(style, entry)
	p := Allocate(l.counts(), e.schema.Capacity())

	switch p.Kind {
	case AppendToShelf:
		c := l.containers[p.Container]
		spans := l.entries[p.Container]
		if len(spans) > 0 {
			return splice(doc, spans[len(spans)-1].End, "\n"+entryIndent+markup), nil
		}
		inner := Span{Start: c.Inner, End: c.Close}
		if strings.TrimSpace(doc[inner.Start:inner.End]) == "" {
			return doc[:inner.Start] + "\n" + entryIndent + markup + "\n" + containerIndent + doc[inner.End:], nil
		}
		return splice(doc, lineStart(doc, c.Close), "\n"+entryIndent+markup), nil

	case NewShelf:
		shelf := strings.TrimSuffix(RenderShelf(style, key, []string{markup}), "\n")
		return splice(doc, l.containers[p.Container].Shelf.End, "\n"+shelf), nil

	default:
		shelf := strings.TrimSuffix(RenderShelf(style, key, []string{markup}), "\n")
		return splice(doc, lineStart(doc, bounds.ContentEnd), "\n"+shelf), nil
	}
}

// lineStart returns the offset of the newline preceding pos when only blanks
// separate them, or pos itself.
func lineStart(doc string, pos int) int {
	i := pos
	for i > 0 && (doc[i-1] == ' ' || doc[i-1] == '\t') {
		i--
	}
	if i > 0 && doc[i-1] == '\n' {
		i--
		if i > 0 && doc[i-1] == '\r' {
			i--
		}
		return i
	}
	return pos
}

// removal widens an entry span over its leading indentation and line break.
func removal(doc string, s Span) Span {
	return Span{Start: lineStart(doc, s.Start), End: s.End}
}

func (e *Engine) entryAt(doc, key string, index int) (model.Style, Span, error) {
	_, style, err := e.section(key)
	if err != nil {
		return model.Style{}, Span{}, err
	}
	l, err := locateGenre(doc, style, key)
	if err != nil {
		return model.Style{}, Span{}, err
	}

	spans := l.all()
	if index < 0 || index >= len(spans) {
		return model.Style{}, Span{}, fmt.Errorf("%w: index %d of %d in %s", ErrEntryNotFound, index, len(spans), key)
	}
	return style, spans[index], nil
}

// Delete removes the entry at index from the genre and returns it.
//
// Shelves are not rebalanced; a shelf emptied by a delete stays in place
// until the next sort pass.
func (e *Engine) Delete(doc, key string, index int) (string, model.Entry, error) {
	_, span, err := e.entryAt(doc, key, index)
	if err != nil {
		return doc, model.Entry{}, err
	}

	removed := ParseEntry(doc[span.Start:span.End])
	return cut(doc, removal(doc, span)), removed, nil
}

// Edit applies upd to the entry at index and returns the updated entry.
//
// When newKey is empty or equal to key the entry is re-rendered in place.
// Otherwise it is removed from key and added as the last entry of newKey. The
// entry's ID is kept in both cases.
func (e *Engine) Edit(doc, key string, index int, upd model.EntryUpdate, newKey string) (string, model.Entry, error) {
	style, span, err := e.entryAt(doc, key, index)
	if err != nil {
		return doc, model.Entry{}, err
	}

	updated := upd.Apply(ParseEntry(doc[span.Start:span.End]))
	if err := validate(updated); err != nil {
		return doc, model.Entry{}, err
	}

	if newKey == "" || newKey == key {
		return doc[:span.Start] + Render(style, updated) + doc[span.End:], updated, nil
	}

	if _, _, err := e.section(newKey); err != nil {
		return doc, model.Entry{}, err
	}
	moved, err := e.Add(cut(doc, removal(doc, span)), newKey, updated)
	if err != nil {
		return doc, model.Entry{}, err
	}
	return moved, updated, nil
}
