package catalog

import (
	"fmt"
	"html"
	"path"
	"regexp"
	"strings"

	"github.com/consumethetangible/music-2025/internal/model"
)

var (
	reDataLink = regexp.MustCompile(`data-bandcamp="([^"]*)"`)
	reDataID   = regexp.MustCompile(`data-id="([^"]*)"`)
	reDataJPG  = regexp.MustCompile(`data-jpg="([^"]*)"`)
	reHref     = regexp.MustCompile(`\shref="([^"#][^"]*)"`)
	reSource   = regexp.MustCompile(`<source\b[^>]*?\ssrcset="([^"]*)"`)
	reImg      = regexp.MustCompile(`<img\b[^>]*?\ssrc="([^"]*)"`)
	reArtist   = regexp.MustCompile(`(?s)<div class="artist">(.*?)</div>`)
	reAlbum    = regexp.MustCompile(`(?s)<div class="album">(.*?)</div>`)
)

// ParseEntry extracts the fields of one rendered entry fragment.
//
// The link, ID and cover JPEG are read from the opening tag only. When the
// opening tag names the JPEG, any other image source is the WebP variant.
// Otherwise a WebP image is recognized by its extension and any other image
// source is treated as the JPEG variant.
func ParseEntry(fragment string) model.Entry {
	var e model.Entry

	open := fragment
	if end := strings.IndexByte(fragment, '>'); end != -1 {
		open = fragment[:end+1]
	}
	if m := reDataLink.FindStringSubmatch(open); m != nil {
		e.Link = unesc(m[1])
	} else if m := reHref.FindStringSubmatch(open); m != nil {
		e.Link = unesc(m[1])
	}
	if m := reDataID.FindStringSubmatch(open); m != nil {
		e.ID = unesc(m[1])
	}
	jpgKnown := false
	if m := reDataJPG.FindStringSubmatch(open); m != nil {
		e.Artwork.JPEG = unesc(m[1])
		jpgKnown = true
	}

	if m := reSource.FindStringSubmatch(fragment); m != nil {
		e.Artwork.WebP = unesc(m[1])
	}
	if m := reImg.FindStringSubmatch(fragment); m != nil {
		src := unesc(m[1])
		if jpgKnown {
			if src != e.Artwork.JPEG && e.Artwork.WebP == "" {
				e.Artwork.WebP = src
			}
		} else if strings.EqualFold(path.Ext(src), ".webp") {
			if e.Artwork.WebP == "" {
				e.Artwork.WebP = src
			}
		} else {
			e.Artwork.JPEG = src
		}
	}

	if m := reArtist.FindStringSubmatch(fragment); m != nil {
		e.Artist = unesc(m[1])
	}
	if m := reAlbum.FindStringSubmatch(fragment); m != nil {
		e.Album = unesc(m[1])
	}

	return e
}

func unesc(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}

// located is a genre's containers and the entry spans in each of them.
type located struct {
	containers []Container
	entries    [][]Span
}

// all returns the entry spans of every container, flattened in document order.
func (l located) all() []Span {
	var out []Span
	for _, spans := range l.entries {
		out = append(out, spans...)
	}
	return out
}

func (l located) counts() []int {
	counts := make([]int, len(l.entries))
	for i, spans := range l.entries {
		counts[i] = len(spans)
	}
	return counts
}

func locateGenre(doc string, style model.Style, key string) (located, error) {
	containers, err := FindContainers(doc, style, key)
	if err != nil {
		return located{}, err
	}

	l := located{containers: containers, entries: make([][]Span, len(containers))}
	for i, c := range containers {
		spans, err := FindEntries(doc, style, c.Inner, c.Close)
		if err != nil {
			return located{}, err
		}
		l.entries[i] = spans
	}
	return l, nil
}

// List returns the entries of a genre in document order.
//
// The position of an entry in the result is its index for Edit and Delete.
// Indexes are only valid against the exact document they were computed from.
func (e *Engine) List(doc, key string) ([]model.Entry, error) {
	_, style, err := e.section(key)
	if err != nil {
		return nil, err
	}

	l, err := locateGenre(doc, style, key)
	if err != nil {
		return nil, err
	}

	spans := l.all()
	out := make([]model.Entry, len(spans))
	for i, s := range spans {
		out[i] = ParseEntry(doc[s.Start:s.End])
	}
	return out, nil
}

// ResolveID returns the current index of the entry carrying id.
func (e *Engine) ResolveID(doc, key, id string) (int, error) {
	if id == "" {
		return -1, fmt.Errorf("%w: empty id", ErrEntryNotFound)
	}

	entries, err := e.List(doc, key)
	if err != nil {
		return -1, err
	}
	for i, entry := range entries {
		if entry.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: id %s in %s", ErrEntryNotFound, id, key)
}
