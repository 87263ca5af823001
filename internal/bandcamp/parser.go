package bandcamp

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/consumethetangible/music-2025/internal/bandcamp/dto"
	"github.com/consumethetangible/music-2025/internal/model"
)

// ParseAlbumInfo extracts artist, album title and artwork URL from an album
// page.
//
// Each field is looked up through a chain of selectors, first match wins:
//
//	artist:  #name-section h3 span a, meta og:site_name, #band-name-location .title
//	album:   #name-section h2.trackTitle, meta og:title
//	artwork: meta og:image, #tralbumArt img
//
// Fields still missing afterwards are taken from the data-tralbum JSON when
// the page has one. pageURL is returned as the record's URL.
//
// Returns an *ExtractionError (matching ErrIncompleteExtraction) carrying the
// partial record if any field is still missing.
func ParseAlbumInfo(htmlContent, pageURL string) (model.AlbumInfo, error) {
	info := model.AlbumInfo{URL: pageURL}

	doc, err := xhtml.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return info, fmt.Errorf("parse page: %w", err)
	}

	info.Artist = firstNonEmpty(
		func() string { return text(query(doc, byID("name-section"), byTag("h3"), byTag("span"), byTag("a"))) },
		func() string { return metaContent(doc, "og:site_name") },
		func() string { return text(query(doc, byID("band-name-location"), byClass("title"))) },
	)
	info.Album = firstNonEmpty(
		func() string { return text(query(doc, byID("name-section"), all(byTag("h2"), byClass("trackTitle")))) },
		func() string { return metaContent(doc, "og:title") },
	)
	info.ArtworkURL = firstNonEmpty(
		func() string { return metaContent(doc, "og:image") },
		func() string { return attr(query(doc, byID("tralbumArt"), byTag("img")), "src") },
	)

	if !info.Complete() {
		fillFromAlbumData(htmlContent, &info)
	}
	if !info.Complete() {
		return info, &ExtractionError{Found: info}
	}
	return info, nil
}

// fillFromAlbumData fills the missing fields of info from the embedded
// data-tralbum JSON, if present and valid.
func fillFromAlbumData(htmlContent string, info *model.AlbumInfo) {
	data, err := extractAlbumData(htmlContent)
	if err != nil {
		return
	}

	var ja dto.JSONAlbum
	if err := json.Unmarshal([]byte(fixJSON(data)), &ja); err != nil {
		return
	}

	embedded := ja.ToAlbumInfo(info.URL)
	if info.Artist == "" {
		info.Artist = embedded.Artist
	}
	if info.Album == "" {
		info.Album = embedded.Album
	}
	if info.ArtworkURL == "" {
		info.ArtworkURL = embedded.ArtworkURL
	}
}

// extractAlbumData extracts the data-tralbum JSON string from HTML.
//
// Bandcamp embeds album data in the HTML like this:
//
//	<script ... data-tralbum="{...JSON...}">
//
// The attribute value is HTML-unescaped before it is returned.
func extractAlbumData(htmlContent string) (string, error) {
	const startString = `data-tralbum="{`
	const stopString = `}"`

	startIndex := strings.Index(htmlContent, startString)
	if startIndex == -1 {
		return "", ErrNoAlbumData
	}

	startIndex += len(startString) - 1 // Include the opening brace
	remaining := htmlContent[startIndex:]

	endIndex := strings.Index(remaining, stopString)
	if endIndex == -1 {
		return "", fmt.Errorf("could not find end of album data")
	}

	albumData := remaining[:endIndex+1]
	return html.UnescapeString(albumData), nil
}

var urlConcat = regexp.MustCompile(`(url: ".+)" \+ "(.+",)`)

// fixJSON fixes malformed JSON from Bandcamp pages.
//
// Some Bandcamp pages have JavaScript-style URL concatenation in the JSON:
//
//	url: "http://example.bandcamp.com" + "/album/name",
//
// The concatenation is removed:
//
//	url: "http://example.bandcamp.com/album/name",
func fixJSON(albumData string) string {
	return urlConcat.ReplaceAllString(albumData, "${1}${2}")
}

func firstNonEmpty(lookups ...func() string) string {
	for _, lookup := range lookups {
		if v := strings.TrimSpace(lookup()); v != "" {
			return v
		}
	}
	return ""
}

// matcher tests a single element node.
type matcher func(n *xhtml.Node) bool

func byTag(tag string) matcher {
	return func(n *xhtml.Node) bool { return n.Data == tag }
}

func byID(id string) matcher {
	return func(n *xhtml.Node) bool { return attr(n, "id") == id }
}

func byClass(class string) matcher {
	return func(n *xhtml.Node) bool {
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func all(ms ...matcher) matcher {
	return func(n *xhtml.Node) bool {
		for _, m := range ms {
			if !m(n) {
				return false
			}
		}
		return true
	}
}

// query returns the first element reached by a chain of descendant matchers,
// like the CSS selector "a b c".
func query(n *xhtml.Node, steps ...matcher) *xhtml.Node {
	if len(steps) == 0 {
		return n
	}

	var found *xhtml.Node
	var traverse func(*xhtml.Node)
	traverse = func(node *xhtml.Node) {
		for c := node.FirstChild; c != nil && found == nil; c = c.NextSibling {
			if c.Type == xhtml.ElementNode && steps[0](c) {
				if hit := query(c, steps[1:]...); hit != nil {
					found = hit
					return
				}
			}
			traverse(c)
		}
	}
	traverse(n)
	return found
}

func metaContent(doc *xhtml.Node, property string) string {
	return attr(query(doc, all(byTag("meta"), func(n *xhtml.Node) bool {
		return attr(n, "property") == property
	})), "content")
}

func attr(n *xhtml.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// text returns the concatenated text content of n.
func text(n *xhtml.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var traverse func(*xhtml.Node)
	traverse = func(node *xhtml.Node) {
		if node.Type == xhtml.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return strings.TrimSpace(sb.String())
}
