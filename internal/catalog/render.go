package catalog

import (
	"html"
	"strings"

	"github.com/consumethetangible/music-2025/internal/model"
)

// Indentation of the generated markup.
const (
	shelfIndent     = "            "
	containerIndent = "                "
	entryIndent     = "                    "
	sectionIndent   = "        "
)

// Render returns the markup for one entry in the given style.
//
// The fragment has no leading indentation; the caller places it after an
// entry-level indent. Text fields are HTML-escaped.
func Render(style model.Style, e model.Entry) string {
	if style.Name == model.StyleVinyl {
		return renderVinyl(e)
	}
	return renderCover(e)
}

func renderCover(e model.Entry) string {
	var b strings.Builder

	b.WriteString(`<a class="album-cover" href="#" data-bandcamp="` + esc(e.Link) + `"`)
	writeID(&b, e.ID)
	if e.Artwork.JPEG != "" {
		b.WriteString(` data-jpg="` + esc(e.Artwork.JPEG) + `"`)
	}
	b.WriteString(">\n")

	if src := e.Artwork.Primary(); src != "" {
		b.WriteString(entryIndent + `    <img class="album-artwork" src="` + esc(src) + `" alt="` + esc(e.Label()) + `" loading="lazy">` + "\n")
	}
	b.WriteString(entryIndent + `    <div class="album-info">` + "\n")
	b.WriteString(entryIndent + `        <div class="artist">` + esc(e.Artist) + "</div>\n")
	b.WriteString(entryIndent + `        <div class="album">` + esc(e.Album) + "</div>\n")
	b.WriteString(entryIndent + "    </div>\n")
	b.WriteString(entryIndent + "</a>")

	return b.String()
}

func renderVinyl(e model.Entry) string {
	var b strings.Builder

	b.WriteString(`<div class="release" data-bandcamp="` + esc(e.Link) + `"`)
	writeID(&b, e.ID)
	b.WriteString(">\n")

	if !e.Artwork.IsZero() {
		b.WriteString(entryIndent + `    <a href="` + esc(e.Link) + `" target="_blank" rel="noopener">` + "\n")
		b.WriteString(entryIndent + "        <picture>\n")

		img := e.Artwork.JPEG
		if img == "" {
			img = e.Artwork.WebP
		} else if e.Artwork.WebP != "" {
			b.WriteString(entryIndent + `            <source srcset="` + esc(e.Artwork.WebP) + `" type="image/webp">` + "\n")
		}
		b.WriteString(entryIndent + `            <img src="` + esc(img) + `" alt="` + esc(e.Label()) + `" loading="lazy">` + "\n")

		b.WriteString(entryIndent + "        </picture>\n")
		b.WriteString(entryIndent + "    </a>\n")
	}
	b.WriteString(entryIndent + `    <div class="release-info">` + "\n")
	b.WriteString(entryIndent + `        <div class="artist">` + esc(e.Artist) + "</div>\n")
	b.WriteString(entryIndent + `        <div class="album">` + esc(e.Album) + "</div>\n")
	b.WriteString(entryIndent + "    </div>\n")
	b.WriteString(entryIndent + "</div>")

	return b.String()
}

func writeID(b *strings.Builder, id string) {
	if id != "" {
		b.WriteString(` data-id="` + esc(id) + `"`)
	}
}

func esc(s string) string {
	return html.EscapeString(s)
}

// RenderShelf wraps already rendered entry fragments in a shelf and a
// genre-tagged container. Every emitted line ends in a newline.
func RenderShelf(style model.Style, key string, fragments []string) string {
	var b strings.Builder

	b.WriteString(shelfIndent + style.ShelfOpen() + "\n")
	b.WriteString(containerIndent + style.ContainerOpen(key) + "\n")
	for _, f := range fragments {
		b.WriteString(entryIndent + f + "\n")
	}
	b.WriteString(containerIndent + "</div>\n")
	b.WriteString(shelfIndent + "</div>\n")

	return b.String()
}

// RenderShelves chunks fragments into shelves of at most capacity entries
// and returns the replacement content of a section.
func RenderShelves(style model.Style, key string, fragments []string, capacity int) string {
	var b strings.Builder

	b.WriteString("\n")
	for i := 0; i < len(fragments); i += capacity {
		end := min(i+capacity, len(fragments))
		b.WriteString(RenderShelf(style, key, fragments[i:end]))
	}
	b.WriteString(sectionIndent)

	return b.String()
}
