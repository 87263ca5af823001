package catalog

import (
	"html"
	"strings"

	"github.com/consumethetangible/music-2025/internal/model"
)

func testSchema() *model.Schema {
	return &model.Schema{
		Sections: []model.Section{
			{Name: "Metal", Key: "metal", Style: model.StyleCover},
			{Name: "Prog", Key: "prog", Style: model.StyleCover},
			{Name: "Alternative", Key: "alternative", Style: model.StyleCover},
			{Name: "Live Albums", Key: "live-albums", Style: model.StyleVinyl},
			{Name: "Jazz/Fusion", Key: "jazz-fusion", Style: model.StyleCover},
		},
		ShelfCapacity: 4,
	}
}

func coverStyle() model.Style {
	s, _ := model.LookupStyle(model.StyleCover)
	return s
}

func vinylStyle() model.Style {
	s, _ := model.LookupStyle(model.StyleVinyl)
	return s
}

func slug(s string) string {
	return strings.ToLower(strings.NewReplacer(" ", "-", "&", "and").Replace(s))
}

func newEntry(artist, album string) model.Entry {
	s := slug(artist + "-" + album)
	return model.Entry{
		Artist:  artist,
		Album:   album,
		Link:    "https://" + slug(artist) + ".bandcamp.com/album/" + slug(album),
		Artwork: model.Artwork{WebP: s + ".webp"},
	}
}

// buildSection renders a section block with the given shelves.
func buildSection(sec model.Section, style model.Style, shelves ...[]model.Entry) string {
	var b strings.Builder

	b.WriteString("        " + sec.Marker() + "\n")
	b.WriteString(`        <div class="section">` + "\n")
	b.WriteString("            <h2>" + html.EscapeString(sec.Name) + "</h2>\n")
	for _, shelf := range shelves {
		fragments := make([]string, len(shelf))
		for i, e := range shelf {
			fragments[i] = Render(style, e)
		}
		b.WriteString(RenderShelf(style, sec.Key, fragments))
	}
	b.WriteString("        </div>\n\n")

	return b.String()
}

func buildPage(sections ...string) string {
	return "<!DOCTYPE html>\n<html>\n<body>\n    <main>\n" +
		strings.Join(sections, "") +
		"    </main>\n    <script src=\"app.js\"></script>\n</body>\n</html>\n"
}

func mustSection(schema *model.Schema, key string) model.Section {
	sec, ok := schema.Section(key)
	if !ok {
		panic("no section " + key)
	}
	return sec
}

// fixture is a page with Metal (1 entry), Prog (4+2), an empty Alternative
// section and Live Albums (vinyl, 2 entries). Jazz/Fusion is absent.
func fixture() string {
	schema := testSchema()
	return buildPage(
		buildSection(mustSection(schema, "metal"), coverStyle(),
			[]model.Entry{newEntry("Mastodon", "Leviathan")},
		),
		buildSection(mustSection(schema, "prog"), coverStyle(),
			[]model.Entry{
				newEntry("Camel", "Moonmadness"),
				newEntry("Genesis", "Foxtrot"),
				newEntry("King Crimson", "Red"),
				newEntry("Rush", "Moving Pictures"),
			},
			[]model.Entry{
				newEntry("Yes", "Close to the Edge"),
				newEntry("Gentle Giant", "Octopus"),
			},
		),
		buildSection(mustSection(schema, "alternative"), coverStyle()),
		buildSection(mustSection(schema, "live-albums"), vinylStyle(),
			[]model.Entry{
				withJPEG(newEntry("The Who", "Live at Leeds")),
				withJPEG(newEntry("Allman Brothers Band", "At Fillmore East")),
			},
		),
	)
}

func withJPEG(e model.Entry) model.Entry {
	e.Artwork.JPEG = strings.TrimSuffix(e.Artwork.WebP, ".webp") + ".jpg"
	return e
}

func containerCounts(doc string, style model.Style, key string) []int {
	l, err := locateGenre(doc, style, key)
	if err != nil {
		panic(err)
	}
	return l.counts()
}

func artists(entries []model.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Artist
	}
	return out
}
