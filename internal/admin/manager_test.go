package admin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consumethetangible/music-2025/internal/audio"
	"github.com/consumethetangible/music-2025/internal/catalog"
	"github.com/consumethetangible/music-2025/internal/document"
	"github.com/consumethetangible/music-2025/internal/model"
)

var testSchema = &model.Schema{
	Sections: []model.Section{
		{Name: "Metal", Key: "metal", Style: model.StyleCover},
		{Name: "Prog", Key: "prog", Style: model.StyleCover},
		{Name: "Alternative", Key: "alternative", Style: model.StyleCover},
	},
	ShelfCapacity: 4,
}

func section(name, key string, entries ...model.Entry) string {
	style, _ := model.LookupStyle(model.StyleCover)
	var b strings.Builder
	b.WriteString("        <!-- " + name + " Section -->\n")
	b.WriteString("        <div class=\"section\">\n")
	b.WriteString("            <h2>" + name + "</h2>\n")
	if len(entries) > 0 {
		fragments := make([]string, len(entries))
		for i, e := range entries {
			fragments[i] = catalog.Render(style, e)
		}
		b.WriteString(catalog.RenderShelf(style, key, fragments))
	}
	b.WriteString("        </div>\n\n")
	return b.String()
}

func entry(id, artist, album string) model.Entry {
	return model.Entry{
		ID:      id,
		Artist:  artist,
		Album:   album,
		Link:    "https://example.bandcamp.com/album/" + strings.ToLower(strings.ReplaceAll(album, " ", "-")),
		Artwork: model.Artwork{WebP: strings.ToLower(strings.ReplaceAll(artist, " ", "-")) + ".webp"},
	}
}

func page() string {
	return "<html>\n<body>\n" +
		section("Metal", "metal", entry("m-1", "Mastodon", "Leviathan")) +
		section("Prog", "prog",
			entry("p-1", "Yes", "Fragile"),
			entry("p-2", "The Mars Volta", "Frances the Mute"),
			entry("", "Camel", "Mirage"),
		) +
		section("Alternative", "alternative") +
		"    <script src=\"app.js\"></script>\n</body>\n</html>\n"
}

type fakeScraper struct {
	info   model.AlbumInfo
	err    error
	albums []string
	failOn string
}

func (f *fakeScraper) Discography(ctx context.Context, url string) ([]string, error) {
	return f.albums, f.err
}

func (f *fakeScraper) Scrape(ctx context.Context, url string) (model.AlbumInfo, error) {
	if f.err != nil {
		return f.info, f.err
	}
	if url == f.failOn {
		return model.AlbumInfo{}, errors.New("page gone")
	}
	info := f.info
	info.URL = url
	return info, nil
}

type fakeArtwork struct {
	downloaded []string
	saved      [][]byte
	err        error
}

func (f *fakeArtwork) Download(ctx context.Context, url, artist, album string, onProgress func(written, total int64)) (model.Artwork, error) {
	f.downloaded = append(f.downloaded, url)
	if f.err != nil {
		return model.Artwork{}, f.err
	}
	if onProgress != nil {
		onProgress(10, 10)
	}
	return model.Artwork{JPEG: "cover.jpg", WebP: "cover.webp"}, nil
}

func (f *fakeArtwork) Save(ctx context.Context, data []byte, artist, album string) (model.Artwork, error) {
	f.saved = append(f.saved, data)
	if f.err != nil {
		return model.Artwork{}, f.err
	}
	return model.Artwork{JPEG: "tagged.jpg", WebP: "tagged.webp"}, nil
}

type fakeTags struct {
	tags audio.Tags
	err  error
}

func (f fakeTags) ReadTags(path string) (audio.Tags, error) {
	return f.tags, f.err
}

type harness struct {
	mgr     *Manager
	path    string
	artwork *fakeArtwork

	mu     sync.Mutex
	events []ProgressEvent
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte(page()), 0o644))

	h := &harness{path: path, artwork: &fakeArtwork{}}
	cfg.Document = document.New(path, nil)
	cfg.Engine = catalog.New(testSchema)
	if cfg.Artwork == nil {
		cfg.Artwork = h.artwork
	}
	cfg.OnProgress = func(e ProgressEvent) {
		h.mu.Lock()
		h.events = append(h.events, e)
		h.mu.Unlock()
	}
	h.mgr = NewManager(cfg)

	n := 0
	h.mgr.newID = func() string {
		n++
		return "new-" + string(rune('0'+n))
	}
	return h
}

func (h *harness) read(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(h.path)
	require.NoError(t, err)
	return string(data)
}

func artists(entries []model.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Artist
	}
	return out
}

func TestManager_Genres(t *testing.T) {
	h := newHarness(t, Config{})
	genres := h.mgr.Genres()
	assert.Equal(t, testSchema.Sections, genres)

	genres[0].Name = "changed"
	assert.Equal(t, "Metal", testSchema.Sections[0].Name)
}

func TestManager_AddAndList(t *testing.T) {
	h := newHarness(t, Config{})
	ctx := context.Background()

	added, err := h.mgr.AddEntry(ctx, "prog", model.Entry{
		Artist:  "  King Crimson ",
		Album:   "Red",
		Link:    "https://kingcrimson.bandcamp.com/album/red",
		Artwork: model.Artwork{WebP: "red.webp", JPEG: "red.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "new-1", added.ID)
	assert.Equal(t, "King Crimson", added.Artist)

	entries, err := h.mgr.ListEntries(ctx, "prog")
	require.NoError(t, err)
	require.Len(t, entries, 4)
	last := entries[3]
	assert.Equal(t, "new-1", last.ID)
	assert.Equal(t, "King Crimson", last.Artist)
	assert.Equal(t, "https://kingcrimson.bandcamp.com/album/red", last.Link)
	assert.Equal(t, model.Artwork{WebP: "red.webp", JPEG: "red.jpg"}, last.Artwork)

	// an existing ID is kept
	_, err = h.mgr.AddEntry(ctx, "alternative", entry("keep-me", "Failure", "Fantastic Planet"))
	require.NoError(t, err)
	alt, err := h.mgr.ListEntries(ctx, "alternative")
	require.NoError(t, err)
	require.Len(t, alt, 1)
	assert.Equal(t, "keep-me", alt[0].ID)

	assert.Equal(t, LevelSuccess, h.events[len(h.events)-1].Level)
}

func TestManager_AddErrorsLeaveDocument(t *testing.T) {
	h := newHarness(t, Config{})
	ctx := context.Background()
	before := h.read(t)

	_, err := h.mgr.AddEntry(ctx, "polka", entry("", "Weird Al", "Polka Party"))
	assert.ErrorIs(t, err, catalog.ErrUnknownGenre)

	_, err = h.mgr.AddEntry(ctx, "metal", model.Entry{Artist: "Sleep"})
	assert.ErrorIs(t, err, catalog.ErrInvalidEntry)

	_, err = h.mgr.ListEntries(ctx, "polka")
	assert.ErrorIs(t, err, catalog.ErrUnknownGenre)

	assert.Equal(t, before, h.read(t))
	assert.Equal(t, LevelError, h.events[len(h.events)-1].Level)
}

func TestManager_EditByIndexAndID(t *testing.T) {
	h := newHarness(t, Config{})
	ctx := context.Background()

	album := "Relayer"
	edited, err := h.mgr.EditEntry(ctx, "prog", IndexRef(0), model.EntryUpdate{Album: &album}, "")
	require.NoError(t, err)
	assert.Equal(t, "Yes", edited.Artist)
	assert.Equal(t, "Relayer", edited.Album)
	assert.Equal(t, "p-1", edited.ID)

	artist := "Mars Volta"
	_, err = h.mgr.EditEntry(ctx, "prog", IDRef("p-2"), model.EntryUpdate{Artist: &artist}, "alternative")
	require.NoError(t, err)

	prog, err := h.mgr.ListEntries(ctx, "prog")
	require.NoError(t, err)
	assert.Equal(t, []string{"Yes", "Camel"}, artists(prog))
	assert.Equal(t, "Relayer", prog[0].Album)

	alt, err := h.mgr.ListEntries(ctx, "alternative")
	require.NoError(t, err)
	require.Len(t, alt, 1)
	assert.Equal(t, "Mars Volta", alt[0].Artist)
	assert.Equal(t, "p-2", alt[0].ID)
}

func TestManager_EditErrors(t *testing.T) {
	h := newHarness(t, Config{})
	ctx := context.Background()
	before := h.read(t)

	album := "x"
	_, err := h.mgr.EditEntry(ctx, "prog", IDRef("missing"), model.EntryUpdate{Album: &album}, "")
	assert.ErrorIs(t, err, catalog.ErrEntryNotFound)

	_, err = h.mgr.EditEntry(ctx, "prog", IndexRef(7), model.EntryUpdate{Album: &album}, "")
	assert.ErrorIs(t, err, catalog.ErrEntryNotFound)

	_, err = h.mgr.EditEntry(ctx, "prog", IndexRef(0), model.EntryUpdate{Album: &album}, "polka")
	assert.ErrorIs(t, err, catalog.ErrUnknownGenre)

	empty := ""
	_, err = h.mgr.EditEntry(ctx, "prog", IndexRef(0), model.EntryUpdate{Artist: &empty}, "")
	assert.ErrorIs(t, err, catalog.ErrInvalidEntry)

	assert.Equal(t, before, h.read(t))
}

func TestManager_Delete(t *testing.T) {
	h := newHarness(t, Config{})
	ctx := context.Background()

	removed, err := h.mgr.DeleteEntry(ctx, "prog", IDRef("p-2"))
	require.NoError(t, err)
	assert.Equal(t, "The Mars Volta", removed.Artist)

	removed, err = h.mgr.DeleteEntry(ctx, "prog", IndexRef(1))
	require.NoError(t, err)
	assert.Equal(t, "Camel", removed.Artist)

	prog, err := h.mgr.ListEntries(ctx, "prog")
	require.NoError(t, err)
	assert.Equal(t, []string{"Yes"}, artists(prog))

	before := h.read(t)
	_, err = h.mgr.DeleteEntry(ctx, "prog", IndexRef(5))
	assert.ErrorIs(t, err, catalog.ErrEntryNotFound)
	assert.Equal(t, before, h.read(t))
}

func TestManager_Sort(t *testing.T) {
	h := newHarness(t, Config{})
	ctx := context.Background()

	reports, err := h.mgr.Sort(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.True(t, reports[1].Found)
	assert.Equal(t, 3, reports[1].Entries)

	prog, err := h.mgr.ListEntries(ctx, "prog")
	require.NoError(t, err)
	assert.Equal(t, []string{"Camel", "The Mars Volta", "Yes"}, artists(prog))

	sorted := h.read(t)
	_, err = h.mgr.Sort(ctx)
	require.NoError(t, err)
	assert.Equal(t, sorted, h.read(t))
}

func TestManager_ImportURL(t *testing.T) {
	scraper := &fakeScraper{info: model.AlbumInfo{Artist: "Elder", Album: "Lore", ArtworkURL: "https://f4.bcbits.com/img/a1_10.jpg"}}
	h := newHarness(t, Config{Scraper: scraper})
	ctx := context.Background()

	added, err := h.mgr.ImportURL(ctx, "https://elder.bandcamp.com/album/lore", "metal")
	require.NoError(t, err)
	assert.Equal(t, "https://elder.bandcamp.com/album/lore", added.Link)
	assert.Equal(t, model.Artwork{JPEG: "cover.jpg", WebP: "cover.webp"}, added.Artwork)
	assert.Equal(t, []string{"https://f4.bcbits.com/img/a1_10.jpg"}, h.artwork.downloaded)

	metal, err := h.mgr.ListEntries(ctx, "metal")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mastodon", "Elder"}, artists(metal))
}

func TestManager_ImportURLErrors(t *testing.T) {
	ctx := context.Background()

	h := newHarness(t, Config{Scraper: &fakeScraper{}})
	_, err := h.mgr.ImportURL(ctx, "https://x.bandcamp.com/album/y", "polka")
	assert.ErrorIs(t, err, catalog.ErrUnknownGenre)
	assert.Empty(t, h.artwork.downloaded)

	boom := errors.New("upstream down")
	h = newHarness(t, Config{Scraper: &fakeScraper{err: boom}})
	before := h.read(t)
	_, err = h.mgr.ImportURL(ctx, "https://x.bandcamp.com/album/y", "metal")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, h.read(t))

	h = newHarness(t, Config{
		Scraper: &fakeScraper{info: model.AlbumInfo{Artist: "a", Album: "b", ArtworkURL: "c"}},
		Artwork: &fakeArtwork{err: boom},
	})
	_, err = h.mgr.ImportURL(ctx, "https://x.bandcamp.com/album/y", "metal")
	assert.ErrorIs(t, err, boom)

	h = newHarness(t, Config{})
	_, err = h.mgr.Scrape(ctx, "https://x.bandcamp.com/album/y")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestManager_ImportTags(t *testing.T) {
	ctx := context.Background()
	tags := audio.Tags{Artist: "Rush", Album: "Moving Pictures", Cover: []byte{1, 2, 3}}

	h := newHarness(t, Config{Tags: fakeTags{tags: tags}})
	added, err := h.mgr.ImportTags(ctx, "/music/tom-sawyer.mp3", "prog", "https://rush.bandcamp.com/album/moving-pictures")
	require.NoError(t, err)
	assert.Equal(t, "Rush", added.Artist)
	assert.Equal(t, model.Artwork{JPEG: "tagged.jpg", WebP: "tagged.webp"}, added.Artwork)
	assert.Equal(t, [][]byte{{1, 2, 3}}, h.artwork.saved)

	// no cover: added without artwork and a warning is emitted
	tags.Cover = nil
	h = newHarness(t, Config{Tags: fakeTags{tags: tags}})
	added, err = h.mgr.ImportTags(ctx, "/music/tom-sawyer.mp3", "prog", "https://rush.bandcamp.com/album/moving-pictures")
	require.NoError(t, err)
	assert.True(t, added.Artwork.IsZero())
	assert.Empty(t, h.artwork.saved)
	assert.Equal(t, LevelWarning, h.events[0].Level)

	h = newHarness(t, Config{Tags: fakeTags{err: audio.ErrNoTags}})
	_, err = h.mgr.ImportTags(ctx, "/music/blank.mp3", "prog", "https://x")
	assert.ErrorIs(t, err, audio.ErrNoTags)

	h = newHarness(t, Config{})
	_, err = h.mgr.ImportTags(ctx, "/music/blank.mp3", "prog", "https://x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestManager_ConcurrentAdds(t *testing.T) {
	h := newHarness(t, Config{})
	h.mgr.newID = func() string { return "" }
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := h.mgr.AddEntry(ctx, "alternative", entry("", "Band", "Album "+string(rune('A'+i))))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	alt, err := h.mgr.ListEntries(ctx, "alternative")
	require.NoError(t, err)
	assert.Len(t, alt, 10)
}

func TestParseRef(t *testing.T) {
	assert.Equal(t, Ref{Index: 3}, ParseRef("3"))
	assert.Equal(t, Ref{Index: -1}, ParseRef("-1"))
	assert.Equal(t, Ref{ID: "0b6e-4c"}, ParseRef("0b6e-4c"))
	assert.Equal(t, "index 3", ParseRef("3").String())
	assert.Equal(t, "id abc", ParseRef("abc").String())
}

func TestManager_ImportDiscography(t *testing.T) {
	scraper := &fakeScraper{
		info: model.AlbumInfo{Artist: "Elder", Album: "Album", ArtworkURL: "https://f4.bcbits.com/img/a1_10.jpg"},
		albums: []string{
			"https://elder.bandcamp.com/album/dead-roots-stirring",
			"https://elder.bandcamp.com/album/gone",
			"https://example.bandcamp.com/album/leviathan",
			"https://elder.bandcamp.com/album/lore",
		},
		failOn: "https://elder.bandcamp.com/album/gone",
	}
	h := newHarness(t, Config{Scraper: scraper})
	ctx := context.Background()

	added, err := h.mgr.ImportDiscography(ctx, "https://elder.bandcamp.com", "metal")
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, "https://elder.bandcamp.com/album/dead-roots-stirring", added[0].Link)
	assert.Equal(t, "https://elder.bandcamp.com/album/lore", added[1].Link)

	metal, err := h.mgr.ListEntries(ctx, "metal")
	require.NoError(t, err)
	assert.Len(t, metal, 3)

	_, err = h.mgr.ImportDiscography(ctx, "https://elder.bandcamp.com", "polka")
	assert.ErrorIs(t, err, catalog.ErrUnknownGenre)
}
