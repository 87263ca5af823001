package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consumethetangible/music-2025/internal/admin"
	"github.com/consumethetangible/music-2025/internal/model"
)

type fakeWorkflow struct {
	scrapeErr error
	addedKey  string
	added     model.Entry
}

func (f *fakeWorkflow) Genres() []model.Section {
	return []model.Section{
		{Name: "Metal", Key: "metal"},
		{Name: "Prog", Key: "prog"},
	}
}

func (f *fakeWorkflow) Scrape(ctx context.Context, url string) (model.AlbumInfo, error) {
	return model.AlbumInfo{Artist: "Elder", Album: "Lore", ArtworkURL: "https://f4.bcbits.com/a.jpg", URL: url}, f.scrapeErr
}

func (f *fakeWorkflow) DownloadArtwork(ctx context.Context, url, artist, album string) (model.Artwork, error) {
	return model.Artwork{JPEG: "elder-lore.jpg", WebP: "elder-lore.webp"}, nil
}

func (f *fakeWorkflow) AddEntry(ctx context.Context, key string, entry model.Entry) (model.Entry, error) {
	f.addedKey = key
	entry.ID = "id-1"
	f.added = entry
	return entry, nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestAddFlow(t *testing.T) {
	wf := &fakeWorkflow{}
	m := NewModel(wf, nil)
	m.textInput.SetValue("https://elder.bandcamp.com/album/lore")

	m = update(t, m, key("enter"))
	assert.Equal(t, StateScraping, m.State())

	info, _ := wf.Scrape(context.Background(), "https://elder.bandcamp.com/album/lore")
	m = update(t, m, ScrapeDoneMsg{Info: info})
	assert.Equal(t, StateGenre, m.State())
	assert.Contains(t, m.View(), "Elder - Lore")

	m = update(t, m, key("down"))
	assert.Equal(t, "prog", m.SelectedGenre().Key)
	m = update(t, m, key("down"))
	assert.Equal(t, "prog", m.SelectedGenre().Key)

	m = update(t, m, key("enter"))
	assert.Equal(t, StateAdding, m.State())

	m = update(t, m, ArtworkDoneMsg{Artwork: model.Artwork{JPEG: "elder-lore.jpg", WebP: "elder-lore.webp"}})
	assert.Equal(t, StateAdding, m.State())

	msg := m.addEntry()()
	done, ok := msg.(AddDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Equal(t, "prog", wf.addedKey)
	assert.Equal(t, "https://elder.bandcamp.com/album/lore", wf.added.Link)
	assert.Equal(t, "elder-lore.webp", wf.added.Artwork.WebP)

	m = update(t, m, done)
	assert.Equal(t, StateComplete, m.State())
	assert.Contains(t, m.View(), "Section: Prog")

	m = update(t, m, key("r"))
	assert.Equal(t, StateInput, m.State())
	assert.Empty(t, m.textInput.Value())
}

func TestScrapeError(t *testing.T) {
	m := NewModel(&fakeWorkflow{}, nil)
	m.textInput.SetValue("https://x.bandcamp.com/album/y")
	m = update(t, m, key("enter"))

	boom := errors.New("could not extract album information")
	m = update(t, m, ScrapeDoneMsg{Err: boom})
	assert.Equal(t, StateError, m.State())
	assert.ErrorIs(t, m.Err(), boom)
	assert.Contains(t, m.View(), boom.Error())
}

func TestCancel(t *testing.T) {
	m := NewModel(&fakeWorkflow{}, nil)
	m.textInput.SetValue("https://x.bandcamp.com/album/y")
	m = update(t, m, key("enter"))

	m = update(t, m, key("esc"))
	assert.Equal(t, StateError, m.State())
	assert.ErrorIs(t, m.Err(), errCancelled)

	// a late result does not resurrect the flow
	m = update(t, m, ScrapeDoneMsg{Info: model.AlbumInfo{Artist: "a"}})
	assert.Equal(t, StateError, m.State())
}

func TestProgressEvents(t *testing.T) {
	events := make(chan admin.ProgressEvent, 2)
	m := NewModel(&fakeWorkflow{}, events)

	m = update(t, m, ProgressMsg{Event: admin.ProgressEvent{Message: "scraping", Level: admin.LevelVerbose}})
	assert.Empty(t, m.logs)

	m = update(t, m, ProgressMsg{Event: admin.ProgressEvent{Message: "Found album", Level: admin.LevelInfo}})
	require.Len(t, m.logs, 1)
	assert.Equal(t, "Found album", m.logs[0].Message)

	events <- admin.ProgressEvent{Message: "next", Level: admin.LevelSuccess}
	msg := m.waitForEvent()()
	assert.Equal(t, ProgressMsg{Event: admin.ProgressEvent{Message: "next", Level: admin.LevelSuccess}}, msg)
}
