package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/consumethetangible/music-2025/internal/audio"
	"github.com/consumethetangible/music-2025/internal/catalog"
	"github.com/consumethetangible/music-2025/internal/document"
	"github.com/consumethetangible/music-2025/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent is a user-facing status update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Scraper extracts album metadata from a page URL and lists the albums of
// an artist.
type Scraper interface {
	Scrape(ctx context.Context, url string) (model.AlbumInfo, error)
	Discography(ctx context.Context, url string) ([]string, error)
}

// ArtworkStore turns cover art into the files entries reference.
type ArtworkStore interface {
	Download(ctx context.Context, url, artist, album string, onProgress func(written, total int64)) (model.Artwork, error)
	Save(ctx context.Context, data []byte, artist, album string) (model.Artwork, error)
}

// TagReader reads album metadata from a local audio file.
type TagReader interface {
	ReadTags(path string) (audio.Tags, error)
}

// Config holds the collaborators of a Manager. Document and Engine are
// required; the others are only needed by the operations that use them.
type Config struct {
	Document *document.File
	Engine   *catalog.Engine
	Scraper  Scraper
	Artwork  ArtworkStore
	Tags     TagReader
	Logger   *zap.Logger

	// OnProgress receives user-facing status updates. May be nil.
	OnProgress func(ProgressEvent)
}

// ErrNotConfigured is returned by operations whose collaborator is missing.
var ErrNotConfigured = errors.New("operation not configured")

// Manager executes catalog requests against the document file.
//
// Every mutation is one read-modify-write cycle on the document; entry
// indexes and IDs are resolved inside that cycle.
type Manager struct {
	doc     *document.File
	engine  *catalog.Engine
	scraper Scraper
	artwork ArtworkStore
	tags    TagReader
	logger  *zap.Logger

	onProgress func(ProgressEvent)
	newID      func() string
}

// NewManager creates a new Manager.
func NewManager(cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		doc:        cfg.Document,
		engine:     cfg.Engine,
		scraper:    cfg.Scraper,
		artwork:    cfg.Artwork,
		tags:       cfg.Tags,
		logger:     logger,
		onProgress: cfg.OnProgress,
		newID:      uuid.NewString,
	}
}

// Ref addresses an entry within a genre, by ID when set and by index otherwise.
type Ref struct {
	Index int
	ID    string
}

// ParseRef reads a path or argument value: integers are indexes, anything
// else is an ID.
func ParseRef(v string) Ref {
	if i, err := strconv.Atoi(v); err == nil {
		return IndexRef(i)
	}
	return IDRef(v)
}

// IndexRef returns a Ref for the entry at index.
func IndexRef(index int) Ref {
	return Ref{Index: index}
}

// IDRef returns a Ref for the entry carrying id.
func IDRef(id string) Ref {
	return Ref{ID: id}
}

func (r Ref) String() string {
	if r.ID != "" {
		return "id " + r.ID
	}
	return fmt.Sprintf("index %d", r.Index)
}

func (m *Manager) resolve(doc, key string, ref Ref) (int, error) {
	if ref.ID == "" {
		return ref.Index, nil
	}
	return m.engine.ResolveID(doc, key, ref.ID)
}

// Genres returns the sections of the document schema in order.
func (m *Manager) Genres() []model.Section {
	secs := m.engine.Schema().Sections
	out := make([]model.Section, len(secs))
	copy(out, secs)
	return out
}

// Scrape extracts artist, album and artwork URL from an album page.
func (m *Manager) Scrape(ctx context.Context, url string) (model.AlbumInfo, error) {
	if m.scraper == nil {
		return model.AlbumInfo{}, fmt.Errorf("scrape: %w", ErrNotConfigured)
	}
	m.progress(ProgressEvent{Message: "Scraping " + url, Level: LevelVerbose})

	info, err := m.scraper.Scrape(ctx, url)
	if err != nil {
		m.logger.Error("scrape failed", zap.String("url", url), zap.Error(err))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error scraping %s: %v", url, err), Level: LevelError})
		return info, err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found album: %s - %s", info.Artist, info.Album), Level: LevelInfo})
	return info, nil
}

// DownloadArtwork fetches the cover at url and writes its JPEG and WebP
// variants named after artist and album.
func (m *Manager) DownloadArtwork(ctx context.Context, url, artist, album string) (model.Artwork, error) {
	if m.artwork == nil {
		return model.Artwork{}, fmt.Errorf("download artwork: %w", ErrNotConfigured)
	}
	m.progress(ProgressEvent{Message: "Downloading artwork " + url, Level: LevelVerbose})

	art, err := m.artwork.Download(ctx, url, artist, album, func(written, total int64) {
		if written == total && total > 0 {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded %d bytes", total), Level: LevelVerbose})
		}
	})
	if err != nil {
		m.logger.Error("artwork download failed", zap.String("url", url), zap.Error(err))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading artwork: %v", err), Level: LevelError})
		return art, err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Saved %s and %s", art.JPEG, art.WebP), Level: LevelInfo})
	return art, nil
}

// AddEntry appends entry to the genre. Entries without an ID get a new one.
// The stored entry is returned.
func (m *Manager) AddEntry(ctx context.Context, key string, entry model.Entry) (model.Entry, error) {
	entry = entry.Normalize()
	if entry.ID == "" {
		entry.ID = m.newID()
	}

	err := m.doc.Update(ctx, func(doc string) (string, error) {
		return m.engine.Add(doc, key, entry)
	})
	if err != nil {
		m.logFailure("add failed", err, zap.String("genre", key), zap.String("artist", entry.Artist), zap.String("album", entry.Album))
		return model.Entry{}, err
	}

	m.logger.Info("entry added",
		zap.String("genre", key),
		zap.String("id", entry.ID),
		zap.String("artist", entry.Artist),
		zap.String("album", entry.Album),
	)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Added %s to %s", entry.Label(), key), Level: LevelSuccess})
	return entry, nil
}

// ImportURL scrapes an album page, downloads its artwork and adds the album
// to the genre.
func (m *Manager) ImportURL(ctx context.Context, url, key string) (model.Entry, error) {
	if _, ok := m.engine.Schema().Section(key); !ok {
		return model.Entry{}, fmt.Errorf("%w: %s", catalog.ErrUnknownGenre, key)
	}

	info, err := m.Scrape(ctx, url)
	if err != nil {
		return model.Entry{}, err
	}
	art, err := m.DownloadArtwork(ctx, info.ArtworkURL, info.Artist, info.Album)
	if err != nil {
		return model.Entry{}, err
	}
	return m.AddEntry(ctx, key, model.Entry{
		Artist:  info.Artist,
		Album:   info.Album,
		Link:    info.URL,
		Artwork: art,
	})
}

// ImportDiscography imports every album of the artist url belongs to. Albums
// already linked from the genre are skipped. Failures are reported per album
// and do not stop the run; the error is only set when the album list itself
// cannot be read.
func (m *Manager) ImportDiscography(ctx context.Context, url, key string) ([]model.Entry, error) {
	if m.scraper == nil {
		return nil, fmt.Errorf("discography: %w", ErrNotConfigured)
	}
	existing, err := m.ListEntries(ctx, key)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(existing))
	for _, e := range existing {
		known[e.Link] = true
	}

	urls, err := m.scraper.Discography(ctx, url)
	if err != nil {
		m.logger.Error("discography failed", zap.String("url", url), zap.Error(err))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error getting albums from %s: %v", url, err), Level: LevelError})
		return nil, err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d album(s)", len(urls)), Level: LevelInfo})

	var added []model.Entry
	for _, albumURL := range urls {
		if err := ctx.Err(); err != nil {
			return added, err
		}
		if known[albumURL] {
			m.progress(ProgressEvent{Message: "Already listed: " + albumURL, Level: LevelVerbose})
			continue
		}
		entry, err := m.ImportURL(ctx, albumURL, key)
		if err != nil {
			continue
		}
		added = append(added, entry)
	}
	return added, nil
}

// ImportTags adds the album an MP3 file belongs to, using its embedded
// cover art when present.
func (m *Manager) ImportTags(ctx context.Context, path, key, link string) (model.Entry, error) {
	if m.tags == nil {
		return model.Entry{}, fmt.Errorf("import tags: %w", ErrNotConfigured)
	}
	if _, ok := m.engine.Schema().Section(key); !ok {
		return model.Entry{}, fmt.Errorf("%w: %s", catalog.ErrUnknownGenre, key)
	}

	tags, err := m.tags.ReadTags(path)
	if err != nil {
		m.logger.Warn("read tags failed", zap.String("file", path), zap.Error(err))
		return model.Entry{}, err
	}
	entry := tags.Entry(link)

	switch {
	case len(tags.Cover) == 0:
		m.progress(ProgressEvent{Message: "No cover art in " + path, Level: LevelWarning})
	case m.artwork == nil:
		m.progress(ProgressEvent{Message: "Artwork output not configured; skipping cover", Level: LevelWarning})
	default:
		art, err := m.artwork.Save(ctx, tags.Cover, entry.Artist, entry.Album)
		if err != nil {
			m.logger.Error("save cover failed", zap.String("file", path), zap.Error(err))
			return model.Entry{}, err
		}
		entry.Artwork = art
	}

	return m.AddEntry(ctx, key, entry)
}

// ListEntries returns the entries of a genre in document order.
func (m *Manager) ListEntries(ctx context.Context, key string) ([]model.Entry, error) {
	doc, err := m.doc.Read(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := m.engine.List(doc, key)
	if err != nil {
		m.logFailure("list failed", err, zap.String("genre", key))
		return nil, err
	}
	return entries, nil
}

// EditEntry applies upd to the referenced entry. A non-empty newKey that
// differs from key moves the entry to the end of that genre.
func (m *Manager) EditEntry(ctx context.Context, key string, ref Ref, upd model.EntryUpdate, newKey string) (model.Entry, error) {
	var (
		edited model.Entry
		index  int
	)
	err := m.doc.Update(ctx, func(doc string) (string, error) {
		var err error
		if index, err = m.resolve(doc, key, ref); err != nil {
			return doc, err
		}
		var out string
		out, edited, err = m.engine.Edit(doc, key, index, upd, newKey)
		return out, err
	})
	if err != nil {
		m.logFailure("edit failed", err, zap.String("genre", key), zap.Stringer("ref", ref))
		return model.Entry{}, err
	}

	fields := []zap.Field{
		zap.String("genre", key),
		zap.Int("index", index),
		zap.String("artist", edited.Artist),
		zap.String("album", edited.Album),
	}
	if newKey != "" && newKey != key {
		fields = append(fields, zap.String("moved_to", newKey))
	}
	m.logger.Info("entry edited", fields...)
	m.progress(ProgressEvent{Message: "Updated " + edited.Label(), Level: LevelSuccess})
	return edited, nil
}

// DeleteEntry removes the referenced entry and returns it.
func (m *Manager) DeleteEntry(ctx context.Context, key string, ref Ref) (model.Entry, error) {
	var (
		removed model.Entry
		index   int
	)
	err := m.doc.Update(ctx, func(doc string) (string, error) {
		var err error
		if index, err = m.resolve(doc, key, ref); err != nil {
			return doc, err
		}
		var out string
		out, removed, err = m.engine.Delete(doc, key, index)
		return out, err
	})
	if err != nil {
		m.logFailure("delete failed", err, zap.String("genre", key), zap.Stringer("ref", ref))
		return model.Entry{}, err
	}

	m.logger.Info("entry deleted",
		zap.String("genre", key),
		zap.Int("index", index),
		zap.String("artist", removed.Artist),
		zap.String("album", removed.Album),
	)
	m.progress(ProgressEvent{Message: "Deleted " + removed.Label(), Level: LevelSuccess})
	return removed, nil
}

// Sort orders every section alphabetically by artist and repacks its shelves.
// Sections that cannot be sorted are reported and left unchanged.
func (m *Manager) Sort(ctx context.Context) ([]catalog.SectionReport, error) {
	var reports []catalog.SectionReport
	err := m.doc.Update(ctx, func(doc string) (string, error) {
		var out string
		out, reports = m.engine.Sort(doc)
		return out, nil
	})
	if err != nil {
		m.logger.Error("sort failed", zap.Error(err))
		return nil, err
	}

	total := 0
	for _, r := range reports {
		if r.Err != nil {
			m.logger.Warn("section skipped", zap.String("section", r.Section), zap.String("reason", r.Message()))
			m.progress(ProgressEvent{Message: fmt.Sprintf("%s: %s", r.Section, r.Message()), Level: LevelWarning})
			continue
		}
		total += r.Entries
		m.logger.Info("section sorted",
			zap.String("section", r.Section),
			zap.Int("entries", r.Entries),
			zap.Int("shelves", r.Shelves),
		)
		m.progress(ProgressEvent{Message: fmt.Sprintf("%s: %d albums on %d shelves", r.Section, r.Entries, r.Shelves), Level: LevelVerbose})
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Sorted %d albums", total), Level: LevelSuccess})
	return reports, nil
}

func (m *Manager) logFailure(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if catalog.IsLookupError(err) || errors.Is(err, catalog.ErrEntryNotFound) {
		m.logger.Warn(msg, fields...)
	} else {
		m.logger.Error(msg, fields...)
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("%s: %v", msg, err), Level: LevelError})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
