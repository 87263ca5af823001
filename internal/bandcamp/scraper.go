package bandcamp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/consumethetangible/music-2025/internal/model"
)

// PageFetcher fetches a page body as text.
type PageFetcher interface {
	GetString(ctx context.Context, url string) (string, error)
}

// Scraper fetches Bandcamp album pages and extracts catalog metadata.
//
// Example usage:
//
//	scraper := NewScraper(http.NewClient(http.DefaultOptions()), logger)
//
//	info, err := scraper.Scrape(ctx, "https://artist.bandcamp.com/album/name")
//	var ee *ExtractionError
//	if errors.As(err, &ee) {
//	    fmt.Printf("partial: %+v\n", ee.Found)
//	}
type Scraper struct {
	fetcher PageFetcher
	logger  *zap.Logger
}

// NewScraper creates a Scraper using fetcher for page downloads.
func NewScraper(fetcher PageFetcher, logger *zap.Logger) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scraper{fetcher: fetcher, logger: logger}
}

// Scrape validates rawURL, fetches the page and extracts the album record.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (model.AlbumInfo, error) {
	pageURL, err := ValidateURL(rawURL)
	if err != nil {
		return model.AlbumInfo{}, err
	}

	s.logger.Debug("fetching album page", zap.String("url", pageURL))
	page, err := s.fetcher.GetString(ctx, pageURL)
	if err != nil {
		return model.AlbumInfo{}, fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	info, err := ParseAlbumInfo(page, pageURL)
	if err != nil {
		s.logger.Warn("incomplete extraction",
			zap.String("url", pageURL),
			zap.String("artist", info.Artist),
			zap.String("album", info.Album),
			zap.String("artwork", info.ArtworkURL),
		)
		return info, err
	}

	s.logger.Info("scraped album",
		zap.String("artist", info.Artist),
		zap.String("album", info.Album),
	)
	return info, nil
}

// ValidateURL checks that rawURL is an http(s) URL on bandcamp.com or one of
// its subdomains and returns it trimmed.
func ValidateURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme %q", ErrInvalidURL, u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	if host != "bandcamp.com" && !strings.HasSuffix(host, ".bandcamp.com") {
		return "", fmt.Errorf("%w: host %q", ErrInvalidURL, host)
	}
	return rawURL, nil
}
