package bandcamp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ErrNoAlbumFound is returned when an artist page lists no album.
var ErrNoAlbumFound = errors.New("no album found on page")

var (
	albumLink       = regexp.MustCompile(`(/album/[A-Za-z0-9_-]+)`)
	singleAlbumLink = regexp.MustCompile(`href="(/album/[A-Za-z0-9_-]+)`)
)

// AlbumURLs returns the absolute album URLs listed on an artist's music page,
// sorted and without duplicates. Tracks are not catalog entries and are
// skipped.
//
// Artists with a single release are redirected from /music to that album's
// page; it is recognised by its discography block and yields one URL.
func AlbumURLs(pageHTML, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	re := albumLink
	if strings.Contains(pageHTML, `div id="discography"`) {
		re = singleAlbumLink
	}

	set := make(map[string]struct{})
	for _, m := range re.FindAllStringSubmatch(pageHTML, -1) {
		ref, err := url.Parse(m[1])
		if err != nil {
			continue
		}
		set[base.ResolveReference(ref).String()] = struct{}{}
	}
	if len(set) == 0 {
		return nil, ErrNoAlbumFound
	}

	urls := make([]string, 0, len(set))
	for u := range set {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls, nil
}

// Discography returns the album URLs of the artist that rawURL belongs to.
// Any page of the artist's site may be given; its /music page is read.
func (s *Scraper) Discography(ctx context.Context, rawURL string) ([]string, error) {
	pageURL, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}
	u, _ := url.Parse(pageURL)
	music := u.Scheme + "://" + u.Host + "/music"

	body, err := s.fetcher.GetString(ctx, music)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", music, err)
	}
	urls, err := AlbumURLs(body, music)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("read discography", zap.String("url", music), zap.Int("albums", len(urls)))
	return urls, nil
}
