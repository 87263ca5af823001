package bandcamp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/consumethetangible/music-2025/internal/model"
)

var (
	// ErrInvalidURL is returned for URLs that are not Bandcamp pages.
	ErrInvalidURL = errors.New("invalid Bandcamp URL")

	// ErrIncompleteExtraction is returned when artist, album or artwork
	// could not be found by any strategy.
	ErrIncompleteExtraction = errors.New("could not extract album information")

	// ErrNoAlbumData is returned when a page has no data-tralbum attribute.
	ErrNoAlbumData = errors.New("could not find album data in HTML")
)

// ExtractionError carries the fields that were found before extraction gave up.
type ExtractionError struct {
	Found model.AlbumInfo
}

func (e *ExtractionError) Error() string {
	var missing []string
	if e.Found.Artist == "" {
		missing = append(missing, "artist")
	}
	if e.Found.Album == "" {
		missing = append(missing, "album")
	}
	if e.Found.ArtworkURL == "" {
		missing = append(missing, "artwork")
	}
	return fmt.Sprintf("%s: missing %s", ErrIncompleteExtraction, strings.Join(missing, ", "))
}

func (e *ExtractionError) Unwrap() error {
	return ErrIncompleteExtraction
}
