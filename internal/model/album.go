package model

import "strings"

// AlbumInfo is the metadata scraped from an album page.
//
// All three of Artist, Album and ArtworkURL must be present for a scrape to
// count as complete. URL is the page the record was scraped from and becomes
// the entry's external link.
type AlbumInfo struct {
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	ArtworkURL string `json:"artworkUrl"`
	URL        string `json:"bandcampUrl"`
}

// Complete reports whether every required field was found.
func (a *AlbumInfo) Complete() bool {
	return a.Artist != "" && a.Album != "" && a.ArtworkURL != ""
}

// Artwork holds the file names of the transcoded cover art variants.
//
// File names are relative to the site directory, e.g. "rush-moving-pictures.webp".
type Artwork struct {
	WebP string `json:"webpFilename,omitempty"`
	JPEG string `json:"jpgFilename,omitempty"`
}

// Primary returns the preferred image: WebP when available, JPEG otherwise.
func (a Artwork) Primary() string {
	if a.WebP != "" {
		return a.WebP
	}
	return a.JPEG
}

// IsZero reports whether no artwork file is referenced.
func (a Artwork) IsZero() bool {
	return a.WebP == "" && a.JPEG == ""
}

// Entry is one catalog item.
//
// Within a section an entry is addressed by its position among all entries of
// that genre in document order. ID is only set for entries rendered with a
// data-id attribute and survives sorting and edits.
type Entry struct {
	ID      string  `json:"id,omitempty"`
	Artist  string  `json:"artist"`
	Album   string  `json:"album"`
	Link    string  `json:"bandcampUrl"`
	Artwork Artwork `json:"artwork"`
}

// Label returns "Artist - Album", the text used for image alt attributes.
func (e Entry) Label() string {
	return e.Artist + " - " + e.Album
}

// Normalize trims surrounding whitespace from the text fields.
func (e Entry) Normalize() Entry {
	e.Artist = strings.TrimSpace(e.Artist)
	e.Album = strings.TrimSpace(e.Album)
	e.Link = strings.TrimSpace(e.Link)
	e.Artwork.WebP = strings.TrimSpace(e.Artwork.WebP)
	e.Artwork.JPEG = strings.TrimSpace(e.Artwork.JPEG)
	return e
}

// EntryUpdate describes a partial edit. Nil fields keep their current value.
type EntryUpdate struct {
	Artist *string
	Album  *string
	Link   *string
	WebP   *string
	JPEG   *string
}

// Apply returns e with the non-nil fields of u replaced.
func (u EntryUpdate) Apply(e Entry) Entry {
	if u.Artist != nil {
		e.Artist = *u.Artist
	}
	if u.Album != nil {
		e.Album = *u.Album
	}
	if u.Link != nil {
		e.Link = *u.Link
	}
	if u.WebP != nil {
		e.Artwork.WebP = *u.WebP
	}
	if u.JPEG != nil {
		e.Artwork.JPEG = *u.JPEG
	}
	return e.Normalize()
}

// IsEmpty reports whether the update changes nothing.
func (u EntryUpdate) IsEmpty() bool {
	return u.Artist == nil && u.Album == nil && u.Link == nil && u.WebP == nil && u.JPEG == nil
}
