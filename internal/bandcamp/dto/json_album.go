package dto

import (
	"fmt"
	"strings"

	"github.com/consumethetangible/music-2025/internal/model"
)

const (
	artworkURLStart = "https://f4.bcbits.com/img/a"
	artworkURLEnd   = "_0.jpg"
)

// JSONAlbum represents the album data embedded in a Bandcamp page's
// data-tralbum attribute. Only the fields used for catalog entries are kept.
type JSONAlbum struct {
	AlbumData *JSONAlbumData `json:"current"`
	ArtID     *int64         `json:"art_id"`
	Artist    string         `json:"artist"`
	URL       string         `json:"url"`
}

// JSONAlbumData contains album metadata.
type JSONAlbumData struct {
	AlbumTitle string `json:"title"`
}

// ArtworkURL builds the full-size artwork URL from the art ID, or returns ""
// when the album has no artwork.
func (ja *JSONAlbum) ArtworkURL() string {
	if ja.ArtID == nil || *ja.ArtID <= 0 {
		return ""
	}
	return fmt.Sprintf("%s%010d%s", artworkURLStart, *ja.ArtID, artworkURLEnd)
}

// ToAlbumInfo converts JSONAlbum to a model.AlbumInfo. pageURL is used when
// the JSON carries no URL of its own.
func (ja *JSONAlbum) ToAlbumInfo(pageURL string) model.AlbumInfo {
	info := model.AlbumInfo{
		Artist:     strings.TrimSpace(ja.Artist),
		ArtworkURL: ja.ArtworkURL(),
		URL:        pageURL,
	}
	if ja.AlbumData != nil {
		info.Album = strings.TrimSpace(ja.AlbumData.AlbumTitle)
	}
	if info.URL == "" {
		info.URL = ja.URL
	}
	return info
}
