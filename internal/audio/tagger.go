package audio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bogem/id3v2"

	"github.com/consumethetangible/music-2025/internal/model"
)

// ErrNoTags is returned when an MP3 file has no usable artist or album tag.
var ErrNoTags = errors.New("no artist/album tags")

// Tags is the album metadata read from an MP3 file.
type Tags struct {
	// Artist is the album artist (TPE2) when set, the lead artist (TPE1)
	// otherwise.
	Artist string

	// Album is the TALB frame.
	Album string

	// Cover is the embedded front cover, or the first attached picture
	// when none is marked as front cover. Nil when the file has no picture.
	Cover     []byte
	CoverMIME string
}

// Entry returns a catalog entry for the tagged album with the given link.
func (t Tags) Entry(link string) model.Entry {
	return model.Entry{Artist: t.Artist, Album: t.Album, Link: link}.Normalize()
}

// Reader reads ID3 tags from MP3 files.
//
// Example:
//
//	tags, err := audio.NewReader().ReadTags("/music/01 Tom Sawyer.mp3")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(tags.Artist, tags.Album, len(tags.Cover))
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadTags reads artist, album and cover art from the file at path.
//
// Returns ErrNoTags if neither artist nor album could be read.
func (r *Reader) ReadTags(path string) (Tags, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Tags{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer tag.Close()

	tags := Tags{
		Artist: strings.TrimSpace(tag.GetTextFrame("TPE2").Text),
		Album:  strings.TrimSpace(tag.Album()),
	}
	if tags.Artist == "" {
		tags.Artist = strings.TrimSpace(tag.Artist())
	}
	if tags.Artist == "" && tags.Album == "" {
		return tags, fmt.Errorf("%s: %w", path, ErrNoTags)
	}

	tags.Cover, tags.CoverMIME = frontCover(tag)
	return tags, nil
}

// frontCover returns the front cover picture, falling back to the first
// attached picture.
func frontCover(tag *id3v2.Tag) ([]byte, string) {
	var fallback *id3v2.PictureFrame
	for _, f := range tag.GetFrames(tag.CommonID("Attached picture")) {
		pic, ok := f.(id3v2.PictureFrame)
		if !ok || len(pic.Picture) == 0 {
			continue
		}
		if pic.PictureType == id3v2.PTFrontCover {
			return pic.Picture, pic.MimeType
		}
		if fallback == nil {
			fallback = &pic
		}
	}
	if fallback != nil {
		return fallback.Picture, fallback.MimeType
	}
	return nil, ""
}
