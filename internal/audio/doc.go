// Package audio reads album metadata from local MP3 files.
//
// # ID3 Tags
//
// Use the Reader to pull the album artist, album title and embedded cover art
// from an MP3's ID3v2 tag:
//
//	tags, err := audio.NewReader().ReadTags(path)
//	entry := tags.Entry("https://artist.bandcamp.com/album/name")
//
// The album artist (TPE2) is preferred over the track artist (TPE1) so that
// compilation tracks resolve to the album's credited artist.
package audio
