package model

import (
	"errors"
	"fmt"
)

// StyleName identifies a markup convention.
type StyleName string

const (
	// StyleCover is the compact shelf/cover layout: an <a class="album-cover">
	// with an artist/title overlay.
	StyleCover StyleName = "cover"

	// StyleVinyl is the vinyl/release layout: a <div class="release"> with a
	// <picture> offering a WebP source and a JPEG fallback.
	StyleVinyl StyleName = "vinyl"
)

// Style describes the tags and classes one markup convention uses for
// shelves, containers and entries.
type Style struct {
	Name           StyleName
	ShelfClass     string
	ContainerClass string
	EntryTag       string
	EntryClass     string
}

var styles = map[StyleName]Style{
	StyleCover: {
		Name:           StyleCover,
		ShelfClass:     "shelf",
		ContainerClass: "albums",
		EntryTag:       "a",
		EntryClass:     "album-cover",
	},
	StyleVinyl: {
		Name:           StyleVinyl,
		ShelfClass:     "vinyl-shelf",
		ContainerClass: "releases",
		EntryTag:       "div",
		EntryClass:     "release",
	},
}

// LookupStyle returns the style registered under name.
func LookupStyle(name StyleName) (Style, bool) {
	s, ok := styles[name]
	return s, ok
}

// ShelfOpen returns the opening tag of a shelf wrapper.
func (s Style) ShelfOpen() string {
	return `<div class="` + s.ShelfClass + `">`
}

// ContainerOpen returns the opening tag of the entry container for genre key.
func (s Style) ContainerOpen(key string) string {
	return `<div class="` + s.ContainerClass + `" data-genre="` + key + `">`
}

// EntryMarker returns the text every entry of this style starts with.
func (s Style) EntryMarker() string {
	return `<` + s.EntryTag + ` class="` + s.EntryClass + `"`
}

// Section is a named catalog category.
type Section struct {
	Name  string    `yaml:"name" json:"name"`
	Key   string    `yaml:"key" json:"key"`
	Style StyleName `yaml:"style" json:"style"`
}

// Marker returns the comment that introduces the section in the document.
func (s Section) Marker() string {
	return "<!-- " + s.Name + " Section -->"
}

// Schema is the document layout descriptor: which sections exist, which
// markup convention each uses and how many entries fit on one shelf.
type Schema struct {
	Sections      []Section
	ShelfCapacity int
}

// DefaultShelfCapacity is the number of entries per shelf.
const DefaultShelfCapacity = 4

// Section returns the section registered under the machine key.
func (s *Schema) Section(key string) (Section, bool) {
	for _, sec := range s.Sections {
		if sec.Key == key {
			return sec, true
		}
	}
	return Section{}, false
}

// Style returns the markup convention of sec, defaulting to StyleCover.
func (s *Schema) Style(sec Section) Style {
	if st, ok := LookupStyle(sec.Style); ok {
		return st
	}
	return styles[StyleCover]
}

// Capacity returns the shelf capacity, falling back to DefaultShelfCapacity.
func (s *Schema) Capacity() int {
	if s.ShelfCapacity < 1 {
		return DefaultShelfCapacity
	}
	return s.ShelfCapacity
}

// Keys returns the section keys in schema order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.Sections))
	for i, sec := range s.Sections {
		keys[i] = sec.Key
	}
	return keys
}

// Validate checks that the schema is usable.
func (s *Schema) Validate() error {
	if len(s.Sections) == 0 {
		return errors.New("schema has no sections")
	}
	if s.ShelfCapacity < 0 {
		return fmt.Errorf("invalid shelf capacity %d", s.ShelfCapacity)
	}

	keys := make(map[string]struct{}, len(s.Sections))
	names := make(map[string]struct{}, len(s.Sections))
	for _, sec := range s.Sections {
		if sec.Key == "" || sec.Name == "" {
			return fmt.Errorf("section %q/%q: name and key are required", sec.Name, sec.Key)
		}
		if _, ok := keys[sec.Key]; ok {
			return fmt.Errorf("duplicate section key %q", sec.Key)
		}
		if _, ok := names[sec.Name]; ok {
			return fmt.Errorf("duplicate section name %q", sec.Name)
		}
		if sec.Style != "" {
			if _, ok := LookupStyle(sec.Style); !ok {
				return fmt.Errorf("section %q: unknown style %q", sec.Key, sec.Style)
			}
		}
		keys[sec.Key] = struct{}{}
		names[sec.Name] = struct{}{}
	}
	return nil
}
