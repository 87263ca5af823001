package config

import (
	"fmt"
	"sort"

	"github.com/consumethetangible/music-2025/internal/model"
)

// Schema preset names.
const (
	PresetShelf      = "shelf"
	PresetCollection = "collection"
	PresetVinyl      = "vinyl"
)

// SchemaConfig selects the document layout.
type SchemaConfig struct {
	// Preset names one of the built-in section lists.
	Preset string `yaml:"preset"`

	ShelfCapacity int `yaml:"shelf_capacity"`

	// Sections replaces the preset when non-empty.
	Sections []model.Section `yaml:"sections,omitempty"`
}

var collectionSections = []model.Section{
	{Name: "Metal", Key: "metal"},
	{Name: "Stoner & Psych", Key: "stoner-psych"},
	{Name: "Prog", Key: "prog"},
	{Name: "Rock & Roll", Key: "rock-roll"},
	{Name: "Alternative/Other", Key: "alternative-other"},
	{Name: "Live Albums", Key: "live-albums"},
	{Name: "Pop, Soul, R&B", Key: "pop-soul-rb"},
	{Name: "Jazz/Fusion", Key: "jazz-fusion"},
}

var presets = map[string]func() []model.Section{
	PresetShelf: func() []model.Section {
		return withStyle(model.StyleCover, []model.Section{
			{Name: "Metal", Key: "metal"},
			{Name: "Stoner & Psych", Key: "stoner-psych"},
			{Name: "Prog", Key: "prog"},
			{Name: "Rock & Pop", Key: "rock-pop"},
			{Name: "Alternative", Key: "alternative"},
			{Name: "Archival / Reissues", Key: "archival"},
		})
	},
	PresetCollection: func() []model.Section {
		return withStyle(model.StyleCover, collectionSections)
	},
	PresetVinyl: func() []model.Section {
		secs := append(collectionSections[:len(collectionSections):len(collectionSections)],
			model.Section{Name: "Archival / Reissues", Key: "archival"})
		return withStyle(model.StyleVinyl, secs)
	},
}

func withStyle(style model.StyleName, secs []model.Section) []model.Section {
	out := make([]model.Section, len(secs))
	for i, s := range secs {
		s.Style = style
		out[i] = s
	}
	return out
}

// PresetNames returns the built-in preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a copy of the sections of a built-in preset.
func Preset(name string) ([]model.Section, bool) {
	build, ok := presets[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

// CatalogSchema resolves the configured preset or explicit section list into
// a validated model.Schema.
func (s *Settings) CatalogSchema() (*model.Schema, error) {
	sections := s.Schema.Sections
	if len(sections) == 0 {
		preset, ok := Preset(s.Schema.Preset)
		if !ok {
			return nil, fmt.Errorf("unknown schema preset %q (valid: %v)", s.Schema.Preset, PresetNames())
		}
		sections = preset
	}

	capacity := s.Schema.ShelfCapacity
	if capacity == 0 {
		capacity = model.DefaultShelfCapacity
	}
	if capacity < 1 {
		return nil, fmt.Errorf("invalid shelf capacity: %d", capacity)
	}

	schema := &model.Schema{Sections: sections, ShelfCapacity: capacity}
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return schema, nil
}
