package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consumethetangible/music-2025/internal/model"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())

	assert.Equal(t, "index-new.html", s.DocumentPath)
	assert.Equal(t, 3000, s.Server.Port)
	assert.Equal(t, PresetShelf, s.Schema.Preset)
	assert.Equal(t, ".", s.ArtworkPath())

	opts := s.HTTPOptions()
	assert.Equal(t, 60*time.Second, opts.Timeout)
	assert.Equal(t, 3, opts.MaxRetries)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	yml := `
document_path: site/index.html
site_dir: site
server:
  port: 8080
schema:
  preset: vinyl
  shelf_capacity: 6
artwork:
  size: 600
http:
  timeout: 5s
  retry_cooldown: 1s
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	assert.Equal(t, "site/index.html", s.DocumentPath)
	assert.Equal(t, "site", s.ArtworkPath())
	assert.Equal(t, 8080, s.Server.Port)
	assert.Equal(t, 600, s.ArtworkOptions().Size)
	// keys absent from the file keep their defaults
	assert.Equal(t, 85, s.Artwork.JPEGQuality)
	assert.Equal(t, 5*time.Second, s.HTTPOptions().Timeout)
	assert.Equal(t, time.Second, s.HTTPOptions().RetryCooldown)

	schema, err := s.CatalogSchema()
	require.NoError(t, err)
	assert.Equal(t, 6, schema.Capacity())
	assert.Len(t, schema.Sections, 9)
	for _, sec := range schema.Sections {
		assert.Equal(t, model.StyleVinyl, sec.Style)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CATALOG_DOCUMENT", "/srv/www/index.html")
	t.Setenv("CATALOG_ARTWORK_DIR", "/srv/www/covers")
	t.Setenv("CATALOG_PORT", "4000")
	t.Setenv("CATALOG_SCHEMA", PresetCollection)
	t.Setenv("CATALOG_LOG_LEVEL", "warn")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/www/index.html", s.DocumentPath)
	assert.Equal(t, "/srv/www/covers", s.ArtworkPath())
	assert.Equal(t, 4000, s.Server.Port)
	assert.Equal(t, PresetCollection, s.Schema.Preset)
	assert.Equal(t, "warn", s.LogOptions().Level)

	t.Setenv("CATALOG_PORT", "not-a-port")
	_, err = Load("")
	assert.ErrorContains(t, err, "CATALOG_PORT")
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CATALOG_SITE_DIR=from-dotenv\n"), 0o644))

	t.Setenv("CATALOG_SITE_DIR", "")
	require.NoError(t, os.Unsetenv("CATALOG_SITE_DIR"))

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env")))
	require.NoError(t, LoadEnv(envFile))
	assert.Equal(t, "from-dotenv", os.Getenv("CATALOG_SITE_DIR"))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.yaml")

	s := DefaultSettings()
	s.Schema.Sections = []model.Section{
		{Name: "Doom", Key: "doom", Style: model.StyleCover},
		{Name: "Live", Key: "live", Style: model.StyleVinyl},
	}
	s.Log.File = "catalog.log"
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	schema, err := loaded.CatalogSchema()
	require.NoError(t, err)
	assert.Equal(t, []string{"doom", "live"}, schema.Keys())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		errMsg string
	}{
		{"empty document", func(s *Settings) { s.DocumentPath = "" }, "document_path"},
		{"bad port", func(s *Settings) { s.Server.Port = 70000 }, "port"},
		{"bad quality", func(s *Settings) { s.Convert.AVIFQuality = 0 }, "convert.avif_quality"},
		{"bad timeout", func(s *Settings) { s.HTTP.Timeout = "soon" }, "http.timeout"},
		{"bad level", func(s *Settings) { s.Log.Level = "chatty" }, "chatty"},
		{"unknown preset", func(s *Settings) { s.Schema.Preset = "cassette" }, "cassette"},
		{"negative capacity", func(s *Settings) { s.Schema.ShelfCapacity = -1 }, "shelf capacity"},
		{"duplicate key", func(s *Settings) {
			s.Schema.Sections = []model.Section{{Name: "A", Key: "a"}, {Name: "B", Key: "a"}}
		}, "duplicate section key"},
		{"unknown style", func(s *Settings) {
			s.Schema.Sections = []model.Section{{Name: "A", Key: "a", Style: "cassette"}}
		}, "unknown style"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(s)
			assert.ErrorContains(t, s.Validate(), tt.errMsg)
		})
	}
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{PresetCollection, PresetShelf, PresetVinyl}, PresetNames())

	shelf, ok := Preset(PresetShelf)
	require.True(t, ok)
	assert.Equal(t, "Stoner & Psych", shelf[1].Name)
	assert.Equal(t, "archival", shelf[len(shelf)-1].Key)

	collection, _ := Preset(PresetCollection)
	vinyl, _ := Preset(PresetVinyl)
	assert.Len(t, collection, 8)
	assert.Len(t, vinyl, 9)
	assert.Equal(t, model.StyleCover, collection[0].Style)

	// presets hand out copies
	vinyl[0].Name = "changed"
	again, _ := Preset(PresetCollection)
	assert.Equal(t, "Metal", again[0].Name)

	_, ok = Preset("cassette")
	assert.False(t, ok)
}
