package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/consumethetangible/music-2025/internal/artwork"
	"github.com/consumethetangible/music-2025/internal/http"
	"github.com/consumethetangible/music-2025/internal/logging"
)

// Settings holds all configuration options.
type Settings struct {
	// DocumentPath is the catalog page that is edited.
	DocumentPath string `yaml:"document_path"`

	// SiteDir is served as static content by the admin server.
	SiteDir string `yaml:"site_dir"`

	// ArtworkDir receives downloaded artwork. Defaults to SiteDir.
	ArtworkDir string `yaml:"artwork_dir"`

	Server  ServerConfig  `yaml:"server"`
	Schema  SchemaConfig  `yaml:"schema"`
	Artwork ArtworkConfig `yaml:"artwork"`
	Convert ConvertConfig `yaml:"convert"`
	HTTP    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the admin HTTP server.
type ServerConfig struct {
	Port int `yaml:"port"`

	// RateLimit is the sustained requests per second allowed per client;
	// zero disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
	Burst     int     `yaml:"burst"`
}

// ArtworkConfig configures the variants written for new entries.
type ArtworkConfig struct {
	Size        int `yaml:"size"`
	JPEGQuality int `yaml:"jpeg_quality"`
	WebPQuality int `yaml:"webp_quality"`
}

// ConvertConfig configures the bulk image conversion.
type ConvertConfig struct {
	WebPQuality int `yaml:"webp_quality"`
	AVIFQuality int `yaml:"avif_quality"`
	Workers     int `yaml:"workers"`
}

// HTTPConfig configures outbound requests.
type HTTPConfig struct {
	Timeout           string  `yaml:"timeout"`
	UserAgent         string  `yaml:"user_agent"`
	MaxRetries        int     `yaml:"max_retries"`
	RetryCooldown     string  `yaml:"retry_cooldown"`
	RetryExponent     float64 `yaml:"retry_exponent"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	httpDefaults := http.DefaultOptions()
	return &Settings{
		DocumentPath: "index-new.html",
		SiteDir:      ".",
		Server: ServerConfig{
			Port:      3000,
			RateLimit: 10,
			Burst:     20,
		},
		Schema: SchemaConfig{
			Preset:        PresetShelf,
			ShelfCapacity: 4,
		},
		Artwork: ArtworkConfig{
			Size:        800,
			JPEGQuality: 85,
			WebPQuality: 85,
		},
		Convert: ConvertConfig{
			WebPQuality: 80,
			AVIFQuality: 50,
			Workers:     4,
		},
		HTTP: HTTPConfig{
			Timeout:           httpDefaults.Timeout.String(),
			UserAgent:         httpDefaults.UserAgent,
			MaxRetries:        httpDefaults.MaxRetries,
			RetryCooldown:     httpDefaults.RetryCooldown.String(),
			RetryExponent:     httpDefaults.RetryExponent,
			RequestsPerSecond: httpDefaults.RequestsPerSecond,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// LoadEnv loads variables from .env files into the process environment.
// Missing files are ignored; variables already set are not overridden.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load reads settings from a YAML file and applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, settings); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := settings.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (s *Settings) applyEnvOverrides() error {
	if v := os.Getenv("CATALOG_DOCUMENT"); v != "" {
		s.DocumentPath = v
	}
	if v := os.Getenv("CATALOG_SITE_DIR"); v != "" {
		s.SiteDir = v
	}
	if v := os.Getenv("CATALOG_ARTWORK_DIR"); v != "" {
		s.ArtworkDir = v
	}
	if v := os.Getenv("CATALOG_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CATALOG_PORT: %w", err)
		}
		s.Server.Port = port
	}
	if v := os.Getenv("CATALOG_SCHEMA"); v != "" {
		s.Schema.Preset = v
	}
	if v := os.Getenv("CATALOG_LOG_LEVEL"); v != "" {
		s.Log.Level = v
	}
	if v := os.Getenv("CATALOG_LOG_FILE"); v != "" {
		s.Log.File = v
	}
	return nil
}

// Validate validates the configuration.
func (s *Settings) Validate() error {
	if s.DocumentPath == "" {
		return errors.New("document_path is required")
	}
	if s.Server.Port < 0 || s.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", s.Server.Port)
	}
	if s.Artwork.Size < 1 {
		return fmt.Errorf("invalid artwork size: %d", s.Artwork.Size)
	}
	for name, q := range map[string]int{
		"artwork.jpeg_quality": s.Artwork.JPEGQuality,
		"artwork.webp_quality": s.Artwork.WebPQuality,
		"convert.webp_quality": s.Convert.WebPQuality,
		"convert.avif_quality": s.Convert.AVIFQuality,
	} {
		if q < 1 || q > 100 {
			return fmt.Errorf("invalid %s: %d (valid: 1-100)", name, q)
		}
	}
	if _, err := time.ParseDuration(s.HTTP.Timeout); err != nil {
		return fmt.Errorf("invalid http.timeout: %w", err)
	}
	if _, err := time.ParseDuration(s.HTTP.RetryCooldown); err != nil {
		return fmt.Errorf("invalid http.retry_cooldown: %w", err)
	}
	if _, err := logging.ParseLevel(s.Log.Level); err != nil {
		return err
	}
	if _, err := s.CatalogSchema(); err != nil {
		return err
	}
	return nil
}

// ArtworkPath returns the directory artwork is written to.
func (s *Settings) ArtworkPath() string {
	if s.ArtworkDir != "" {
		return s.ArtworkDir
	}
	return s.SiteDir
}

// HTTPOptions converts settings to http.Options.
func (s *Settings) HTTPOptions() http.Options {
	opts := http.DefaultOptions()
	if d, err := time.ParseDuration(s.HTTP.Timeout); err == nil {
		opts.Timeout = d
	}
	if d, err := time.ParseDuration(s.HTTP.RetryCooldown); err == nil {
		opts.RetryCooldown = d
	}
	if s.HTTP.UserAgent != "" {
		opts.UserAgent = s.HTTP.UserAgent
	}
	opts.MaxRetries = s.HTTP.MaxRetries
	opts.RetryExponent = s.HTTP.RetryExponent
	opts.RequestsPerSecond = s.HTTP.RequestsPerSecond
	return opts
}

// ArtworkOptions converts settings to artwork.Options.
func (s *Settings) ArtworkOptions() artwork.Options {
	return artwork.Options{
		Dir:         s.ArtworkPath(),
		Size:        s.Artwork.Size,
		JPEGQuality: s.Artwork.JPEGQuality,
		WebPQuality: s.Artwork.WebPQuality,
	}
}

// ConvertOptions converts settings to artwork.ConvertOptions.
func (s *Settings) ConvertOptions() artwork.ConvertOptions {
	return artwork.ConvertOptions{
		WebPQuality: s.Convert.WebPQuality,
		AVIFQuality: s.Convert.AVIFQuality,
		Workers:     s.Convert.Workers,
	}
}

// LogOptions converts settings to logging.Options.
func (s *Settings) LogOptions() logging.Options {
	return logging.Options{
		Level:      s.Log.Level,
		File:       s.Log.File,
		MaxSizeMB:  s.Log.MaxSizeMB,
		MaxBackups: s.Log.MaxBackups,
		MaxAgeDays: s.Log.MaxAgeDays,
	}
}
