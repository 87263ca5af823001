package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/consumethetangible/music-2025/internal/admin"
	"github.com/consumethetangible/music-2025/internal/artwork"
	"github.com/consumethetangible/music-2025/internal/audio"
	"github.com/consumethetangible/music-2025/internal/bandcamp"
	"github.com/consumethetangible/music-2025/internal/catalog"
	"github.com/consumethetangible/music-2025/internal/config"
	"github.com/consumethetangible/music-2025/internal/document"
	"github.com/consumethetangible/music-2025/internal/http"
	"github.com/consumethetangible/music-2025/internal/logging"
)

var (
	// Global flags
	configPath   string
	documentPath string
	siteDir      string
	verbose      bool

	settings *config.Settings
	logger   *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Maintain the album catalog page",
	Long: `catalog edits the static HTML page that lists the record collection.

Albums are grouped into genre sections, each holding shelves of up to four
entries. Entries can be scraped from Bandcamp, imported from MP3 tags, edited,
deleted and sorted; "serve" exposes the same operations over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnv(); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}

		var err error
		settings, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if documentPath != "" {
			settings.DocumentPath = documentPath
		}
		if siteDir != "" {
			settings.SiteDir = siteDir
		}
		if verbose {
			settings.Log.Level = "debug"
		}
		if err := settings.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logger, err = logging.New(settings.LogOptions())
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "catalog.yaml", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&documentPath, "document", "d", "", "Catalog page to edit (overrides config)")
	rootCmd.PersistentFlags().StringVar(&siteDir, "site", "", "Site directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(importMP3Cmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(convertCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// newManager wires the request surface from the loaded settings. Progress
// events are printed to out.
func newManager(out io.Writer) (*admin.Manager, error) {
	schema, err := settings.CatalogSchema()
	if err != nil {
		return nil, err
	}

	client := http.NewClient(settings.HTTPOptions())
	return admin.NewManager(admin.Config{
		Document:   document.New(settings.DocumentPath, logger),
		Engine:     catalog.New(schema),
		Scraper:    bandcamp.NewScraper(client, logger),
		Artwork:    artwork.NewService(client, settings.ArtworkOptions(), logger),
		Tags:       audio.NewReader(),
		Logger:     logger,
		OnProgress: printProgress(out),
	}), nil
}

func printProgress(out io.Writer) func(admin.ProgressEvent) {
	return func(event admin.ProgressEvent) {
		if event.Level == admin.LevelVerbose && !verbose {
			return
		}

		var prefix string
		switch event.Level {
		case admin.LevelError:
			prefix = "✗ "
		case admin.LevelWarning:
			prefix = "! "
		case admin.LevelSuccess:
			prefix = "✓ "
		case admin.LevelInfo:
			prefix = "› "
		default:
			prefix = "  "
		}
		fmt.Fprintln(out, prefix+event.Message)
	}
}
