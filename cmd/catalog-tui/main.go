package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/consumethetangible/music-2025/internal/admin"
	"github.com/consumethetangible/music-2025/internal/artwork"
	"github.com/consumethetangible/music-2025/internal/bandcamp"
	"github.com/consumethetangible/music-2025/internal/catalog"
	"github.com/consumethetangible/music-2025/internal/config"
	"github.com/consumethetangible/music-2025/internal/document"
	"github.com/consumethetangible/music-2025/internal/http"
	"github.com/consumethetangible/music-2025/internal/logging"
	"github.com/consumethetangible/music-2025/internal/tui"
)

func main() {
	var (
		configFlag   = flag.String("config", "catalog.yaml", "Path to config file")
		documentFlag = flag.String("document", "", "Catalog page to edit (overrides config)")
	)
	flag.Parse()

	if err := run(*configFlag, *documentFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, documentPath string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if documentPath != "" {
		settings.DocumentPath = documentPath
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	schema, err := settings.CatalogSchema()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI; only the file sink is kept.
	logger := zap.NewNop()
	if settings.Log.File != "" {
		if logger, err = logging.NewFileOnly(settings.LogOptions()); err != nil {
			return err
		}
	}
	defer func() { _ = logger.Sync() }()

	events := make(chan admin.ProgressEvent, 64)
	client := http.NewClient(settings.HTTPOptions())
	mgr := admin.NewManager(admin.Config{
		Document: document.New(settings.DocumentPath, logger),
		Engine:   catalog.New(schema),
		Scraper:  bandcamp.NewScraper(client, logger),
		Artwork:  artwork.NewService(client, settings.ArtworkOptions(), logger),
		Logger:   logger,
		OnProgress: func(e admin.ProgressEvent) {
			select {
			case events <- e:
			default:
			}
		},
	})

	return tui.Run(mgr, events)
}
