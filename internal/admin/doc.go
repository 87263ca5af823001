// Package admin implements the catalog request surface shared by the CLI,
// the HTTP server and the terminal UI: scrape an album page, download its
// artwork, and add, list, edit, delete or sort entries of the catalog page.
//
// A Manager wires the catalog engine to the document file and the upstream
// collaborators:
//
//	mgr := admin.NewManager(admin.Config{
//	    Document: document.New("index.html", logger),
//	    Engine:   catalog.New(schema),
//	    Scraper:  bandcamp.NewScraper(client, logger),
//	    Artwork:  artwork.NewService(client, artwork.DefaultOptions("."), logger),
//	    Logger:   logger,
//	})
//	entry, err := mgr.ImportURL(ctx, "https://artist.bandcamp.com/album/x", "prog")
package admin
