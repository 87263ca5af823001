// Package bandcamp scrapes Bandcamp album pages for the metadata a catalog
// entry needs: artist, album title and cover art URL.
//
// # Scraping
//
// Use the Scraper to fetch and parse a page:
//
//	scraper := bandcamp.NewScraper(client, logger)
//	info, err := scraper.Scrape(ctx, "https://artist.bandcamp.com/album/name")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s - %s (%s)\n", info.Artist, info.Album, info.ArtworkURL)
//
// Only http(s) URLs on bandcamp.com and its subdomains are accepted.
//
// # Extraction
//
// ParseAlbumInfo tries several selectors per field, the way the page markup
// has changed over time. When the markup lookups leave a field empty, the
// `data-tralbum` attribute Bandcamp embeds in every album page is used as a
// last resort. If a field is still missing, an *ExtractionError carries what
// was found.
//
// # Discography
//
// Discography lists the album URLs of the artist a page belongs to, read from
// the artist's /music page.
package bandcamp
