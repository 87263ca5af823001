// Package server exposes the catalog request surface over HTTP with gin and
// serves the static site the catalog page belongs to.
//
// Routes:
//
//	GET    /admin                    admin.html from the site directory
//	POST   /api/scrape-bandcamp      {url}
//	POST   /api/download-artwork     {artworkUrl, artist, album}
//	POST   /api/add-album            {artist, album, bandcampUrl, genre, jpgFilename, webpFilename}
//	GET    /api/genres
//	GET    /api/albums/:genre
//	PUT    /api/albums/:genre/:index {artist?, album?, bandcampUrl?, jpgFilename?, webpFilename?, genre?}
//	DELETE /api/albums/:genre/:index
//	POST   /api/sort
//
// :index is either the position of the entry in its genre or its data-id.
// Validation and lookup failures answer 400, unknown entries 404, upstream
// scrape and download failures 502.
package server
