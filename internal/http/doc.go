// Package http provides the outbound HTTP client used to fetch album pages
// and cover art.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Retries with exponential cooldown
//   - Outbound rate limiting
//   - Download progress reporting
//
// # Basic Usage
//
//	client := http.NewClient(http.DefaultOptions())
//
//	// Fetch HTML page
//	page, err := client.GetString(ctx, "https://artist.bandcamp.com/album/name")
//
//	// Download artwork
//	data, err := client.DownloadBytes(ctx, artworkURL, nil)
//
// # Errors
//
// Responses other than 200 OK are returned as *StatusError. Network errors,
// 429 and 5xx responses are retried up to Options.MaxRetries attempts; other
// status codes fail immediately.
package http
