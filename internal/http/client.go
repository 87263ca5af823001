package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Options configures a Client.
type Options struct {
	// Timeout bounds a single request attempt.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// MaxRetries is the number of attempts for a request. Values below 1
	// mean a single attempt.
	MaxRetries int

	// RetryCooldown is the wait before the second attempt. Each further
	// attempt waits RetryExponent times longer.
	RetryCooldown time.Duration
	RetryExponent float64

	// RequestsPerSecond limits outbound requests. Zero disables limiting.
	RequestsPerSecond float64
}

// DefaultOptions returns the options used by NewClient.
func DefaultOptions() Options {
	return Options{
		Timeout:           60 * time.Second,
		UserAgent:         "music-2025-catalog",
		MaxRetries:        3,
		RetryCooldown:     200 * time.Millisecond,
		RetryExponent:     4.0,
		RequestsPerSecond: 2,
	}
}

// StatusError is returned for responses other than 200 OK.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %s", e.URL, e.Status)
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// Client wraps outbound HTTP requests for album pages and artwork.
//
// Client provides:
//   - Configured User-Agent header
//   - Timeout handling
//   - Retries with exponential cooldown for network errors, 429 and 5xx
//   - A token-bucket limit on outbound requests
//
// Example usage:
//
//	client := NewClient(DefaultOptions())
//
//	// Fetch HTML content
//	page, err := client.GetString(ctx, "https://artist.bandcamp.com/album/name")
//
//	// Download artwork with progress
//	data, err := client.DownloadBytes(ctx, artworkURL, func(written, total int64) {
//	    fmt.Printf("%d / %d\n", written, total)
//	})
type Client struct {
	httpClient *http.Client
	opts       Options
	limiter    *rate.Limiter
}

// NewClient creates a new HTTP client.
func NewClient(opts Options) *Client {
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		opts:    opts,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// ProgressWriter wraps a writer to track download progress.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: &buf,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	// It is -1 when unknown.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if every attempt fails, the response status is not
// 200 OK (a *StatusError), or the context is done.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	return c.get(ctx, url, nil)
}

// GetString performs a GET request and returns the response body as a string.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// DownloadBytes downloads a file into memory, reporting progress to
// onProgress when it is not nil.
func (c *Client) DownloadBytes(ctx context.Context, url string, onProgress func(written, total int64)) ([]byte, error) {
	return c.get(ctx, url, onProgress)
}

func (c *Client) get(ctx context.Context, url string, onProgress func(written, total int64)) ([]byte, error) {
	attempts := max(c.opts.MaxRetries, 1)

	var err error
	for tries := 0; tries < attempts; tries++ {
		var body []byte
		body, err = c.do(ctx, url, onProgress)
		if err == nil {
			return body, nil
		}
		if !retryable(err) || tries == attempts-1 {
			break
		}
		if werr := c.waitForRetry(ctx, tries); werr != nil {
			return nil, werr
		}
	}
	return nil, err
}

func (c *Client) do(ctx context.Context, url string, onProgress func(written, total int64)) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, Code: resp.StatusCode, Status: resp.Status}
	}

	var buf bytes.Buffer
	var w io.Writer = &buf
	if onProgress != nil {
		w = &ProgressWriter{Writer: &buf, Total: resp.ContentLength, OnUpdate: onProgress}
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return true
}

func (c *Client) waitForRetry(ctx context.Context, tries int) error {
	cooldown := float64(c.opts.RetryCooldown) * math.Pow(c.opts.RetryExponent, float64(tries))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(cooldown)):
		return nil
	}
}
