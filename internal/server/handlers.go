package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/consumethetangible/music-2025/internal/admin"
	"github.com/consumethetangible/music-2025/internal/bandcamp"
	"github.com/consumethetangible/music-2025/internal/catalog"
	"github.com/consumethetangible/music-2025/internal/model"
)

type scrapeRequest struct {
	URL string `json:"url" binding:"required"`
}

type downloadRequest struct {
	ArtworkURL string `json:"artworkUrl" binding:"required"`
	Artist     string `json:"artist" binding:"required"`
	Album      string `json:"album" binding:"required"`
}

type addRequest struct {
	Artist       string `json:"artist"`
	Album        string `json:"album"`
	BandcampURL  string `json:"bandcampUrl"`
	Genre        string `json:"genre"`
	JPGFilename  string `json:"jpgFilename"`
	WebPFilename string `json:"webpFilename"`
}

type editRequest struct {
	Artist       *string `json:"artist"`
	Album        *string `json:"album"`
	BandcampURL  *string `json:"bandcampUrl"`
	JPGFilename  *string `json:"jpgFilename"`
	WebPFilename *string `json:"webpFilename"`
	Genre        string  `json:"genre"`
}

type albumResponse struct {
	Index        int    `json:"index"`
	ID           string `json:"id,omitempty"`
	Artist       string `json:"artist"`
	Album        string `json:"album"`
	BandcampURL  string `json:"bandcampUrl"`
	JPGFilename  string `json:"jpgFilename,omitempty"`
	WebPFilename string `json:"webpFilename,omitempty"`
}

type sectionResponse struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Found   bool   `json:"found"`
	Entries int    `json:"entries"`
	Shelves int    `json:"shelves"`
	Error   string `json:"error,omitempty"`
}

// POST /api/scrape-bandcamp
func (s *Server) scrape(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Bandcamp URL"})
		return
	}

	info, err := s.catalog.Scrape(c.Request.Context(), req.URL)
	if err != nil {
		var extraction *bandcamp.ExtractionError
		switch {
		case errors.As(err, &extraction):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Could not extract album information",
				"found": gin.H{
					"artist":     extraction.Found.Artist,
					"album":      extraction.Found.Album,
					"artworkUrl": extraction.Found.ArtworkURL,
				},
			})
		case errors.Is(err, bandcamp.ErrInvalidURL):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Bandcamp URL"})
		default:
			s.fail(c, http.StatusBadGateway, "Failed to scrape Bandcamp URL", err)
		}
		return
	}

	c.JSON(http.StatusOK, info)
}

// POST /api/download-artwork
func (s *Server) downloadArtwork(c *gin.Context) {
	var req downloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "artworkUrl, artist and album are required"})
		return
	}

	art, err := s.catalog.DownloadArtwork(c.Request.Context(), req.ArtworkURL, req.Artist, req.Album)
	if err != nil {
		s.fail(c, http.StatusBadGateway, "Failed to download artwork", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jpgFilename":  art.JPEG,
		"webpFilename": art.WebP,
	})
}

// POST /api/add-album
func (s *Server) addAlbum(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := s.catalog.AddEntry(c.Request.Context(), req.Genre, model.Entry{
		Artist: req.Artist,
		Album:  req.Album,
		Link:   req.BandcampURL,
		Artwork: model.Artwork{
			JPEG: req.JPGFilename,
			WebP: req.WebPFilename,
		},
	})
	if err != nil {
		s.fail(c, statusFor(err), "Failed to add album", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Added %s - %s to %s section", entry.Artist, entry.Album, req.Genre),
		"id":      entry.ID,
	})
}

// GET /api/genres
func (s *Server) genres(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.Genres())
}

// GET /api/albums/:genre
func (s *Server) listAlbums(c *gin.Context) {
	entries, err := s.catalog.ListEntries(c.Request.Context(), c.Param("genre"))
	if err != nil {
		s.fail(c, statusFor(err), "Failed to list albums", err)
		return
	}

	out := make([]albumResponse, len(entries))
	for i, e := range entries {
		out[i] = albumResponse{
			Index:        i,
			ID:           e.ID,
			Artist:       e.Artist,
			Album:        e.Album,
			BandcampURL:  e.Link,
			JPGFilename:  e.Artwork.JPEG,
			WebPFilename: e.Artwork.WebP,
		}
	}
	c.JSON(http.StatusOK, out)
}

// PUT /api/albums/:genre/:index
func (s *Server) editAlbum(c *gin.Context) {
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	upd := model.EntryUpdate{
		Artist: req.Artist,
		Album:  req.Album,
		Link:   req.BandcampURL,
		JPEG:   req.JPGFilename,
		WebP:   req.WebPFilename,
	}
	genre := c.Param("genre")
	if upd.IsEmpty() && (req.Genre == "" || req.Genre == genre) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	entry, err := s.catalog.EditEntry(c.Request.Context(), genre, admin.ParseRef(c.Param("index")), upd, req.Genre)
	if err != nil {
		s.fail(c, statusFor(err), "Failed to update album", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Updated %s - %s", entry.Artist, entry.Album),
	})
}

// DELETE /api/albums/:genre/:index
func (s *Server) deleteAlbum(c *gin.Context) {
	genre := c.Param("genre")
	entry, err := s.catalog.DeleteEntry(c.Request.Context(), genre, admin.ParseRef(c.Param("index")))
	if err != nil {
		s.fail(c, statusFor(err), "Failed to delete album", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Deleted %s - %s from %s section", entry.Artist, entry.Album, genre),
	})
}

// POST /api/sort
func (s *Server) sort(c *gin.Context) {
	reports, err := s.catalog.Sort(c.Request.Context())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "Failed to sort albums", err)
		return
	}

	out := make([]sectionResponse, len(reports))
	for i, r := range reports {
		out[i] = sectionResponse{
			Section: r.Section,
			Key:     r.Key,
			Found:   r.Found,
			Entries: r.Entries,
			Shelves: r.Shelves,
			Error:   r.Message(),
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sections": out})
}

// statusFor maps catalog errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrEntryNotFound):
		return http.StatusNotFound
	case catalog.IsLookupError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, status int, msg string, err error) {
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg, "details": err.Error()})
}
