package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/consumethetangible/music-2025/internal/admin"
	"github.com/consumethetangible/music-2025/internal/catalog"
	"github.com/consumethetangible/music-2025/internal/model"
)

// Catalog is the request surface the server exposes.
type Catalog interface {
	Genres() []model.Section
	Scrape(ctx context.Context, url string) (model.AlbumInfo, error)
	DownloadArtwork(ctx context.Context, url, artist, album string) (model.Artwork, error)
	AddEntry(ctx context.Context, key string, entry model.Entry) (model.Entry, error)
	ListEntries(ctx context.Context, key string) ([]model.Entry, error)
	EditEntry(ctx context.Context, key string, ref admin.Ref, upd model.EntryUpdate, newKey string) (model.Entry, error)
	DeleteEntry(ctx context.Context, key string, ref admin.Ref) (model.Entry, error)
	Sort(ctx context.Context) ([]catalog.SectionReport, error)
}

// Options configures the server.
type Options struct {
	// SiteDir is served as static content; /admin serves SiteDir/admin.html.
	SiteDir string

	// RateLimit is the sustained requests per second per client; zero
	// disables limiting.
	RateLimit float64
	Burst     int
}

// Server is the admin HTTP API.
type Server struct {
	catalog Catalog
	opts    Options
	logger  *zap.Logger
	router  *gin.Engine
}

// New creates a Server with all routes registered.
func New(c Catalog, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		catalog: c,
		opts:    opts,
		logger:  logger,
		router:  gin.New(),
	}
	s.routes()
	return s
}

// Handler returns the http.Handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router
	r.Use(recovery(s.logger), requestLogger(s.logger), cors())
	if s.opts.RateLimit > 0 {
		r.Use(newClientLimiter(s.opts.RateLimit, s.opts.Burst).middleware())
	}

	r.GET("/admin", func(c *gin.Context) {
		c.File(filepath.Join(s.opts.SiteDir, "admin.html"))
	})

	api := r.Group("/api")
	{
		api.POST("/scrape-bandcamp", s.scrape)
		api.POST("/download-artwork", s.downloadArtwork)
		api.POST("/add-album", s.addAlbum)
		api.GET("/genres", s.genres)
		api.GET("/albums/:genre", s.listAlbums)
		api.PUT("/albums/:genre/:index", s.editAlbum)
		api.DELETE("/albums/:genre/:index", s.deleteAlbum)
		api.POST("/sort", s.sort)
	}

	files := http.FileServer(http.Dir(s.opts.SiteDir))
	r.NoRoute(gin.WrapH(files))
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("admin server listening", zap.String("addr", addr), zap.String("site", s.opts.SiteDir))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down admin server")
	return srv.Shutdown(shutdownCtx)
}
