package artwork

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	ioutils "github.com/consumethetangible/music-2025/internal/io"
	"github.com/consumethetangible/music-2025/internal/model"
)

// Fetcher downloads a resource into memory.
type Fetcher interface {
	DownloadBytes(ctx context.Context, url string, onProgress func(written, total int64)) ([]byte, error)
}

// Options controls the artwork variants written for catalog entries.
type Options struct {
	// Dir is the directory the files are written to; entries reference
	// them by bare file name.
	Dir string

	// Size is the edge of the square the artwork is cropped to.
	Size int

	JPEGQuality int
	WebPQuality int
}

// DefaultOptions returns 800x800 JPEG and WebP variants at quality 85.
func DefaultOptions(dir string) Options {
	return Options{Dir: dir, Size: 800, JPEGQuality: 85, WebPQuality: 85}
}

// Service downloads cover art and writes the variants the catalog page uses.
type Service struct {
	fetcher Fetcher
	images  *ioutils.ImageService
	opts    Options
	logger  *zap.Logger
}

// NewService creates a Service. A nil logger disables logging.
func NewService(fetcher Fetcher, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher: fetcher,
		images:  ioutils.NewImageService(),
		opts:    opts,
		logger:  logger,
	}
}

// Download fetches the artwork at url and saves it for artist/album.
func (s *Service) Download(ctx context.Context, url, artist, album string, onProgress func(written, total int64)) (model.Artwork, error) {
	data, err := s.fetcher.DownloadBytes(ctx, url, onProgress)
	if err != nil {
		return model.Artwork{}, fmt.Errorf("download artwork: %w", err)
	}
	return s.Save(ctx, data, artist, album)
}

// Save crops data to a square and writes a JPEG and a WebP file named after
// artist and album. Both variants are encoded concurrently; on failure no
// file names are returned.
func (s *Service) Save(ctx context.Context, data []byte, artist, album string) (model.Artwork, error) {
	if err := ioutils.EnsureDir(s.opts.Dir); err != nil {
		return model.Artwork{}, err
	}

	img, err := s.images.Decode(ctx, data)
	if err != nil {
		return model.Artwork{}, err
	}

	base := ioutils.Slug(artist, album)
	out := model.Artwork{
		JPEG: base + ioutils.FormatJPEG.Ext(),
		WebP: base + ioutils.FormatWebP.Ext(),
	}

	variants := []struct {
		name    string
		format  ioutils.Format
		quality int
	}{
		{out.JPEG, ioutils.FormatJPEG, s.opts.JPEGQuality},
		{out.WebP, ioutils.FormatWebP, s.opts.WebPQuality},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, v := range variants {
		g.Go(func() error {
			encoded, err := s.images.Encode(gctx, img, ioutils.TranscodeOptions{
				Format:  v.format,
				Quality: v.quality,
				Fit:     ioutils.FitCover,
				Width:   s.opts.Size,
				Height:  s.opts.Size,
			})
			if err != nil {
				return err
			}
			return ioutils.WriteFile(gctx, filepath.Join(s.opts.Dir, v.name), encoded)
		})
	}
	if err := g.Wait(); err != nil {
		return model.Artwork{}, err
	}

	s.logger.Info("saved artwork",
		zap.String("jpg", out.JPEG),
		zap.String("webp", out.WebP),
		zap.Int("size", s.opts.Size),
	)
	return out, nil
}
