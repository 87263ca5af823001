package artwork

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	ioutils "github.com/consumethetangible/music-2025/internal/io"
)

// ConvertOptions controls ConvertTree.
type ConvertOptions struct {
	WebPQuality int
	AVIFQuality int

	// Workers bounds the number of images processed at once.
	Workers int

	// Force rewrites variants that already exist.
	Force bool
}

// DefaultConvertOptions returns WebP at quality 80 and AVIF at quality 50.
func DefaultConvertOptions() ConvertOptions {
	return ConvertOptions{WebPQuality: 80, AVIFQuality: 50, Workers: 4}
}

// ConvertReport counts the outcome of a ConvertTree run.
type ConvertReport struct {
	Sources int64 `json:"sources"`
	Written int64 `json:"written"`
	Skipped int64 `json:"skipped"`
	Failed  int64 `json:"failed"`
}

var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

var sourceExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ConvertTree writes a .webp and an .avif sibling for every JPEG and PNG under
// root, keeping the original dimensions.
//
// Existing variants are skipped unless opts.Force is set. A file that fails to
// convert is logged and counted; it does not stop the run. The returned error
// is only set when the walk itself fails or ctx is canceled.
func (s *Service) ConvertTree(ctx context.Context, root string, opts ConvertOptions) (ConvertReport, error) {
	var report ConvertReport

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if gctx.Err() != nil {
			return gctx.Err()
		}
		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !sourceExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		atomic.AddInt64(&report.Sources, 1)
		g.Go(func() error {
			s.convertFile(gctx, root, path, opts, &report)
			return nil
		})
		return nil
	})

	if err := g.Wait(); err != nil && walkErr == nil {
		walkErr = err
	}
	s.logger.Info("convert finished",
		zap.String("root", root),
		zap.Int64("sources", report.Sources),
		zap.Int64("written", report.Written),
		zap.Int64("skipped", report.Skipped),
		zap.Int64("failed", report.Failed),
	)
	return report, walkErr
}

func (s *Service) convertFile(ctx context.Context, root, path string, opts ConvertOptions, report *ConvertReport) {
	rel, _ := filepath.Rel(root, path)
	base := strings.TrimSuffix(path, filepath.Ext(path))

	targets := []struct {
		format  ioutils.Format
		quality int
	}{
		{ioutils.FormatWebP, opts.WebPQuality},
		{ioutils.FormatAVIF, opts.AVIFQuality},
	}

	var data []byte
	for _, t := range targets {
		out := base + t.format.Ext()
		if !opts.Force && ioutils.Exists(out) {
			atomic.AddInt64(&report.Skipped, 1)
			s.logger.Debug("skipping existing", zap.String("file", out))
			continue
		}

		if data == nil {
			var err error
			if data, err = os.ReadFile(path); err != nil {
				atomic.AddInt64(&report.Failed, 1)
				s.logger.Error("error converting", zap.String("file", rel), zap.Error(err))
				return
			}
		}

		encoded, err := s.images.Transcode(ctx, data, ioutils.TranscodeOptions{Format: t.format, Quality: t.quality})
		if err == nil {
			err = ioutils.WriteFile(ctx, out, encoded)
		}
		if err != nil {
			atomic.AddInt64(&report.Failed, 1)
			s.logger.Error("error converting", zap.String("file", rel), zap.String("format", string(t.format)), zap.Error(err))
			continue
		}

		atomic.AddInt64(&report.Written, 1)
		s.logger.Info("wrote", zap.String("file", out))
	}
}
