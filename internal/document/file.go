package document

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	ioutils "github.com/consumethetangible/music-2025/internal/io"
)

// File is the catalog page on disk.
//
// All access goes through one mutex, so read-modify-write cycles issued from
// the same process never interleave. Writes replace the file by renaming a
// fully written temporary file over it.
type File struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

// New returns a File for path. A nil logger disables logging.
func New(path string, logger *zap.Logger) *File {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &File{path: path, logger: logger}
}

// Path returns the file path the document is read from and written to.
func (f *File) Path() string {
	return f.path
}

// Read returns the current document.
func (f *File) Read(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.read(ctx)
}

func (f *File) read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return string(data), nil
}

// Update reads the document, passes it to fn and writes back the result.
//
// Nothing is written when fn fails or returns the document unchanged. If the
// write fails the change is lost and the error is returned; the file on disk
// keeps its previous content.
func (f *File) Update(ctx context.Context, fn func(doc string) (string, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read(ctx)
	if err != nil {
		return err
	}

	updated, err := fn(doc)
	if err != nil {
		return err
	}
	if updated == doc {
		f.logger.Debug("document unchanged", zap.String("path", f.path))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := ioutils.WriteFileAtomic(f.path, []byte(updated)); err != nil {
		f.logger.Error("write document", zap.String("path", f.path), zap.Error(err))
		return fmt.Errorf("write document: %w", err)
	}

	f.logger.Debug("document written",
		zap.String("path", f.path),
		zap.Int("bytes", len(updated)),
		zap.Int("delta", len(updated)-len(doc)),
	)
	return nil
}
