package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing. The context is checked before writing.
//
// Example:
//
//	err := WriteFile(ctx, "/site/rush-moving-pictures.jpg", jpegData)
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// WriteFileAtomic replaces the file at path with data.
//
// The data is written to a temporary file in the same directory, synced and
// renamed over path, so readers see either the old or the new content. The
// permissions of an existing file are kept; new files get mode 0644.
func WriteFileAtomic(path string, data []byte) (err error) {
	mode := os.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Slug builds the base file name for an album's artwork.
//
// Artist and album are lowercased, every character outside [a-z0-9] becomes
// a dash, and runs of dashes collapse to one. Leading and trailing dashes are
// dropped.
//
// Example:
//
//	Slug("Rush", "Moving Pictures")       // "rush-moving-pictures"
//	Slug("AC/DC", "Back in Black (2003)") // "ac-dc-back-in-black-2003"
func Slug(artist, album string) string {
	raw := strings.ToLower(artist) + "-" + strings.ToLower(album)

	var b strings.Builder
	dash := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "artwork"
	}
	return slug
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
