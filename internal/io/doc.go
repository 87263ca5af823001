// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Plain and atomic file writes
//   - Artwork file naming
//   - Directory creation
//   - Image decoding, resizing and encoding to JPEG, WebP and AVIF
//
// # File Operations
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/site/cover.jpg", data)
//
//	// Replace a file through a temporary file and rename
//	err := ioutils.WriteFileAtomic("/site/index-new.html", []byte(doc))
//
// # Artwork Names
//
//	base := ioutils.Slug("Rush", "Moving Pictures") // "rush-moving-pictures"
//
// # Image Processing
//
// The ImageService handles cover art transcoding:
//
//	svc := ioutils.NewImageService()
//
//	// 800x800 center crop encoded as WebP
//	data, err := svc.Transcode(ctx, imageData, ioutils.TranscodeOptions{
//	    Format:  ioutils.FormatWebP,
//	    Quality: 85,
//	    Fit:     ioutils.FitCover,
//	    Width:   800,
//	    Height:  800,
//	})
package ioutils
