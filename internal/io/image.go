package ioutils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"github.com/gen2brain/avif"
	"github.com/gen2brain/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// Format is an output image encoding.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
	FormatAVIF Format = "avif"
)

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatWebP:
		return ".webp"
	case FormatAVIF:
		return ".avif"
	default:
		return ""
	}
}

// Fit selects how an image is mapped onto the target size.
type Fit int

const (
	// FitNone keeps the original dimensions.
	FitNone Fit = iota

	// FitCover scales the image to fill the target box and crops the
	// overflow around the center.
	FitCover

	// FitInside scales the image down to fit within the target box,
	// keeping its aspect ratio. Smaller images are left as they are.
	FitInside
)

// TranscodeOptions describes one output variant.
type TranscodeOptions struct {
	Format  Format
	Quality int
	Fit     Fit
	Width   int
	Height  int
}

// ErrUnsupportedFormat is returned for an unknown output format.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ImageService provides image processing operations for cover art.
//
// ImageService is used to:
//   - Decode downloaded artwork (JPEG, PNG, GIF, WebP)
//   - Resize it to the square shown on the catalog page
//   - Encode JPEG, WebP and AVIF variants
//
// Example usage:
//
//	svc := NewImageService()
//
//	img, _ := svc.Decode(ctx, imageData)
//	webpData, _ := svc.Encode(ctx, img, TranscodeOptions{
//	    Format: FormatWebP, Quality: 85, Fit: FitCover, Width: 800, Height: 800,
//	})
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Decode decodes image bytes in any registered format.
func (s *ImageService) Decode(ctx context.Context, data []byte) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Transcode decodes data and re-encodes it according to opts.
func (s *ImageService) Transcode(ctx context.Context, data []byte, opts TranscodeOptions) ([]byte, error) {
	img, err := s.Decode(ctx, data)
	if err != nil {
		return nil, err
	}
	return s.Encode(ctx, img, opts)
}

// Encode resizes img as requested and encodes it.
func (s *ImageService) Encode(ctx context.Context, img image.Image, opts TranscodeOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch opts.Fit {
	case FitCover:
		img = ResizeCover(img, opts.Width, opts.Height)
	case FitInside:
		img = ResizeInside(img, opts.Width, opts.Height)
	}

	var buf bytes.Buffer
	var err error
	switch opts.Format {
	case FormatJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: opts.Quality})
	case FormatWebP:
		err = webp.Encode(&buf, img, webp.Options{Quality: opts.Quality, Method: 4})
	case FormatAVIF:
		err = avif.Encode(&buf, img, avif.Options{Quality: opts.Quality, Speed: 6})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", opts.Format, err)
	}

	return buf.Bytes(), nil
}

// ResizeCover scales img to fill width x height and crops the overflow
// around the center.
//
// The Catmull-Rom kernel is used for scaling.
//
// Example:
//
//	// A 1200x900 image is scaled to 1067x800 and cropped to 800x800
//	square := ResizeCover(img, 800, 800)
func ResizeCover(img image.Image, width, height int) image.Image {
	if width <= 0 || height <= 0 {
		return img
	}

	src := img.Bounds()
	sw, sh := src.Dx(), src.Dy()
	if sw == 0 || sh == 0 {
		return img
	}

	// Source rectangle with the target aspect ratio, centered.
	crop := src
	if sw*height > sh*width {
		cw := sh * width / height
		crop.Min.X = src.Min.X + (sw-cw)/2
		crop.Max.X = crop.Min.X + cw
	} else {
		ch := sw * height / width
		crop.Min.Y = src.Min.Y + (sh-ch)/2
		crop.Max.Y = crop.Min.Y + ch
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Over, nil)
	return dst
}

// ResizeInside scales img down to fit within maxWidth x maxHeight.
//
// The aspect ratio is preserved. Images already inside the box are returned
// unchanged.
func ResizeInside(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if maxWidth <= 0 || maxHeight <= 0 || (width <= maxWidth && height <= maxHeight) {
		return img
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		width = int(float64(maxHeight) * ratio)
		height = maxHeight
	} else {
		// Width is the limiting factor
		height = int(float64(maxWidth) / ratio)
		width = maxWidth
	}

	dst := image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
