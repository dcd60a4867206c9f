// Package export renders rasters and histograms for display: images as
// PNG, BMP or TIFF and histograms as text bar plots.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpfielding/pgm.go/pkg/pgm"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Format names an output encoding
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// Options controls rendering
type Options struct {
	Format Format
	// Scale is an integer upscaling factor; values below 2 leave the size
	// unchanged.
	Scale int
}

// Render converts img to an 8-bit grayscale image, upscaled with nearest
// neighbour sampling when scale > 1.
func Render(img *pgm.Image, scale int) image.Image {
	gray := img.Gray()
	if scale < 2 {
		return gray
	}
	dst := image.NewGray(image.Rect(0, 0, img.Width*scale, img.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), gray, gray.Bounds(), draw.Src, nil)
	return dst
}

// Encode writes img to w in the requested format
func Encode(w io.Writer, img *pgm.Image, opts Options) error {
	if img == nil || img.Pix == nil {
		return pgm.ErrNoImageLoaded
	}
	out := Render(img, opts.Scale)
	switch opts.Format {
	case PNG, "":
		return png.Encode(w, out)
	case BMP:
		return bmp.Encode(w, out)
	case TIFF:
		return tiff.Encode(w, out, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
}

// WriteFile writes img to path, inferring the format from the extension
// when opts.Format is empty.
func WriteFile(path string, img *pgm.Image, opts Options) error {
	if opts.Format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return err
		}
		opts.Format = f
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := Encode(f, img, opts); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
