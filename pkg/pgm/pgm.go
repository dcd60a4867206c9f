// Package pgm loads grayscale rasters in the P2 (ASCII) and P5 (raw byte)
// formats and applies intensity transforms and histogram equalization.
//
// Every operation takes the Image explicitly and mutates its working grid
// in place; the load-time snapshot stays in Image.Original.
//
// Basic usage:
//
//	img, err := pgm.ReadFile("einstein.pgm")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := pgm.Gamma(img, 1, 0.5); err != nil {
//		log.Fatal(err)
//	}
//	hist, err := pgm.Equalize(img)
package pgm

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedSuffix marks rasters stored zstd-compressed on disk.
const CompressedSuffix = ".zst"

// ReadFile reads a raster from disk. Paths ending in CompressedSuffix are
// decompressed transparently.
func ReadFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	var in io.Reader = f
	if strings.HasSuffix(path, CompressedSuffix) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		defer dec.Close()
		in = dec
	}

	img, err := Decode(in)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	slog.Debug("Decoded raster", "path", path, "width", img.Width, "height", img.Height, "levels", img.MaxLevel)
	return img, nil
}

// ReadBuffer decodes a raster held in memory
func ReadBuffer(data []byte) (*Image, error) {
	return Decode(bytes.NewReader(data))
}

// WriteFile writes img to disk as P2, zstd-compressed when the path ends in
// CompressedSuffix. It returns the uncompressed byte count.
func WriteFile(path string, img *Image) (int64, error) {
	if err := loaded(img); err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if !strings.HasSuffix(path, CompressedSuffix) {
		n, err := Encode(f, img)
		if err != nil {
			return n, err
		}
		slog.Debug("Wrote raster", "path", path, "bytes", n)
		return n, f.Close()
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return 0, fmt.Errorf("opening zstd stream: %w", err)
	}
	n, err := Encode(enc, img)
	if err != nil {
		enc.Close()
		return n, err
	}
	if err := enc.Close(); err != nil {
		return n, fmt.Errorf("flushing zstd stream: %w", err)
	}
	slog.Debug("Wrote raster", "path", path, "bytes", n, "compressed", true)
	return n, f.Close()
}

// GetExtension returns the conventional raster file extension
func GetExtension() string {
	return ".pgm"
}
