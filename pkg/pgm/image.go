package pgm

import (
	"fmt"
	"math"
)

// Image is a grayscale raster held in memory.
//
// Pix is the working grid, row-major with origin top-left, and is mutated in
// place by the transforms. Original is the snapshot taken at load time and is
// never written by this package after construction.
type Image struct {
	Width  int
	Height int
	// MaxLevel is the exclusive count of intensity levels (L); valid samples
	// lie in [0, MaxLevel-1].
	MaxLevel int

	Pix      []int
	Original []int
}

// NewImage creates an Image from row-major samples. The samples are copied
// into both Pix and Original; every sample must lie in [0, levels-1].
func NewImage(width, height, levels int, samples []int) (*Image, error) {
	if width <= 0 || height <= 0 || width > math.MaxInt/height {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrMalformedHeader, width, height)
	}
	if levels <= 0 {
		return nil, fmt.Errorf("%w: invalid level count %d", ErrMalformedHeader, levels)
	}
	if len(samples) < width*height {
		return nil, fmt.Errorf("%w: have %d samples, need %d", ErrTruncatedData, len(samples), width*height)
	}
	if err := checkRange(samples[:width*height], width, levels); err != nil {
		return nil, err
	}
	img := &Image{
		Width:    width,
		Height:   height,
		MaxLevel: levels,
		Pix:      make([]int, width*height),
		Original: make([]int, width*height),
	}
	copy(img.Pix, samples)
	copy(img.Original, samples)
	return img, nil
}

// MaxValue returns the largest valid intensity, MaxLevel-1.
func (img *Image) MaxValue() int {
	return img.MaxLevel - 1
}

// At returns the sample at (x, y), or 0 outside the grid.
func (img *Image) At(x, y int) int {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return 0
	}
	return img.Pix[y*img.Width+x]
}

// Set writes the sample at (x, y); writes outside the grid are ignored.
func (img *Image) Set(x, y, v int) {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return
	}
	img.Pix[y*img.Width+x] = v
}

// Row returns row y of the working grid. The slice aliases Pix.
func (img *Image) Row(y int) []int {
	if y < 0 || y >= img.Height {
		return nil
	}
	return img.Pix[y*img.Width : (y+1)*img.Width]
}

// Rows returns the working grid as height rows of width samples.
func (img *Image) Rows() [][]int {
	rows := make([][]int, img.Height)
	for y := range rows {
		rows[y] = img.Row(y)
	}
	return rows
}

// MinMax returns the minimum and maximum samples of the working grid
func (img *Image) MinMax() (min, max int) {
	if len(img.Pix) == 0 {
		return 0, 0
	}
	min, max = img.Pix[0], img.Pix[0]
	for _, v := range img.Pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return
}

// Reset restores the working grid from the load-time snapshot.
func (img *Image) Reset() error {
	if err := loaded(img); err != nil {
		return err
	}
	copy(img.Pix, img.Original)
	return nil
}

// Clone returns a deep copy, snapshot included.
func (img *Image) Clone() *Image {
	c := *img
	c.Pix = append([]int(nil), img.Pix...)
	c.Original = append([]int(nil), img.Original...)
	return &c
}

func loaded(img *Image) error {
	if img == nil || img.Pix == nil {
		return ErrNoImageLoaded
	}
	if len(img.Pix) != img.Width*img.Height {
		return fmt.Errorf("%w: grid has %d samples for %dx%d", ErrNoImageLoaded, len(img.Pix), img.Width, img.Height)
	}
	return nil
}

// checkRange fails with ErrInvalidIntensity on the first sample outside
// [0, levels-1].
func checkRange(samples []int, width, levels int) error {
	for i, r := range samples {
		if r < 0 || r >= levels {
			return fmt.Errorf("%w: sample %d at (%d,%d) not in [0,%d]",
				ErrInvalidIntensity, r, i%width, i/width, levels-1)
		}
	}
	return nil
}
