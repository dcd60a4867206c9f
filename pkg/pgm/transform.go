package pgm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// adjust is the saturate-round policy: round up, then cap at the top level.
// The low end is not clamped.
func adjust(s float64, levels int) int {
	v := int(math.Ceil(s))
	if v > levels-1 {
		return levels - 1
	}
	return v
}

// Threshold maps r <= k to 0 and everything else to MaxLevel-1.
func Threshold(img *Image, k int) error {
	if err := loaded(img); err != nil {
		return err
	}
	hi := img.MaxValue()
	for i, r := range img.Pix {
		if r <= k {
			img.Pix[i] = 0
		} else {
			img.Pix[i] = hi
		}
	}
	return nil
}

// Negative maps r to MaxLevel-1-r. It is its own inverse.
func Negative(img *Image) error {
	if err := loaded(img); err != nil {
		return err
	}
	if err := checkRange(img.Pix, img.Width, img.MaxLevel); err != nil {
		return err
	}
	hi := img.MaxValue()
	for i, r := range img.Pix {
		img.Pix[i] = hi - r
	}
	return nil
}

// Logarithmic applies s = c*ln(1+r) and rescales [0, c*ln(L)] onto
// [0, L-1]. A negative c is allowed.
func Logarithmic(img *Image, c float64) error {
	if err := loaded(img); err != nil {
		return err
	}
	sMax := c * math.Log(float64(img.MaxLevel))
	return rescale(img, sMax, func(r float64) float64 {
		return c * math.Log(1+r)
	})
}

// Gamma applies the power law s = c*r^y and rescales [0, c*(L-1)^y] onto
// [0, L-1].
func Gamma(img *Image, c, y float64) error {
	if err := loaded(img); err != nil {
		return err
	}
	sMax := c * math.Pow(float64(img.MaxValue()), y)
	return rescale(img, sMax, func(r float64) float64 {
		return c * math.Pow(r, y)
	})
}

// rescale evaluates fn over the grid into a float matrix, maps [0, sMax]
// affinely onto [0, L-1] and rounds back into Pix. Pix is left untouched
// on error.
func rescale(img *Image, sMax float64, fn func(r float64) float64) error {
	if err := checkRange(img.Pix, img.Width, img.MaxLevel); err != nil {
		return err
	}
	if sMax == 0 || math.IsNaN(sMax) || math.IsInf(sMax, 0) {
		return fmt.Errorf("%w: output span %v for %d levels", ErrDegenerateRescale, sMax, img.MaxLevel)
	}

	data := make([]float64, len(img.Pix))
	for i, r := range img.Pix {
		data[i] = float64(r)
	}
	grid := mat.NewDense(img.Height, img.Width, data)
	grid.Apply(func(_, _ int, r float64) float64 { return fn(r) }, grid)
	grid.Scale(float64(img.MaxValue())/sMax, grid)

	// NewDense keeps the caller's slice with stride == width
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: sample %d (value %d) maps to %v", ErrDegenerateRescale, i, img.Pix[i], v)
		}
	}
	for i, v := range data {
		img.Pix[i] = int(math.Round(v))
	}
	return nil
}
