package pgm

import "github.com/samber/lo"

// Histogram holds one count per intensity level, indexed 0..L-1.
type Histogram []int

// ComputeHistogram counts the samples of the working grid per level. It
// fails with ErrInvalidIntensity when a sample lies outside [0, L-1].
func ComputeHistogram(img *Image) (Histogram, error) {
	if err := loaded(img); err != nil {
		return nil, err
	}
	if err := checkRange(img.Pix, img.Width, img.MaxLevel); err != nil {
		return nil, err
	}
	h := make(Histogram, img.MaxLevel)
	for _, r := range img.Pix {
		h[r]++
	}
	return h, nil
}

// Total returns the sum of all counts
func (h Histogram) Total() int {
	return lo.Sum(h)
}

// Peak returns the level with the highest count and that count. Ties go to
// the lowest level.
func (h Histogram) Peak() (level, count int) {
	for i, c := range h {
		if c > count {
			level, count = i, c
		}
	}
	return
}

// CDF returns the running normalized sum of counts over total samples.
func (h Histogram) CDF(total int) []float64 {
	cdf := make([]float64, len(h))
	var acc float64
	for i, c := range h {
		acc += float64(c) / float64(total)
		cdf[i] = acc
	}
	return cdf
}
