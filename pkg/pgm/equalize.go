package pgm

// TransitionTable maps every input level to its equalized output level,
// adjust((L-1)*cdf[i]). It is non-decreasing but not injective.
func TransitionTable(h Histogram, total int) []int {
	levels := len(h)
	table := make([]int, levels)
	for i, p := range h.CDF(total) {
		table[i] = adjust(float64(levels-1)*p, levels)
	}
	return table
}

// Remap moves every count of h to the bucket table assigns it, summing
// collisions.
func (h Histogram) Remap(table []int) Histogram {
	out := make(Histogram, len(h))
	for i, c := range h {
		out[table[i]] += c
	}
	return out
}

// Equalize rewrites every sample r to table[r], where the table is derived
// from the cumulative distribution of the current histogram, and returns
// the histogram after remapping. Applying it twice is not a no-op in
// general.
func Equalize(img *Image) (Histogram, error) {
	h, err := ComputeHistogram(img)
	if err != nil {
		return nil, err
	}
	table := TransitionTable(h, img.Width*img.Height)
	for i, r := range img.Pix {
		img.Pix[i] = table[r]
	}
	return h.Remap(table), nil
}
