package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jpfielding/pgm.go/pkg/pgm"
)

// PlotHistogram writes one bar per bucket, scaled so the tallest bucket
// spans width characters. Buckets group adjacent levels so at most bins
// lines are written; bins <= 0 gives one line per level. Empty buckets are
// skipped when skipEmpty is set.
func PlotHistogram(w io.Writer, h pgm.Histogram, bins, width int, skipEmpty bool) error {
	if len(h) == 0 {
		return nil
	}
	if bins <= 0 || bins > len(h) {
		bins = len(h)
	}
	per := (len(h) + bins - 1) / bins

	buckets := make([]int, 0, bins)
	for lo := 0; lo < len(h); lo += per {
		hi := min(lo+per, len(h))
		sum := 0
		for _, c := range h[lo:hi] {
			sum += c
		}
		buckets = append(buckets, sum)
	}
	peak := 0
	for _, c := range buckets {
		peak = max(peak, c)
	}

	for i, c := range buckets {
		if c == 0 && skipEmpty {
			continue
		}
		bar := 0
		if peak > 0 {
			bar = c * width / peak
		}
		lo := i * per
		label := fmt.Sprintf("%d", lo)
		if per > 1 {
			label = fmt.Sprintf("%d-%d", lo, min(lo+per, len(h))-1)
		}
		if _, err := fmt.Fprintf(w, "%9s |%s %d\n", label, strings.Repeat("#", bar), c); err != nil {
			return err
		}
	}
	return nil
}
