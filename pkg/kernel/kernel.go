// Package kernel is a named catalog of spatial filter kernels. Each entry is
// a scalar constant and a weight matrix; the catalog only describes filters
// and does not convolve.
package kernel

import (
	"fmt"
	"sort"
	"strings"
)

// Kernel is a spatial filter as (Constant, Weights).
type Kernel struct {
	Constant float64
	// Weights is row-major, Weights[row][col].
	Weights [][]float64
}

// Size returns the kernel's (width, height)
func (k Kernel) Size() (width, height int) {
	if len(k.Weights) == 0 {
		return 0, 0
	}
	return len(k.Weights[0]), len(k.Weights)
}

// Sum returns Constant times the sum of all weights. Smoothing kernels sum
// to 1, derivative kernels to 0.
func (k Kernel) Sum() float64 {
	var sum float64
	for _, row := range k.Weights {
		for _, w := range row {
			sum += w
		}
	}
	return k.Constant * sum
}

func (k Kernel) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "constant: %g\n", k.Constant)
	for _, row := range k.Weights {
		for i, w := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%4g", w)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Catalog maps kernel names to kernels.
type Catalog struct {
	kernels map[string]Kernel
}

// NewCatalog returns an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{kernels: make(map[string]Kernel)}
}

// Default returns a catalog holding the standard smoothing, sharpening and
// edge kernels.
func Default() *Catalog {
	c := NewCatalog()
	c.Add("gaussian_5x5", 1.0/273.0, [][]float64{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	})
	c.Add("highpass_5x5", 1, [][]float64{
		{-1, -1, -1, -1, -1},
		{-1, -1, -1, -1, -1},
		{-1, -1, 24, -1, -1},
		{-1, -1, -1, -1, -1},
		{-1, -1, -1, -1, -1},
	})
	c.Add("lowpass_5x5", 1.0/25.0, ones(5))
	c.Add("lowpass_3x3", 1.0/9.0, ones(3))
	c.Add("laplacian_3x3", 1, [][]float64{
		{-1, -1, -1},
		{-1, 8, -1},
		{-1, -1, -1},
	})
	c.Add("sobel_v_3x3", 1, [][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	})
	c.Add("sobel_h_3x3", 1, [][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})
	c.Add("roberts_r_2x2", 1, [][]float64{
		{-1, 0},
		{0, 1},
	})
	c.Add("roberts_l_2x2", 1, [][]float64{
		{0, -1},
		{1, 0},
	})
	return c
}

// Add registers or replaces a kernel. The weights are copied.
func (c *Catalog) Add(name string, constant float64, weights [][]float64) {
	w := make([][]float64, len(weights))
	for i, row := range weights {
		w[i] = append([]float64(nil), row...)
	}
	c.kernels[name] = Kernel{Constant: constant, Weights: w}
}

// Get returns the named kernel
func (c *Catalog) Get(name string) (Kernel, bool) {
	k, ok := c.kernels[name]
	return k, ok
}

// Names lists the registered kernel names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.kernels))
	for name := range c.kernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ones(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			m[i][j] = 1
		}
	}
	return m
}
