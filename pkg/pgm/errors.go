package pgm

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported raster format")
	ErrMalformedHeader   = errors.New("malformed raster header")
	ErrMalformedData     = errors.New("malformed raster data")
	ErrTruncatedData     = errors.New("truncated raster data")
	ErrInvalidIntensity  = errors.New("intensity out of range")
	ErrNoImageLoaded     = errors.New("no image loaded")
	// ErrDegenerateRescale is returned when a transform's output span is zero
	// or not finite, which would leave NaN or Inf in the pixel grid.
	ErrDegenerateRescale = errors.New("degenerate rescale")
)
