package pgm

import (
	"image"
	"image/color"
)

// Gray converts the working grid to an 8-bit image for display sinks,
// scaling [0, MaxLevel-1] onto [0, 255] and clamping anything outside.
func (img *Image) Gray() *image.Gray {
	out := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	hi := img.MaxValue()
	for y := 0; y < img.Height; y++ {
		for x, v := range img.Row(y) {
			var g uint8
			if hi > 0 {
				g = uint8(clamp(v, 0, hi) * 255 / hi)
			}
			out.SetGray(x, y, color.Gray{Y: g})
		}
	}
	return out
}
