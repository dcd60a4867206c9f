package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"testing"

	"github.com/jpfielding/pgm.go/pkg/pgm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func sample(t *testing.T) *pgm.Image {
	t.Helper()
	img, err := pgm.ReadBuffer([]byte("P2\n2 2\n255\n0 64\n128 255\n"))
	require.NoError(t, err)
	return img
}

func grayAt(img image.Image, x, y int) uint8 {
	return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
}

func TestEncode_Formats(t *testing.T) {
	decoders := map[Format]func(io.Reader) (image.Image, error){
		PNG:  png.Decode,
		BMP:  bmp.Decode,
		TIFF: tiff.Decode,
	}
	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, sample(t), Options{Format: format}))

			out, err := decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 2, 2), out.Bounds())
			assert.Equal(t, uint8(0), grayAt(out, 0, 0))
			assert.Equal(t, uint8(64), grayAt(out, 1, 0))
			assert.Equal(t, uint8(128), grayAt(out, 0, 1))
			assert.Equal(t, uint8(255), grayAt(out, 1, 1))
		})
	}
}

func TestRender_Scale(t *testing.T) {
	out := Render(sample(t), 3)
	assert.Equal(t, image.Rect(0, 0, 6, 6), out.Bounds())
	assert.Equal(t, uint8(64), grayAt(out, 4, 1))
	assert.Equal(t, uint8(128), grayAt(out, 2, 5))
}

func TestRender_Levels(t *testing.T) {
	img, err := pgm.NewImage(3, 1, 16, []int{0, 5, 15})
	require.NoError(t, err)
	out := Render(img, 1)
	assert.Equal(t, uint8(0), grayAt(out, 0, 0))
	assert.Equal(t, uint8(85), grayAt(out, 1, 0))
	assert.Equal(t, uint8(255), grayAt(out, 2, 0))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteFile(filepath.Join(dir, "out.png"), sample(t), Options{Scale: 2}))
	assert.ErrorIs(t, WriteFile(filepath.Join(dir, "out.gif"), sample(t), Options{}), ErrUnknownFormat)
	assert.ErrorIs(t, Encode(io.Discard, nil, Options{}), pgm.ErrNoImageLoaded)
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{"a.png": PNG, "b.BMP": BMP, "c.tif": TIFF, "d.tiff": TIFF}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := FormatFromPath("e.jpg")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestPlotHistogram(t *testing.T) {
	h := pgm.Histogram{0, 4, 2, 0}

	var buf bytes.Buffer
	require.NoError(t, PlotHistogram(&buf, h, 0, 4, false))
	assert.Equal(t, ""+
		"        0 | 0\n"+
		"        1 |#### 4\n"+
		"        2 |## 2\n"+
		"        3 | 0\n", buf.String())

	buf.Reset()
	require.NoError(t, PlotHistogram(&buf, h, 0, 4, true))
	assert.Equal(t, "        1 |#### 4\n        2 |## 2\n", buf.String())

	buf.Reset()
	require.NoError(t, PlotHistogram(&buf, h, 2, 4, false))
	assert.Equal(t, "      0-1 |#### 4\n      2-3 |## 2\n", buf.String())
}
