package pgm

import (
	"bufio"
	"io"
	"strconv"
	"sync/atomic"
)

// Encode writes img as an ASCII (P2) raster. Samples are clamped to
// [0, MaxLevel-1]. It returns the number of bytes written.
func Encode(w io.Writer, img *Image) (int64, error) {
	if err := loaded(img); err != nil {
		return 0, err
	}
	cw := &CountingWriter{Writer: w}
	bw := bufio.NewWriter(cw)

	hi := img.MaxValue()
	bw.WriteString(string(FormatASCII) + "\n")
	bw.WriteString(strconv.Itoa(img.Width) + " " + strconv.Itoa(img.Height) + "\n")
	bw.WriteString(strconv.Itoa(hi) + "\n")

	var num []byte
	for y := 0; y < img.Height; y++ {
		for x, v := range img.Row(y) {
			if x > 0 {
				bw.WriteByte(' ')
			}
			num = strconv.AppendInt(num[:0], int64(clamp(v, 0, hi)), 10)
			bw.Write(num)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return cw.Count.Load(), err
		}
	}
	err := bw.Flush()
	return cw.Count.Load(), err
}

// CountingWriter tracks the bytes passed through to Writer
type CountingWriter struct {
	Count  atomic.Int64
	Writer io.Writer
}

func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.Writer.Write(p)
	if err == nil {
		c.Count.Add(int64(n))
	}
	return n, err
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
