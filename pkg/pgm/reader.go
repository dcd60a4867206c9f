package pgm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Format identifies the raster variant by its magic token.
type Format string

const (
	FormatASCII  Format = "P2"
	FormatBinary Format = "P5"
)

const commentMarker = "#"

// MaxLevels is the largest level count a header may declare (maxval 65535).
const MaxLevels = 1 << 16

// readChunk bounds each P5 read so a header cannot reserve memory for data
// the stream does not hold.
const readChunk = 64 << 10

// Header is the parsed raster header.
type Header struct {
	Format Format
	Width  int
	Height int
	// Levels is declared maxval+1.
	Levels int
}

// Reader decodes P2/P5 rasters
type Reader struct {
	br *bufio.Reader
}

// NewReader creates a new raster reader
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Decode reads a complete raster. It is all-or-nothing: no Image is
// returned alongside an error.
func Decode(r io.Reader) (*Image, error) {
	return NewReader(r).ReadImage()
}

// ReadImage reads the header and the pixel data.
func (r *Reader) ReadImage() (*Image, error) {
	hdr, err := r.ReadHeader()
	if err != nil {
		return nil, err
	}

	var samples []int
	switch hdr.Format {
	case FormatASCII:
		samples, err = r.readASCII(hdr.Width * hdr.Height)
	case FormatBinary:
		samples, err = r.readBinary(hdr.Width * hdr.Height)
	}
	if err != nil {
		return nil, err
	}
	return NewImage(hdr.Width, hdr.Height, hdr.Levels, samples)
}

// ReadHeader reads the magic token, the dimensions line and the maxval line.
// Blank lines and full-line comments are skipped before each field.
func (r *Reader) ReadHeader() (*Header, error) {
	magic, err := r.br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && magic != "") {
		return nil, fmt.Errorf("%w: reading magic: %v", ErrUnsupportedFormat, err)
	}
	hdr := &Header{Format: Format(strings.TrimSpace(magic))}
	if hdr.Format != FormatASCII && hdr.Format != FormatBinary {
		return nil, fmt.Errorf("%w: magic %q", ErrUnsupportedFormat, string(hdr.Format))
	}

	line, err := r.headerLine("dimensions")
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: dimensions line %q", ErrMalformedHeader, line)
	}
	if hdr.Width, err = strconv.Atoi(fields[0]); err != nil || hdr.Width <= 0 {
		return nil, fmt.Errorf("%w: width %q", ErrMalformedHeader, fields[0])
	}
	if hdr.Height, err = strconv.Atoi(fields[1]); err != nil || hdr.Height <= 0 {
		return nil, fmt.Errorf("%w: height %q", ErrMalformedHeader, fields[1])
	}
	if hdr.Width > math.MaxInt/hdr.Height {
		return nil, fmt.Errorf("%w: %dx%d overflows the sample count", ErrMalformedHeader, hdr.Width, hdr.Height)
	}

	// The newline ending this line is the single separator before P5 data.
	// Any further whitespace bytes are read as samples, not skipped.
	line, err = r.headerLine("maxval")
	if err != nil {
		return nil, err
	}
	maxval, err := strconv.Atoi(line)
	if err != nil || maxval < 0 || maxval >= MaxLevels {
		return nil, fmt.Errorf("%w: maxval %q", ErrMalformedHeader, line)
	}
	hdr.Levels = maxval + 1
	if hdr.Format == FormatBinary && hdr.Levels > 256 {
		return nil, fmt.Errorf("%w: maxval %d exceeds one byte per sample", ErrMalformedHeader, maxval)
	}
	return hdr, nil
}

// headerLine returns the next line that is neither blank nor a comment.
func (r *Reader) headerLine(field string) (string, error) {
	for {
		line, err := r.br.ReadString('\n')
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, commentMarker) {
			return trimmed, nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: missing %s: %v", ErrMalformedHeader, field, err)
		}
	}
}

func (r *Reader) readASCII(n int) ([]int, error) {
	var samples []int
	for len(samples) < n {
		line, err := r.br.ReadString('\n')
		if !strings.HasPrefix(strings.TrimSpace(line), commentMarker) {
			for _, tok := range strings.Fields(line) {
				v, perr := strconv.Atoi(tok)
				if perr != nil {
					return nil, fmt.Errorf("%w: sample %d: token %q", ErrMalformedData, len(samples), tok)
				}
				samples = append(samples, v)
				if len(samples) == n {
					break
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("reading samples: %w", err)
		}
	}
	if len(samples) < n {
		return nil, fmt.Errorf("%w: got %d of %d samples", ErrTruncatedData, len(samples), n)
	}
	return samples, nil
}

func (r *Reader) readBinary(n int) ([]int, error) {
	var samples []int
	buf := make([]byte, min(n, readChunk))
	for len(samples) < n {
		chunk := buf[:min(n-len(samples), len(buf))]
		got, err := io.ReadFull(r.br, chunk)
		for _, b := range chunk[:got] {
			samples = append(samples, int(b))
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedData, len(samples), n)
			}
			return nil, fmt.Errorf("reading samples: %w", err)
		}
	}
	return samples, nil
}
