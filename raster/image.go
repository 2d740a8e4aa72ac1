// Package raster provides the owned RGBA8 pixel buffer shared by the
// rectifier and the mark scorer.
//
// Image stores pixels in a single contiguous byte slice, row-major, four
// bytes per pixel (R, G, B, A), with an explicit stride. Operations that
// produce a new image never mutate their input.
package raster

import (
	"errors"
	"image"
)

// BytesPerPixel is the size of one RGBA8 pixel.
const BytesPerPixel = 4

// Common errors for raster operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("raster: invalid dimensions")

	// ErrInvalidStride is returned when stride is less than width*4.
	ErrInvalidStride = errors.New("raster: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("raster: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("raster: coordinates out of bounds")
)

// Image is an RGBA8 pixel buffer.
//
// Thread safety: Image is safe for concurrent reads. Writes to disjoint rows
// may proceed concurrently; anything else requires external synchronization.
type Image struct {
	data   []byte
	width  int
	height int
	stride int
}

// New creates a zeroed (transparent black) image.
func New(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	stride := width * BytesPerPixel
	return &Image{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
	}, nil
}

// FromRaw wraps existing RGBA8 data without copying.
// The caller must keep data alive and unmodified for the lifetime of the Image.
func FromRaw(data []byte, width, height, stride int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if stride < width*BytesPerPixel {
		return nil, ErrInvalidStride
	}
	// The last row does not need trailing padding.
	required := (height-1)*stride + width*BytesPerPixel
	if len(data) < required {
		return nil, ErrDataTooSmall
	}
	return &Image{
		data:   data[:required],
		width:  width,
		height: height,
		stride: stride,
	}, nil
}

// Clone creates a deep copy with a tight stride.
func (m *Image) Clone() *Image {
	out := &Image{
		data:   make([]byte, m.width*m.height*BytesPerPixel),
		width:  m.width,
		height: m.height,
		stride: m.width * BytesPerPixel,
	}
	for y := range m.height {
		copy(out.Row(y), m.Row(y))
	}
	return out
}

// Width returns the image width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the image height in pixels.
func (m *Image) Height() int { return m.height }

// Stride returns the number of bytes between the starts of two rows.
func (m *Image) Stride() int { return m.stride }

// Bounds returns the image dimensions as (width, height).
func (m *Image) Bounds() (int, int) { return m.width, m.height }

// Data returns the raw pixel data.
func (m *Image) Data() []byte { return m.data }

// Row returns the pixel bytes of row y, without padding.
// Returns nil if y is out of bounds.
func (m *Image) Row(y int) []byte {
	if y < 0 || y >= m.height {
		return nil
	}
	start := y * m.stride
	return m.data[start : start+m.width*BytesPerPixel]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (m *Image) PixelOffset(x, y int) int {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return -1
	}
	return y*m.stride + x*BytesPerPixel
}

// RGBA returns the color at (x, y).
// Returns (0,0,0,0) if coordinates are out of bounds.
func (m *Image) RGBA(x, y int) (r, g, b, a uint8) {
	off := m.PixelOffset(x, y)
	if off < 0 {
		return 0, 0, 0, 0
	}
	p := m.data[off : off+BytesPerPixel : off+BytesPerPixel]
	return p[0], p[1], p[2], p[3]
}

// SetRGBA sets the color at (x, y).
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (m *Image) SetRGBA(x, y int, r, g, b, a uint8) error {
	off := m.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	m.data[off] = r
	m.data[off+1] = g
	m.data[off+2] = b
	m.data[off+3] = a
	return nil
}

// Luma returns the Rec. 601 luminance of pixel (x, y) and its alpha.
// Out-of-bounds pixels report (0, 0).
func (m *Image) Luma(x, y int) (luma, alpha uint8) {
	r, g, b, a := m.RGBA(x, y)
	return luminance(r, g, b), a
}

// Fill sets every pixel to the given color.
func (m *Image) Fill(r, g, b, a uint8) {
	for y := range m.height {
		row := m.Row(y)
		for i := 0; i < len(row); i += BytesPerPixel {
			row[i] = r
			row[i+1] = g
			row[i+2] = b
			row[i+3] = a
		}
	}
}

// FillRect sets every pixel of the rectangle [x0,x1)×[y0,y1), clipped to
// the image, to the given color.
func (m *Image) FillRect(x0, y0, x1, y1 int, r, g, b, a uint8) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, m.width), min(y1, m.height)
	for y := y0; y < y1; y++ {
		row := m.Row(y)
		for x := x0; x < x1; x++ {
			i := x * BytesPerPixel
			row[i] = r
			row[i+1] = g
			row[i+2] = b
			row[i+3] = a
		}
	}
}

// ToRGBA copies the buffer into a standard library image.
func (m *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, m.width, m.height))
	for y := range m.height {
		copy(out.Pix[y*out.Stride:], m.Row(y))
	}
	return out
}

// luminance computes 0.299*R + 0.587*G + 0.114*B in integer arithmetic.
func luminance(r, g, b uint8) uint8 {
	return uint8((int(r)*299 + int(g)*587 + int(b)*114) / 1000)
}
