package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	// Registered decoders for scanner and phone-camera output.
	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyData is returned when there is nothing to decode.
var ErrEmptyData = errors.New("raster: empty data")

// FromImage converts any image.Image to an owned RGBA8 buffer.
// *image.RGBA sources are copied row by row; every other color model is
// converted with golang.org/x/image/draw.
func FromImage(src image.Image) (*Image, error) {
	bounds := src.Bounds()
	out, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	if rgba, ok := src.(*image.RGBA); ok {
		for y := range out.height {
			start := rgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(out.Row(y), rgba.Pix[start:start+out.width*BytesPerPixel])
		}
		return out, nil
	}

	dst := &image.RGBA{
		Pix:    out.data,
		Stride: out.stride,
		Rect:   image.Rect(0, 0, out.width, out.height),
	}
	draw.Draw(dst, dst.Rect, src, bounds.Min, draw.Src)
	return out, nil
}

// Decode decodes an image from r, auto-detecting the format.
// Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP.
func Decode(r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("raster: decode: %w", err)
	}
	return FromImage(img)
}

// DecodeBytes decodes an encoded image held in memory.
func DecodeBytes(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Load decodes the image file at path.
func Load(path string) (*Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("raster: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// EncodePNG writes the image to w as PNG.
func (m *Image) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, m.ToRGBA()); err != nil {
		return fmt.Errorf("raster: encode PNG: %w", err)
	}
	return nil
}

// SavePNG saves the image as a PNG file.
func (m *Image) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("raster: create file: %w", err)
	}
	if err := m.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
