package rectify

import (
	"fmt"
	"time"

	"github.com/nexus-edu/examscan/internal/parallel"
	"github.com/nexus-edu/examscan/raster"
)

// Warp resamples img into a new outWidth x outHeight image.
//
// h must map output (destination) pixel coordinates to source pixel
// coordinates. Every output pixel (x, y) is mapped to (sx, sy) and sampled
// bilinearly from its four source neighbors. Output pixels whose source
// coordinate is outside the image, or within one pixel of its right or
// bottom edge, stay zero in all four channels; they are never extrapolated.
//
// img is not modified.
func Warp(img *raster.Image, h Homography, outWidth, outHeight int, opts ...Option) (*raster.Image, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	out, err := raster.New(outWidth, outHeight)
	if err != nil {
		return nil, fmt.Errorf("rectify: warp %dx%d: %w", outWidth, outHeight, err)
	}

	start := time.Now()
	parallel.ForEachBand(outHeight, o.workers, func(b parallel.Band) {
		warpRows(out, img, h, b.Y0, b.Y1)
	})

	o.log().Debug("rectify: warp done",
		"src_w", img.Width(), "src_h", img.Height(),
		"out_w", outWidth, "out_h", outHeight,
		"workers", o.workers, "elapsed", time.Since(start))
	return out, nil
}

// warpRows fills rows [y0, y1) of out. It writes nothing outside those rows.
func warpRows(out, src *raster.Image, h Homography, y0, y1 int) {
	for y := y0; y < y1; y++ {
		row := out.Row(y)
		fy := float64(y)
		// Row-constant terms of the projective map.
		nx := h[1]*fy + h[2]
		ny := h[4]*fy + h[5]
		nw := h[7]*fy + h[8]
		for x := range out.Width() {
			fx := float64(x)
			w := h[6]*fx + nw
			if w == 0 {
				continue
			}
			sx := (h[0]*fx + nx) / w
			sy := (h[3]*fx + ny) / w

			r, g, b, a, ok := src.SampleBilinear(sx, sy)
			if !ok {
				continue
			}
			i := x * raster.BytesPerPixel
			row[i] = r
			row[i+1] = g
			row[i+2] = b
			row[i+3] = a
		}
	}
}

// CanonicalToSource computes the homography that maps the corners of the
// outWidth x outHeight canonical sheet to the detected corners of the photo.
// corners must be ordered top-left, top-right, bottom-right, bottom-left.
// The canonical corners are the pixel centers (0,0) and
// (outWidth-1, outHeight-1).
func CanonicalToSource(corners Quad, outWidth, outHeight int) (Homography, error) {
	canonical := Rect(0, 0, float64(outWidth-1), float64(outHeight-1))
	return ComputeHomography(canonical, corners)
}

// Rectify maps the sheet outlined by corners onto an upright
// outWidth x outHeight image. See CanonicalToSource for the corner order.
//
// Degenerate corners return an error wrapping examscan.ErrDegenerateGeometry;
// the caller should retake the capture.
func Rectify(img *raster.Image, corners Quad, outWidth, outHeight int, opts ...Option) (*raster.Image, error) {
	if outWidth <= 0 || outHeight <= 0 {
		return nil, fmt.Errorf("rectify: output %dx%d: %w", outWidth, outHeight, raster.ErrInvalidDimensions)
	}
	h, err := CanonicalToSource(corners, outWidth, outHeight)
	if err != nil {
		return nil, err
	}
	return Warp(img, h, outWidth, outHeight, opts...)
}
