package raster

import "math"

// SampleBilinear interpolates the image at continuous pixel coordinates
// (fx, fy), where integer coordinates address pixel centers.
//
// The four neighbors (x0,y0), (x0+1,y0), (x0,y0+1), (x0+1,y0+1) are blended
// per channel with the fractional weights of fx and fy. No edge clamping is
// done: ok is false when any neighbor would fall outside the image, that is
// unless 0 <= fx < width-1 and 0 <= fy < height-1.
func (m *Image) SampleBilinear(fx, fy float64) (r, g, b, a uint8, ok bool) {
	if !(fx >= 0 && fy >= 0 && fx < float64(m.width-1) && fy < float64(m.height-1)) {
		// Also rejects NaN.
		return 0, 0, 0, 0, false
	}

	x0 := int(fx)
	y0 := int(fy)
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	top := y0*m.stride + x0*BytesPerPixel
	bottom := top + m.stride
	p00 := m.data[top : top+2*BytesPerPixel : top+2*BytesPerPixel]
	p01 := m.data[bottom : bottom+2*BytesPerPixel : bottom+2*BytesPerPixel]

	r = blend(p00[0], p00[4], p01[0], p01[4], tx, ty)
	g = blend(p00[1], p00[5], p01[1], p01[5], tx, ty)
	b = blend(p00[2], p00[6], p01[2], p01[6], tx, ty)
	a = blend(p00[3], p00[7], p01[3], p01[7], tx, ty)
	return r, g, b, a, true
}

// blend performs bilinear interpolation on a 2x2 grid of channel values and
// rounds to the nearest byte.
func blend(v00, v10, v01, v11 uint8, tx, ty float64) uint8 {
	v := lerp2D(float64(v00), float64(v10), float64(v01), float64(v11), tx, ty)
	return uint8(math.Min(math.Max(math.Round(v), 0), 255))
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}
