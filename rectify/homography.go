package rectify

import (
	"fmt"
	"math"

	"github.com/nexus-edu/examscan"
)

// Homography is a 3x3 projective transform in row-major order:
//
//	| h0 h1 h2 |
//	| h3 h4 h5 |
//	| h6 h7 h8 |
//
// mapping (x, y) to ((h0 x + h1 y + h2) / w, (h3 x + h4 y + h5) / w) with
// w = h6 x + h7 y + h8. h8 is normalized to 1 whenever possible.
type Homography [9]float64

// Identity returns the identity transform.
func Identity() Homography {
	return Homography{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// pivotEpsilon is the smallest pivot the solver accepts.
const pivotEpsilon = 1e-12

// ComputeHomography returns the homography mapping src[i] to dst[i] for all
// four corner pairs. Both quads must use the same winding order.
//
// The 8 unknowns (h8 fixed at 1) are solved with Gaussian elimination and
// partial pivoting. If three points of either quad are collinear, or the
// system is singular, the error wraps examscan.ErrDegenerateGeometry.
func ComputeHomography(src, dst Quad) (Homography, error) {
	if src.degenerate() {
		return Homography{}, fmt.Errorf("rectify: source corners %v: %w", src, examscan.ErrDegenerateGeometry)
	}
	if dst.degenerate() {
		return Homography{}, fmt.Errorf("rectify: destination corners %v: %w", dst, examscan.ErrDegenerateGeometry)
	}

	var a [8][8]float64
	var b [8]float64
	for i := range 4 {
		sx, sy := src[i].X, src[i].Y
		dx, dy := dst[i].X, dst[i].Y
		r := 2 * i

		// dx = (h0 sx + h1 sy + h2) / (h6 sx + h7 sy + 1)
		a[r] = [8]float64{sx, sy, 1, 0, 0, 0, -sx * dx, -sy * dx}
		b[r] = dx

		// dy = (h3 sx + h4 sy + h5) / (h6 sx + h7 sy + 1)
		a[r+1] = [8]float64{0, 0, 0, sx, sy, 1, -sx * dy, -sy * dy}
		b[r+1] = dy
	}

	h, minPivot, ok := solve8(a, b)
	if !ok {
		return Homography{}, fmt.Errorf("rectify: singular system (pivot %.3g): %w", minPivot, examscan.ErrDegenerateGeometry)
	}

	examscan.Logger().Debug("rectify: homography solved", "min_pivot", minPivot)
	return Homography{h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7], 1}, nil
}

// Apply maps p through the transform. ok is false when p lies on the
// transform's line at infinity.
func (h Homography) Apply(p Point) (Point, bool) {
	w := h[6]*p.X + h[7]*p.Y + h[8]
	if math.Abs(w) < pivotEpsilon {
		return Point{}, false
	}
	return Point{
		X: (h[0]*p.X + h[1]*p.Y + h[2]) / w,
		Y: (h[3]*p.X + h[4]*p.Y + h[5]) / w,
	}, true
}

// Invert returns the inverse transform, computed from the adjugate.
// The error wraps examscan.ErrDegenerateGeometry when h is singular.
func (h Homography) Invert() (Homography, error) {
	inv := Homography{
		h[4]*h[8] - h[5]*h[7],
		h[2]*h[7] - h[1]*h[8],
		h[1]*h[5] - h[2]*h[4],
		h[5]*h[6] - h[3]*h[8],
		h[0]*h[8] - h[2]*h[6],
		h[2]*h[3] - h[0]*h[5],
		h[3]*h[7] - h[4]*h[6],
		h[1]*h[6] - h[0]*h[7],
		h[0]*h[4] - h[1]*h[3],
	}
	det := h[0]*inv[0] + h[1]*inv[3] + h[2]*inv[6]
	if math.Abs(det) < pivotEpsilon {
		return Homography{}, fmt.Errorf("rectify: singular homography: %w", examscan.ErrDegenerateGeometry)
	}

	// Any nonzero scale is the same transform; prefer h8 = 1.
	scale := 1 / det
	if math.Abs(inv[8]) >= pivotEpsilon {
		scale = 1 / inv[8]
	}
	for i := range inv {
		inv[i] *= scale
	}
	return inv, nil
}
