package rectify

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidQuad is returned when a corner list does not hold exactly four points.
var ErrInvalidQuad = errors.New("rectify: quad needs exactly 4 points")

// Point is an image-space or canonical-space coordinate in pixels.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// LengthSquared returns the squared length of the vector.
func (p Point) LengthSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return math.Sqrt(p.Sub(q).LengthSquared())
}

// Quad holds four corners in a consistent winding order. Rectify expects
// top-left, top-right, bottom-right, bottom-left.
type Quad [4]Point

// NewQuad builds a Quad from a slice, rejecting any length other than four.
func NewQuad(pts []Point) (Quad, error) {
	if len(pts) != 4 {
		return Quad{}, fmt.Errorf("%w: got %d", ErrInvalidQuad, len(pts))
	}
	return Quad{pts[0], pts[1], pts[2], pts[3]}, nil
}

// Rect returns the quad of the axis-aligned rectangle spanning (x0,y0)-(x1,y1)
// in top-left, top-right, bottom-right, bottom-left order.
func Rect(x0, y0, x1, y1 float64) Quad {
	return Quad{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

// collinearTolerance is relative to the squared extent of the quad.
const collinearTolerance = 1e-9

// degenerate reports whether any three corners are collinear (which includes
// duplicated corners). Such a quad cannot anchor a homography.
func (q Quad) degenerate() bool {
	var extent float64
	for i := range q {
		for j := i + 1; j < len(q); j++ {
			extent = math.Max(extent, q[i].Sub(q[j]).LengthSquared())
		}
	}
	for skip := range q {
		var tri [3]Point
		n := 0
		for i, p := range q {
			if i != skip {
				tri[n] = p
				n++
			}
		}
		area := math.Abs(tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])))
		if area <= collinearTolerance*extent {
			return true
		}
	}
	return false
}
