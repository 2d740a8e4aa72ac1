package rectify

import (
	"errors"
	"math"
	"testing"

	"github.com/nexus-edu/examscan"
)

const tolerance = 1e-6

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) <= tolerance && math.Abs(a.Y-b.Y) <= tolerance
}

func TestComputeHomographyRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		src, dst Quad
	}{
		{
			name: "identity",
			src:  Rect(0, 0, 100, 50),
			dst:  Rect(0, 0, 100, 50),
		},
		{
			name: "scale and translate",
			src:  Rect(0, 0, 10, 10),
			dst:  Rect(5, 7, 45, 27),
		},
		{
			name: "perspective photo to sheet",
			src:  Quad{{112.5, 80.25}, {1530, 140}, {1610.75, 2105}, {60, 2010.5}},
			dst:  Rect(0, 0, 849, 1099),
		},
		{
			name: "sheet to perspective photo",
			src:  Rect(0, 0, 849, 1099),
			dst:  Quad{{112.5, 80.25}, {1530, 140}, {1610.75, 2105}, {60, 2010.5}},
		},
		{
			name: "counter-clockwise winding",
			src:  Quad{{0, 0}, {0, 30}, {40, 30}, {40, 0}},
			dst:  Quad{{3, 2}, {1, 33}, {45, 35}, {42, 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ComputeHomography(tt.src, tt.dst)
			if err != nil {
				t.Fatalf("ComputeHomography() error = %v", err)
			}
			if h[8] != 1 {
				t.Errorf("h[8] = %v, want 1", h[8])
			}
			for i := range tt.src {
				got, ok := h.Apply(tt.src[i])
				if !ok {
					t.Fatalf("Apply(%v) not finite", tt.src[i])
				}
				if !near(got, tt.dst[i]) {
					t.Errorf("Apply(%v) = %v, want %v", tt.src[i], got, tt.dst[i])
				}
			}
		})
	}
}

func TestComputeHomographyIdentity(t *testing.T) {
	r := Rect(0, 0, 640, 480)
	h, err := ComputeHomography(r, r)
	if err != nil {
		t.Fatalf("ComputeHomography() error = %v", err)
	}
	want := Identity()
	for i := range h {
		if math.Abs(h[i]-want[i]) > tolerance {
			t.Errorf("h[%d] = %v, want %v", i, h[i], want[i])
		}
	}
}

func TestComputeHomographyDegenerate(t *testing.T) {
	good := Rect(0, 0, 100, 100)
	tests := []struct {
		name     string
		src, dst Quad
	}{
		{"all collinear", Quad{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, good},
		{"three collinear", Quad{{0, 0}, {50, 0}, {100, 0}, {0, 100}}, good},
		{"duplicate corner", Quad{{0, 0}, {0, 0}, {100, 100}, {0, 100}}, good},
		{"all identical", Quad{{5, 5}, {5, 5}, {5, 5}, {5, 5}}, good},
		{"degenerate destination", good, Quad{{0, 0}, {10, 0}, {20, 0}, {30, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeHomography(tt.src, tt.dst)
			if !errors.Is(err, examscan.ErrDegenerateGeometry) {
				t.Errorf("ComputeHomography() error = %v, want ErrDegenerateGeometry", err)
			}
		})
	}
}

func TestSolve8Singular(t *testing.T) {
	var a [8][8]float64
	var b [8]float64
	for i := range 8 {
		a[i][i] = 1
	}
	a[7] = a[6] // two identical rows
	if _, _, ok := solve8(a, b); ok {
		t.Error("solve8() ok = true for a singular system")
	}
}

func TestSolve8PivotsOnZeroDiagonal(t *testing.T) {
	// A permutation matrix has zeros on the diagonal and needs row swaps.
	var a [8][8]float64
	var b [8]float64
	for i := range 8 {
		a[i][(i+1)%8] = 2
		b[i] = float64(2 * (i + 1))
	}
	x, _, ok := solve8(a, b)
	if !ok {
		t.Fatal("solve8() ok = false")
	}
	for i := range 8 {
		// Row i reads 2*x[(i+1)%8] = 2*(i+1).
		if want := float64(i + 1); math.Abs(x[(i+1)%8]-want) > tolerance {
			t.Errorf("x[%d] = %v, want %v", (i+1)%8, x[(i+1)%8], want)
		}
	}
}

func TestHomographyInvert(t *testing.T) {
	src := Quad{{112.5, 80.25}, {1530, 140}, {1610.75, 2105}, {60, 2010.5}}
	dst := Rect(0, 0, 849, 1099)
	h, err := ComputeHomography(src, dst)
	if err != nil {
		t.Fatalf("ComputeHomography() error = %v", err)
	}
	inv, err := h.Invert()
	if err != nil {
		t.Fatalf("Invert() error = %v", err)
	}
	if math.Abs(inv[8]-1) > tolerance {
		t.Errorf("inv[8] = %v, want 1", inv[8])
	}
	for i := range dst {
		got, ok := inv.Apply(dst[i])
		if !ok || !near(got, src[i]) {
			t.Errorf("inv.Apply(%v) = %v (ok=%v), want %v", dst[i], got, ok, src[i])
		}
	}
	for _, p := range []Point{{400, 500}, {10.5, 1000}} {
		mid, _ := h.Apply(p)
		back, _ := inv.Apply(mid)
		if !near(back, p) {
			t.Errorf("round trip of %v = %v", p, back)
		}
	}
}

func TestHomographyInvertSingular(t *testing.T) {
	var h Homography
	if _, err := h.Invert(); !errors.Is(err, examscan.ErrDegenerateGeometry) {
		t.Errorf("Invert() error = %v, want ErrDegenerateGeometry", err)
	}
}

func TestHomographyApplyAtInfinity(t *testing.T) {
	h := Homography{1, 0, 0, 0, 1, 0, 1, 0, 0} // w = x
	if _, ok := h.Apply(Pt(0, 5)); ok {
		t.Error("Apply() ok = true on the line at infinity")
	}
	if p, ok := h.Apply(Pt(2, 4)); !ok || p != Pt(1, 2) {
		t.Errorf("Apply(2,4) = %v (ok=%v), want (1,2)", p, ok)
	}
}

func TestNewQuad(t *testing.T) {
	tests := []struct {
		name    string
		pts     []Point
		wantErr bool
	}{
		{"four", []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, false},
		{"three", []Point{{0, 0}, {1, 0}, {1, 1}}, true},
		{"five", []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {2, 2}}, true},
		{"nil", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQuad(tt.pts)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidQuad) {
					t.Errorf("NewQuad() error = %v, want ErrInvalidQuad", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewQuad() error = %v", err)
			}
			for i := range q {
				if q[i] != tt.pts[i] {
					t.Errorf("q[%d] = %v, want %v", i, q[i], tt.pts[i])
				}
			}
		})
	}
}
