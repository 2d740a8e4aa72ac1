package omr

import (
	"testing"

	"github.com/nexus-edu/examscan/raster"
)

func TestPick(t *testing.T) {
	s := NewScorer()
	tests := []struct {
		name    string
		density []float64
		want    int
		wantOK  bool
	}{
		{"clear mark", []float64{0.1, 0.8, 0.12, 0.1}, 1, true},
		{"nothing filled", []float64{0.1, 0.12, 0.11, 0.1}, -1, false},
		{"below min fill", []float64{0.1, 0.3, 0.05, 0.0}, -1, false},
		{"two marks", []float64{0.8, 0.75, 0.1, 0.1}, -1, false},
		{"tie", []float64{0.6, 0.6}, -1, false},
		{"margin met", []float64{0.5, 0.25}, 0, true},
		{"single bubble filled", []float64{0.9}, 0, true},
		{"single bubble empty", []float64{0.2}, -1, false},
		{"last bubble", []float64{0.1, 0.1, 0.1, 0.95}, 3, true},
		{"empty", nil, -1, false},
		{"exactly min fill", []float64{7.0 / 20, 0}, -1, false},
		{"just over min fill", []float64{8.0 / 20, 0}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.pick(tt.density)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("pick(%v) = %d, %v, want %d, %v", tt.density, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPickCustomThresholds(t *testing.T) {
	s := NewScorer(WithMinFill(0.2), WithMinMargin(0.05))
	if got, ok := s.pick([]float64{0.25, 0.19}); !ok || got != 0 {
		t.Errorf("pick() = %d, %v, want 0, true", got, ok)
	}
}

func TestPickMarginEquality(t *testing.T) {
	// Binary fractions so the subtraction is exact.
	s := NewScorer(WithMinFill(0.25), WithMinMargin(0.25))
	if got, ok := s.pick([]float64{0.75, 0.5}); ok {
		t.Errorf("pick() = %d, true, want unanswered when the lead equals the margin", got)
	}
	if got, ok := s.pick([]float64{0.75, 0.375}); !ok || got != 0 {
		t.Errorf("pick() = %d, %v, want 0, true", got, ok)
	}
}

func TestDensity(t *testing.T) {
	img, _ := raster.New(21, 21)
	img.Fill(255, 255, 255, 255)
	// Left half dark.
	img.FillRect(0, 0, 10, 21, 0, 0, 0, 255)

	s := NewScorer()
	d := s.density(img, Point{10, 10}, 3)
	// Disk of radius 3 has 29 lattice points; 11 have dx < 0.
	if want := 11.0 / 29.0; d != want {
		t.Errorf("density = %v, want %v", d, want)
	}

	if d := s.density(img, Point{3, 3}, 2); d != 1 {
		t.Errorf("density inside dark area = %v, want 1", d)
	}
	if d := s.density(img, Point{17, 17}, 2); d != 0 {
		t.Errorf("density inside white area = %v, want 0", d)
	}
}

func TestDensitySkipsTransparent(t *testing.T) {
	img, _ := raster.New(10, 10) // all zero: black but transparent
	s := NewScorer()
	if d := s.density(img, Point{5, 5}, 3); d != 0 {
		t.Errorf("density over transparent pixels = %v, want 0", d)
	}
	_ = img.SetRGBA(5, 5, 0, 0, 0, 255)
	if d := s.density(img, Point{5, 5}, 3); d != 1 {
		t.Errorf("density with one opaque dark pixel = %v, want 1", d)
	}
}

func TestRadius(t *testing.T) {
	q := QuestionLayout{Region: Rect{W: 160, H: 30}, Bubbles: 4}
	if got := NewScorer().radius(q); got != 10 {
		t.Errorf("default radius = %d, want 10", got)
	}
	if got := NewScorer(WithSampleRadius(6)).radius(q); got != 6 {
		t.Errorf("WithSampleRadius(6) radius = %d, want 6", got)
	}
	tiny := QuestionLayout{Region: Rect{W: 2, H: 2}, Bubbles: 2}
	if got := NewScorer().radius(tiny); got != 1 {
		t.Errorf("tiny radius = %d, want 1", got)
	}
}
