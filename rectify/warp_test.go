package rectify

import (
	"bytes"
	"errors"
	"log/slog"
	"runtime"
	"testing"

	"github.com/nexus-edu/examscan"
	"github.com/nexus-edu/examscan/raster"
)

// patternImage fills every channel with a position-dependent value so that
// any misplaced sample is detected.
func patternImage(t testing.TB, w, h int) *raster.Image {
	t.Helper()
	img, err := raster.New(w, h)
	if err != nil {
		t.Fatalf("raster.New: %v", err)
	}
	for y := range h {
		for x := range w {
			_ = img.SetRGBA(x, y, uint8(x*7+y), uint8(y*13+x*3), uint8((x*y)%251), uint8(200+(x+y)%50))
		}
	}
	return img
}

func TestWarpIdentity(t *testing.T) {
	const w, h = 12, 9
	src := patternImage(t, w, h)

	out, err := Warp(src, Identity(), w, h)
	if err != nil {
		t.Fatalf("Warp() error = %v", err)
	}
	for y := range h {
		for x := range w {
			gr, gg, gb, ga := out.RGBA(x, y)
			if x == w-1 || y == h-1 {
				if gr|gg|gb|ga != 0 {
					t.Errorf("edge pixel (%d,%d) = %d,%d,%d,%d, want zero", x, y, gr, gg, gb, ga)
				}
				continue
			}
			wr, wg, wb, wa := src.RGBA(x, y)
			if gr != wr || gg != wg || gb != wb || ga != wa {
				t.Errorf("pixel (%d,%d) = %d,%d,%d,%d, want %d,%d,%d,%d", x, y, gr, gg, gb, ga, wr, wg, wb, wa)
			}
		}
	}
}

func TestWarpDoesNotMutateInput(t *testing.T) {
	src := patternImage(t, 8, 8)
	before := bytes.Clone(src.Data())
	if _, err := Warp(src, Homography{0.5, 0.1, 1, 0.2, 0.7, 2, 0.001, 0.002, 1}, 16, 16); err != nil {
		t.Fatalf("Warp() error = %v", err)
	}
	if !bytes.Equal(before, src.Data()) {
		t.Error("Warp() modified its input image")
	}
}

func TestWarpTranslation(t *testing.T) {
	src := patternImage(t, 10, 10)
	// Output (x, y) samples source (x+2, y+1).
	h := Homography{1, 0, 2, 0, 1, 1, 0, 0, 1}
	out, err := Warp(src, h, 10, 10)
	if err != nil {
		t.Fatalf("Warp() error = %v", err)
	}
	for y := range 10 {
		for x := range 10 {
			gr, _, _, ga := out.RGBA(x, y)
			if x+2 >= 9 || y+1 >= 9 {
				if gr != 0 || ga != 0 {
					t.Errorf("pixel (%d,%d) maps past the edge but is %d,%d", x, y, gr, ga)
				}
				continue
			}
			wr, _, _, wa := src.RGBA(x+2, y+1)
			if gr != wr || ga != wa {
				t.Errorf("pixel (%d,%d) = r%d a%d, want r%d a%d", x, y, gr, ga, wr, wa)
			}
		}
	}
}

func TestWarpHalfPixelShiftBlends(t *testing.T) {
	src, _ := raster.New(3, 2)
	_ = src.SetRGBA(0, 0, 0, 0, 0, 255)
	_ = src.SetRGBA(1, 0, 100, 0, 0, 255)
	_ = src.SetRGBA(0, 1, 0, 0, 0, 255)
	_ = src.SetRGBA(1, 1, 100, 0, 0, 255)

	h := Homography{1, 0, 0.5, 0, 1, 0, 0, 0, 1}
	out, err := Warp(src, h, 1, 1)
	if err != nil {
		t.Fatalf("Warp() error = %v", err)
	}
	if r, _, _, a := out.RGBA(0, 0); r != 50 || a != 255 {
		t.Errorf("blended pixel = r%d a%d, want r50 a255", r, a)
	}
}

func TestWarpParallelMatchesSequential(t *testing.T) {
	src := patternImage(t, 64, 48)
	h, err := CanonicalToSource(Quad{{3, 2.5}, {60, 4}, {58.5, 45}, {1, 40}}, 50, 70)
	if err != nil {
		t.Fatalf("CanonicalToSource() error = %v", err)
	}

	seq, err := Warp(src, h, 50, 70)
	if err != nil {
		t.Fatalf("Warp() error = %v", err)
	}
	for _, workers := range []int{2, 3, 8} {
		par, err := Warp(src, h, 50, 70, WithWorkers(workers))
		if err != nil {
			t.Fatalf("Warp(workers=%d) error = %v", workers, err)
		}
		if !bytes.Equal(seq.Data(), par.Data()) {
			t.Errorf("Warp(workers=%d) differs from sequential warp", workers)
		}
	}
}

func TestWarpInvalidSize(t *testing.T) {
	src := patternImage(t, 4, 4)
	for _, sz := range [][2]int{{0, 4}, {4, 0}, {-1, -1}} {
		if _, err := Warp(src, Identity(), sz[0], sz[1]); !errors.Is(err, raster.ErrInvalidDimensions) {
			t.Errorf("Warp(%dx%d) error = %v, want ErrInvalidDimensions", sz[0], sz[1], err)
		}
	}
}

func TestRectifyAxisAlignedCrop(t *testing.T) {
	src := patternImage(t, 40, 30)
	// A 1:1 crop of the region starting at (10, 5).
	corners := Rect(10, 5, 29, 19)
	out, err := Rectify(src, corners, 20, 15)
	if err != nil {
		t.Fatalf("Rectify() error = %v", err)
	}
	for y := range 15 {
		for x := range 20 {
			gr, gg, gb, ga := out.RGBA(x, y)
			wr, wg, wb, wa := src.RGBA(x+10, y+5)
			if gr != wr || gg != wg || gb != wb || ga != wa {
				t.Fatalf("pixel (%d,%d) = %d,%d,%d,%d, want %d,%d,%d,%d", x, y, gr, gg, gb, ga, wr, wg, wb, wa)
			}
		}
	}
}

func TestRectifyDegenerateCorners(t *testing.T) {
	src := patternImage(t, 10, 10)
	corners := Quad{{1, 1}, {5, 5}, {8, 8}, {2, 2}}
	if _, err := Rectify(src, corners, 10, 10); !errors.Is(err, examscan.ErrDegenerateGeometry) {
		t.Errorf("Rectify() error = %v, want ErrDegenerateGeometry", err)
	}
}

func TestRectifyInvalidSize(t *testing.T) {
	src := patternImage(t, 10, 10)
	if _, err := Rectify(src, Rect(0, 0, 5, 5), 0, 10); !errors.Is(err, raster.ErrInvalidDimensions) {
		t.Errorf("Rectify() error = %v, want ErrInvalidDimensions", err)
	}
}

func BenchmarkWarp(b *testing.B) {
	src := patternImage(b, 1600, 2100)
	h, err := CanonicalToSource(Quad{{112.5, 80.25}, {1530, 140}, {1590.75, 2055}, {60, 2010.5}}, 850, 1100)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Warp(src, h, 850, 1100)
	}
}

func BenchmarkWarpParallel(b *testing.B) {
	src := patternImage(b, 1600, 2100)
	h, err := CanonicalToSource(Quad{{112.5, 80.25}, {1530, 140}, {1590.75, 2055}, {60, 2010.5}}, 850, 1100)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Warp(src, h, 850, 1100, WithWorkers(runtime.GOMAXPROCS(0)))
	}
}

func TestWarpWithLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := Warp(patternImage(t, 8, 8), Identity(), 8, 8, WithLogger(l)); err != nil {
		t.Fatalf("Warp() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("rectify: warp done")) {
		t.Errorf("log output = %q, want warp diagnostics", buf.String())
	}
}
