// Package omrtest builds synthetic answer sheets for testing mark detection
// and the full scan pipeline.
package omrtest

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/nexus-edu/examscan/omr"
	"github.com/nexus-edu/examscan/raster"
	"github.com/nexus-edu/examscan/rectify"
)

// Sheet geometry used by Layout, in canonical pixels.
const (
	Margin    = 40
	RowHeight = 36
	CellWidth = 36
	ColumnGap = 48
)

// Layout arranges n questions of the given bubble count top to bottom in as
// many columns as fit on a width x height sheet. Question ids are q1..qN.
// It panics if the questions do not fit.
func Layout(n, bubbles, width, height int) omr.GridSpec {
	perColumn := (height - 2*Margin) / RowHeight
	colWidth := bubbles*CellWidth + ColumnGap
	if perColumn <= 0 || Margin+((n-1)/perColumn+1)*colWidth > width {
		panic(fmt.Sprintf("omrtest: %d questions of %d bubbles do not fit %dx%d", n, bubbles, width, height))
	}

	spec := omr.GridSpec{Width: width, Height: height, Questions: make([]omr.QuestionLayout, n)}
	for i := range n {
		col, row := i/perColumn, i%perColumn
		spec.Questions[i] = omr.QuestionLayout{
			ID: fmt.Sprintf("q%d", i+1),
			Region: omr.Rect{
				X: float64(Margin + col*colWidth + ColumnGap/2),
				Y: float64(Margin + row*RowHeight),
				W: float64(bubbles * CellWidth),
				H: RowHeight,
			},
			Bubbles: bubbles,
		}
	}
	return spec
}

// Render draws a white sheet with an outlined circle for every bubble in
// spec and fills the bubbles listed in marks (question id -> bubble index).
// Each question id is printed right-aligned just left of its region.
// Indices outside a question's bubbles are ignored.
func Render(spec omr.GridSpec, marks map[string][]int) *raster.Image {
	img, err := raster.New(spec.Width, spec.Height)
	if err != nil {
		panic(err)
	}
	img.Fill(255, 255, 255, 255)

	for _, q := range spec.Questions {
		cw := q.Region.W / float64(q.Bubbles)
		r := 0.3 * math.Min(cw, q.Region.H)
		filled := make(map[int]bool)
		for _, m := range marks[q.ID] {
			filled[m] = true
		}
		for b := range q.Bubbles {
			c := q.BubbleCenter(b)
			if filled[b] {
				Disk(img, c.X, c.Y, r, 20)
			} else {
				Ring(img, c.X, c.Y, r, 1, 60)
			}
		}
	}
	return label(img, spec)
}

// label prints the question ids with the 7x13 bitmap face.
func label(img *raster.Image, spec omr.GridSpec) *raster.Image {
	canvas := img.ToRGBA()
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Gray{Y: 90}),
		Face: basicfont.Face7x13,
	}
	for _, q := range spec.Questions {
		w := d.MeasureString(q.ID).Ceil()
		d.Dot = fixed.P(int(q.Region.X)-w-3, int(q.Region.Y+q.Region.H/2)+4)
		d.DrawString(q.ID)
	}
	out, err := raster.FromImage(canvas)
	if err != nil {
		panic(err)
	}
	return out
}

// Marks converts single selections to the form Render takes. Negative
// indices leave the question blank.
func Marks(selected map[string]int) map[string][]int {
	out := make(map[string][]int, len(selected))
	for id, s := range selected {
		if s >= 0 {
			out[id] = []int{s}
		}
	}
	return out
}

// Disk paints a filled gray disk.
func Disk(img *raster.Image, cx, cy, r float64, gray uint8) {
	paint(img, cx, cy, r, func(d float64) bool { return d <= r }, gray)
}

// Ring paints a circle outline of the given width.
func Ring(img *raster.Image, cx, cy, r, width float64, gray uint8) {
	paint(img, cx, cy, r, func(d float64) bool { return d <= r && d >= r-width }, gray)
}

func paint(img *raster.Image, cx, cy, r float64, inside func(float64) bool, gray uint8) {
	for y := int(cy - r - 1); y <= int(cy+r+1); y++ {
		for x := int(cx - r - 1); x <= int(cx+r+1); x++ {
			if inside(math.Hypot(float64(x)-cx, float64(y)-cy)) {
				_ = img.SetRGBA(x, y, gray, gray, gray, 255)
			}
		}
	}
}

// Photograph simulates a camera capture: it projects sheet into a
// photoWidth x photoHeight frame so that the sheet's corners land on corners
// (top-left, top-right, bottom-right, bottom-left), over a dark table.
func Photograph(sheet *raster.Image, corners rectify.Quad, photoWidth, photoHeight int) (*raster.Image, error) {
	sheetQuad := rectify.Rect(0, 0, float64(sheet.Width()-1), float64(sheet.Height()-1))
	// Warp walks output (photo) pixels, so it needs photo -> sheet.
	h, err := rectify.ComputeHomography(corners, sheetQuad)
	if err != nil {
		return nil, err
	}
	photo, err := rectify.Warp(sheet, h, photoWidth, photoHeight)
	if err != nil {
		return nil, err
	}
	for y := range photoHeight {
		for x := range photoWidth {
			if _, _, _, a := photo.RGBA(x, y); a == 0 {
				_ = photo.SetRGBA(x, y, 70, 60, 50, 255)
			}
		}
	}
	return photo, nil
}
