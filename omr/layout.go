package omr

import (
	"fmt"
	"math"

	"github.com/nexus-edu/examscan"
)

// MaxBubbles is the largest number of bubbles per question (A..D).
const MaxBubbles = 4

// Point is a position on the rectified sheet, in canonical pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned region on the rectified sheet.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// contains reports whether p lies inside r, edges included.
func (r Rect) contains(p Point) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// QuestionLayout places one question's bubbles on the sheet.
type QuestionLayout struct {
	ID string `json:"id"`
	// Region bounds all bubbles of the question.
	Region Rect `json:"region"`
	// Bubbles is the number of selectable bubbles, 1 to MaxBubbles.
	Bubbles int `json:"bubbles"`
	// Centers optionally gives every bubble center explicitly. When empty
	// the bubbles are spaced evenly across the region's horizontal midline.
	Centers []Point `json:"centers,omitempty"`
	// Points awarded for a correct answer. Zero means 1.
	Points float64 `json:"points,omitempty"`
}

// cellSize returns the width and height of one bubble cell.
func (q QuestionLayout) cellSize() (float64, float64) {
	return q.Region.W / float64(q.Bubbles), q.Region.H
}

// BubbleCenter returns the center of bubble i.
func (q QuestionLayout) BubbleCenter(i int) Point {
	if len(q.Centers) == q.Bubbles && i < len(q.Centers) {
		return q.Centers[i]
	}
	cw, _ := q.cellSize()
	return Point{
		X: q.Region.X + (float64(i)+0.5)*cw,
		Y: q.Region.Y + q.Region.H/2,
	}
}

// value returns the points awarded for a correct answer.
func (q QuestionLayout) value() float64 {
	if q.Points == 0 {
		return 1
	}
	return q.Points
}

// GridSpec is the bubble layout of a printed sheet in canonical coordinates.
// It must come from the same layout code that placed the bubbles at print time.
type GridSpec struct {
	// Width and Height of the canonical sheet. Zero means "whatever the
	// rectified image is".
	Width     int              `json:"width,omitempty"`
	Height    int              `json:"height,omitempty"`
	Questions []QuestionLayout `json:"questions"`
}

// GridError reports a malformed grid spec. It matches
// examscan.ErrInvalidGridSpec with errors.Is.
type GridError struct {
	QuestionID string
	Reason     string
}

func (e *GridError) Error() string {
	if e.QuestionID == "" {
		return fmt.Sprintf("omr: invalid grid spec: %s", e.Reason)
	}
	return fmt.Sprintf("omr: invalid grid spec: question %q: %s", e.QuestionID, e.Reason)
}

// Unwrap returns examscan.ErrInvalidGridSpec.
func (e *GridError) Unwrap() error { return examscan.ErrInvalidGridSpec }

// Validate checks the spec against a rectified image of width x height.
func (s GridSpec) Validate(width, height int) error {
	if (s.Width != 0 && s.Width != width) || (s.Height != 0 && s.Height != height) {
		return &GridError{Reason: fmt.Sprintf("sheet is %dx%d but image is %dx%d", s.Width, s.Height, width, height)}
	}
	bounds := Rect{W: float64(width), H: float64(height)}
	seen := make(map[string]struct{}, len(s.Questions))
	for _, q := range s.Questions {
		if _, dup := seen[q.ID]; dup {
			return &GridError{QuestionID: q.ID, Reason: "duplicate question id"}
		}
		seen[q.ID] = struct{}{}

		if err := q.validate(bounds); err != nil {
			return err
		}
	}
	return nil
}

func (q QuestionLayout) validate(bounds Rect) error {
	r := q.Region
	switch {
	case q.Bubbles < 1 || q.Bubbles > MaxBubbles:
		return &GridError{QuestionID: q.ID, Reason: fmt.Sprintf("%d bubbles, want 1 to %d", q.Bubbles, MaxBubbles)}
	case !(r.W > 0 && r.H > 0) || math.IsInf(r.W, 0) || math.IsInf(r.H, 0):
		return &GridError{QuestionID: q.ID, Reason: "empty region"}
	case !bounds.contains(Point{r.X, r.Y}) || !bounds.contains(Point{r.X + r.W, r.Y + r.H}):
		return &GridError{QuestionID: q.ID, Reason: fmt.Sprintf("region %+v outside %gx%g image", r, bounds.W, bounds.H)}
	case len(q.Centers) != 0 && len(q.Centers) != q.Bubbles:
		return &GridError{QuestionID: q.ID, Reason: fmt.Sprintf("%d centers for %d bubbles", len(q.Centers), q.Bubbles)}
	case q.Points < 0:
		return &GridError{QuestionID: q.ID, Reason: "negative points"}
	}
	for i, c := range q.Centers {
		if !r.contains(c) {
			return &GridError{QuestionID: q.ID, Reason: fmt.Sprintf("bubble %d center outside region", i)}
		}
	}
	return nil
}
