package omr

import (
	"fmt"
	"math"

	"github.com/nexus-edu/examscan"
	"github.com/nexus-edu/examscan/raster"
)

// AnswerKey maps a question id to the display index of its correct bubble
// for one specific exam row. It must come from that row, not from the
// unshuffled questions.
type AnswerKey map[string]int

// ScoredAnswer is the outcome for one question.
type ScoredAnswer struct {
	QuestionID string `json:"question_id"`
	// Selected is the filled bubble index, valid only when Answered.
	Selected int  `json:"selected"`
	Answered bool `json:"answered"`
	Correct  bool `json:"correct"`
	// Scorable is false when the key has no entry for the question.
	Scorable bool    `json:"scorable"`
	Awarded  float64 `json:"awarded"`
	// Density holds the dark-pixel fraction of every bubble.
	Density []float64 `json:"density"`
}

// Letter returns the selected bubble letter, or "" when unanswered.
func (a ScoredAnswer) Letter() string {
	if !a.Answered {
		return ""
	}
	return string(rune('A' + a.Selected))
}

// Result is the scored sheet.
type Result struct {
	Answers []ScoredAnswer `json:"answers"`
	// Score is the sum of awarded points.
	Score float64 `json:"score"`
	// Possible is the sum of points of every scorable question.
	Possible   float64 `json:"possible"`
	Correct    int     `json:"correct"`
	Incorrect  int     `json:"incorrect"`
	Unanswered int     `json:"unanswered"`
}

// Scorer detects filled bubbles on rectified sheets.
// A Scorer is immutable and safe for concurrent use.
type Scorer struct {
	opts options
}

// NewScorer creates a Scorer with default thresholds unless overridden.
func NewScorer(opts ...Option) *Scorer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Scorer{opts: o}
}

// Detect reports the selected bubble of every question in spec.
//
// Each bubble is sampled over a disk around its center; its density is the
// fraction of sampled pixels darker than the dark threshold. Fully
// transparent pixels, which the rectifier leaves where the photo had no
// data, are not sampled. The densest bubble is selected when it exceeds the
// minimum fill and leads the runner-up by more than the minimum margin;
// otherwise the question is unanswered.
//
// The error wraps examscan.ErrInvalidGridSpec when spec does not fit img.
func (s *Scorer) Detect(img *raster.Image, spec GridSpec) ([]ScoredAnswer, error) {
	if err := spec.Validate(img.Width(), img.Height()); err != nil {
		return nil, err
	}

	log := examscan.Logger()
	answers := make([]ScoredAnswer, len(spec.Questions))
	for i, q := range spec.Questions {
		density := make([]float64, q.Bubbles)
		radius := s.radius(q)
		for b := range q.Bubbles {
			density[b] = s.density(img, q.BubbleCenter(b), radius)
		}
		sel, ok := s.pick(density)
		answers[i] = ScoredAnswer{
			QuestionID: q.ID,
			Selected:   sel,
			Answered:   ok,
			Density:    density,
		}
		if !ok {
			answers[i].Selected = -1
		}
		log.Debug("omr: question sampled", "question", q.ID, "density", density, "selected", answers[i].Letter())
	}
	return answers, nil
}

// Score runs Detect and grades the selections against key.
// Questions missing from key are reported but excluded from Possible.
func (s *Scorer) Score(img *raster.Image, spec GridSpec, key AnswerKey) (*Result, error) {
	answers, err := s.Detect(img, spec)
	if err != nil {
		return nil, err
	}

	res := &Result{Answers: answers}
	for i, q := range spec.Questions {
		a := &res.Answers[i]
		want, ok := key[q.ID]
		a.Scorable = ok
		if !ok {
			continue
		}
		res.Possible += q.value()
		switch {
		case !a.Answered:
			res.Unanswered++
		case a.Selected == want:
			a.Correct = true
			a.Awarded = q.value()
			res.Score += a.Awarded
			res.Correct++
		default:
			res.Incorrect++
		}
	}

	examscan.Logger().Debug("omr: sheet scored",
		"score", res.Score, "possible", res.Possible,
		"correct", res.Correct, "incorrect", res.Incorrect, "unanswered", res.Unanswered)
	return res, nil
}

// radius returns the sampling disk radius for a question's bubbles.
func (s *Scorer) radius(q QuestionLayout) int {
	if s.opts.sampleRadius > 0 {
		return s.opts.sampleRadius
	}
	cw, ch := q.cellSize()
	return max(int(defaultRadiusFactor*math.Min(cw, ch)), 1)
}

// density returns the dark fraction of the non-transparent pixels within
// radius of c. A disk with no opaque pixel has density 0.
func (s *Scorer) density(img *raster.Image, c Point, radius int) float64 {
	cx, cy := int(math.Round(c.X)), int(math.Round(c.Y))
	r2 := radius * radius
	var sampled, dark int
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			luma, alpha := img.Luma(cx+dx, cy+dy)
			if alpha == 0 {
				continue
			}
			sampled++
			if luma < s.opts.darkThreshold {
				dark++
			}
		}
	}
	if sampled == 0 {
		return 0
	}
	return float64(dark) / float64(sampled)
}

// pick applies the fill and margin rules to a question's densities.
func (s *Scorer) pick(density []float64) (int, bool) {
	best, second := -1, -1
	for i, d := range density {
		switch {
		case best < 0 || d > density[best]:
			second = best
			best = i
		case second < 0 || d > density[second]:
			second = i
		}
	}
	if best < 0 || density[best] <= s.opts.minFill {
		return -1, false
	}
	runnerUp := 0.0
	if second >= 0 {
		runnerUp = density[second]
	}
	if density[best]-runnerUp <= s.opts.minMargin {
		return -1, false
	}
	return best, true
}

// String implements fmt.Stringer for log and CLI output.
func (r *Result) String() string {
	return fmt.Sprintf("%g/%g (%d correct, %d incorrect, %d unanswered)",
		r.Score, r.Possible, r.Correct, r.Incorrect, r.Unanswered)
}
