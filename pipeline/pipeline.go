// Package pipeline grades one photographed answer sheet: it rectifies the
// photo from its detected corners and scores the bubbles against the key of
// the exam row the sheet was printed from.
package pipeline

import (
	"fmt"

	"github.com/nexus-edu/examscan"
	"github.com/nexus-edu/examscan/exam"
	"github.com/nexus-edu/examscan/omr"
	"github.com/nexus-edu/examscan/raster"
	"github.com/nexus-edu/examscan/rectify"
)

// Default canonical sheet size: US Letter at 100 dpi.
const (
	DefaultWidth  = 850
	DefaultHeight = 1100
)

// Option configures a Grader.
type Option func(*options)

type options struct {
	width, height int
	workers       int
	scorerOpts    []omr.Option
}

// WithCanvas sets the canonical sheet size used when the grid spec does not
// state one.
func WithCanvas(width, height int) Option {
	return func(o *options) {
		o.width, o.height = width, height
	}
}

// WithWorkers parallelizes rectification across n goroutines.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithScorerOptions passes thresholds through to the mark scorer.
func WithScorerOptions(opts ...omr.Option) Option {
	return func(o *options) {
		o.scorerOpts = append(o.scorerOpts, opts...)
	}
}

// Grader runs rectify then score. It holds no per-scan state and is safe
// for concurrent use.
type Grader struct {
	opts   options
	scorer *omr.Scorer
}

// NewGrader creates a Grader.
func NewGrader(opts ...Option) *Grader {
	o := options{width: DefaultWidth, height: DefaultHeight, workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return &Grader{opts: o, scorer: omr.NewScorer(o.scorerOpts...)}
}

// Report is the outcome of grading one scan.
type Report struct {
	*omr.Result
	// Rectified is the straightened sheet the marks were read from.
	Rectified *raster.Image `json:"-"`
}

// Grade rectifies frame using corners (top-left, top-right, bottom-right,
// bottom-left) and scores it against key.
//
// Errors wrapping examscan.ErrDegenerateGeometry mean the capture must be
// retaken; errors wrapping examscan.ErrInvalidGridSpec mean the layout is
// wrong. Neither is retried here.
func (g *Grader) Grade(frame *raster.Image, corners rectify.Quad, spec omr.GridSpec, key omr.AnswerKey) (*Report, error) {
	w, h := g.canvas(spec)
	sheet, err := rectify.Rectify(frame, corners, w, h, rectify.WithWorkers(g.opts.workers))
	if err != nil {
		return nil, fmt.Errorf("pipeline: rectify: %w", err)
	}
	res, err := g.scorer.Score(sheet, spec, key)
	if err != nil {
		return nil, fmt.Errorf("pipeline: score: %w", err)
	}
	examscan.Logger().Info("pipeline: scan graded", "result", res.String())
	return &Report{Result: res, Rectified: sheet}, nil
}

// GradeRow grades a scan of a sheet printed from row.
func (g *Grader) GradeRow(frame *raster.Image, corners rectify.Quad, spec omr.GridSpec, row *exam.Row) (*Report, error) {
	return g.Grade(frame, corners, spec, row.Key())
}

func (g *Grader) canvas(spec omr.GridSpec) (int, int) {
	w, h := g.opts.width, g.opts.height
	if spec.Width > 0 && spec.Height > 0 {
		w, h = spec.Width, spec.Height
	}
	return w, h
}
