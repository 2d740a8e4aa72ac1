package omr

// Default thresholds.
const (
	// DefaultDarkThreshold is the luma below which a pixel counts as marked.
	DefaultDarkThreshold = 128

	// DefaultMinFill is the density a bubble must exceed to count as filled.
	DefaultMinFill = 0.35

	// DefaultMinMargin is how far the darkest bubble must lead the runner-up.
	DefaultMinMargin = 0.15

	// defaultRadiusFactor sizes the sampling disk relative to the smaller
	// side of a bubble cell.
	defaultRadiusFactor = 0.35
)

// Option configures a Scorer.
//
// Example:
//
//	s := omr.NewScorer(omr.WithMinFill(0.4), omr.WithSampleRadius(9))
type Option func(*options)

type options struct {
	darkThreshold uint8
	minFill       float64
	minMargin     float64
	// sampleRadius in canonical pixels; 0 derives it from the cell size.
	sampleRadius int
}

func defaultOptions() options {
	return options{
		darkThreshold: DefaultDarkThreshold,
		minFill:       DefaultMinFill,
		minMargin:     DefaultMinMargin,
	}
}

// WithDarkThreshold sets the Rec. 601 luma below which a pixel is dark.
func WithDarkThreshold(luma uint8) Option {
	return func(o *options) {
		o.darkThreshold = luma
	}
}

// WithMinFill sets the dark-pixel fraction a selected bubble must exceed.
func WithMinFill(fraction float64) Option {
	return func(o *options) {
		o.minFill = fraction
	}
}

// WithMinMargin sets the lead over the runner-up a selected bubble must
// exceed. Closer pairs are reported unanswered.
func WithMinMargin(margin float64) Option {
	return func(o *options) {
		o.minMargin = margin
	}
}

// WithSampleRadius fixes the sampling disk radius in canonical pixels.
// Non-positive values restore the default, 35% of the smaller cell side.
func WithSampleRadius(r int) Option {
	return func(o *options) {
		o.sampleRadius = max(r, 0)
	}
}
