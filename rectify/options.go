package rectify

import (
	"log/slog"

	"github.com/nexus-edu/examscan"
)

// Option configures a Warp or Rectify call.
//
// Example:
//
//	out, err := rectify.Rectify(frame, corners, 850, 1100, rectify.WithWorkers(4))
type Option func(*options)

// options holds optional configuration for warping.
type options struct {
	workers int
	logger  *slog.Logger
}

// defaultOptions returns the default warp options: sequential.
func defaultOptions() options {
	return options{workers: 1}
}

// WithWorkers splits the warp into row bands processed by n goroutines.
// n <= 1 warps on the calling goroutine. The output does not depend on n.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sends this call's diagnostics to l instead of examscan.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func (o *options) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return examscan.Logger()
}
