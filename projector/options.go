// SPDX-License-Identifier: MIT

package projector

// DefaultMaxIterations caps the inner Newton iteration.
const DefaultMaxIterations = 50

const (
	panicMaxIterations = "projector: WithMaxIterations: n must be > 0"
	panicWorkers       = "projector: WithWorkers: n must be > 0"
)

// Options configures a projection.
type Options struct {
	MaxIterations int
	Start         []float64 // starting estimate; nil means the observation itself
	Workers       int       // ProjectAll only; 1 means serial
}

// Option is a functional setter for Options.
type Option func(*Options)

// DefaultOptions returns the zero-configuration projection settings.
func DefaultOptions() Options {
	return Options{MaxIterations: DefaultMaxIterations, Workers: 1}
}

// WithMaxIterations sets the inner iteration cap. Panics on n ≤ 0.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterations)
	}

	return func(o *Options) { o.MaxIterations = n }
}

// WithStart sets the starting estimate for a single Project call.
func WithStart(x []float64) Option {
	return func(o *Options) { o.Start = x }
}

// WithWorkers bounds the ProjectAll worker pool. Panics on n ≤ 0.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic(panicWorkers)
	}

	return func(o *Options) { o.Workers = n }
}

func gather(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
