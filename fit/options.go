// SPDX-License-Identifier: MIT

package fit

import (
	"log"
	"math"

	"github.com/katalvlaran/lvfit/matrix"
	"github.com/katalvlaran/lvfit/projector"
)

// Defaults.
const (
	// DefaultParamTolerance is the convergence threshold on max|Δpₖ/stepₖ|.
	// The test is relative to the step sizes, so it asks for |Δpₖ| below
	// 1e-5·stepₖ; steps must sit well above the noise of the residuals or the
	// iteration stalls at that noise and ends in ErrNotConverged.
	DefaultParamTolerance = 1e-5

	// DefaultMaxIterations caps the outer Gauss-Newton loop.
	DefaultMaxIterations = 100

	// DefaultProjectorIterations caps each inner projection.
	DefaultProjectorIterations = projector.DefaultMaxIterations

	// DefaultRankTolerance is the relative singular-value cutoff of the step solver.
	DefaultRankTolerance = matrix.DefaultRankTolerance
)

const (
	panicParamTolerance = "fit: WithParamTolerance: tol must be finite and > 0"
	panicMaxIterations  = "fit: WithMaxIterations: n must be > 0"
	panicProjIterations = "fit: WithProjectorIterations: n must be > 0"
	panicWorkers        = "fit: WithWorkers: n must be > 0"
	panicDamping        = "fit: WithDamping: lambda must be finite and ≥ 0"
	panicRankTolerance  = "fit: WithRankTolerance: tol must be finite, in [0, 1)"
)

// Options holds the effective driver configuration.
type Options struct {
	ParamTolerance      float64
	MaxIterations       int
	ProjectorIterations int
	Workers             int
	Damping             float64
	RankTolerance       float64
	Logger              *log.Logger
}

// Option is a functional setter for Options.
type Option func(*Options)

// DefaultOptions returns pure Gauss-Newton with serial projection and no logging.
func DefaultOptions() Options {
	return Options{
		ParamTolerance:      DefaultParamTolerance,
		MaxIterations:       DefaultMaxIterations,
		ProjectorIterations: DefaultProjectorIterations,
		Workers:             1,
		RankTolerance:       DefaultRankTolerance,
	}
}

// WithParamTolerance sets the convergence threshold. Panics unless tol > 0.
func WithParamTolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 1) {
		panic(panicParamTolerance)
	}

	return func(o *Options) { o.ParamTolerance = tol }
}

// WithMaxIterations sets the outer iteration cap. Panics on n ≤ 0.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterations)
	}

	return func(o *Options) { o.MaxIterations = n }
}

// WithProjectorIterations sets the inner projection cap. Panics on n ≤ 0.
func WithProjectorIterations(n int) Option {
	if n <= 0 {
		panic(panicProjIterations)
	}

	return func(o *Options) { o.ProjectorIterations = n }
}

// WithWorkers runs the N projections of each evaluation on up to n
// goroutines. The model must then be safe for concurrent use.
// Panics on n ≤ 0.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic(panicWorkers)
	}

	return func(o *Options) { o.Workers = n }
}

// WithDamping sets the Levenberg-Marquardt damping λ. Zero is pure
// Gauss-Newton. Panics on negative or non-finite λ.
func WithDamping(lambda float64) Option {
	if lambda < 0 || math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		panic(panicDamping)
	}

	return func(o *Options) { o.Damping = lambda }
}

// WithRankTolerance sets the relative singular-value cutoff below which the
// Jacobian is declared singular. Panics outside [0, 1).
func WithRankTolerance(tol float64) Option {
	if tol < 0 || tol >= 1 || math.IsNaN(tol) {
		panic(panicRankTolerance)
	}

	return func(o *Options) { o.RankTolerance = tol }
}

// WithLogger attaches a logger receiving one line per iteration.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
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

func (o Options) projectorOptions() []projector.Option {
	return []projector.Option{
		projector.WithMaxIterations(o.ProjectorIterations),
		projector.WithWorkers(o.Workers),
	}
}
