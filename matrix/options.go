// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric policy used by
// validators and factorizations. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that applies defaults then setters.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the tolerance for symmetry checks, relative to the
	// largest absolute entry of the matrix under test.
	DefaultEpsilon = 1e-9

	// DefaultRankTolerance is the relative singular-value cutoff: a singular
	// value s_i counts toward the rank when s_i > tol * s_max. Columns are
	// scaled to unit norm before factorization, so this is scale-free.
	DefaultRankTolerance = 1e-10
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid       = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicRankToleranceInvalid = "matrix: WithRankTolerance: tol must be finite, in [0, 1)"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	eps   float64 // DefaultEpsilon
	rcond float64 // DefaultRankTolerance
}

// WithEpsilon sets the relative tolerance used by symmetry checks.
// Panics when eps is NaN, ±Inf or negative.
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithRankTolerance sets the relative singular-value cutoff used to decide
// the numerical rank in LeastSquares and NormalInverse.
// Panics when tol is not finite or outside [0, 1).
func WithRankTolerance(tol float64) Option {
	if isNonFinite(tol) || tol < 0 || tol >= 1 {
		panic(panicRankToleranceInvalid)
	}

	return func(o *Options) { o.rcond = tol }
}

// gatherOptions resolves defaults and then applies setters left to right.
func gatherOptions(opts ...Option) Options {
	o := Options{eps: DefaultEpsilon, rcond: DefaultRankTolerance}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// isNonFinite reports whether v is NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
