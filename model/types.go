// SPDX-License-Identifier: MIT

package model

import "math"

// Flag selects the evaluation mode applied to one observation, e.g. which
// measured quantity a row of data probes. The empty flag is the default mode.
type Flag string

// Model is the capability set the fitting engine consumes.
//
// Evaluate returns a point lying exactly on the manifold for params,
// consistent with the fixed/free coordinate selection encoded by flag. The
// engine calls it with its current estimate of the closest point.
//
// Normal returns a vector normal to the manifold at point, in observation
// coordinates. It need not be unit length; the engine normalises it.
//
// Implementations must not retain or modify the slices they are given.
type Model interface {
	NumParams() int
	Evaluate(params, guess []float64, flag Flag) ([]float64, error)
	Normal(params, point []float64, flag Flag) ([]float64, error)
}

// Bound is an inclusive interval [Lower, Upper] for one parameter.
// Infinite ends mean unbounded on that side.
type Bound struct {
	Lower float64
	Upper float64
}

// Unbounded returns (-Inf, +Inf).
func Unbounded() Bound {
	return Bound{Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// AtLeast returns [lower, +Inf).
func AtLeast(lower float64) Bound {
	return Bound{Lower: lower, Upper: math.Inf(1)}
}

// Between returns [lower, upper].
func Between(lower, upper float64) Bound {
	return Bound{Lower: lower, Upper: upper}
}

// Validate rejects NaN ends and Lower > Upper.
func (b Bound) Validate() error {
	if math.IsNaN(b.Lower) || math.IsNaN(b.Upper) || b.Lower > b.Upper {
		return ErrBadBound
	}

	return nil
}

// Contains reports whether v lies inside the closed interval.
func (b Bound) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

// Clip returns v moved onto the nearest end when it lies outside.
func (b Bound) Clip(v float64) float64 {
	if v < b.Lower {
		return b.Lower
	}
	if v > b.Upper {
		return b.Upper
	}

	return v
}

// UnboundedAll returns k unbounded intervals.
func UnboundedAll(k int) []Bound {
	out := make([]Bound, k)
	for i := range out {
		out[i] = Unbounded()
	}

	return out
}
