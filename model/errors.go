// SPDX-License-Identifier: MIT

package model

import "errors"

// Sentinel errors returned by observation validation and reference models.
var (
	// ErrEmpty indicates an observation set without rows.
	ErrEmpty = errors.New("model: no observations")

	// ErrDimensionMismatch indicates rows, covariances, flags or tolerances
	// whose sizes disagree with each other or with the model.
	ErrDimensionMismatch = errors.New("model: dimension mismatch")

	// ErrNonFinite indicates a NaN or ±Inf coordinate or tolerance.
	ErrNonFinite = errors.New("model: NaN or Inf in observations")

	// ErrBadTolerance indicates a negative inner-solve tolerance.
	ErrBadTolerance = errors.New("model: tolerance must be non-negative")

	// ErrBadBound indicates a bound with NaN ends or Lower > Upper.
	ErrBadBound = errors.New("model: invalid bound")

	// ErrBadParams indicates a parameter vector of the wrong length.
	ErrBadParams = errors.New("model: wrong number of parameters")

	// ErrUnknownFlag is returned by ByFlag for a flag with no registered manifold.
	ErrUnknownFlag = errors.New("model: unknown flag")

	// ErrDegenerate is returned when a model cannot produce a point or normal
	// (e.g. a guess exactly at the centre of a circle).
	ErrDegenerate = errors.New("model: degenerate geometry")
)
