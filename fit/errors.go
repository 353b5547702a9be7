// SPDX-License-Identifier: MIT

package fit

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNilModel indicates a Problem without a model or observations.
	ErrNilModel = errors.New("fit: nil model or observations")

	// ErrDimensionMismatch indicates Start, StepSizes, Bounds or per-row observation slices of the wrong length.
	ErrDimensionMismatch = errors.New("fit: dimension mismatch")

	// ErrUnderdetermined indicates N ≤ K: no degrees of freedom remain.
	ErrUnderdetermined = errors.New("fit: fewer observations than parameters plus one")

	// ErrBadStepSize indicates a step size that is not finite and positive.
	ErrBadStepSize = errors.New("fit: step sizes must be finite and positive")

	// ErrStartOutOfBounds indicates a starting vector outside its bounds.
	ErrStartOutOfBounds = errors.New("fit: start lies outside the bounds")

	// ErrSingularJacobian indicates the free columns of J are linearly dependent.
	ErrSingularJacobian = errors.New("fit: singular Jacobian")

	// ErrNotConverged indicates the driver reached its iteration cap.
	ErrNotConverged = errors.New("fit: did not converge")
)

// SingularJacobianError carries the numerical rank found and the number of
// columns that were solved for.
type SingularJacobianError struct {
	Rank   int
	Params int
}

func (e *SingularJacobianError) Error() string {
	return fmt.Sprintf("%v: rank %d of %d parameters", ErrSingularJacobian, e.Rank, e.Params)
}

func (e *SingularJacobianError) Unwrap() error { return ErrSingularJacobian }

// NotConvergedError reports the last scaled parameter change when the
// iteration cap was hit. Cause is set when the covariance could not be formed
// at the last estimate either; the partial Result then has no Covariance.
type NotConvergedError struct {
	Iterations int
	Change     float64
	Cause      error
}

func (e *NotConvergedError) Error() string {
	msg := fmt.Sprintf("%v after %d iterations (last change %g)", ErrNotConverged, e.Iterations, e.Change)
	if e.Cause != nil {
		msg += fmt.Sprintf("; no covariance: %v", e.Cause)
	}

	return msg
}

// Unwrap exposes ErrNotConverged and, when present, Cause to errors.Is/As.
func (e *NotConvergedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrNotConverged}
	}

	return []error{ErrNotConverged, e.Cause}
}
