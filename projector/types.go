// SPDX-License-Identifier: MIT

package projector

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrDivergence indicates the inner Newton solve did not settle within its cap.
	ErrDivergence = errors.New("projector: projection did not converge")

	// ErrDegenerateVariance indicates nᵀCn ≤ 0 (or NaN) at the projected point.
	ErrDegenerateVariance = errors.New("projector: no variance along the manifold normal")

	// ErrZeroNormal indicates a zero-length or non-finite normal vector.
	ErrZeroNormal = errors.New("projector: zero or non-finite normal")

	// ErrDimensionMismatch indicates a model output or observation of the wrong length.
	ErrDimensionMismatch = errors.New("projector: dimension mismatch")
)

// DivergenceError reports which observation failed to project.
// Index is -1 for a standalone Project call.
type DivergenceError struct {
	Index      int
	Iterations int
	Change     float64 // last ‖x − x_prev‖
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("%v: observation %d after %d iterations (last change %g)",
		ErrDivergence, e.Index, e.Iterations, e.Change)
}

func (e *DivergenceError) Unwrap() error { return ErrDivergence }

// Projection is the converged closest point of one observation.
type Projection struct {
	Point      []float64 // x on the manifold
	Residual   []float64 // d − x
	Normal     []float64 // unit normal at x
	Sigma      float64   // √(nᵀCn)
	Weighted   float64   // n·(d − x) / Sigma
	Iterations int
}
