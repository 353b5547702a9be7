// SPDX-License-Identifier: MIT

package jacobian

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvfit/model"
	"github.com/katalvlaran/lvfit/projector"
)

var (
	// ErrDimensionMismatch indicates params, steps, bounds or outputs of inconsistent length.
	ErrDimensionMismatch = errors.New("jacobian: dimension mismatch")

	// ErrBadStep indicates a step size that is not finite and positive.
	ErrBadStep = errors.New("jacobian: step sizes must be finite and positive")

	// ErrEmptyOutput indicates a function returning no values.
	ErrEmptyOutput = errors.New("jacobian: function returned no values")
)

// Func is a pure vector-valued function of the parameter vector.
// It must not modify params.
type Func func(params []float64) ([]float64, error)

// Central returns the len(f(params)) × len(params) matrix of ∂fᵢ/∂pₖ.
//
// Inputs:
//   - f:      function to differentiate.
//   - params: evaluation point (left untouched).
//   - steps:  full probe width per parameter; probes sit at ±steps[k]/2.
//   - bounds: per-parameter intervals or nil for unbounded.
//
// A parameter whose both probes are clipped (zero-width bound) gets a zero
// column; rank-revealing solvers downstream report it.
//
// Errors: ErrDimensionMismatch, ErrBadStep, ErrEmptyOutput, or f's error
// tagged with the parameter index.
func Central(f Func, params, steps []float64, bounds []model.Bound) (*mat.Dense, error) {
	k := len(params)
	if len(steps) != k || (bounds != nil && len(bounds) != k) {
		return nil, ErrDimensionMismatch
	}
	for _, h := range steps {
		if !(h > 0) || math.IsInf(h, 0) {
			return nil, ErrBadStep
		}
	}

	var (
		jac   *mat.Dense
		n     int
		probe = slices.Clone(params)
	)
	for col := 0; col < k; col++ {
		lo := params[col] - steps[col]/2
		hi := params[col] + steps[col]/2
		if bounds != nil {
			if lo < bounds[col].Lower {
				lo = params[col]
			}
			if hi > bounds[col].Upper {
				hi = params[col]
			}
		}
		width := hi - lo

		probe[col] = hi
		fHi, err := f(probe)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", col, err)
		}
		probe[col] = lo
		fLo, err := f(probe)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", col, err)
		}
		probe[col] = params[col]

		if jac == nil {
			n = len(fHi)
			if n == 0 {
				return nil, ErrEmptyOutput
			}
			jac = mat.NewDense(n, k, nil)
		}
		if len(fHi) != n || len(fLo) != n {
			return nil, ErrDimensionMismatch
		}
		if width <= 0 {
			continue
		}
		for i := 0; i < n; i++ {
			jac.Set(i, col, (fHi[i]-fLo[i])/width)
		}
	}

	return jac, nil
}

// Residuals adapts the projector into a Func returning the weighted
// orthogonal residual of every observation at the given parameters.
func Residuals(m model.Model, obs *model.Observations, opts ...projector.Option) Func {
	return func(params []float64) ([]float64, error) {
		ps, err := projector.ProjectAll(m, params, obs, opts...)
		if err != nil {
			return nil, err
		}

		return projector.Weighted(ps), nil
	}
}
