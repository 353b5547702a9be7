// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvfit/matrix"
)

// Observations is the data a model is fitted against.
//
//   - Data: N rows of M observed coordinates.
//   - Covariances: N symmetric M×M matrices, the joint uncertainty of one row.
//   - Flags: N evaluation-mode tags (may be all empty).
//   - Tolerances: N inner-solve stopping thresholds, in coordinate units.
//
// Build it with NewObservations; the zero value is not usable.
type Observations struct {
	Data        [][]float64
	Covariances []*mat.SymDense
	Flags       []Flag
	Tolerances  []float64
}

// NewObservations validates and deep-copies its inputs.
//
// flags may be nil (all rows get the empty flag). tolerances must have one
// entry per row; see Uniform.
//
// Errors:
//   - ErrEmpty: no rows.
//   - ErrDimensionMismatch: ragged rows or mismatched slice lengths.
//   - ErrNonFinite: NaN/Inf coordinate or tolerance.
//   - ErrBadTolerance: negative tolerance.
//   - matrix sentinels: invalid covariance, wrapped with the row index.
func NewObservations(data [][]float64, covs []mat.Symmetric, flags []Flag, tolerances []float64) (*Observations, error) {
	n := len(data)
	if n == 0 {
		return nil, ErrEmpty
	}
	m := len(data[0])
	if m == 0 {
		return nil, ErrDimensionMismatch
	}
	if len(covs) != n || len(tolerances) != n {
		return nil, ErrDimensionMismatch
	}
	if flags != nil && len(flags) != n {
		return nil, ErrDimensionMismatch
	}

	obs := &Observations{
		Data:        make([][]float64, n),
		Covariances: make([]*mat.SymDense, n),
		Flags:       make([]Flag, n),
		Tolerances:  slices.Clone(tolerances),
	}
	for i, row := range data {
		if len(row) != m {
			return nil, fmt.Errorf("row %d: %w", i, ErrDimensionMismatch)
		}
		if err := matrix.ValidateFinite(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, ErrNonFinite)
		}
		if err := matrix.ValidateCovariance(covs[i], m); err != nil {
			return nil, fmt.Errorf("row %d covariance: %w", i, err)
		}
		tol := tolerances[i]
		if math.IsNaN(tol) || math.IsInf(tol, 0) {
			return nil, fmt.Errorf("row %d: %w", i, ErrNonFinite)
		}
		if tol < 0 {
			return nil, fmt.Errorf("row %d: %w", i, ErrBadTolerance)
		}

		obs.Data[i] = slices.Clone(row)
		c := mat.NewSymDense(m, nil)
		c.CopySym(covs[i])
		obs.Covariances[i] = c
		if flags != nil {
			obs.Flags[i] = flags[i]
		}
	}

	return obs, nil
}

// Len returns N, the number of observations.
func (o *Observations) Len() int { return len(o.Data) }

// Dim returns M, the number of coordinates per observation.
func (o *Observations) Dim() int {
	if len(o.Data) == 0 {
		return 0
	}

	return len(o.Data[0])
}

// DiagonalCovariance builds a diagonal covariance from per-coordinate
// standard deviations. A zero sigma marks an exactly known coordinate.
func DiagonalCovariance(sigmas ...float64) *mat.SymDense {
	c := mat.NewSymDense(len(sigmas), nil)
	for i, s := range sigmas {
		c.SetSym(i, i, s*s)
	}

	return c
}

// Uniform returns n copies of tol.
func Uniform(n int, tol float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = tol
	}

	return out
}
