// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for vector and covariance checks.
//  - Keep kernels and callers minimal by delegating shape/nil/symmetry checks here.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Shape → Finite → Structure).

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateVecLen ensures x is non-nil and has exactly n entries.
// Time: O(1). Space: O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite ensures every entry of x is finite.
// Time: O(n). Space: O(1).
func ValidateFinite(x []float64) error {
	for _, v := range x {
		if isNonFinite(v) {
			return validatorErrorf("ValidateFinite", ErrNaNInf)
		}
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square.
//
// Errors: ErrNilMatrix if nil, ErrNonSquare if Rows != Cols.
// Complexity: O(1).
func ValidateSquare(m mat.Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateSquare", ErrNilMatrix)
	}
	r, c := m.Dims()
	if r != c {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateCovariance – Composite: Square → Order(n) → Finite → Symmetric → Diagonal ≥ 0.
//
// Inputs:
//   - c: candidate covariance matrix.
//   - n: required order (number of coordinates).
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrNaNInf,
// ErrAsymmetry, ErrNegativeVariance (in that priority).
//
// Notes:
//   - Positive semi-definiteness beyond the diagonal is not checked; an
//     indefinite covariance surfaces later as a non-positive variance along a
//     normal direction, which the projector reports per observation.
//
// Complexity: O(n²).
func ValidateCovariance(c mat.Matrix, n int, opts ...Option) error {
	if err := ValidateSquare(c); err != nil {
		return validatorErrorf("ValidateCovariance", err)
	}
	r, _ := c.Dims()
	if r != n {
		return validatorErrorf("ValidateCovariance", ErrDimensionMismatch)
	}

	o := gatherOptions(opts...)

	var (
		i, j     int
		v, maxAb float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v = c.At(i, j)
			if isNonFinite(v) {
				return validatorErrorf("ValidateCovariance", ErrNaNInf)
			}
			maxAb = math.Max(maxAb, math.Abs(v))
		}
	}

	// Symmetry relative to the largest entry keeps the check scale-free.
	tol := o.eps * maxAb
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if math.Abs(c.At(i, j)-c.At(j, i)) > tol {
				return validatorErrorf("ValidateCovariance", ErrAsymmetry)
			}
		}
	}

	for i = 0; i < n; i++ {
		if c.At(i, i) < 0 {
			return validatorErrorf("ValidateCovariance", ErrNegativeVariance)
		}
	}

	return nil
}
