// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors and the structured
// rank error. Kernels MUST return these sentinels (optionally wrapped via
// matrixErrorf) and tests MUST check them via errors.Is.

package matrix

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape/dimension -> NaN/Inf -> structural (symmetry, variance) -> rank.

var (
	// ErrNilMatrix indicates that a nil matrix or vector argument was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrBadShape is returned when a requested or supplied shape is invalid
	// (zero rows/cols, fewer rows than columns for least squares).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrDimensionMismatch indicates incompatible dimensions between operands.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the configured epsilon.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNegativeVariance signals a negative diagonal entry in a covariance matrix.
	ErrNegativeVariance = errors.New("matrix: negative variance on covariance diagonal")

	// ErrRankDeficient is returned when a factorization finds fewer independent
	// columns than the problem requires.
	ErrRankDeficient = errors.New("matrix: rank deficient")

	// ErrFactorization is returned when the underlying SVD fails to converge.
	ErrFactorization = errors.New("matrix: factorization failed")
)

// RankError reports how many independent columns a factorization found.
// It unwraps to ErrRankDeficient.
type RankError struct {
	Rank int // numerical rank found
	Cols int // number of columns requested
}

// Deficiency is the number of missing independent directions.
func (e *RankError) Deficiency() int { return e.Cols - e.Rank }

func (e *RankError) Error() string {
	return fmt.Sprintf("%v: rank %d of %d (deficiency %d)", ErrRankDeficient, e.Rank, e.Cols, e.Deficiency())
}

func (e *RankError) Unwrap() error { return ErrRankDeficient }

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
