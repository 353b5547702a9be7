// SPDX-License-Identifier: MIT

// Package matrix is the linear-algebra plumbing shared by the fitting engine.
//
// The matrix package provides:
//
//   - Central validators for vectors and covariance matrices (shape, symmetry,
//     finiteness, non-negative variances).
//   - Quadratic and bilinear forms (nᵀCn, gᵀΣg) used to turn vector residuals
//     into scalar variances.
//   - A rank-revealing least-squares solver built on a column-scaled SVD, so a
//     Gauss-Newton step never silently accepts a pseudo-inverse of a
//     rank-deficient Jacobian.
//   - The scaled inverse of the normal matrix (JᵀJ)⁻¹ computed from the same
//     factorization, which is what parameter covariances are made of.
//
// Dense storage and factorizations come from gonum.org/v1/gonum/mat; this
// package adds the validation policy and the error surface on top.
//
// Errors are package sentinels (see errors.go) wrapped with an operation tag,
// e.g. "LeastSquares: matrix: rank deficient". Match them with errors.Is and
// recover rank details with errors.As on *RankError.
package matrix
