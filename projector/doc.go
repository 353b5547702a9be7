// SPDX-License-Identifier: MIT

// Package projector finds, for one observation, the point of a model
// manifold closest to it under the observation's covariance metric.
//
// Algorithm Outline:
//  1. est ← observation d (or a caller-supplied start).
//  2. x ← Evaluate(est): a manifold point consistent with the fixed coordinates.
//  3. n ← Normal(x) normalised; var ← nᵀCn; dist ← n·(d − x).
//  4. est ← d − C·n·dist/var, the Mahalanobis-closest point of the tangent plane at x.
//  5. Repeat 2–4 until ‖x − x_prev‖ ≤ tolerance or the iteration cap is hit.
//
// The weighted residual of the observation is dist/√var: the signed
// orthogonal distance measured in standard deviations along the normal.
//
// Errors:
//   - ErrDivergence: cap reached (*DivergenceError carries the row index).
//   - ErrDegenerateVariance: nᵀCn ≤ 0, no uncertainty along the normal.
//   - ErrZeroNormal: the model returned a zero or non-finite normal.
//   - ErrDimensionMismatch: model output of the wrong length.
//
// ProjectAll runs the N independent projections, optionally on a bounded
// worker pool; results are identical for any worker count.
package projector
