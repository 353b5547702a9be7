// SPDX-License-Identifier: MIT

// Package fit is the bounded Gauss-Newton driver of the orthogonal-distance
// least-squares engine.
//
// Given a model, a set of observations with full per-row covariances, a
// starting parameter vector, finite-difference step sizes and optional
// bounds, Fit repeats:
//
//  1. project every observation onto the current manifold (package projector)
//     to obtain the weighted residual vector w;
//  2. estimate J = ∂w/∂p by bounded central differences (package jacobian);
//  3. solve J·Δp ≈ −w with a rank-revealing, column-scaled least-squares
//     solver (package matrix), optionally Levenberg-Marquardt damped;
//  4. clip the proposal to the bounds, pinning parameters that sit on a bound
//     and push outward;
//
// until the largest step, measured in units of each parameter's step size,
// drops below the parameter tolerance. The parameter covariance (JᵀJ)⁻¹·s²,
// s² = WSS/(N−K), is computed once from J and w re-evaluated at the final
// parameters.
//
// Step sizes set both the finite-difference width and the unit of the
// convergence test. They have to be large enough that a step moves the
// residuals well past their noise: the inner projections stop at their own
// tolerances and a numeric model normal carries its own rounding, and a step
// below that noise floor leaves the iteration chasing noise.
//
// Lifecycle of a fit: Initialized → Iterating → {Converged, Failed}. A fit
// that hits its iteration cap returns its partial Result together with a
// *NotConvergedError, so callers can inspect where it stopped.
//
// Errors:
//   - ErrUnderdetermined: N ≤ K, reported before any projection.
//   - ErrSingularJacobian: rank-deficient Jacobian (*SingularJacobianError).
//   - ErrNotConverged: iteration cap reached (*NotConvergedError).
//   - projector.ErrDivergence, model errors: propagated from the inner solve.
//
// Logging is off by default; WithLogger attaches a stdlib *log.Logger that
// receives one line per iteration.
package fit
