// SPDX-License-Identifier: MIT

// Package jacobian estimates derivatives of a vector-valued function of the
// fit parameters by finite differences.
//
// The function is a pure map params → values (for the fitting engine, the
// weighted orthogonal residuals obtained by re-projecting every observation),
// so the estimator is ordinary function composition: no model state is
// mutated between evaluations.
//
// For parameter k with step hₖ the probes are pₖ ± hₖ/2. A probe that would
// leave the parameter's bound is replaced by the unperturbed value, which
// turns the central difference into a one-sided one on that side.
//
// Complexity: 2·K evaluations of f per Jacobian; for residual functions each
// evaluation is N inner projections.
package jacobian
