// SPDX-License-Identifier: MIT

// Package inference turns a finished fit into statements about the model:
// confidence and prediction bands for any scalar property of the fitted
// manifold, an extreme-value test that flags observations too far from the
// manifold to be chance, and a plain summary of the weighted residuals.
//
// Bands propagate the parameter covariance through the finite-difference
// gradient of the property at each query point:
//
//	var  = gᵀ·Σ·g
//	conf = c·√var
//	pred = c·√(var + s²)
//
// where c is the critical value of the configured distribution (Student t
// with N−K degrees of freedom by default) and s² the residual variance.
//
// The extreme-value test treats weighted residuals as standard-normal draws
// and asks, for each one, how likely the most extreme of N such draws would
// be at least as large.
package inference
