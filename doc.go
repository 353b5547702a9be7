// SPDX-License-Identifier: MIT

// Package lvfit fits implicit models to measurements in which every
// coordinate carries its own, possibly correlated, uncertainty.
//
// What is lvfit?
//
//	An errors-in-all-variables (orthogonal-distance) nonlinear least-squares
//	engine:
//		• Manifold projection: closest model point to each observation under
//		  its full covariance metric
//		• Bounded Gauss-Newton with a finite-difference Jacobian and optional
//		  Levenberg-Marquardt damping
//		• Parameter covariance, confidence and prediction bands
//		• Extreme-value outlier screening of weighted residuals
//
// Models are described by two functions only: a point on the manifold near a
// guess, and the normal there. Polynomials, circles, explicit y = F(x) graphs
// and flag-dispatched combinations ship in package model.
//
// Everything is organized under these subpackages:
//
//	matrix/    : validators, quadratic forms, rank-revealing least squares
//	model/     : Model contract, bounds, observations, reference models
//	projector/ : per-observation closest-point solve, bounded worker pool
//	jacobian/  : bounded central differences of the residual vector
//	fit/       : the Gauss-Newton driver, Result, estimate formatting
//	inference/ : bands, extreme values, residual summary
//	cmd/lvfit/ : command-line front end reading YAML problem files
//
// Quick example (Pearson's data with York's weights):
//
//	res, err := fit.Fit(fit.Problem{
//		Model:        model.NewPolynomial(1),
//		Observations: obs,
//		Start:        []float64{-0.5, 5.5},
//		StepSizes:    []float64{1e-3, 1e-3},
//	})
//	// res.WSS ≈ 11.8663531941
//
//	go get github.com/katalvlaran/lvfit
package lvfit
