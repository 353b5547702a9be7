// SPDX-License-Identifier: MIT

// Package model defines the contract every fitted model satisfies and the
// observation set it is fitted against.
//
// 🚀 What is a model here?
//
//	A model with parameter vector p describes a manifold in coordinate space:
//	the set of points consistent with p. The fitting engine never needs a
//	closed form y = f(x); it only asks two questions of a model:
//	  • Evaluate: give me a point on the manifold consistent with this guess
//	  • Normal: which way is "off the manifold" at this point?
//
// The engine owns the parameter vector and passes it into every call, so a
// Model implementation is a pure function of (params, point, flag) and can
// be shared between goroutines.
//
// ✨ What lives here:
//   - Model, Flag: the capability interface and per-observation mode tag
//   - Bound: inclusive per-parameter interval used by the driver
//   - Observations: N×M data, N covariances, flags and inner-solve tolerances
//   - Reference models: Polynomial (explicit graph y = Σ pₖxᵏ), Circle
//     (implicit), ByFlag (dispatch one parameter vector to several manifolds)
//
// ⚙️ Usage:
//
//	obs, err := model.NewObservations(data, covs, nil, model.Uniform(len(data), 1e-8))
//	line := model.NewPolynomial(1) // params: [slope, intercept]
package model
