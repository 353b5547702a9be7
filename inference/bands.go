// SPDX-License-Identifier: MIT

package inference

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvfit/fit"
	"github.com/katalvlaran/lvfit/jacobian"
	"github.com/katalvlaran/lvfit/matrix"
	"github.com/katalvlaran/lvfit/model"
)

// Bands evaluates prop on the fitted manifold at every query point and
// returns confidence and prediction intervals at the given level.
//
// Each query is handed to m.Evaluate as the guess, with flag, so its
// independent coordinates select where on the manifold the property is read.
// The gradient ∂prop/∂params reuses the fit's step sizes and bounds.
//
// The prediction half-width is c·√(gᵀΣg + s²) with s² = WSS/DoF. Weighted
// residuals are measured in units of each observation's σ along the normal,
// so s² is dimensionless: the prediction term is in units of σ, not in the
// units of prop. The two only agree when prop is a coordinate whose
// observations have unit σ; for anything else read PredictionHalfWidth as
// the confidence band widened by a dimensionless scatter term.
//
// Errors: ErrNilInput, ErrEmpty, ErrBadLevel, ErrDimensionMismatch,
// ErrNoDegreesOfFreedom, or a model/property error tagged with the query index.
//
// Complexity: (2K+1) model evaluations and O(K²) per query point.
func Bands(res *fit.Result, m model.Model, queries [][]float64, flag model.Flag, prop Property, level float64, opts ...Option) (*BandSet, error) {
	o := gather(opts)
	if res == nil || m == nil || prop == nil || res.Covariance == nil {
		return nil, ErrNilInput
	}
	if len(queries) == 0 {
		return nil, ErrEmpty
	}
	if !(level > 0 && level < 1) {
		return nil, ErrBadLevel
	}
	k := len(res.Params)
	if m.NumParams() != k || len(res.StepSizes) != k {
		return nil, ErrDimensionMismatch
	}
	if res.DoF <= 0 {
		return nil, ErrNoDegreesOfFreedom
	}

	n := len(queries)
	out := &BandSet{
		Values:              make([]float64, n),
		Lower:               make([]float64, n),
		Upper:               make([]float64, n),
		ConfidenceHalfWidth: make([]float64, n),
		PredictionHalfWidth: make([]float64, n),
		PredictionLower:     make([]float64, n),
		PredictionUpper:     make([]float64, n),
		Critical:            o.Distribution.Critical(level, k, res.DoF),
		Trusted:             res.Converged,
	}

	for i, q := range queries {
		value := func(params []float64) ([]float64, error) {
			x, err := m.Evaluate(params, q, flag)
			if err != nil {
				return nil, err
			}
			v, err := prop(params, x)
			if err != nil {
				return nil, err
			}

			return []float64{v}, nil
		}

		v, err := value(res.Params)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		grad, err := jacobian.Central(value, res.Params, res.StepSizes, res.Bounds)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		variance, err := matrix.QuadForm(res.Covariance, grad.RawRowView(0))
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		variance = math.Max(variance, 0)

		conf := out.Critical * math.Sqrt(variance)
		pred := out.Critical * math.Sqrt(variance+res.ResidualVariance)
		out.Values[i] = v[0]
		out.ConfidenceHalfWidth[i] = conf
		out.PredictionHalfWidth[i] = pred
		out.Lower[i] = v[0] - conf
		out.Upper[i] = v[0] + conf
		out.PredictionLower[i] = v[0] - pred
		out.PredictionUpper[i] = v[0] + pred
	}

	return out, nil
}
