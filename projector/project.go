// SPDX-License-Identifier: MIT

package projector

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvfit/matrix"
	"github.com/katalvlaran/lvfit/model"
)

// Project finds the manifold point closest to obs under the metric cov⁻¹.
//
// Inputs:
//   - m, params: the model and the parameter vector to evaluate it at.
//   - obs, cov:  one observation and its M×M covariance.
//   - flag:      evaluation mode of this observation.
//   - tol:       stop when successive manifold points move by ≤ tol.
//
// Returns the converged Projection, or *DivergenceError (Index −1) when
// MaxIterations steps did not settle. Model errors are returned unchanged.
//
// Complexity: O(iterations · (M² + model cost)).
func Project(m model.Model, params, obs []float64, cov mat.Symmetric, flag model.Flag, tol float64, opts ...Option) (Projection, error) {
	o := gather(opts)
	dim := len(obs)
	if cov == nil || cov.SymmetricDim() != dim {
		return Projection{}, ErrDimensionMismatch
	}

	est := slices.Clone(obs)
	if o.Start != nil {
		if len(o.Start) != dim {
			return Projection{}, ErrDimensionMismatch
		}
		est = slices.Clone(o.Start)
	}
	prev := slices.Clone(est)
	resid := make([]float64, dim)

	var change float64
	for it := 1; it <= o.MaxIterations; it++ {
		x, err := m.Evaluate(params, est, flag)
		if err != nil {
			return Projection{}, err
		}
		if len(x) != dim {
			return Projection{}, ErrDimensionMismatch
		}
		n, err := unitNormal(m, params, x, flag, dim)
		if err != nil {
			return Projection{}, err
		}
		variance, err := matrix.QuadForm(cov, n)
		if err != nil {
			return Projection{}, err
		}
		if !(variance > 0) || math.IsInf(variance, 0) {
			return Projection{}, ErrDegenerateVariance
		}

		floats.SubTo(resid, obs, x)
		dist := floats.Dot(n, resid)
		change = floats.Distance(x, prev, 2)
		if change <= tol {
			sigma := math.Sqrt(variance)
			return Projection{
				Point:      x,
				Residual:   slices.Clone(resid),
				Normal:     n,
				Sigma:      sigma,
				Weighted:   dist / sigma,
				Iterations: it,
			}, nil
		}

		// Closest point of the tangent plane at x: d − C·n·dist/var.
		cn, err := matrix.MulVec(cov, n)
		if err != nil {
			return Projection{}, err
		}
		copy(est, obs)
		floats.AddScaled(est, -dist/variance, cn)
		prev = x
	}

	return Projection{}, &DivergenceError{Index: -1, Iterations: o.MaxIterations, Change: change}
}

// unitNormal fetches the model normal at x and scales it to unit length.
func unitNormal(m model.Model, params, x []float64, flag model.Flag, dim int) ([]float64, error) {
	n, err := m.Normal(params, x, flag)
	if err != nil {
		return nil, err
	}
	if len(n) != dim {
		return nil, ErrDimensionMismatch
	}
	norm := floats.Norm(n, 2)
	if !(norm > 0) || math.IsInf(norm, 0) {
		return nil, ErrZeroNormal
	}
	out := slices.Clone(n)
	floats.Scale(1/norm, out)

	return out, nil
}

// ProjectAll projects every observation at params.
//
// With WithWorkers(n > 1) the projections run on an errgroup limited to n
// goroutines; each result lands in its own slot and, when several rows fail,
// the lowest failing index is reported, so the outcome never depends on
// scheduling. The model must be safe for concurrent use in that case.
//
// Observations whose Covariances, Flags or Tolerances do not have one entry
// per row give ErrDimensionMismatch. Errors are tagged with the observation index; *DivergenceError carries it
// in its Index field.
func ProjectAll(m model.Model, params []float64, obs *model.Observations, opts ...Option) ([]Projection, error) {
	o := gather(opts)
	n := obs.Len()
	if len(obs.Covariances) != n || len(obs.Flags) != n || len(obs.Tolerances) != n {
		return nil, ErrDimensionMismatch
	}
	out := make([]Projection, n)
	errs := make([]error, n)

	one := func(i int) {
		p, err := Project(m, params, obs.Data[i], obs.Covariances[i], obs.Flags[i], obs.Tolerances[i],
			WithMaxIterations(o.MaxIterations))
		if err != nil {
			errs[i] = indexed(i, err)
			return
		}
		out[i] = p
	}

	if o.Workers <= 1 {
		for i := 0; i < n; i++ {
			if one(i); errs[i] != nil {
				return nil, errs[i]
			}
		}

		return out, nil
	}

	var g errgroup.Group
	g.SetLimit(o.Workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			one(i)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Weighted extracts the weighted residuals of ps.
func Weighted(ps []Projection) []float64 {
	w := make([]float64, len(ps))
	for i, p := range ps {
		w[i] = p.Weighted
	}

	return w
}

func indexed(i int, err error) error {
	var de *DivergenceError
	if errors.As(err, &de) {
		cp := *de
		cp.Index = i
		return &cp
	}

	return fmt.Errorf("observation %d: %w", i, err)
}
