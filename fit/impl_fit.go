// SPDX-License-Identifier: MIT

package fit

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvfit/jacobian"
	"github.com/katalvlaran/lvfit/matrix"
	"github.com/katalvlaran/lvfit/model"
	"github.com/katalvlaran/lvfit/projector"
)

// tinyStep is the step size below which the convergence test falls back to
// the absolute change of a parameter.
const tinyStep = 1e-300

// Fit runs the bounded Gauss-Newton iteration described in the package doc.
//
// Returns:
//   - (*Result, nil): converged.
//   - (*Result, *NotConvergedError): iteration cap hit; Result holds the
//     last parameters, Converged=false, State=Failed. When the covariance
//     cannot be formed there either, Covariance and Jacobian are nil and the
//     error's Cause says why.
//   - (nil, error): validation, projection or
//     singular-Jacobian failure.
//
// Complexity per iteration: (2K+1)·N projections plus O(N·K²) for the solve.
func Fit(problem Problem, opts ...Option) (*Result, error) {
	o := gather(opts)
	if err := problem.validate(); err != nil {
		return nil, err
	}

	d := &driver{
		problem: problem,
		opts:    o,
		bounds:  problem.Bounds,
		state:   Initialized,
	}
	if d.bounds == nil {
		d.bounds = model.UnboundedAll(len(problem.Start))
	}
	d.residuals = jacobian.Residuals(problem.Model, problem.Observations, o.projectorOptions()...)

	return d.run()
}

// validate checks shapes in the order callers are most likely to get wrong;
// N ≤ K is rejected before anything is projected.
func (p Problem) validate() error {
	if p.Model == nil || p.Observations == nil {
		return ErrNilModel
	}
	if o := p.Observations; len(o.Covariances) != o.Len() || len(o.Flags) != o.Len() || len(o.Tolerances) != o.Len() {
		return fmt.Errorf("%w: %d rows but %d covariances, %d flags, %d tolerances",
			ErrDimensionMismatch, o.Len(), len(o.Covariances), len(o.Flags), len(o.Tolerances))
	}
	k := p.Model.NumParams()
	if len(p.Start) != k || len(p.StepSizes) != k {
		return ErrDimensionMismatch
	}
	if p.Bounds != nil && len(p.Bounds) != k {
		return ErrDimensionMismatch
	}
	if p.Observations.Len() <= k {
		return fmt.Errorf("%w: N=%d, K=%d", ErrUnderdetermined, p.Observations.Len(), k)
	}
	for _, h := range p.StepSizes {
		if !(h > 0) || math.IsInf(h, 1) {
			return ErrBadStepSize
		}
	}
	if err := matrix.ValidateFinite(p.Start); err != nil {
		return fmt.Errorf("fit: start: %w", err)
	}
	for i, b := range p.Bounds {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("fit: bound %d: %w", i, err)
		}
		if !b.Contains(p.Start[i]) {
			return fmt.Errorf("%w: parameter %d = %g not in [%g, %g]",
				ErrStartOutOfBounds, i, p.Start[i], b.Lower, b.Upper)
		}
	}

	return nil
}

type driver struct {
	problem   Problem
	opts      Options
	bounds    []model.Bound
	residuals jacobian.Func
	state     State
}

func (d *driver) run() (*Result, error) {
	var (
		params    = slices.Clone(d.problem.Start)
		change    = math.Inf(1)
		converged bool
		it        int
	)
	d.state = Iterating
	for it = 1; it <= d.opts.MaxIterations; it++ {
		w, err := d.residuals(params)
		if err != nil {
			d.state = Failed
			return nil, err
		}
		jac, err := jacobian.Central(d.residuals, params, d.problem.StepSizes, d.bounds)
		if err != nil {
			d.state = Failed
			return nil, err
		}
		delta, err := d.step(params, w, jac)
		if err != nil {
			d.state = Failed
			return nil, err
		}

		next := make([]float64, len(params))
		change = 0
		for k := range params {
			next[k] = d.bounds[k].Clip(params[k] + delta[k])
			applied := next[k] - params[k]
			if h := d.problem.StepSizes[k]; h >= tinyStep {
				applied /= h
			}
			change = math.Max(change, math.Abs(applied))
		}
		if d.opts.Logger != nil {
			d.opts.Logger.Printf("iteration %d: wss=%.10g change=%.3g params=%v",
				it, floats.Dot(w, w), change, next)
		}
		params = next

		if change < d.opts.ParamTolerance {
			converged = true
			break
		}
	}
	if !converged {
		it = d.opts.MaxIterations
	}

	res, err := d.finalize(params, it, converged)
	if err != nil {
		d.state = Failed
		if converged {
			return nil, err
		}

		return d.partial(params, it), &NotConvergedError{Iterations: it, Change: change, Cause: err}
	}
	if !converged {
		return res, &NotConvergedError{Iterations: it, Change: change}
	}

	return res, nil
}

// step solves J·Δp ≈ −w over the free parameters. A parameter sitting on a
// bound whose proposed step points outward is pinned (Δpₖ = 0) and the
// remaining columns are re-solved, so the others take the full step the
// reduced problem asks for.
func (d *driver) step(params, w []float64, jac *mat.Dense) ([]float64, error) {
	k := len(params)
	free := make([]int, k)
	for i := range free {
		free[i] = i
	}
	rhs := slices.Clone(w)
	floats.Scale(-1, rhs)

	delta := make([]float64, k)
	for len(free) > 0 {
		sol, err := d.solve(jac, rhs, free)
		if err != nil {
			return nil, err
		}

		kept := make([]int, 0, len(free))
		for j, col := range free {
			b := d.bounds[col]
			outward := (params[col] <= b.Lower && sol[j] < 0) || (params[col] >= b.Upper && sol[j] > 0)
			if !outward {
				kept = append(kept, col)
			}
		}
		if len(kept) == len(free) {
			for j, col := range free {
				delta[col] = sol[j]
			}
			break
		}
		free = kept
	}

	return delta, nil
}

// solve is the column-scaled least-squares solve of the columns in free,
// augmented with √λ·‖Jₖ‖ rows when damping is on.
func (d *driver) solve(jac *mat.Dense, rhs []float64, free []int) ([]float64, error) {
	n, _ := jac.Dims()
	f := len(free)
	rows := n
	if d.opts.Damping > 0 {
		rows += f
	}

	a := mat.NewDense(rows, f, nil)
	b := make([]float64, rows)
	copy(b, rhs)
	var col []float64
	for j, c := range free {
		col = mat.Col(col, c, jac)
		for i, v := range col {
			a.Set(i, j, v)
		}
		if d.opts.Damping > 0 {
			a.Set(n+j, j, math.Sqrt(d.opts.Damping)*floats.Norm(col, 2))
		}
	}

	sol, err := matrix.LeastSquares(a, b, matrix.WithRankTolerance(d.opts.RankTolerance))
	if err != nil {
		return nil, d.singular(err, f)
	}

	return sol, nil
}

// singular converts a matrix rank failure into *SingularJacobianError.
func (d *driver) singular(err error, cols int) error {
	var re *matrix.RankError
	if errors.As(err, &re) {
		return &SingularJacobianError{Rank: re.Rank, Params: cols}
	}

	return err
}

// partial keeps the last estimate of a fit that stopped at its iteration cap
// and whose covariance could not be formed. Residuals are filled in when the
// projections still succeed at params.
func (d *driver) partial(params []float64, iterations int) *Result {
	obs := d.problem.Observations
	res := &Result{
		Params:     slices.Clone(params),
		DoF:        obs.Len() - len(params),
		Flags:      slices.Clone(obs.Flags),
		Iterations: iterations,
		State:      Failed,
		StepSizes:  slices.Clone(d.problem.StepSizes),
		Bounds:     slices.Clone(d.bounds),
	}
	ps, err := projector.ProjectAll(d.problem.Model, params, obs, d.opts.projectorOptions()...)
	if err != nil {
		return res
	}
	res.WeightedResiduals = projector.Weighted(ps)
	res.WSS = floats.Dot(res.WeightedResiduals, res.WeightedResiduals)
	res.ResidualVariance = res.WSS / float64(res.DoF)
	res.Projected = make([][]float64, len(ps))
	res.Sigmas = make([]float64, len(ps))
	for i, p := range ps {
		res.Projected[i] = p.Point
		res.Sigmas[i] = p.Sigma
	}

	return res
}

// finalize re-projects at params, rebuilds J there and forms the covariance.
func (d *driver) finalize(params []float64, iterations int, converged bool) (*Result, error) {
	obs := d.problem.Observations
	ps, err := projector.ProjectAll(d.problem.Model, params, obs, d.opts.projectorOptions()...)
	if err != nil {
		return nil, err
	}
	w := projector.Weighted(ps)
	jac, err := jacobian.Central(d.residuals, params, d.problem.StepSizes, d.bounds)
	if err != nil {
		return nil, err
	}

	inv, err := matrix.NormalInverse(jac, matrix.WithRankTolerance(d.opts.RankTolerance))
	if err != nil {
		return nil, d.singular(err, len(params))
	}

	var (
		k   = len(params)
		dof = obs.Len() - k
		wss = floats.Dot(w, w)
		s2  = wss / float64(dof)
	)
	inv.ScaleSym(s2, inv)

	res := &Result{
		Params:            slices.Clone(params),
		Covariance:        inv,
		WSS:               wss,
		WeightedResiduals: w,
		DoF:               dof,
		Flags:             slices.Clone(obs.Flags),
		Converged:         converged,
		Iterations:        iterations,
		Projected:         make([][]float64, len(ps)),
		Sigmas:            make([]float64, len(ps)),
		Jacobian:          jac,
		ResidualVariance:  s2,
		StepSizes:         slices.Clone(d.problem.StepSizes),
		Bounds:            slices.Clone(d.bounds),
	}
	for i, p := range ps {
		res.Projected[i] = p.Point
		res.Sigmas[i] = p.Sigma
	}
	d.state = Failed
	if converged {
		d.state = Converged
	}
	res.State = d.state

	return res, nil
}
