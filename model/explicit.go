// SPDX-License-Identifier: MIT

package model

import "math"

// Explicit is the graph of a scalar function of the first M−1 coordinates:
// the last coordinate equals F(params, x[:M−1]). This is the shape of most
// closed-form equations of state, e.g. V(P, T).
//
// Grad, when set, returns ∂F/∂x for the independent coordinates; otherwise
// the gradient is taken by central differences with relative step Step
// (DefaultExplicitStep when zero).
type Explicit struct {
	K    int
	Dim  int
	F    func(params, x []float64) (float64, error)
	Grad func(params, x []float64) ([]float64, error)
	Step float64
}

// DefaultExplicitStep is the relative finite-difference step for Explicit
// models without an analytic gradient.
const DefaultExplicitStep = 1e-6

// NumParams returns K.
func (e *Explicit) NumParams() int { return e.K }

// Evaluate keeps the independent coordinates of guess and recomputes the last.
func (e *Explicit) Evaluate(params, guess []float64, _ Flag) ([]float64, error) {
	if err := e.check(params, guess); err != nil {
		return nil, err
	}
	out := make([]float64, e.Dim)
	copy(out, guess[:e.Dim-1])
	y, err := e.F(params, out[:e.Dim-1])
	if err != nil {
		return nil, err
	}
	out[e.Dim-1] = y

	return out, nil
}

// Normal returns (∇F, −1).
func (e *Explicit) Normal(params, point []float64, _ Flag) ([]float64, error) {
	if err := e.check(params, point); err != nil {
		return nil, err
	}
	x := point[:e.Dim-1]

	var (
		g   []float64
		err error
	)
	if e.Grad != nil {
		g, err = e.Grad(params, x)
	} else {
		g, err = e.numericGrad(params, x)
	}
	if err != nil {
		return nil, err
	}
	if len(g) != e.Dim-1 {
		return nil, ErrDimensionMismatch
	}

	n := make([]float64, e.Dim)
	copy(n, g)
	n[e.Dim-1] = -1

	return n, nil
}

func (e *Explicit) numericGrad(params, x []float64) ([]float64, error) {
	step := e.Step
	if step == 0 {
		step = DefaultExplicitStep
	}
	g := make([]float64, len(x))
	shifted := make([]float64, len(x))
	for i := range x {
		h := step * math.Max(math.Abs(x[i]), 1)
		copy(shifted, x)
		shifted[i] = x[i] + h
		hi, err := e.F(params, shifted)
		if err != nil {
			return nil, err
		}
		shifted[i] = x[i] - h
		lo, err := e.F(params, shifted)
		if err != nil {
			return nil, err
		}
		g[i] = (hi - lo) / (2 * h)
	}

	return g, nil
}

func (e *Explicit) check(params, point []float64) error {
	if len(params) != e.K {
		return ErrBadParams
	}
	if e.Dim < 2 || len(point) != e.Dim || e.F == nil {
		return ErrDimensionMismatch
	}

	return nil
}
