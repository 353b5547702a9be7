// SPDX-License-Identifier: MIT

package fit

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvfit/model"
)

// Problem is everything Fit needs.
//
//   - Model:        the implicit manifold family, K = Model.NumParams().
//   - Observations: N validated rows (see model.NewObservations).
//   - Start:        length-K starting parameters, inside Bounds.
//   - StepSizes:    length-K finite-difference widths, also the scale of the
//     convergence test.
//   - Bounds:       length-K intervals, or nil for unbounded.
type Problem struct {
	Model        model.Model
	Observations *model.Observations
	Start        []float64
	StepSizes    []float64
	Bounds       []model.Bound
}

// State is the driver lifecycle stage.
type State int

const (
	Initialized State = iota
	Iterating
	Converged
	Failed
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is an immutable snapshot of a finished fit. All slices and matrices
// are owned by the Result.
type Result struct {
	Params            []float64
	Covariance        *mat.SymDense // K×K, (JᵀJ)⁻¹·s²
	WSS               float64       // Σ wᵢ²
	WeightedResiduals []float64     // length N
	DoF               int           // N − K
	Flags             []model.Flag

	Converged  bool
	Iterations int
	State      State

	Projected        [][]float64 // closest manifold point per observation
	Sigmas           []float64   // √(nᵀCn) per observation
	Jacobian         *mat.Dense  // N×K at Params
	ResidualVariance float64     // s² = WSS / DoF
	StepSizes        []float64
	Bounds           []model.Bound
}

// NumParams returns K.
func (r *Result) NumParams() int { return len(r.Params) }

// StdErrors returns √diag(Covariance).
func (r *Result) StdErrors() []float64 {
	out := make([]float64, len(r.Params))
	if r.Covariance == nil {
		return out
	}
	for i := range out {
		out[i] = math.Sqrt(r.Covariance.At(i, i))
	}

	return out
}

// Correlation returns the K×K correlation matrix Σᵢⱼ/(σᵢσⱼ). Entries with a
// zero standard error are left at zero, except the unit diagonal.
func (r *Result) Correlation() *mat.SymDense {
	k := len(r.Params)
	out := mat.NewSymDense(k, nil)
	if r.Covariance == nil {
		return out
	}
	se := r.StdErrors()
	for i := 0; i < k; i++ {
		out.SetSym(i, i, 1)
		for j := i + 1; j < k; j++ {
			if se[i] > 0 && se[j] > 0 {
				out.SetSym(i, j, r.Covariance.At(i, j)/(se[i]*se[j]))
			}
		}
	}

	return out
}
