// SPDX-License-Identifier: MIT

package inference

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat/distuv"
)

// ExtremeValues flags weighted residuals that are more extreme than the
// largest of N standard-normal draws would be at the given confidence level.
//
// For each residual p = 2·Φc(|w|) is the two-sided tail probability and
// 1 − (1 − p)ᴺ the probability that at least one of N draws is as extreme.
// Residuals whose adjusted probability is below 1 − level are returned,
// most extreme first.
//
// Errors: ErrEmpty, ErrNonFinite, ErrBadLevel.
// Complexity: O(N log N).
func ExtremeValues(weighted []float64, level float64) (*Extremes, error) {
	n := len(weighted)
	if n == 0 {
		return nil, ErrEmpty
	}
	if !(level > 0 && level < 1) {
		return nil, ErrBadLevel
	}
	for _, w := range weighted {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, ErrNonFinite
		}
	}

	nf := float64(n)
	out := &Extremes{Adjusted: make([]float64, n)}
	for i, w := range weighted {
		p := math.Min(1, 2*distuv.UnitNormal.Survival(math.Abs(w)))
		out.Adjusted[i] = -math.Expm1(nf * math.Log1p(-p))
	}

	// |w| at which the adjusted probability equals 1 − level.
	pLimit := -math.Expm1(math.Log(level) / nf)
	out.Limit = distuv.UnitNormal.Quantile(1 - pLimit/2)

	alpha := 1 - level
	for i, a := range out.Adjusted {
		if a < alpha {
			out.Indices = append(out.Indices, i)
		}
	}
	slices.SortStableFunc(out.Indices, func(a, b int) int {
		wa, wb := math.Abs(weighted[a]), math.Abs(weighted[b])
		switch {
		case wa > wb:
			return -1
		case wa < wb:
			return 1
		default:
			return 0
		}
	})
	out.Probabilities = make([]float64, len(out.Indices))
	for j, i := range out.Indices {
		out.Probabilities[j] = out.Adjusted[i]
	}

	return out, nil
}
