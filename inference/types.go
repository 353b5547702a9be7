// SPDX-License-Identifier: MIT

package inference

import "errors"

// Sentinel errors.
var (
	// ErrNilInput indicates a nil result, model or property function.
	ErrNilInput = errors.New("inference: nil input")

	// ErrEmpty indicates no query points or no residuals.
	ErrEmpty = errors.New("inference: empty input")

	// ErrBadLevel indicates a confidence level outside (0, 1).
	ErrBadLevel = errors.New("inference: confidence level must lie in (0, 1)")

	// ErrDimensionMismatch indicates a model whose parameter count differs from the fit.
	ErrDimensionMismatch = errors.New("inference: dimension mismatch")

	// ErrNoDegreesOfFreedom indicates a result with DoF ≤ 0.
	ErrNoDegreesOfFreedom = errors.New("inference: no degrees of freedom")

	// ErrNonFinite indicates a NaN or Inf residual.
	ErrNonFinite = errors.New("inference: NaN or Inf residual")
)

// Property extracts a scalar from a point on the fitted manifold, e.g. the
// y coordinate of a curve or a derived quantity of an equation of state.
type Property func(params, point []float64) (float64, error)

// Coordinate returns the Property reading coordinate i of the point.
func Coordinate(i int) Property {
	return func(_, point []float64) (float64, error) {
		if i < 0 || i >= len(point) {
			return 0, ErrDimensionMismatch
		}

		return point[i], nil
	}
}

// BandSet holds per-query-point values and interval half-widths.
// Lower/Upper bound the confidence band.
type BandSet struct {
	Values              []float64
	Lower               []float64
	Upper               []float64
	ConfidenceHalfWidth []float64
	PredictionHalfWidth []float64
	PredictionLower     []float64
	PredictionUpper     []float64

	Critical float64 // multiplier applied to the standard errors
	Trusted  bool    // false when the underlying fit did not converge
}

// Arrays returns the four aligned arrays values, lower, upper and
// prediction half-width.
func (b *BandSet) Arrays() [4][]float64 {
	return [4][]float64{b.Values, b.Lower, b.Upper, b.PredictionHalfWidth}
}

// Extremes is the outcome of the extreme-value test.
//
//   - Adjusted:      per-residual probability that the most extreme of N
//     standard-normal draws is at least as large.
//   - Indices:       outliers, by descending |w|.
//   - Probabilities: Adjusted at Indices.
//   - Limit:         |w| above which a residual is an outlier.
type Extremes struct {
	Adjusted      []float64
	Indices       []int
	Probabilities []float64
	Limit         float64
}

// Summary describes the distribution of weighted residuals.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Median float64
	Q25    float64
	Q75    float64
	Min    float64
	Max    float64
	RMS    float64
	MaxAbs float64
}
