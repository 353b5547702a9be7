// SPDX-License-Identifier: MIT

package inference

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// Summarize describes the weighted residuals of a fit. For a well-specified
// model they scatter like standard-normal draws: mean near 0, standard
// deviation and RMS near 1.
//
// Errors: ErrEmpty, ErrNonFinite.
func Summarize(weighted []float64) (Summary, error) {
	if len(weighted) == 0 {
		return Summary{}, ErrEmpty
	}
	for _, w := range weighted {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return Summary{}, ErrNonFinite
		}
	}

	data := stats.Float64Data(weighted)
	s := Summary{N: len(weighted)}
	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return Summary{}, err
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return Summary{}, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return Summary{}, err
	}
	if s.Q25, err = stats.Percentile(data, 25); err != nil {
		return Summary{}, err
	}
	if s.Q75, err = stats.Percentile(data, 75); err != nil {
		return Summary{}, err
	}
	if s.Min, err = stats.Min(data); err != nil {
		return Summary{}, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return Summary{}, err
	}
	s.RMS = math.Sqrt(floats.Dot(weighted, weighted) / float64(len(weighted)))
	s.MaxAbs = math.Max(math.Abs(s.Min), math.Abs(s.Max))

	return s, nil
}
