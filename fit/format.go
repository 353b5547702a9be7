// SPDX-License-Identifier: MIT

package fit

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Estimates holds display strings for a parameter vector, one entry per
// parameter. Values and Sigmas are mantissas to be read as ×10^Exponents.
type Estimates struct {
	Values    []string
	Sigmas    []string
	Exponents []string
}

// FormatEstimates rounds every parameter to the decimal place of the leading
// digit of its standard error, plus extraDecimals more.
//
// Each value is first written as mantissa×10^e with e = ⌊log₁₀|value|⌋
// (e = 0 for a zero value); the sigma uses the same exponent. With combine
// set, Values carry the uncertainty in units of the last digit, e.g.
// "1.235(12)"; Sigmas are filled either way.
//
// Errors: ErrDimensionMismatch when cov is not K×K.
func FormatEstimates(params []float64, cov mat.Symmetric, extraDecimals int, combine bool) (*Estimates, error) {
	k := len(params)
	if cov == nil || cov.SymmetricDim() != k {
		return nil, ErrDimensionMismatch
	}

	out := &Estimates{
		Values:    make([]string, k),
		Sigmas:    make([]string, k),
		Exponents: make([]string, k),
	}
	for i, v := range params {
		sigma := math.Sqrt(math.Max(cov.At(i, i), 0))

		exp := 0
		if v != 0 && !math.IsInf(v, 0) && !math.IsNaN(v) {
			exp = int(math.Floor(math.Log10(math.Abs(v))))
		}
		scale := math.Pow(10, float64(exp))
		mv, ms := v/scale, sigma/scale

		places := extraDecimals
		if ms > 0 {
			places += max(0, -int(math.Floor(math.Log10(ms))))
		}
		places = max(places, 0)

		out.Values[i] = strconv.FormatFloat(mv, 'f', places, 64)
		out.Sigmas[i] = strconv.FormatFloat(ms, 'f', places, 64)
		out.Exponents[i] = strconv.Itoa(exp)
		if combine {
			digits := math.Round(ms * math.Pow(10, float64(places)))
			out.Values[i] += "(" + strconv.FormatFloat(digits, 'f', 0, 64) + ")"
		}
	}

	return out, nil
}
