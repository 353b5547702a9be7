// SPDX-License-Identifier: MIT

package fit_test

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvfit/fit"
	"github.com/katalvlaran/lvfit/model"
)

// ExampleFit fits a straight line to Pearson's data with York's weights,
// where both x and y carry uncertainty.
func ExampleFit() {
	x := []float64{0, 0.9, 1.8, 2.6, 3.3, 4.4, 5.2, 6.1, 6.5, 7.4}
	wx := []float64{1000, 1000, 500, 800, 200, 80, 60, 20, 1.8, 1}
	y := []float64{5.9, 5.4, 4.4, 4.6, 3.5, 3.7, 2.8, 2.8, 2.4, 1.5}
	wy := []float64{1, 1.8, 4, 8, 20, 20, 70, 70, 100, 500}

	data := make([][]float64, len(x))
	covs := make([]mat.Symmetric, len(x))
	for i := range x {
		data[i] = []float64{x[i], y[i]}
		covs[i] = model.DiagonalCovariance(1/math.Sqrt(wx[i]), 1/math.Sqrt(wy[i]))
	}
	obs, err := model.NewObservations(data, covs, nil, model.Uniform(len(x), 0.1))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := fit.Fit(fit.Problem{
		Model:        model.NewPolynomial(1),
		Observations: obs,
		Start:        []float64{-0.5, 5.5},
		StepSizes:    []float64{1e-3, 1e-3},
	}, fit.WithParamTolerance(1e-5))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("slope=%.4f intercept=%.4f\n", res.Params[0], res.Params[1])
	fmt.Printf("WSS=%.6f dof=%d\n", res.WSS, res.DoF)
	// Output:
	// slope=-0.4805 intercept=5.4799
	// WSS=11.866353 dof=8
}

// ExampleFormatEstimates prints a value with its uncertainty in the
// last-digit notation.
func ExampleFormatEstimates() {
	cov := mat.NewSymDense(1, []float64{0.0123 * 0.0123})
	s, _ := fit.FormatEstimates([]float64{1.2345678}, cov, 0, true)
	fmt.Println(s.Values[0], "e"+s.Exponents[0])
	// Output:
	// 1.23(1) e0
}
