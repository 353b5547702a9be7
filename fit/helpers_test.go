// SPDX-License-Identifier: MIT

package fit_test

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvfit/model"
)

// Pearson's data with York's weights: the classic errors-in-both-variables
// benchmark (weights are inverse variances).
var (
	pyX  = []float64{0, 0.9, 1.8, 2.6, 3.3, 4.4, 5.2, 6.1, 6.5, 7.4}
	pyWX = []float64{1000, 1000, 500, 800, 200, 80, 60, 20, 1.8, 1}
	pyY  = []float64{5.9, 5.4, 4.4, 4.6, 3.5, 3.7, 2.8, 2.8, 2.4, 1.5}
	pyWY = []float64{1, 1.8, 4, 8, 20, 20, 70, 70, 100, 500}
)

func pearsonYork(t testing.TB, tol float64) *model.Observations {
	t.Helper()

	data := make([][]float64, len(pyX))
	covs := make([]mat.Symmetric, len(pyX))
	for i := range pyX {
		data[i] = []float64{pyX[i], pyY[i]}
		covs[i] = model.DiagonalCovariance(1/math.Sqrt(pyWX[i]), 1/math.Sqrt(pyWY[i]))
	}
	obs, err := model.NewObservations(data, covs, nil, model.Uniform(len(data), tol))
	require.NoError(t, err)

	return obs
}

// exactLine samples y = slope·x + intercept without noise.
func exactLine(t testing.TB, slope, intercept float64, n int) *model.Observations {
	t.Helper()

	data := make([][]float64, n)
	covs := make([]mat.Symmetric, n)
	for i := range data {
		x := float64(i)
		data[i] = []float64{x, slope*x + intercept}
		covs[i] = model.DiagonalCovariance(0.1, 0.2)
	}
	obs, err := model.NewObservations(data, covs, nil, model.Uniform(n, 1e-12))
	require.NoError(t, err)

	return obs
}

// countingModel counts Evaluate calls of the wrapped model.
type countingModel struct {
	model.Model
	calls atomic.Int64
}

func (c *countingModel) Evaluate(params, guess []float64, flag model.Flag) ([]float64, error) {
	c.calls.Add(1)
	return c.Model.Evaluate(params, guess, flag)
}
