// SPDX-License-Identifier: MIT

package projector_test

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvfit/model"
	"github.com/katalvlaran/lvfit/projector"
)

func benchObservations(b *testing.B, n int) *model.Observations {
	b.Helper()
	data := make([][]float64, n)
	covs := make([]mat.Symmetric, n)
	for i := range data {
		x := float64(i) / float64(n) * 4
		data[i] = []float64{x, 0.1*x*x*x - x + 0.3*math.Sin(7*x)}
		covs[i] = model.DiagonalCovariance(0.05, 0.1)
	}
	obs, err := model.NewObservations(data, covs, nil, model.Uniform(n, 1e-10))
	if err != nil {
		b.Fatal(err)
	}

	return obs
}

func BenchmarkProjectAll(b *testing.B) {
	cubic := model.NewPolynomial(3)
	params := []float64{0.1, 0, -1, 0}
	for _, n := range []int{100, 10000} {
		obs := benchObservations(b, n)
		for _, workers := range []int{1, 4} {
			b.Run(fmt.Sprintf("n=%d/workers=%d", n, workers), func(b *testing.B) {
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, err := projector.ProjectAll(cubic, params, obs, projector.WithWorkers(workers)); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
