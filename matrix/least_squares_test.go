// SPDX-License-Identifier: MIT

package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvfit/matrix"
)

const epsTight = 1e-10

func TestLeastSquares_ExactSquareSystem(t *testing.T) {
	t.Parallel()

	a := mat.NewDense(2, 2, []float64{2, 1, 1, 3})
	x, err := matrix.LeastSquares(a, []float64{3, 5})
	require.NoError(t, err)
	require.InDelta(t, 0.8, x[0], epsTight)
	require.InDelta(t, 1.4, x[1], epsTight)
}

func TestLeastSquares_OverdeterminedLine(t *testing.T) {
	t.Parallel()

	// y = 2x + 1 sampled exactly; columns [x, 1].
	a := mat.NewDense(4, 2, []float64{
		0, 1,
		1, 1,
		2, 1,
		3, 1,
	})
	x, err := matrix.LeastSquares(a, []float64{1, 3, 5, 7})
	require.NoError(t, err)
	require.InDelta(t, 2.0, x[0], epsTight)
	require.InDelta(t, 1.0, x[1], epsTight)
}

func TestLeastSquares_WildlyScaledColumns(t *testing.T) {
	t.Parallel()

	// Second column is 1e12 times the first in magnitude; scaling keeps it full rank.
	a := mat.NewDense(3, 2, []float64{
		1e-6, 2e6,
		2e-6, 1e6,
		3e-6, 5e6,
	})
	want := []float64{4e5, 3e-7}
	b := make([]float64, 3)
	for i := 0; i < 3; i++ {
		b[i] = a.At(i, 0)*want[0] + a.At(i, 1)*want[1]
	}
	x, err := matrix.LeastSquares(a, b)
	require.NoError(t, err)
	require.InEpsilon(t, want[0], x[0], 1e-8)
	require.InEpsilon(t, want[1], x[1], 1e-8)
}

func TestLeastSquares_RankDeficient(t *testing.T) {
	t.Parallel()

	// Second column duplicates the first.
	a := mat.NewDense(3, 2, []float64{1, 1, 2, 2, 3, 3})
	_, err := matrix.LeastSquares(a, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrRankDeficient)

	var re *matrix.RankError
	require.True(t, errors.As(err, &re))
	require.Equal(t, 1, re.Rank)
	require.Equal(t, 2, re.Cols)
	require.Equal(t, 1, re.Deficiency())
}

func TestLeastSquares_ZeroColumnIsDeficient(t *testing.T) {
	t.Parallel()

	a := mat.NewDense(3, 2, []float64{1, 0, 2, 0, 3, 0})
	_, err := matrix.LeastSquares(a, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrRankDeficient)
}

func TestLeastSquares_Validation(t *testing.T) {
	t.Parallel()

	_, err := matrix.LeastSquares(nil, []float64{1})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = matrix.LeastSquares(mat.NewDense(1, 2, []float64{1, 2}), []float64{1})
	require.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.LeastSquares(mat.NewDense(2, 1, []float64{1, 2}), []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.LeastSquares(mat.NewDense(2, 1, []float64{1, math.NaN()}), []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestNormalInverse_MatchesDirectInverse(t *testing.T) {
	t.Parallel()

	a := mat.NewDense(4, 2, []float64{
		1, 0.5,
		2, -1,
		0, 3,
		1, 1,
	})
	got, err := matrix.NormalInverse(a)
	require.NoError(t, err)

	var ata, want mat.Dense
	ata.Mul(a.T(), a)
	require.NoError(t, want.Inverse(&ata))

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			require.InDelta(t, want.At(i, j), got.At(i, j), epsTight)
		}
	}
}

func TestNormalInverse_RankDeficient(t *testing.T) {
	t.Parallel()

	a := mat.NewDense(3, 2, []float64{1, 2, 2, 4, 3, 6})
	_, err := matrix.NormalInverse(a)
	require.ErrorIs(t, err, matrix.ErrRankDeficient)
}

func TestRank(t *testing.T) {
	t.Parallel()

	r, err := matrix.Rank(mat.NewDense(3, 3, []float64{1, 2, 3, 2, 4, 6, 0, 1, 1}))
	require.NoError(t, err)
	require.Equal(t, 2, r)
}

func TestQuadFormAndMulVec(t *testing.T) {
	t.Parallel()

	c := mat.NewSymDense(2, []float64{4, 1, 1, 9})
	q, err := matrix.QuadForm(c, []float64{1, 2})
	require.NoError(t, err)
	require.InDelta(t, 4+2*1*2+9*4, q, epsTight)

	v, err := matrix.MulVec(c, []float64{1, 2})
	require.NoError(t, err)
	require.Equal(t, []float64{6, 19}, v)

	_, err = matrix.QuadForm(c, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.QuadForm(mat.NewDense(2, 3, nil), []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}
