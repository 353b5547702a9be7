// SPDX-License-Identifier: MIT

package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfit/fit"
	"github.com/katalvlaran/lvfit/inference"
	"github.com/katalvlaran/lvfit/internal/config"
	"github.com/katalvlaran/lvfit/matrix"
	"github.com/katalvlaran/lvfit/model"
)

func TestLoad_PearsonYork(t *testing.T) {
	t.Parallel()

	f, err := config.Load(filepath.Join("testdata", "pearson_york.yaml"))
	require.NoError(t, err)

	p, err := f.Problem()
	require.NoError(t, err)
	assert.Equal(t, 2, p.Model.NumParams())
	assert.Equal(t, 10, p.Observations.Len())
	assert.Equal(t, []float64{-0.5, 5.5}, p.Start)
	require.Len(t, p.Bounds, 2)
	assert.True(t, math.IsInf(p.Bounds[0].Lower, -1))
	assert.True(t, math.IsInf(p.Bounds[1].Upper, 1))
	assert.InDelta(t, 1.0/1000, p.Observations.Covariances[0].At(0, 0), 1e-15)

	opts, err := f.FitOptions(0)
	require.NoError(t, err)
	res, err := fit.Fit(p, opts...)
	require.NoError(t, err)
	assert.InDelta(t, 11.8663531941, res.WSS, 1e-8)

	assert.Equal(t, 0.95, f.Level())
	d, err := f.Distribution()
	require.NoError(t, err)
	assert.Equal(t, inference.StudentT, d)
	assert.Len(t, f.Inference.Queries, 3)
	assert.Equal(t, 1, f.Inference.Property)
}

func TestParse_FullCovarianceAndFlags(t *testing.T) {
	t.Parallel()

	src := `
model:
  kind: byflag
  flags:
    a: {kind: polynomial, degree: 1}
    b: {kind: line}
start: [1, 0]
steps: [1.0e-4, 1.0e-4]
tolerance: 1.0e-10
observations:
  - point: [0, 0.1]
    covariance: [[0.01, 0.002], [0.002, 0.04]]
    flag: a
  - point: [1, 1.05]
    sigma: [0.1, 0.2]
    flag: b
    tolerance: 1.0e-6
  - point: [2, 1.9]
    sigma: [0.1, 0.2]
    flag: a
fit:
  max_iterations: 20
  damping: 0.001
  workers: 2
inference:
  distribution: scheffe
`
	f, err := config.Parse([]byte(src))
	require.NoError(t, err)

	p, err := f.Problem()
	require.NoError(t, err)
	_, ok := p.Model.(*model.ByFlag)
	assert.True(t, ok)
	assert.Nil(t, p.Bounds)
	assert.Equal(t, []model.Flag{"a", "b", "a"}, p.Observations.Flags)
	assert.Equal(t, []float64{1e-10, 1e-6, 1e-10}, p.Observations.Tolerances)
	assert.Equal(t, 0.002, p.Observations.Covariances[0].At(1, 0))

	opts, err := f.FitOptions(0)
	require.NoError(t, err)
	assert.Len(t, opts, 3)
	opts, err = f.FitOptions(8)
	require.NoError(t, err)
	assert.Len(t, opts, 3)

	d, err := f.Distribution()
	require.NoError(t, err)
	assert.Equal(t, inference.Scheffe, d)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
		want error
	}{
		{"unknown model", "model: {kind: spline}\nobservations: [{point: [0, 0], sigma: [1, 1]}]", config.ErrUnknownModel},
		{"no uncertainty", "model: {kind: line}\nobservations: [{point: [0, 0]}]", config.ErrUncertainty},
		{"both uncertainties", "model: {kind: line}\nobservations: [{point: [0, 0], sigma: [1, 1], covariance: [[1, 0], [0, 1]]}]", config.ErrUncertainty},
		{"asymmetric", "model: {kind: line}\nobservations: [{point: [0, 0], covariance: [[1, 0.5], [0, 1]]}]", matrix.ErrAsymmetry},
		{"bad bound", "model: {kind: line}\nbounds: [[0]]\nobservations: [{point: [0, 0], sigma: [1, 1]}]", config.ErrBadBound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := config.Parse([]byte(tc.src))
			require.NoError(t, err)
			_, err = f.Problem()
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := config.Parse([]byte("model: {kind: line}\nunknown_key: 1\n"))
	assert.Error(t, err)

	f, err := config.Parse([]byte("fit: {param_tolerance: -1}\n"))
	require.NoError(t, err)
	_, err = f.FitOptions(0)
	assert.ErrorIs(t, err, config.ErrBadSetting)

	f, err = config.Parse([]byte("inference: {distribution: cauchy}\n"))
	require.NoError(t, err)
	_, err = f.Distribution()
	assert.ErrorIs(t, err, config.ErrUnknownDistribution)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
