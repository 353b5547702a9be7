// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pearsonYork = filepath.Join("..", "..", "internal", "config", "testdata", "pearson_york.yaml")

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd("1.0.0")
	require.NotNil(t, cmd)
	assert.Equal(t, "lvfit", cmd.Use)
	assert.Equal(t, "1.0.0", cmd.Version)
	for _, name := range []string{"json", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestFitCmd_Text(t *testing.T) {
	out, _, err := run(t, "fit", pearsonYork)
	require.NoError(t, err)

	assert.Contains(t, out, "converged: true")
	assert.Contains(t, out, "WSS: 11.8663")
	assert.Contains(t, out, "dof: 8")
	assert.Contains(t, out, "p[0] = ")
	assert.Contains(t, out, "outliers at 95%: none")
	assert.Contains(t, out, "bands at 95%")
}

func TestFitCmd_JSON(t *testing.T) {
	out, _, err := run(t, "fit", "--json", "--workers", "3", pearsonYork)
	require.NoError(t, err)

	var rep struct {
		Params    []float64 `json:"params"`
		StdErrors []float64 `json:"std_errors"`
		WSS       float64   `json:"wss"`
		DoF       int       `json:"dof"`
		Converged bool      `json:"converged"`
		Outliers  []int     `json:"outliers"`
		Bands     struct {
			Values     []float64 `json:"values"`
			Lower      []float64 `json:"lower"`
			Prediction []float64 `json:"prediction_half_width"`
		} `json:"bands"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))

	assert.True(t, rep.Converged)
	assert.InDelta(t, 11.8663531941, rep.WSS, 1e-8)
	assert.Equal(t, 8, rep.DoF)
	assert.InDelta(t, -0.4805, rep.Params[0], 1e-3)
	assert.Len(t, rep.StdErrors, 2)
	assert.Empty(t, rep.Outliers)
	assert.Len(t, rep.Bands.Values, 3)
	for i := range rep.Bands.Values {
		assert.Less(t, rep.Bands.Lower[i], rep.Bands.Values[i])
		assert.Greater(t, rep.Bands.Prediction[i], rep.Bands.Values[i]-rep.Bands.Lower[i])
	}
}

func TestFitCmd_VerboseLogsIterations(t *testing.T) {
	_, errOut, err := run(t, "fit", "-v", pearsonYork)
	require.NoError(t, err)
	assert.Contains(t, errOut, "lvfit: iteration 1: wss=")
}

func TestFitCmd_NotConvergedWarns(t *testing.T) {
	src, err := os.ReadFile(pearsonYork)
	require.NoError(t, err)
	patched := strings.Replace(string(src), "  param_tolerance: 1.0e-5", "  param_tolerance: 1.0e-5\n  max_iterations: 1", 1)
	path := filepath.Join(t.TempDir(), "short.yaml")
	require.NoError(t, os.WriteFile(path, []byte(patched), 0o644))

	out, _, err := run(t, "fit", path)
	require.NoError(t, err)
	assert.Contains(t, out, "warning: fit: did not converge")
	assert.Contains(t, out, "converged: false after 1 iterations")
}

func TestFitCmd_Errors(t *testing.T) {
	_, _, err := run(t, "fit")
	assert.Error(t, err)

	_, _, err = run(t, "fit", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: {kind: spline}\n"), 0o644))
	_, _, err = run(t, "fit", path)
	assert.ErrorContains(t, err, "unknown model kind")
}
