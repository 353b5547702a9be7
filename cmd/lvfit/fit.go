// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvfit/fit"
	"github.com/katalvlaran/lvfit/inference"
	"github.com/katalvlaran/lvfit/internal/config"
	"github.com/katalvlaran/lvfit/model"
)

type fitReport struct {
	Params      []float64         `json:"params"`
	StdErrors   []float64         `json:"std_errors"`
	Covariance  [][]float64       `json:"covariance"`
	WSS         float64           `json:"wss"`
	DoF         int               `json:"dof"`
	Converged   bool              `json:"converged"`
	Iterations  int               `json:"iterations"`
	Residuals   []float64         `json:"weighted_residuals"`
	Summary     inference.Summary `json:"summary"`
	Outliers    []int             `json:"outliers"`
	OutlierProb []float64         `json:"outlier_probabilities"`
	Limit       float64           `json:"outlier_limit"`
	Level       float64           `json:"level"`
	Bands       *bandReport       `json:"bands,omitempty"`
	Warnings    []string          `json:"warnings,omitempty"`

	estimates *fit.Estimates
}

type bandReport struct {
	Queries    [][]float64 `json:"queries"`
	Values     []float64   `json:"values"`
	Lower      []float64   `json:"lower"`
	Upper      []float64   `json:"upper"`
	Prediction []float64   `json:"prediction_half_width"`
	Critical   float64     `json:"critical"`
	Trusted    bool        `json:"trusted"`
}

func NewFitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit <problem.yaml>",
		Short: "Fit a model to the observations in a problem file",
		Long: `Run the bounded Gauss-Newton fit described by a YAML problem file and print
the parameters with their uncertainties, the weighted residual statistics,
extreme-value outliers and, when the file lists query points, confidence and
prediction bands.`,
		Args: cobra.ExactArgs(1),
		RunE: runFit,
	}
	cmd.Flags().Int("workers", 0, "Project observations on up to N goroutines (0 = file setting)")

	return cmd
}

func runFit(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")
	workers, _ := cmd.Flags().GetInt("workers")

	f, err := config.Load(args[0])
	if err != nil {
		return err
	}
	problem, err := f.Problem()
	if err != nil {
		return fmt.Errorf("build problem: %w", err)
	}
	opts, err := f.FitOptions(workers)
	if err != nil {
		return err
	}
	if verbose {
		opts = append(opts, fit.WithLogger(log.New(cmd.ErrOrStderr(), "lvfit: ", 0)))
	}

	rep := &fitReport{Level: f.Level()}
	res, err := fit.Fit(problem, opts...)
	switch {
	case errors.Is(err, fit.ErrNotConverged) && res.Covariance == nil:
		return fmt.Errorf("fit: %w (last params %v)", err, res.Params)
	case errors.Is(err, fit.ErrNotConverged):
		rep.Warnings = append(rep.Warnings, err.Error())
	case err != nil:
		return fmt.Errorf("fit: %w", err)
	}

	if err = rep.fill(f, res); err != nil {
		return err
	}
	if len(f.Inference.Queries) > 0 {
		if rep.Bands, err = bands(f, problem.Model, res); err != nil {
			return err
		}
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	rep.print(cmd.OutOrStdout())

	return nil
}

func (r *fitReport) fill(f *config.File, res *fit.Result) error {
	k := res.NumParams()
	r.Params = res.Params
	r.StdErrors = res.StdErrors()
	r.Covariance = make([][]float64, k)
	for i := range r.Covariance {
		r.Covariance[i] = make([]float64, k)
		for j := range r.Covariance[i] {
			r.Covariance[i][j] = res.Covariance.At(i, j)
		}
	}
	r.WSS = res.WSS
	r.DoF = res.DoF
	r.Converged = res.Converged
	r.Iterations = res.Iterations
	r.Residuals = res.WeightedResiduals

	var err error
	if r.Summary, err = inference.Summarize(res.WeightedResiduals); err != nil {
		return err
	}
	ev, err := inference.ExtremeValues(res.WeightedResiduals, f.Level())
	if err != nil {
		return err
	}
	r.Outliers = ev.Indices
	r.OutlierProb = ev.Probabilities
	r.Limit = ev.Limit
	if r.Outliers == nil {
		r.Outliers, r.OutlierProb = []int{}, []float64{}
	}
	r.estimates, err = fit.FormatEstimates(res.Params, res.Covariance, 1, true)

	return err
}

func bands(f *config.File, m model.Model, res *fit.Result) (*bandReport, error) {
	dist, err := f.Distribution()
	if err != nil {
		return nil, err
	}
	b, err := inference.Bands(res, m, f.Inference.Queries, model.Flag(f.Inference.Flag), inference.Coordinate(f.Inference.Property),
		f.Level(), inference.WithDistribution(dist))
	if err != nil {
		return nil, fmt.Errorf("bands: %w", err)
	}

	return &bandReport{
		Queries:    f.Inference.Queries,
		Values:     b.Values,
		Lower:      b.Lower,
		Upper:      b.Upper,
		Prediction: b.PredictionHalfWidth,
		Critical:   b.Critical,
		Trusted:    b.Trusted,
	}, nil
}

func (r *fitReport) print(w io.Writer) {
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
	fmt.Fprintf(w, "converged: %t after %d iterations\n", r.Converged, r.Iterations)
	fmt.Fprintf(w, "WSS: %.10g  dof: %d  reduced chi2: %.6g\n", r.WSS, r.DoF, r.WSS/float64(r.DoF))
	fmt.Fprintln(w, "parameters:")
	for i, v := range r.estimates.Values {
		fmt.Fprintf(w, "  p[%d] = %se%s  (%.10g ± %.3g)\n", i, v, r.estimates.Exponents[i], r.Params[i], r.StdErrors[i])
	}
	s := r.Summary
	fmt.Fprintf(w, "residuals: mean %.3g  sd %.3g  median %.3g  rms %.3g  max|w| %.3g\n",
		s.Mean, s.StdDev, s.Median, s.RMS, s.MaxAbs)
	if len(r.Outliers) == 0 {
		fmt.Fprintf(w, "outliers at %.0f%%: none (limit |w| = %.3g)\n", 100*r.Level, r.Limit)
	} else {
		fmt.Fprintf(w, "outliers at %.0f%% (limit |w| = %.3g):\n", 100*r.Level, r.Limit)
		for j, i := range r.Outliers {
			fmt.Fprintf(w, "  obs %d: w = %+.3g  p = %.2g\n", i, r.Residuals[i], r.OutlierProb[j])
		}
	}
	if r.Bands != nil {
		fmt.Fprintf(w, "bands at %.0f%% (critical %.4g):\n", 100*r.Level, r.Bands.Critical)
		for i, q := range r.Bands.Queries {
			fmt.Fprintf(w, "  %v: %.6g  [%.6g, %.6g]  ± %.3g\n",
				q, r.Bands.Values[i], r.Bands.Lower[i], r.Bands.Upper[i], r.Bands.Prediction[i])
		}
	}
}
