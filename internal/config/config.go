// SPDX-License-Identifier: MIT

// Package config reads fitting problems from YAML files.
//
// A problem file names one of the reference models, lists the observations
// with their uncertainties, and carries the starting parameters, step sizes,
// optional bounds and driver settings:
//
//	model:
//	  kind: polynomial
//	  degree: 1
//	start: [-0.5, 5.5]
//	steps: [1.0e-3, 1.0e-3]
//	bounds: [[-.inf, .inf], [0, .inf]]
//	tolerance: 0.1
//	observations:
//	  - point: [0.0, 5.9]
//	    sigma: [0.0316, 1.0]
//	fit:
//	  param_tolerance: 1.0e-5
//	inference:
//	  level: 0.95
//	  queries: [[0, 0], [7.4, 0]]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvfit/fit"
	"github.com/katalvlaran/lvfit/inference"
	"github.com/katalvlaran/lvfit/matrix"
	"github.com/katalvlaran/lvfit/model"
)

var (
	ErrUnknownModel        = errors.New("config: unknown model kind")
	ErrUncertainty         = errors.New("config: observation needs exactly one of sigma or covariance")
	ErrBadBound            = errors.New("config: bound must be a [lower, upper] pair")
	ErrUnknownDistribution = errors.New("config: unknown distribution")
	ErrBadSetting          = errors.New("config: invalid fit setting")
)

// DefaultLevel is the confidence level used when the file gives none.
const DefaultLevel = 0.95

// ModelConfig selects a reference model. Kind "byflag" dispatches each flag
// to its own sub-model, all sharing one parameter vector.
type ModelConfig struct {
	Kind   string                 `yaml:"kind"`
	Degree int                    `yaml:"degree,omitempty"`
	Flags  map[string]ModelConfig `yaml:"flags,omitempty"`
}

type Observation struct {
	Point      []float64   `yaml:"point"`
	Sigma      []float64   `yaml:"sigma,omitempty"`
	Covariance [][]float64 `yaml:"covariance,omitempty"`
	Flag       string      `yaml:"flag,omitempty"`
	Tolerance  *float64    `yaml:"tolerance,omitempty"`
}

type FitConfig struct {
	ParamTolerance      float64 `yaml:"param_tolerance,omitempty"`
	MaxIterations       int     `yaml:"max_iterations,omitempty"`
	ProjectorIterations int     `yaml:"projector_iterations,omitempty"`
	Damping             float64 `yaml:"damping,omitempty"`
	Workers             int     `yaml:"workers,omitempty"`
}

type InferenceConfig struct {
	Level        float64     `yaml:"level,omitempty"`
	Distribution string      `yaml:"distribution,omitempty"`
	Queries      [][]float64 `yaml:"queries,omitempty"`
	Property     int         `yaml:"property,omitempty"`
	Flag         string      `yaml:"flag,omitempty"`
}

// File is the decoded problem file.
type File struct {
	Model        ModelConfig     `yaml:"model"`
	Start        []float64       `yaml:"start"`
	Steps        []float64       `yaml:"steps"`
	Bounds       [][]float64     `yaml:"bounds,omitempty"`
	Tolerance    float64         `yaml:"tolerance"`
	Observations []Observation   `yaml:"observations"`
	Fit          FitConfig       `yaml:"fit,omitempty"`
	Inference    InferenceConfig `yaml:"inference,omitempty"`
}

// Load reads and parses a problem file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read problem: %w", err)
	}

	return Parse(data)
}

// Parse decodes a problem file; unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse problem: %w", err)
	}

	return &f, nil
}

// BuildModel instantiates the configured reference model.
func (f *File) BuildModel() (model.Model, error) {
	return f.Model.build()
}

func (c ModelConfig) build() (model.Model, error) {
	switch strings.ToLower(c.Kind) {
	case "polynomial", "poly":
		if c.Degree < 0 {
			return nil, fmt.Errorf("%w: negative degree", ErrUnknownModel)
		}
		return model.NewPolynomial(c.Degree), nil
	case "line":
		return model.NewPolynomial(1), nil
	case "circle":
		return model.Circle{}, nil
	case "byflag":
		subs := make(map[model.Flag]model.Model, len(c.Flags))
		for flag, sub := range c.Flags {
			m, err := sub.build()
			if err != nil {
				return nil, fmt.Errorf("flag %q: %w", flag, err)
			}
			subs[model.Flag(flag)] = m
		}
		bf, err := model.NewByFlag(subs)
		if err != nil {
			return nil, err
		}
		return bf, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, c.Kind)
	}
}

// BuildObservations validates the rows and assembles model.Observations.
func (f *File) BuildObservations() (*model.Observations, error) {
	n := len(f.Observations)
	data := make([][]float64, n)
	covs := make([]mat.Symmetric, n)
	flags := make([]model.Flag, n)
	tols := make([]float64, n)
	for i, o := range f.Observations {
		data[i] = o.Point
		flags[i] = model.Flag(o.Flag)
		tols[i] = f.Tolerance
		if o.Tolerance != nil {
			tols[i] = *o.Tolerance
		}

		switch {
		case o.Sigma != nil && o.Covariance == nil:
			covs[i] = model.DiagonalCovariance(o.Sigma...)
		case o.Covariance != nil && o.Sigma == nil:
			c, err := symmetric(o.Covariance)
			if err != nil {
				return nil, fmt.Errorf("observation %d: %w", i, err)
			}
			covs[i] = c
		default:
			return nil, fmt.Errorf("observation %d: %w", i, ErrUncertainty)
		}
	}

	return model.NewObservations(data, covs, flags, tols)
}

// symmetric checks a nested slice as a covariance and copies its upper
// triangle into a SymDense.
func symmetric(rows [][]float64) (mat.Symmetric, error) {
	n := len(rows)
	if n == 0 {
		return nil, model.ErrDimensionMismatch
	}
	flat := make([]float64, 0, n*n)
	for _, r := range rows {
		if len(r) != n {
			return nil, model.ErrDimensionMismatch
		}
		flat = append(flat, r...)
	}
	dense := mat.NewDense(n, n, flat)
	if err := matrix.ValidateCovariance(dense, n); err != nil {
		return nil, err
	}
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, dense.At(i, j))
		}
	}

	return sym, nil
}

// Problem assembles the fit.Problem described by the file.
func (f *File) Problem() (fit.Problem, error) {
	m, err := f.BuildModel()
	if err != nil {
		return fit.Problem{}, err
	}
	obs, err := f.BuildObservations()
	if err != nil {
		return fit.Problem{}, err
	}

	p := fit.Problem{
		Model:        m,
		Observations: obs,
		Start:        f.Start,
		StepSizes:    f.Steps,
	}
	if f.Bounds != nil {
		p.Bounds = make([]model.Bound, len(f.Bounds))
		for i, b := range f.Bounds {
			if len(b) != 2 {
				return fit.Problem{}, fmt.Errorf("bound %d: %w", i, ErrBadBound)
			}
			p.Bounds[i] = model.Between(b[0], b[1])
		}
	}

	return p, nil
}

// FitOptions translates the fit section; zero fields keep the defaults.
// workers > 0 overrides the file.
func (f *File) FitOptions(workers int) ([]fit.Option, error) {
	c := f.Fit
	switch {
	case c.ParamTolerance < 0 || math.IsNaN(c.ParamTolerance) || math.IsInf(c.ParamTolerance, 0):
		return nil, fmt.Errorf("%w: param_tolerance %g", ErrBadSetting, c.ParamTolerance)
	case c.MaxIterations < 0, c.ProjectorIterations < 0, c.Workers < 0:
		return nil, fmt.Errorf("%w: negative iteration or worker count", ErrBadSetting)
	case c.Damping < 0 || math.IsNaN(c.Damping) || math.IsInf(c.Damping, 0):
		return nil, fmt.Errorf("%w: damping %g", ErrBadSetting, c.Damping)
	}

	var opts []fit.Option
	if c.ParamTolerance > 0 {
		opts = append(opts, fit.WithParamTolerance(c.ParamTolerance))
	}
	if c.MaxIterations > 0 {
		opts = append(opts, fit.WithMaxIterations(c.MaxIterations))
	}
	if c.ProjectorIterations > 0 {
		opts = append(opts, fit.WithProjectorIterations(c.ProjectorIterations))
	}
	if c.Damping > 0 {
		opts = append(opts, fit.WithDamping(c.Damping))
	}
	if workers <= 0 {
		workers = c.Workers
	}
	if workers > 0 {
		opts = append(opts, fit.WithWorkers(workers))
	}

	return opts, nil
}

// Level returns the confidence level, DefaultLevel when unset.
func (f *File) Level() float64 {
	if f.Inference.Level == 0 {
		return DefaultLevel
	}

	return f.Inference.Level
}

// Distribution parses the inference distribution name ("t" when unset).
func (f *File) Distribution() (inference.Distribution, error) {
	switch strings.ToLower(f.Inference.Distribution) {
	case "", "t", "student", "studentt":
		return inference.StudentT, nil
	case "normal", "z":
		return inference.Normal, nil
	case "scheffe", "f":
		return inference.Scheffe, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDistribution, f.Inference.Distribution)
	}
}
