// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"sort"
)

// ByFlag shares one parameter vector between several manifolds and picks
// the manifold by each observation's flag. It lets a single fit combine rows
// that probe different measured quantities of the same material.
type ByFlag struct {
	k      int
	models map[Flag]Model
}

// NewByFlag builds a dispatcher. All models must agree on NumParams.
func NewByFlag(models map[Flag]Model) (*ByFlag, error) {
	if len(models) == 0 {
		return nil, ErrEmpty
	}

	// Sorted keys keep the error message deterministic.
	flags := make([]string, 0, len(models))
	for f := range models {
		flags = append(flags, string(f))
	}
	sort.Strings(flags)

	k := -1
	out := &ByFlag{models: make(map[Flag]Model, len(models))}
	for _, f := range flags {
		m := models[Flag(f)]
		if m == nil {
			return nil, fmt.Errorf("flag %q: %w", f, ErrDimensionMismatch)
		}
		if k >= 0 && m.NumParams() != k {
			return nil, fmt.Errorf("flag %q: %w", f, ErrBadParams)
		}
		k = m.NumParams()
		out.models[Flag(f)] = m
	}
	out.k = k

	return out, nil
}

// NumParams returns the shared parameter count.
func (b *ByFlag) NumParams() int { return b.k }

// Evaluate dispatches to the manifold registered for flag.
func (b *ByFlag) Evaluate(params, guess []float64, flag Flag) ([]float64, error) {
	m, err := b.lookup(flag)
	if err != nil {
		return nil, err
	}

	return m.Evaluate(params, guess, flag)
}

// Normal dispatches to the manifold registered for flag.
func (b *ByFlag) Normal(params, point []float64, flag Flag) ([]float64, error) {
	m, err := b.lookup(flag)
	if err != nil {
		return nil, err
	}

	return m.Normal(params, point, flag)
}

func (b *ByFlag) lookup(flag Flag) (Model, error) {
	m, ok := b.models[flag]
	if !ok {
		return nil, fmt.Errorf("%q: %w", flag, ErrUnknownFlag)
	}

	return m, nil
}
