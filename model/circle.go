// SPDX-License-Identifier: MIT

package model

import "gonum.org/v1/gonum/floats"

// Circle is the implicit manifold (x−cx)² + (y−cy)² = r² with parameters
// [cx, cy, r]. It has no graph form y = f(x); Evaluate projects the guess
// radially onto the circle and Normal is the radial direction.
// Flags are ignored.
type Circle struct{}

// NumParams returns 3.
func (Circle) NumParams() int { return 3 }

// Evaluate returns the point of the circle on the ray from the centre through guess.
func (c Circle) Evaluate(params, guess []float64, _ Flag) ([]float64, error) {
	dir, err := c.radial(params, guess)
	if err != nil {
		return nil, err
	}

	return []float64{params[0] + params[2]*dir[0], params[1] + params[2]*dir[1]}, nil
}

// Normal returns the outward unit radial vector at point.
func (c Circle) Normal(params, point []float64, _ Flag) ([]float64, error) {
	return c.radial(params, point)
}

func (Circle) radial(params, point []float64) ([]float64, error) {
	if len(params) != 3 {
		return nil, ErrBadParams
	}
	if len(point) != 2 {
		return nil, ErrDimensionMismatch
	}
	dir := []float64{point[0] - params[0], point[1] - params[1]}
	norm := floats.Norm(dir, 2)
	if norm == 0 {
		return nil, ErrDegenerate
	}
	floats.Scale(1/norm, dir)

	return dir, nil
}
