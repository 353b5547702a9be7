// SPDX-License-Identifier: MIT

package model

// Polynomial is the graph y = p₀xᵈ + p₁xᵈ⁻¹ + … + p_d in (x, y) space.
// Parameters are in descending power order, so degree 1 is [slope, intercept].
//
// Evaluate keeps the guess's x and recomputes y; Normal is (y'(x), −1).
// Flags are ignored.
type Polynomial struct {
	Degree int
}

// NewPolynomial returns a polynomial model of the given degree (≥ 0).
func NewPolynomial(degree int) *Polynomial {
	if degree < 0 {
		degree = 0
	}

	return &Polynomial{Degree: degree}
}

// NumParams returns Degree+1.
func (p *Polynomial) NumParams() int { return p.Degree + 1 }

// Evaluate returns (x, poly(x)) for x = guess[0].
func (p *Polynomial) Evaluate(params, guess []float64, _ Flag) ([]float64, error) {
	if err := p.check(params, guess); err != nil {
		return nil, err
	}
	x := guess[0]

	return []float64{x, horner(params, x)}, nil
}

// Normal returns (dy/dx, −1) at point[0].
func (p *Polynomial) Normal(params, point []float64, _ Flag) ([]float64, error) {
	if err := p.check(params, point); err != nil {
		return nil, err
	}

	return []float64{derivative(params, point[0]), -1}, nil
}

func (p *Polynomial) check(params, point []float64) error {
	if len(params) != p.NumParams() {
		return ErrBadParams
	}
	if len(point) != 2 {
		return ErrDimensionMismatch
	}

	return nil
}

// horner evaluates descending-order coefficients at x.
func horner(c []float64, x float64) float64 {
	var y float64
	for _, v := range c {
		y = y*x + v
	}

	return y
}

// derivative evaluates the derivative of descending-order coefficients at x.
func derivative(c []float64, x float64) float64 {
	var (
		d   float64
		deg = len(c) - 1
	)
	for i := 0; i < deg; i++ {
		d = d*x + float64(deg-i)*c[i]
	}

	return d
}
