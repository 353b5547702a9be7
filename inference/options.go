// SPDX-License-Identifier: MIT

package inference

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution selects how the critical value of a band is computed.
type Distribution int

const (
	// StudentT uses the two-sided t quantile with N−K degrees of freedom.
	StudentT Distribution = iota
	// Normal uses the two-sided standard-normal quantile.
	Normal
	// Scheffe uses √(K·F(K, N−K)), a simultaneous band for the whole curve.
	Scheffe
)

func (d Distribution) String() string {
	switch d {
	case StudentT:
		return "t"
	case Normal:
		return "normal"
	case Scheffe:
		return "scheffe"
	default:
		return fmt.Sprintf("Distribution(%d)", int(d))
	}
}

const panicDistribution = "inference: WithDistribution: unknown distribution"

// Options configures Bands.
type Options struct {
	Distribution Distribution
}

// Option is a functional setter for Options.
type Option func(*Options)

// WithDistribution selects the critical-value distribution. Panics on an
// unknown value.
func WithDistribution(d Distribution) Option {
	if d < StudentT || d > Scheffe {
		panic(panicDistribution)
	}

	return func(o *Options) { o.Distribution = d }
}

func gather(opts []Option) Options {
	o := Options{Distribution: StudentT}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// Critical returns the band multiplier for k parameters and dof degrees of
// freedom at the given confidence level.
func (d Distribution) Critical(level float64, k, dof int) float64 {
	switch d {
	case Normal:
		return distuv.UnitNormal.Quantile(0.5 * (1 + level))
	case Scheffe:
		f := distuv.F{D1: float64(k), D2: float64(dof)}
		return math.Sqrt(float64(k) * f.Quantile(level))
	default:
		t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}
		return t.Quantile(0.5 * (1 + level))
	}
}
