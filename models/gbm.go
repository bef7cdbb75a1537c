package models

import (
	"math"

	"golang.org/x/exp/rand"
)

// LognormalGBM generates per-period growth factors under geometric Brownian
// motion with lognormally distributed price relatives.
type LognormalGBM struct {
	Drift      float64
	Volatility float64
}

func NewLognormalGBM(p ModelParameters) LognormalGBM {
	return LognormalGBM{Drift: p.Drift, Volatility: p.Volatility}
}

func (g LognormalGBM) GrowthFactor(rng *rand.Rand) float64 {
	z := rng.NormFloat64()
	return math.Exp((g.Drift - 0.5*g.Volatility*g.Volatility) + g.Volatility*z)
}

// NormalGBM draws the same stochastic term as LognormalGBM but applies it as
// a growth factor directly, without exponentiation. Whether that additive
// return is really meant to act multiplicatively is an open product question;
// until it is answered the behavior is preserved exactly rather than folded
// into LognormalGBM.
type NormalGBM struct {
	Drift      float64
	Volatility float64
}

func NewNormalGBM(p ModelParameters) NormalGBM {
	return NormalGBM{Drift: p.Drift, Volatility: p.Volatility}
}

func (g NormalGBM) GrowthFactor(rng *rand.Rand) float64 {
	z := rng.NormFloat64()
	return (g.Drift - 0.5*g.Volatility*g.Volatility) + g.Volatility*z
}
