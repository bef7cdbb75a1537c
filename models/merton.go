package models

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// MertonJumpDiffusion combines a continuous diffusion with a compound Poisson
// jump process. Time is discretized so one period is dt = 1/horizon of the
// simulated span; the jump count per period is Poisson with rate
// Intensity * dt and each period's aggregate jump size is a single normal
// draw scaled by that count.
type MertonJumpDiffusion struct {
	Drift      float64
	Volatility float64
	Jump       JumpParameters
	Dt         float64
}

func NewMertonJumpDiffusion(p ModelParameters, jump JumpParameters, horizonDays int) MertonJumpDiffusion {
	return MertonJumpDiffusion{
		Drift:      p.Drift,
		Volatility: p.Volatility,
		Jump:       jump,
		Dt:         1 / float64(horizonDays),
	}
}

func (m MertonJumpDiffusion) GrowthFactor(rng *rand.Rand) float64 {
	z := rng.NormFloat64()
	drift := (m.Drift - 0.5*m.Volatility*m.Volatility) * m.Dt
	diffusion := m.Volatility * math.Sqrt(m.Dt) * z

	var jump float64
	if lambda := m.Jump.Intensity * m.Dt; lambda > 0 {
		count := distuv.Poisson{Lambda: lambda, Src: rng}.Rand()
		if count > 0 {
			y := rng.NormFloat64()
			jump = (m.Jump.SizeMean + m.Jump.SizeStd*y) * count
		}
	}

	return math.Exp(drift + diffusion + jump)
}
