package models

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Model selects the stochastic process used to generate price paths.
type Model string

const (
	// GBMLognormal is standard geometric Brownian motion: the stochastic
	// term is exponentiated into a multiplicative growth factor.
	GBMLognormal Model = "lognormal"

	// GBMNormal applies the same stochastic term directly as a growth
	// factor without exponentiation. Kept as a distinct model on purpose;
	// see the note on NormalGBM.GrowthFactor.
	GBMNormal Model = "normal"

	// JumpDiffusion is GBM plus a compound Poisson jump process calibrated
	// from historical upward return shocks.
	JumpDiffusion Model = "jump_diffusion"
)

// ParseModel maps a string tag onto a known Model.
func ParseModel(s string) (Model, error) {
	switch Model(s) {
	case GBMLognormal, GBMNormal, JumpDiffusion:
		return Model(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidModel, s)
}

func (m Model) String() string { return string(m) }

// PathModel produces one multiplicative per-period growth factor per call.
// Implementations must be safe for concurrent use; all randomness comes from
// the caller-supplied generator.
type PathModel interface {
	GrowthFactor(rng *rand.Rand) float64
}
