package models

import "fmt"

// JumpParameters describes the compound Poisson jump component of the
// jump-diffusion model. Jumps are calibrated from upward return shocks only;
// Intensity is the empirical probability that a period contains one.
type JumpParameters struct {
	SizeMean  float64 `json:"jump_size_mean"`
	SizeStd   float64 `json:"jump_size_std"`
	Intensity float64 `json:"jump_intensity"`
}

// CalibrateJumpParameters estimates jump size and intensity from a historical
// return series. The positive subset of returns defines the jump population:
// SizeMean and SizeStd are its mean and standard deviation, Intensity the
// fraction of all returns that are positive.
func CalibrateJumpParameters(returns []float64) (JumpParameters, error) {
	if len(returns) == 0 {
		return JumpParameters{}, fmt.Errorf("%w: empty return series", ErrInsufficientData)
	}

	var positive []float64
	for _, r := range returns {
		if r > 0 {
			positive = append(positive, r)
		}
	}
	if len(positive) == 0 {
		return JumpParameters{}, fmt.Errorf("%w: %d returns, none positive", ErrNoPositiveReturns, len(returns))
	}

	mean, std := meanStd(positive)
	return JumpParameters{
		SizeMean:  mean,
		SizeStd:   std,
		Intensity: float64(len(positive)) / float64(len(returns)),
	}, nil
}
