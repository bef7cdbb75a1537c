package models

import (
	"fmt"
	"math"
)

// ModelParameters holds the drift and volatility estimates a simulation runs
// with, scaled to the lookback horizon they were estimated over.
type ModelParameters struct {
	Drift      float64 `json:"drift"`
	Volatility float64 `json:"volatility"`
}

// EstimateParameters derives drift and volatility from a daily price history.
//
// Every adjacent pair of prices contributes one simple return; drift is the
// mean return scaled by lookbackDays and volatility the standard deviation
// scaled by sqrt(lookbackDays). lookbackDays scales the per-period statistics
// to the simulation horizon, it does not subset the history.
func EstimateParameters(prices []PricePoint, lookbackDays int) (ModelParameters, error) {
	returns := Returns(prices)
	if len(returns) == 0 {
		return ModelParameters{}, fmt.Errorf("%w: need at least 2 prices, got %d", ErrInsufficientData, len(prices))
	}

	mean, std := meanStd(returns)
	return ModelParameters{
		Drift:      mean * float64(lookbackDays),
		Volatility: std * math.Sqrt(float64(lookbackDays)),
	}, nil
}
