package models

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// PricePoint is a single observation of an adjusted daily closing price.
type PricePoint struct {
	Date     time.Time `json:"date"`
	AdjClose float64   `json:"adj_close"`
}

// Returns computes the simple period-over-period returns of a price series.
// The result is one element shorter than the input; an input with fewer than
// two points yields an empty slice.
func Returns(prices []PricePoint) []float64 {
	if len(prices) < 2 {
		return nil
	}
	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns[i-1] = prices[i].AdjClose/prices[i-1].AdjClose - 1
	}
	return returns
}

// meanStd computes the mean and population standard deviation of values.
// Population (not sample) scaling keeps estimates consistent across the
// estimator and the jump calibrator.
func meanStd(values []float64) (mean, std float64) {
	mean = stat.Mean(values, nil)
	std = math.Sqrt(stat.MomentAbout(2, values, mean, nil))
	return mean, std
}
