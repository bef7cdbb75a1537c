package models

import "errors"

var (
	// ErrInsufficientData is returned when a statistic cannot be formed from
	// the available history (fewer than two prices, or an empty return series).
	ErrInsufficientData = errors.New("insufficient historical data")

	// ErrNoPositiveReturns is returned by jump calibration when the return
	// series contains no positive observations.
	ErrNoPositiveReturns = errors.New("no positive returns in series")

	// ErrInvalidModel is returned when a model tag is not one of the known models.
	ErrInvalidModel = errors.New("invalid model")
)
