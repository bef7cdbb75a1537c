package simulation

import (
	"errors"
	"fmt"

	"stocast/models"
)

// Clamp bounds applied to every simulated price. Simulated values outside the
// range saturate at the boundary; the raw cumulative product keeps compounding
// from the unclamped value.
const (
	DefaultPriceFloor = 0.01
	DefaultPriceCap   = 3000
)

var (
	// ErrInvalidRequest is returned for a request with a non-positive
	// initial price, horizon, or path count, or inverted clamp bounds.
	ErrInvalidRequest = errors.New("invalid simulation request")

	// ErrUnsupportedModel is returned when jump diffusion is requested
	// without calibrated jump parameters.
	ErrUnsupportedModel = errors.New("unsupported model configuration")
)

// Request describes one simulation run. Requests are value objects scoped to
// a single Simulate call; nothing is shared between invocations.
type Request struct {
	InitialPrice float64
	Params       models.ModelParameters
	Model        models.Model

	// Jump must be set iff Model == models.JumpDiffusion.
	Jump *models.JumpParameters

	HorizonDays int
	PathCount   int

	// Seed makes repeated calls with identical inputs reproduce identical
	// matrices. Each path derives its own generator from (Seed, path index),
	// so results do not depend on worker scheduling.
	Seed uint64

	// PriceFloor/PriceCap override the default clamp range when both are set.
	PriceFloor float64
	PriceCap   float64

	// Workers caps the number of goroutines generating paths.
	// Zero means GOMAXPROCS.
	Workers int
}

func (r *Request) validate() error {
	if r.InitialPrice <= 0 {
		return fmt.Errorf("%w: initial price must be positive, got %v", ErrInvalidRequest, r.InitialPrice)
	}
	if r.HorizonDays <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %d", ErrInvalidRequest, r.HorizonDays)
	}
	if r.PathCount <= 0 {
		return fmt.Errorf("%w: path count must be positive, got %d", ErrInvalidRequest, r.PathCount)
	}
	if r.PriceFloor != 0 || r.PriceCap != 0 {
		if r.PriceFloor < 0 || r.PriceCap <= r.PriceFloor {
			return fmt.Errorf("%w: clamp range [%v, %v]", ErrInvalidRequest, r.PriceFloor, r.PriceCap)
		}
	}
	return nil
}

// bounds resolves the clamp range, falling back to the defaults.
func (r *Request) bounds() (floor, ceil float64) {
	if r.PriceFloor == 0 && r.PriceCap == 0 {
		return DefaultPriceFloor, DefaultPriceCap
	}
	return r.PriceFloor, r.PriceCap
}

// Result is the simulated price matrix plus the summary scalars a host needs
// to annotate it. The matrix has HorizonDays rows and PathCount columns and
// is immutable once returned.
type Result struct {
	InitialPrice float64
	Drift        float64
	Volatility   float64
	Days         int
	Paths        int

	// prices is laid out path-major: each path occupies one contiguous
	// block of Days values, so workers write disjoint ranges.
	prices []float64
}

// At returns the simulated price on day row (0-based) of the given path.
func (r *Result) At(day, path int) float64 {
	return r.prices[path*r.Days+day]
}

// Path returns one simulated trajectory. The slice aliases the result's
// backing array and must not be modified.
func (r *Result) Path(path int) []float64 {
	return r.prices[path*r.Days : (path+1)*r.Days : (path+1)*r.Days]
}

// PathMatrix copies the result into a path-major [][]float64, one row per path.
func (r *Result) PathMatrix() [][]float64 {
	out := make([][]float64, r.Paths)
	for p := 0; p < r.Paths; p++ {
		row := make([]float64, r.Days)
		copy(row, r.Path(p))
		out[p] = row
	}
	return out
}
