package simulation

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"golang.org/x/exp/rand"

	"stocast/models"
)

// Simulate runs a Monte Carlo simulation of future price paths under the
// requested model. Paths are generated in parallel across a worker pool, one
// deterministic generator per path, so the returned matrix is bit-identical
// for identical requests regardless of worker count.
func Simulate(req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	model, err := newPathModel(req)
	if err != nil {
		return nil, err
	}

	res := &Result{
		InitialPrice: req.InitialPrice,
		Drift:        req.Params.Drift,
		Volatility:   req.Params.Volatility,
		Days:         req.HorizonDays,
		Paths:        req.PathCount,
		prices:       make([]float64, req.HorizonDays*req.PathCount),
	}
	floor, ceil := req.bounds()

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > req.PathCount {
		workers = req.PathCount
	}
	chunk := (req.PathCount + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > req.PathCount {
			end = req.PathCount
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for p := start; p < end; p++ {
				rng := rand.New(rand.NewSource(pathSeed(req.Seed, p)))
				simulatePath(res.prices[p*req.HorizonDays:(p+1)*req.HorizonDays], req.InitialPrice, model, rng, floor, ceil)
			}
		}(start, end)
	}
	wg.Wait()

	return res, nil
}

func newPathModel(req Request) (models.PathModel, error) {
	switch req.Model {
	case models.GBMLognormal:
		return models.NewLognormalGBM(req.Params), nil
	case models.GBMNormal:
		return models.NewNormalGBM(req.Params), nil
	case models.JumpDiffusion:
		if req.Jump == nil {
			return nil, fmt.Errorf("%w: jump diffusion requires calibrated jump parameters", ErrUnsupportedModel)
		}
		return models.NewMertonJumpDiffusion(req.Params, *req.Jump, req.HorizonDays), nil
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidModel, req.Model)
	}
}

// simulatePath fills out with the cumulative product of per-period growth
// factors scaled by the initial price. The clamp saturates what is stored;
// compounding continues from the unclamped value, matching a clip applied to
// the finished matrix.
func simulatePath(out []float64, initial float64, model models.PathModel, rng *rand.Rand, floor, ceil float64) {
	price := initial
	for d := range out {
		price *= model.GrowthFactor(rng)
		out[d] = math.Min(math.Max(price, floor), ceil)
	}
}

// pathSeed mixes the request seed with the path index (splitmix64 finalizer)
// so neighboring paths get decorrelated generator states.
func pathSeed(seed uint64, path int) uint64 {
	z := seed + uint64(path+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
