package simulation

import (
	"errors"
	"testing"

	"stocast/models"
)

func validRequest() Request {
	return Request{
		InitialPrice: 102,
		Params:       models.ModelParameters{Drift: 0.0068, Volatility: 0.0206},
		Model:        models.GBMLognormal,
		HorizonDays:  5,
		PathCount:    1,
		Seed:         42,
	}
}

func TestSimulateShapeAndClamp(t *testing.T) {
	req := validRequest()
	req.HorizonDays = 60
	req.PathCount = 25

	res, err := Simulate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Days != 60 || res.Paths != 25 {
		t.Fatalf("shape: got %dx%d, want 60x25", res.Days, res.Paths)
	}
	for p := 0; p < res.Paths; p++ {
		if got := len(res.Path(p)); got != 60 {
			t.Fatalf("path %d has %d values, want 60", p, got)
		}
		for d := 0; d < res.Days; d++ {
			v := res.At(d, p)
			if v < DefaultPriceFloor || v > DefaultPriceCap {
				t.Fatalf("value out of clamp range at (%d,%d): %v", d, p, v)
			}
		}
	}
}

func TestSimulateDeterministic(t *testing.T) {
	req := validRequest()
	req.HorizonDays = 30
	req.PathCount = 8

	a, err := Simulate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Simulate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for p := 0; p < a.Paths; p++ {
		for d := 0; d < a.Days; d++ {
			if a.At(d, p) != b.At(d, p) {
				t.Fatalf("matrices differ at (%d,%d): %v vs %v", d, p, a.At(d, p), b.At(d, p))
			}
		}
	}
}

func TestSimulateIndependentOfWorkerCount(t *testing.T) {
	req := validRequest()
	req.HorizonDays = 30
	req.PathCount = 17

	req.Workers = 1
	serial, err := Simulate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req.Workers = 8
	parallel, err := Simulate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for p := 0; p < serial.Paths; p++ {
		for d := 0; d < serial.Days; d++ {
			if serial.At(d, p) != parallel.At(d, p) {
				t.Fatalf("worker count changed result at (%d,%d)", d, p)
			}
		}
	}
}

func TestSimulateSeedChangesMatrix(t *testing.T) {
	req := validRequest()
	req.HorizonDays = 20
	req.PathCount = 4

	a, err := Simulate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req.Seed = 43
	b, err := Simulate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	same := true
	for p := 0; p < a.Paths && same; p++ {
		for d := 0; d < a.Days; d++ {
			if a.At(d, p) != b.At(d, p) {
				same = false
				break
			}
		}
	}
	if same {
		t.Fatal("different seeds produced identical matrices")
	}
}

func TestSimulateAllModels(t *testing.T) {
	jump := &models.JumpParameters{SizeMean: 0.01, SizeStd: 0.005, Intensity: 0.5}
	for _, tc := range []struct {
		model models.Model
		jump  *models.JumpParameters
	}{
		{models.GBMLognormal, nil},
		{models.GBMNormal, nil},
		{models.JumpDiffusion, jump},
	} {
		req := validRequest()
		req.Model = tc.model
		req.Jump = tc.jump
		req.HorizonDays = 10
		req.PathCount = 3

		res, err := Simulate(req)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.model, err)
		}
		if res.Days != 10 || res.Paths != 3 {
			t.Fatalf("%s: shape %dx%d", tc.model, res.Days, res.Paths)
		}
	}
}

func TestSimulateResultScalars(t *testing.T) {
	req := validRequest()
	res, err := Simulate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.InitialPrice != req.InitialPrice || res.Drift != req.Params.Drift || res.Volatility != req.Params.Volatility {
		t.Fatalf("summary scalars not carried through: %+v", res)
	}
}

func TestSimulateJumpDiffusionWithoutParameters(t *testing.T) {
	req := validRequest()
	req.Model = models.JumpDiffusion
	req.Jump = nil

	if _, err := Simulate(req); !errors.Is(err, ErrUnsupportedModel) {
		t.Fatalf("expected ErrUnsupportedModel, got %v", err)
	}
}

func TestSimulateUnknownModelTag(t *testing.T) {
	req := validRequest()
	req.Model = models.Model("cauchy")

	if _, err := Simulate(req); !errors.Is(err, models.ErrInvalidModel) {
		t.Fatalf("expected ErrInvalidModel, got %v", err)
	}
}

func TestSimulateInvalidRequest(t *testing.T) {
	for name, mutate := range map[string]func(*Request){
		"zero initial price":    func(r *Request) { r.InitialPrice = 0 },
		"negative price":        func(r *Request) { r.InitialPrice = -5 },
		"zero horizon":          func(r *Request) { r.HorizonDays = 0 },
		"zero paths":            func(r *Request) { r.PathCount = 0 },
		"inverted clamp bounds": func(r *Request) { r.PriceFloor = 10; r.PriceCap = 1 },
	} {
		req := validRequest()
		mutate(&req)
		if _, err := Simulate(req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("%s: expected ErrInvalidRequest, got %v", name, err)
		}
	}
}

func TestSimulateCustomClampBounds(t *testing.T) {
	req := validRequest()
	req.HorizonDays = 40
	req.PathCount = 10
	// Bounds tight enough that most values saturate.
	req.PriceFloor = 101
	req.PriceCap = 103

	res, err := Simulate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for p := 0; p < res.Paths; p++ {
		for d := 0; d < res.Days; d++ {
			v := res.At(d, p)
			if v < 101 || v > 103 {
				t.Fatalf("value %v escaped clamp range [101, 103]", v)
			}
		}
	}
}

func TestPathMatrixCopies(t *testing.T) {
	req := validRequest()
	req.PathCount = 2

	res, err := Simulate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := res.PathMatrix()
	if len(m) != 2 || len(m[0]) != req.HorizonDays {
		t.Fatalf("matrix shape: %dx%d", len(m), len(m[0]))
	}
	m[0][0] = -1
	if res.At(0, 0) == -1 {
		t.Fatal("PathMatrix must not alias the result buffer")
	}
}
