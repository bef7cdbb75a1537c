package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"stocast/config"
	"stocast/marketdata"
	"stocast/models"
	"stocast/simulation"
)

var validate = validator.New()

// SimulateHandler wires the market-data provider into the simulation engine
// behind a single HTTP operation.
type SimulateHandler struct {
	provider marketdata.Provider
	cfg      *config.Config
	log      zerolog.Logger
}

func NewSimulateHandler(provider marketdata.Provider, cfg *config.Config, log zerolog.Logger) *SimulateHandler {
	return &SimulateHandler{provider: provider, cfg: cfg, log: log}
}

func (h *SimulateHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/simulate", h.Simulate)
}

type simulateRequest struct {
	Symbol       string  `json:"symbol" validate:"required,min=1,max=12"`
	StartDate    string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	LookbackDays int     `json:"lookback_days" default:"21" validate:"gt=0,lte=2520"`
	Model        string  `json:"model" default:"lognormal"`
	Simulations  int     `json:"simulations" default:"30" validate:"gt=0,lte=100000"`
	HorizonDays  int     `json:"horizon_days" default:"252" validate:"gt=0,lte=2520"`
	Seed         *uint64 `json:"seed"`
}

type simulateResponse struct {
	Symbol       string                 `json:"symbol"`
	Model        string                 `json:"model"`
	InitialPrice float64                `json:"initial_price"`
	Drift        float64                `json:"drift"`
	Volatility   float64                `json:"volatility"`
	HorizonDays  int                    `json:"horizon_days"`
	Paths        int                    `json:"paths"`
	Jump         *models.JumpParameters `json:"jump_parameters,omitempty"`
	Prices       [][]float64            `json:"prices"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Simulate handles POST /api/simulate: fetch history, estimate parameters,
// calibrate jumps when requested, and generate the path matrix.
func (h *SimulateHandler) Simulate(c echo.Context) error {
	start := time.Now()

	req := &simulateRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
	}
	if err := defaults.Set(req); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	if err := validate.StructCtx(c.Request().Context(), req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	model, err := models.ParseModel(req.Model)
	if err != nil {
		simulationsTotal.WithLabelValues(req.Model, "invalid").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	symbol := strings.ToUpper(req.Symbol)
	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	prices, err := h.provider.DailyHistory(c.Request().Context(), symbol, startDate, endDate)
	if err != nil {
		h.log.Error().Err(err).Str("symbol", symbol).Msg("market data fetch failed")
		simulationsTotal.WithLabelValues(model.String(), "provider_error").Inc()
		return c.JSON(http.StatusBadGateway, errorResponse{Error: fmt.Sprintf("market data unavailable for %s", symbol)})
	}

	params, err := models.EstimateParameters(prices, req.LookbackDays)
	if err != nil {
		simulationsTotal.WithLabelValues(model.String(), "estimation_error").Inc()
		return c.JSON(statusFor(err), errorResponse{Error: err.Error()})
	}

	var jump *models.JumpParameters
	if model == models.JumpDiffusion {
		calibrated, err := models.CalibrateJumpParameters(models.Returns(prices))
		if err != nil {
			simulationsTotal.WithLabelValues(model.String(), "calibration_error").Inc()
			return c.JSON(statusFor(err), errorResponse{Error: err.Error()})
		}
		jump = &calibrated
	}

	seed := h.cfg.Simulation.Seed
	if req.Seed != nil {
		seed = *req.Seed
	}

	result, err := simulation.Simulate(simulation.Request{
		InitialPrice: prices[len(prices)-1].AdjClose,
		Params:       params,
		Model:        model,
		Jump:         jump,
		HorizonDays:  req.HorizonDays,
		PathCount:    req.Simulations,
		Seed:         seed,
		PriceFloor:   h.cfg.Simulation.PriceFloor,
		PriceCap:     h.cfg.Simulation.PriceCap,
		Workers:      h.cfg.Simulation.Workers,
	})
	if err != nil {
		simulationsTotal.WithLabelValues(model.String(), "simulation_error").Inc()
		return c.JSON(statusFor(err), errorResponse{Error: err.Error()})
	}

	simulationsTotal.WithLabelValues(model.String(), "ok").Inc()
	simulationDuration.WithLabelValues(model.String()).Observe(time.Since(start).Seconds())
	simulatedPaths.Add(float64(result.Paths))

	h.log.Info().
		Str("symbol", symbol).
		Str("model", model.String()).
		Int("paths", result.Paths).
		Int("horizon_days", result.Days).
		Dur("elapsed", time.Since(start)).
		Msg("simulation complete")

	return c.JSON(http.StatusOK, simulateResponse{
		Symbol:       symbol,
		Model:        model.String(),
		InitialPrice: result.InitialPrice,
		Drift:        result.Drift,
		Volatility:   result.Volatility,
		HorizonDays:  result.Days,
		Paths:        result.Paths,
		Jump:         jump,
		Prices:       result.PathMatrix(),
	})
}

// statusFor maps engine errors onto HTTP statuses: bad parameters are the
// caller's fault, unusable history is unprocessable.
func statusFor(err error) int {
	switch {
	case errors.Is(err, simulation.ErrInvalidRequest),
		errors.Is(err, simulation.ErrUnsupportedModel),
		errors.Is(err, models.ErrInvalidModel):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInsufficientData),
		errors.Is(err, models.ErrNoPositiveReturns):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
