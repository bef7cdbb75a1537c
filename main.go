package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/cpu"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
	"github.com/xhhuango/json"

	"stocast/config"
	"stocast/marketdata"
	"stocast/models"
	"stocast/server"
	"stocast/simulation"
)

type symbolResult struct {
	Symbol       string                 `json:"symbol"`
	Model        string                 `json:"model"`
	InitialPrice float64                `json:"initial_price"`
	Drift        float64                `json:"drift"`
	Volatility   float64                `json:"volatility"`
	HorizonDays  int                    `json:"horizon_days"`
	Paths        int                    `json:"paths"`
	Jump         *models.JumpParameters `json:"jump_parameters,omitempty"`
	Prices       [][]float64            `json:"prices,omitempty"`
	Error        string                 `json:"error,omitempty"`
}

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to YAML config file")
	serve := flag.Bool("serve", false, "run the HTTP API instead of a one-shot batch")
	symbolsFlag := flag.String("symbols", "", "comma-separated symbols (overrides config)")
	modelFlag := flag.String("model", "", "lognormal, normal, or jump_diffusion (overrides config)")
	startFlag := flag.String("start", "", "history start date YYYY-MM-DD (default: one year ago)")
	endFlag := flag.String("end", "", "history end date YYYY-MM-DD (default: today)")
	outFlag := flag.String("out", "", "write batch results to this file instead of stdout")
	fullFlag := flag.Bool("full", false, "include the full path matrix in batch output")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *modelFlag != "" {
		cfg.Simulation.Model = *modelFlag
	}
	if _, err := models.ParseModel(cfg.Simulation.Model); err != nil {
		log.Fatalf("config: %v", err)
	}

	token := os.Getenv("TIINGO_TOKEN")
	if token == "" {
		log.Fatal("TIINGO_TOKEN is not set")
	}
	client := marketdata.NewClient(cfg.MarketData.BaseURL, token, cfg.MarketData.Timeout)

	if *serve {
		runServer(cfg, client)
		return
	}

	symbols := cfg.Symbols
	if *symbolsFlag != "" {
		symbols = strings.Split(strings.ToUpper(*symbolsFlag), ",")
	}
	if len(symbols) == 0 {
		log.Fatal("no symbols to simulate: set symbols in config or pass -symbols")
	}

	end := time.Now()
	if *endFlag != "" {
		if end, err = time.Parse("2006-01-02", *endFlag); err != nil {
			log.Fatalf("bad -end date: %v", err)
		}
	}
	start := end.AddDate(-1, 0, 0)
	if *startFlag != "" {
		if start, err = time.Parse("2006-01-02", *startFlag); err != nil {
			log.Fatalf("bad -start date: %v", err)
		}
	}

	results := runBatch(cfg, client, symbols, start, end, *fullFlag)

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatalf("marshal results: %v", err)
	}
	if *outFlag != "" {
		if err := os.WriteFile(*outFlag, out, 0o644); err != nil {
			log.Fatalf("write results: %v", err)
		}
		fmt.Printf("Wrote %d results to %s\n", len(results), *outFlag)
		return
	}
	fmt.Println(string(out))
}

// runBatch simulates every symbol concurrently, one worker per CPU, with a
// progress bar across the batch.
func runBatch(cfg *config.Config, provider marketdata.Provider, symbols []string, start, end time.Time, full bool) []symbolResult {
	workers := runtime.GOMAXPROCS(0)
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		workers = n
	}
	if workers > len(symbols) {
		workers = len(symbols)
	}
	fmt.Printf("Simulating %d symbols (%s) using %d workers\n", len(symbols), cfg.Simulation.Model, workers)

	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(int64(len(symbols)),
		mpb.PrependDecorators(
			decor.Name("Progress"),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
		),
	)

	jobs := make(chan string)
	results := make([]symbolResult, 0, len(symbols))

	var wg sync.WaitGroup
	var mu sync.Mutex
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobs {
				res := simulateSymbol(cfg, provider, symbol, start, end, full)
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
				bar.Increment()
			}
		}()
	}
	for _, s := range symbols {
		jobs <- s
	}
	close(jobs)
	wg.Wait()
	p.Wait()

	return results
}

func simulateSymbol(cfg *config.Config, provider marketdata.Provider, symbol string, start, end time.Time, full bool) symbolResult {
	res := symbolResult{Symbol: symbol, Model: cfg.Simulation.Model}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MarketData.Timeout)
	defer cancel()

	prices, err := provider.DailyHistory(ctx, symbol, start, end)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	params, err := models.EstimateParameters(prices, cfg.Simulation.LookbackDays)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	model := models.Model(cfg.Simulation.Model)
	var jump *models.JumpParameters
	if model == models.JumpDiffusion {
		calibrated, err := models.CalibrateJumpParameters(models.Returns(prices))
		if err != nil {
			res.Error = err.Error()
			return res
		}
		jump = &calibrated
	}

	result, err := simulation.Simulate(simulation.Request{
		InitialPrice: prices[len(prices)-1].AdjClose,
		Params:       params,
		Model:        model,
		Jump:         jump,
		HorizonDays:  cfg.Simulation.HorizonDays,
		PathCount:    cfg.Simulation.Paths,
		Seed:         cfg.Simulation.Seed,
		PriceFloor:   cfg.Simulation.PriceFloor,
		PriceCap:     cfg.Simulation.PriceCap,
		Workers:      cfg.Simulation.Workers,
	})
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.InitialPrice = result.InitialPrice
	res.Drift = result.Drift
	res.Volatility = result.Volatility
	res.HorizonDays = result.Days
	res.Paths = result.Paths
	res.Jump = jump
	if full {
		res.Prices = result.PathMatrix()
	}
	return res
}

func runServer(cfg *config.Config, provider marketdata.Provider) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Environment == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	srv := server.New(cfg, logger, provider)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
	}
}
