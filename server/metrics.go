package server

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	simulationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stocast_simulations_total",
			Help: "Total number of simulation requests handled",
		},
		[]string{"model", "status"},
	)

	simulationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stocast_simulation_duration_seconds",
			Help:    "Wall-clock duration of end-to-end simulation requests",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	simulatedPaths = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stocast_simulated_paths_total",
			Help: "Total number of price paths generated",
		},
	)

	regOnce sync.Once
)

func registerMetrics() {
	regOnce.Do(func() {
		prometheus.MustRegister(simulationsTotal, simulationDuration, simulatedPaths)
	})
}
