// Package metrics provides Prometheus metrics for plan generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cabinetry_generations_total",
			Help: "Total number of output generations",
		},
		[]string{"source", "status"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cabinetry_generation_duration_seconds",
			Help:    "Time taken to generate and store outputs",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"source"},
	)

	RowsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cabinetry_rows_generated_total",
			Help: "Total output rows produced, by output type",
		},
		[]string{"output"},
	)

	GrandTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cabinetry_last_grand_total",
			Help: "Material grand total of the latest generation per project",
		},
		[]string{"project"},
	)
)

// Generation records the outcome of one generate call. source is
// "project" for stored generations and "compute" for stateless ones.
type Generation struct {
	Source   string
	Status   string
	Duration time.Duration
	Panels   int
	Doors    int
	Hardware int
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

func RecordGeneration(g Generation) {
	GenerationsTotal.WithLabelValues(g.Source, g.Status).Inc()
	GenerationDuration.WithLabelValues(g.Source).Observe(g.Duration.Seconds())
	if g.Status != StatusSuccess {
		return
	}
	RowsGenerated.WithLabelValues("cut_list").Add(float64(g.Panels))
	RowsGenerated.WithLabelValues("door_schedule").Add(float64(g.Doors))
	RowsGenerated.WithLabelValues("hardware_schedule").Add(float64(g.Hardware))
}

func SetGrandTotal(project string, total float64) {
	GrandTotal.WithLabelValues(project).Set(total)
}
