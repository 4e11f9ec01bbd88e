// Package telemetry exports run progress as Prometheus metrics.
package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/inference-sim/gridsir/sim"
)

// Registry holds the simulator's Prometheus collectors on a private
// registry, so several runs in one process do not collide.
type Registry struct {
	Population   *prometheus.GaugeVec
	StepsTotal   prometheus.Counter
	StepDuration prometheus.Histogram
	AttackRate   prometheus.Gauge
	CurrentStep  prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a Registry with all collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Registry{
		Population: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gridsir_population",
				Help: "Number of agents in each health state",
			},
			[]string{"state"},
		),
		StepsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gridsir_steps_total",
				Help: "Total number of simulation steps executed",
			},
		),
		StepDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gridsir_step_duration_seconds",
				Help:    "Wall-clock time spent computing one step",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
			},
		),
		AttackRate: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "gridsir_attack_rate",
				Help: "Fraction of the population infected at some point",
			},
		),
		CurrentStep: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "gridsir_current_step",
				Help: "Index of the most recently completed step",
			},
		),
		registry: reg,
	}
}

// ObserveStep implements sim.StepObserver. Step 0 sets the gauges without
// counting a step.
func (r *Registry) ObserveStep(step int64, stats sim.PopulationStats, elapsed time.Duration) {
	for _, s := range sim.AllStates {
		r.Population.WithLabelValues(s.String()).Set(float64(stats.Get(s)))
	}
	r.CurrentStep.Set(float64(step))
	if total := stats.Total(); total > 0 {
		r.AttackRate.Set(float64(total-stats.Susceptible) / float64(total))
	}
	if step > 0 {
		r.StepsTotal.Inc()
		r.StepDuration.Observe(elapsed.Seconds())
	}
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the current values in the text exposition format,
// for node_exporter's textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
