// Package metrics exposes Prometheus instruments for the summarization pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "meeting_digest"

// Collector owns a private registry. A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	generationCalls    *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	reductionLevels    prometheus.Histogram
	filesProcessed     *prometheus.CounterVec
}

func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		generationCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generation_calls_total",
				Help:      "Generation backend calls by prompt role and outcome.",
			},
			[]string{"role", "status"},
		),
		generationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Generation backend call latency.",
				Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"role"},
		),
		reductionLevels: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "reduction_levels",
				Help:      "Re-chunking levels needed per completed reduction.",
				Buckets:   []float64{0, 1, 2, 3, 4, 6, 8},
			},
		),
		filesProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_processed_total",
				Help:      "Media files processed by outcome.",
			},
			[]string{"status"},
		),
	}
}

func (c *Collector) ObserveGeneration(role, status string, d time.Duration) {
	if c == nil {
		return
	}
	c.generationCalls.WithLabelValues(role, status).Inc()
	c.generationDuration.WithLabelValues(role).Observe(d.Seconds())
}

func (c *Collector) ObserveReduction(levels int) {
	if c == nil {
		return
	}
	c.reductionLevels.Observe(float64(levels))
}

func (c *Collector) FileProcessed(status string) {
	if c == nil {
		return
	}
	c.filesProcessed.WithLabelValues(status).Inc()
}

// Registry is exposed for tests and custom exporters.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
