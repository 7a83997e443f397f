// Package metrics exposes Prometheus metrics for the billing engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/davidbz/chargeflow/internal/domain"
)

const namespace = "chargeflow"

// Collector holds all Prometheus metrics and implements domain.MetricsRecorder.
type Collector struct {
	registry *prometheus.Registry

	// Engine metrics
	ComputationsTotal   *prometheus.CounterVec
	ComputationDuration *prometheus.HistogramVec
	TrueUpsTotal        *prometheus.CounterVec

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates a collector on its own registry, with Go runtime and process metrics.
func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg)
}

// NewWithRegistry creates a collector registered with reg.
func NewWithRegistry(reg *prometheus.Registry) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		ComputationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fee_computations_total",
				Help:      "Total number of charge model computations by outcome",
			},
			[]string{"charge_model", "outcome"},
		),
		ComputationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fee_computation_duration_seconds",
				Help:      "Charge model computation duration in seconds",
				Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
			},
			[]string{"charge_model"},
		),
		TrueUpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "true_ups_total",
				Help:      "Total number of true-up fees issued",
			},
			[]string{"charge_model"},
		),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests processed",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
	}
}

// ObserveComputation records one charge model run.
func (c *Collector) ObserveComputation(kind domain.ChargeModelKind, outcome string, duration time.Duration) {
	c.ComputationsTotal.WithLabelValues(string(kind), outcome).Inc()
	c.ComputationDuration.WithLabelValues(string(kind)).Observe(duration.Seconds())
}

// IncTrueUp counts an issued true-up fee.
func (c *Collector) IncTrueUp(kind domain.ChargeModelKind) {
	c.TrueUpsTotal.WithLabelValues(string(kind)).Inc()
}

// ObserveRequest records one served HTTP request.
func (c *Collector) ObserveRequest(method, path string, status int, duration time.Duration) {
	c.RequestsTotal.WithLabelValues(method, path, statusClass(status)).Inc()
	c.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// statusClass keeps label cardinality low: 200 -> "2xx".
func statusClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}

var _ domain.MetricsRecorder = (*Collector)(nil)
