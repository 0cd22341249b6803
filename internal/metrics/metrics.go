// Package metrics defines the Prometheus collectors recorded by the store and
// the main screen.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	storeOps      *prometheus.CounterVec
	storeDuration *prometheus.HistogramVec
	locations     prometheus.Gauge
	uiEvents      *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geopins_store_operations_total",
			Help: "Store operations by operation and result.",
		}, []string{"operation", "result"}),
		storeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geopins_store_operation_duration_seconds",
			Help:    "Latency of store operations.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"operation"}),
		locations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "geopins_locations",
			Help: "Number of locations loaded on the last reload.",
		}),
		uiEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geopins_ui_events_total",
			Help: "Main screen events dispatched, by kind.",
		}, []string{"event"}),
	}

	m.registry.MustRegister(
		m.storeOps,
		m.storeDuration,
		m.locations,
		m.uiEvents,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveStore records one store operation. err decides the result label.
func (m *Metrics) ObserveStore(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.storeOps.WithLabelValues(operation, result).Inc()
	m.storeDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// SetLocations records the size of the last loaded list.
func (m *Metrics) SetLocations(n int) {
	if m == nil {
		return
	}
	m.locations.Set(float64(n))
}

// CountEvent records one dispatched UI event.
func (m *Metrics) CountEvent(kind string) {
	if m == nil {
		return
	}
	m.uiEvents.WithLabelValues(kind).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
