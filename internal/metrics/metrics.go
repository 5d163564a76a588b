package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Availability outcomes.
const (
	OutcomeSlots = "slots"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	availability      *prometheus.CounterVec
	availabilitySlots prometheus.Histogram
	cacheLookups      *prometheus.CounterVec
	transitions       *prometheus.CounterVec
}

func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "HTTP requests by route, method and status.",
			ConstLabels: labels,
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"route", "method"}),
		availability: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_queries_total",
			Help:        "Availability queries by outcome.",
			ConstLabels: labels,
		}, []string{"outcome"}),
		availabilitySlots: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "availability_slots",
			Help:        "Number of slots returned per availability query.",
			ConstLabels: labels,
			Buckets:     []float64{0, 1, 2, 4, 8, 12, 16, 24, 32, 48},
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_cache_lookups_total",
			Help:        "Availability cache lookups by result.",
			ConstLabels: labels,
		}, []string{"result"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_transitions_total",
			Help:        "Appointment status changes by target status.",
			ConstLabels: labels,
		}, []string{"status"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.availability,
		m.availabilitySlots,
		m.cacheLookups,
		m.transitions,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// All recorders are nil-safe so callers can run without metrics.

func (m *Metrics) ObserveHTTP(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

func (m *Metrics) ObserveAvailability(outcome string, slots int) {
	if m == nil {
		return
	}
	m.availability.WithLabelValues(outcome).Inc()
	if outcome != OutcomeError {
		m.availabilitySlots.Observe(float64(slots))
	}
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveTransition(status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(status).Inc()
}
