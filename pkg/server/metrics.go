package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "inertia").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "inertia",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the server collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry prometheus.Registerer

	ssrTotal          *prometheus.CounterVec
	ssrDuration       *prometheus.HistogramVec
	jsonResponses     *prometheus.CounterVec
	versionConflicts  prometheus.Counter
	activeSessions    prometheus.Gauge
	handshakeFailures prometheus.Counter
	visitsTotal       *prometheus.CounterVec
	swapsTotal        prometheus.Counter
}

// NewMetrics registers the server collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		registry: config.Registry,

		ssrTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "ssr_renders_total",
			Help:        "Total number of server-side page renders",
			ConstLabels: config.ConstLabels,
		}, []string{"component", "status"}),

		ssrDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "ssr_duration_seconds",
			Help:        "Server-side page render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"component"}),

		jsonResponses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "json_responses_total",
			Help:        "Total number of page payloads answered as JSON",
			ConstLabels: config.ConstLabels,
		}, []string{"component", "partial"}),

		versionConflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "version_conflicts_total",
			Help:        "Total number of requests rejected for a stale asset version",
			ConstLabels: config.ConstLabels,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_sessions_active",
			Help:        "Number of connected live sessions",
			ConstLabels: config.ConstLabels,
		}),

		handshakeFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_handshake_failures_total",
			Help:        "Total number of rejected live session handshakes",
			ConstLabels: config.ConstLabels,
		}),

		visitsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_visits_total",
			Help:        "Total number of live session visits",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		swapsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_swaps_total",
			Help:        "Total number of swap frames sent to live sessions",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m != nil {
		if g, ok := m.registry.(prometheus.Gatherer); ok {
			return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
		}
	}
	return promhttp.Handler()
}

func (m *Metrics) recordSSR(component string, seconds float64, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.ssrTotal.WithLabelValues(component, status).Inc()
	m.ssrDuration.WithLabelValues(component).Observe(seconds)
}

func (m *Metrics) recordJSON(component string, partial bool) {
	if m == nil {
		return
	}
	p := "false"
	if partial {
		p = "true"
	}
	m.jsonResponses.WithLabelValues(component, p).Inc()
}

func (m *Metrics) recordVersionConflict() {
	if m != nil {
		m.versionConflicts.Inc()
	}
}

func (m *Metrics) sessionOpened() {
	if m != nil {
		m.activeSessions.Inc()
	}
}

func (m *Metrics) sessionClosed() {
	if m != nil {
		m.activeSessions.Dec()
	}
}

func (m *Metrics) recordHandshakeFailure() {
	if m != nil {
		m.handshakeFailures.Inc()
	}
}

func (m *Metrics) recordVisit(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.visitsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) recordSwap() {
	if m != nil {
		m.swapsTotal.Inc()
	}
}
