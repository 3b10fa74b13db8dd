package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Host operation labels.
const (
	OpCreate      = "create"
	OpInsert      = "insert"
	OpMove        = "move"
	OpRemove      = "remove"
	OpSetText     = "set_text"
	OpSetProperty = "set_property"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "reconcile").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush duration.
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
		Namespace: "reconcile",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors.
type Metrics struct {
	hostOps       *prometheus.CounterVec
	renders       prometheus.Counter
	flushes       prometheus.Counter
	flushDuration prometheus.Histogram
	jobs          *prometheus.CounterVec
	instances     prometheus.Gauge
	cache         *prometheus.CounterVec
}

// NewMetrics registers the collectors. With the default registerer it must
// be called once per process; pass WithRegistry for additional instances.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		hostOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "host_ops_total",
			Help:        "Host tree mutations by operation",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		renders: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Top-level render calls",
			ConstLabels: config.ConstLabels,
		}),

		flushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Scheduler flushes",
			ConstLabels: config.ConstLabels,
		}),

		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Time spent running one batch of scheduled jobs",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		jobs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "jobs_total",
			Help:        "Scheduled jobs run, by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		instances: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_instances",
			Help:        "Live component instances",
			ConstLabels: config.ConstLabels,
		}),

		cache: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "keepalive_cache_total",
			Help:        "Keep-alive cache lookups and evictions",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),
	}
}

// HostOp counts one host mutation.
func (m *Metrics) HostOp(op string) {
	if m == nil {
		return
	}
	m.hostOps.WithLabelValues(op).Inc()
}

// Render counts one top-level render.
func (m *Metrics) Render() {
	if m == nil {
		return
	}
	m.renders.Inc()
}

// Flush records one scheduler flush.
func (m *Metrics) Flush(d time.Duration) {
	if m == nil {
		return
	}
	m.flushes.Inc()
	m.flushDuration.Observe(d.Seconds())
}

// Job records the outcome of one scheduled job.
func (m *Metrics) Job(panicked bool) {
	if m == nil {
		return
	}
	status := "ok"
	if panicked {
		status = "panic"
	}
	m.jobs.WithLabelValues(status).Inc()
}

// InstanceMounted increments the live instance gauge.
func (m *Metrics) InstanceMounted() {
	if m == nil {
		return
	}
	m.instances.Inc()
}

// InstanceUnmounted decrements the live instance gauge.
func (m *Metrics) InstanceUnmounted() {
	if m == nil {
		return
	}
	m.instances.Dec()
}

// Cache records a keep-alive cache event: "hit", "miss" or "evict".
func (m *Metrics) Cache(result string) {
	if m == nil {
		return
	}
	m.cache.WithLabelValues(result).Inc()
}
