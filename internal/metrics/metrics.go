// Package metrics provides Prometheus metrics for metastore
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for metastore
type Metrics struct {
	// HTTP request metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Session metrics
	SessionsLive         prometheus.Gauge
	SessionsCreatedTotal prometheus.Counter

	// Container operation metrics
	ContainerOpsTotal *prometheus.CounterVec
	ContainerNames    prometheus.Histogram

	// Date normalization metrics
	DateParsesTotal *prometheus.CounterVec

	// Server metrics
	ServerUptimeSeconds prometheus.Gauge
	ServerStartTime     time.Time
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		ServerStartTime: time.Now(),
	}

	m.HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metastore_http_requests_total",
			Help: "Total number of HTTP API requests",
		},
		[]string{"method", "route", "status"},
	)

	m.HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "metastore_http_request_duration_seconds",
			Help:    "Duration of HTTP API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	m.HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "metastore_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	m.SessionsLive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "metastore_sessions_live",
			Help: "Number of metadata sessions currently held in memory",
		},
	)

	m.SessionsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metastore_sessions_created_total",
			Help: "Total number of metadata sessions created",
		},
	)

	m.ContainerOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metastore_container_operations_total",
			Help: "Total number of container operations",
		},
		[]string{"operation", "status"},
	)

	m.ContainerNames = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "metastore_container_names",
			Help:    "Distinct name count of containers at session teardown",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	m.DateParsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metastore_date_parses_total",
			Help: "Total number of date normalization attempts",
		},
		[]string{"status"},
	)

	m.ServerUptimeSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "metastore_server_uptime_seconds",
			Help: "Server uptime in seconds",
		},
	)

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime periodically updates the server uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.ServerUptimeSeconds.Set(time.Since(m.ServerStartTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP API request with its status
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordContainerOp records a container operation
func (m *Metrics) RecordContainerOp(operation, status string) {
	m.ContainerOpsTotal.WithLabelValues(operation, status).Inc()
}

// RecordDateParse records a date normalization attempt
func (m *Metrics) RecordDateParse(ok bool) {
	status := "ok"
	if !ok {
		status = "unparseable"
	}
	m.DateParsesTotal.WithLabelValues(status).Inc()
}

// RecordSessionEnd records session teardown statistics
func (m *Metrics) RecordSessionEnd(nameCount int) {
	m.ContainerNames.Observe(float64(nameCount))
	m.SessionsLive.Dec()
}

var (
	defaultMetrics *Metrics
	defaultOnce    sync.Once
)

// Default returns the process-wide metric set. promauto registration is
// global, so repeated NewMetrics calls in one process would panic; shared
// consumers go through Default instead.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = NewMetrics()
	})
	return defaultMetrics
}
