package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "work_tracker"

// Metrics owns the collectors for domain events and HTTP traffic.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	taskOperations      *prometheus.CounterVec
	authorizationDenied *prometheus.CounterVec
	timeLogOperations   *prometheus.CounterVec
	attendanceEntries   *prometheus.CounterVec
	attendanceRejected  *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInFlight prometheus.Gauge
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		taskOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_operations_total",
			Help:      "Successful task mutations by operation",
		}, []string{"operation"}),
		authorizationDenied: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authorization_denied_total",
			Help:      "Operations rejected by the task authorization guard or ownership checks",
		}, []string{"operation"}),
		timeLogOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "time_log_operations_total",
			Help:      "Successful time log mutations by operation",
		}, []string{"operation"}),
		attendanceEntries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attendance_entries_total",
			Help:      "Attendance entries appended by type",
		}, []string{"entry_type"}),
		attendanceRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attendance_rejected_total",
			Help:      "Clock in/out attempts rejected for the wrong day state",
		}, []string{"entry_type"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.3, 1, 3},
		}, []string{"method", "route"}),
		httpInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "Current number of in-flight HTTP requests",
		}),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) TaskOperation(operation string) {
	if m == nil {
		return
	}
	m.taskOperations.WithLabelValues(operation).Inc()
}

func (m *Metrics) AuthorizationDenied(operation string) {
	if m == nil {
		return
	}
	m.authorizationDenied.WithLabelValues(operation).Inc()
}

func (m *Metrics) TimeLogOperation(operation string) {
	if m == nil {
		return
	}
	m.timeLogOperations.WithLabelValues(operation).Inc()
}

func (m *Metrics) AttendanceRecorded(entryType string) {
	if m == nil {
		return
	}
	m.attendanceEntries.WithLabelValues(entryType).Inc()
}

func (m *Metrics) AttendanceRejected(entryType string) {
	if m == nil {
		return
	}
	m.attendanceRejected.WithLabelValues(entryType).Inc()
}
