package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics. Each instance owns its registry, so
// tests and embedded hosts can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics (development host)
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Bridge metrics
	BridgeCalls    *prometheus.CounterVec
	BridgeDuration *prometheus.HistogramVec
	BridgeQueued   prometheus.Counter
	BridgeAttached prometheus.Gauge

	// Push feed metrics
	Pushes     prometheus.Counter
	LogEntries prometheus.Counter
	LogBuffer  prometheus.Gauge

	// Mutation metrics
	Mutations    *prometheus.CounterVec
	UndoOutcomes *prometheus.CounterVec

	// Dialog metrics
	Dialogs *prometheus.CounterVec

	// Development host metrics
	HostCalls     *prometheus.CounterVec
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec
}

// NewMetrics creates a metrics collector with a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ignition_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ignition_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),

		BridgeCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ignition_bridge_calls_total",
				Help: "Remote operations issued through the bridge",
			},
			[]string{"op", "outcome"},
		),
		BridgeDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ignition_bridge_call_duration_seconds",
				Help:    "Remote operation latency including time spent queued",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"op"},
		),
		BridgeQueued: f.NewCounter(
			prometheus.CounterOpts{
				Name: "ignition_bridge_queued_calls_total",
				Help: "Calls issued before the bridge attached",
			},
		),
		BridgeAttached: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "ignition_bridge_attached",
				Help: "1 once the bridge has attached",
			},
		),

		Pushes: f.NewCounter(
			prometheus.CounterOpts{
				Name: "ignition_pushes_total",
				Help: "Status pushes received from the host",
			},
		),
		LogEntries: f.NewCounter(
			prometheus.CounterOpts{
				Name: "ignition_log_entries_total",
				Help: "Activity log entries received from the host",
			},
		),
		LogBuffer: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "ignition_log_buffer_entries",
				Help: "Entries currently held in the local log buffer",
			},
		),

		Mutations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ignition_mutations_total",
				Help: "User mutations by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		UndoOutcomes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ignition_undo_total",
				Help: "Undo offers by outcome (offered, taken, expired, superseded)",
			},
			[]string{"outcome"},
		),

		Dialogs: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ignition_dialogs_total",
				Help: "Dialog requests by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),

		HostCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ignition_host_calls_total",
				Help: "Operations served by the development host",
			},
			[]string{"op", "outcome"},
		),
		WSConnections: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "ignition_ws_connections_active",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ignition_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// All Record methods accept a nil receiver so components can run without
// metrics wired.

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordBridgeCall records a completed remote operation
func (m *Metrics) RecordBridgeCall(op, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.BridgeCalls.WithLabelValues(op, outcome).Inc()
	m.BridgeDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// IncQueued counts a call parked behind the readiness gate
func (m *Metrics) IncQueued() {
	if m == nil {
		return
	}
	m.BridgeQueued.Inc()
}

// SetAttached marks the bridge as attached
func (m *Metrics) SetAttached() {
	if m == nil {
		return
	}
	m.BridgeAttached.Set(1)
}

// RecordPush records a push and the entries it carried
func (m *Metrics) RecordPush(entries, buffered int) {
	if m == nil {
		return
	}
	m.Pushes.Inc()
	m.LogEntries.Add(float64(entries))
	m.LogBuffer.Set(float64(buffered))
}

// SetLogBuffer records the local log buffer size
func (m *Metrics) SetLogBuffer(n int) {
	if m == nil {
		return
	}
	m.LogBuffer.Set(float64(n))
}

// RecordMutation records a user mutation
func (m *Metrics) RecordMutation(kind, outcome string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(kind, outcome).Inc()
}

// RecordUndo records an undo lifecycle event
func (m *Metrics) RecordUndo(outcome string) {
	if m == nil {
		return
	}
	m.UndoOutcomes.WithLabelValues(outcome).Inc()
}

// RecordDialog records a dialog outcome
func (m *Metrics) RecordDialog(kind, outcome string) {
	if m == nil {
		return
	}
	m.Dialogs.WithLabelValues(kind, outcome).Inc()
}

// RecordHostCall records an operation served by the development host
func (m *Metrics) RecordHostCall(op, outcome string) {
	if m == nil {
		return
	}
	m.HostCalls.WithLabelValues(op, outcome).Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	if m == nil {
		return
	}
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Dec()
}
