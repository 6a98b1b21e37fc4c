// Package metrics exports dispatch engine and HTTP metrics through a dedicated
// Prometheus registry.
package metrics

import (
	"strconv"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "parceltrack"

// Metrics implements ports.EngineRecorder and carries the HTTP collectors.
type Metrics struct {
	registry *prometheus.Registry

	parcelsAccepted   *prometheus.CounterVec
	dispatches        *prometheus.CounterVec
	candidates        prometheus.Histogram
	dispatchFailures  *prometheus.CounterVec
	roadBlockages     prometheus.Counter
	statusTransitions *prometheus.CounterVec
	undos             *prometheus.CounterVec
	queueDepth        prometheus.Gauge

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them, with the Go and process
// collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		parcelsAccepted: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "parcels_accepted_total", Help: "Parcels accepted at intake by destination zone."},
			[]string{"zone"},
		),
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "dispatches_total", Help: "Completed dispatches by whether a blockage forced a reroute."},
			[]string{"rerouted"},
		),
		candidates: prometheus.NewHistogram(
			prometheus.HistogramOpts{Namespace: namespace, Name: "dispatch_candidate_paths", Help: "Candidate paths offered per dispatch.", Buckets: []float64{1, 2, 3, 4, 5}},
		),
		dispatchFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "dispatch_failures_total", Help: "Dispatch attempts that shipped nothing, by reason."},
			[]string{"reason"},
		),
		roadBlockages: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "road_blockages_total", Help: "Roads closed by live blockages."},
		),
		statusTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "status_transitions_total", Help: "Parcel status changes."},
			[]string{"from", "to"},
		),
		undos: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "undo_total", Help: "Undone actions by kind."},
			[]string{"action"},
		),
		queueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{Namespace: namespace, Name: "dispatch_queue_depth", Help: "Parcels waiting in the warehouse queue."},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
			[]string{"method", "path", "status"},
		),
	}

	m.registry.MustRegister(
		m.parcelsAccepted,
		m.dispatches,
		m.candidates,
		m.dispatchFailures,
		m.roadBlockages,
		m.statusTransitions,
		m.undos,
		m.queueDepth,
		m.HTTPRequests,
		m.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry to expose on /metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ParcelAccepted counts an intake by destination zone.
func (m *Metrics) ParcelAccepted(zone string) {
	m.parcelsAccepted.WithLabelValues(zone).Inc()
}

// ParcelDispatched counts a dispatch and observes how many routes were offered.
func (m *Metrics) ParcelDispatched(candidates int, rerouted bool) {
	m.dispatches.WithLabelValues(strconv.FormatBool(rerouted)).Inc()
	m.candidates.Observe(float64(candidates))
}

// DispatchFailed counts a dispatch attempt that left the queue unchanged.
func (m *Metrics) DispatchFailed(reason string) {
	m.dispatchFailures.WithLabelValues(reason).Inc()
}

// RoadBlocked counts a live road blockage.
func (m *Metrics) RoadBlocked() {
	m.roadBlockages.Inc()
}

// StatusChanged counts one lifecycle transition.
func (m *Metrics) StatusChanged(from, to parcel.Status) {
	m.statusTransitions.WithLabelValues(from.String(), to.String()).Inc()
}

// UndoApplied counts a reverted action by kind.
func (m *Metrics) UndoApplied(action services.UndoAction) {
	m.undos.WithLabelValues(action.String()).Inc()
}

// QueueDepth sets the number of parcels waiting for dispatch.
func (m *Metrics) QueueDepth(n int) {
	m.queueDepth.Set(float64(n))
}
