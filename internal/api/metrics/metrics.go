// Package metrics defines and registers all custom Prometheus metrics for the
// transport system API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at init time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "transport"

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventsProcessedTotal counts trip events that completed processing successfully.
// Labels:
//   - status: the new trip status applied by the event (e.g. "in_transit")
//   - source: the event source reported by the sender (e.g. "driver_app")
var EventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_processed_total",
		Help:      "Total number of trip status events successfully processed.",
	},
	[]string{"status", "source"},
)

// EventsErrorsTotal counts events that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "invalid_transition", "trip_not_found", "update_failed")
var EventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_errors_total",
		Help:      "Total number of trip status events that failed processing.",
	},
	[]string{"reason"},
)

// EventsDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, processed)
var EventsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// EventsQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventProcessingDuration measures how long a single event takes to process end-to-end.
// Label:
//   - status: the resulting trip status, or "error" on failure
var EventProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "event_processing_duration_seconds",
		Help:      "Duration of event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"status"},
)

// ── Business metrics ──────────────────────────────────────────────────────────

// RequestsCreatedTotal counts newly created transport requests.
// Label:
//   - urgency: "low", "medium", "high", or "urgent"
var RequestsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_created_total",
		Help:      "Total number of transport requests created, by urgency.",
	},
	[]string{"urgency"},
)

// TripsCreatedTotal counts newly created trips, whether direct or via
// request assignment.
var TripsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trips_created_total",
		Help:      "Total number of trips created.",
	},
)

// PaymentsRecordedTotal counts manually recorded payments.
// Label:
//   - status: the payment status at creation (normally "pending")
var PaymentsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_recorded_total",
		Help:      "Total number of payments recorded, by initial status.",
	},
	[]string{"status"},
)
