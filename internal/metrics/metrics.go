// Package metrics defines and registers all custom Prometheus metrics for the
// storefront gateway. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Upstream transport metrics ────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls to the salon API.
// Labels:
//   - method: HTTP method of the request
//   - status: final HTTP status class after any retry (e.g. "200", "404")
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the salon API.",
	},
	[]string{"method", "status"},
)

// UpstreamRefreshTotal counts transport-level token refresh cycles.
// Label:
//   - result: "ok" (token refreshed, request retried) or "failed"
var UpstreamRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_refresh_total",
		Help:      "Total number of 401-triggered token refresh attempts.",
	},
	[]string{"result"},
)

// UpstreamRequestDuration measures salon API round-trip time, including the
// single refresh-retry when one happens.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of salon API calls end-to-end.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// CartOperationsTotal counts cart store mutations.
// Labels:
//   - op: "add", "update", "remove", "clear"
//   - result: "ok" or "error"
var CartOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Total number of cart mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// BookingsSubmittedTotal counts wizard submissions.
// Labels:
//   - channel: "account" or "guest", chosen at submission time
//   - result: "ok" or "error"
var BookingsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_submitted_total",
		Help:      "Total number of booking submissions, by channel and result.",
	},
	[]string{"channel", "result"},
)

// LinkJobsTotal counts guest-booking link outcomes.
// Label:
//   - result: "inline" (linked during conversion), "deferred" (handed to the
//     reconciler), "reconciled", "failed"
var LinkJobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "link_jobs_total",
		Help:      "Total number of guest-booking link outcomes.",
	},
	[]string{"result"},
)

// NotificationsTotal counts notifications handed to each sink.
// Labels:
//   - sink: sink name (e.g. "log", "amqp")
//   - result: "ok" or "error"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notifications delivered to sinks.",
	},
	[]string{"sink", "result"},
)
