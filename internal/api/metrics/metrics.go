// Package metrics defines and registers all custom Prometheus metrics for the
// storefront API. It is the single source of truth for metric names, labels,
// and help strings. Metrics self-register with the default registry via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "store"

// ── Workflow metrics ──────────────────────────────────────────────────────────

// RequestsCreatedTotal counts payment requests opened.
// Label:
//   - product_type: "paid" (free products never open a request)
var RequestsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_created_total",
		Help:      "Total number of payment requests created.",
	},
	[]string{"product_type"},
)

// DecisionsTotal counts admin decisions on payment requests.
// Label:
//   - outcome: "approved" or "rejected"
var DecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decisions_total",
		Help:      "Total number of payment request decisions, by outcome.",
	},
	[]string{"outcome"},
)

// GrantsTotal counts entitlements recorded in the ledger.
// Label:
//   - source: "free" (direct claim) or "approval" (approved payment request)
var GrantsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "grants_total",
		Help:      "Total number of download entitlements granted, by source.",
	},
	[]string{"source"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsEnqueuedTotal counts notifications handed to the dispatcher.
// Label:
//   - type: notification type (e.g. "request_approved")
var NotificationsEnqueuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_enqueued_total",
		Help:      "Total number of notifications enqueued for persistence.",
	},
	[]string{"type"},
)

// NotificationsFailedTotal counts notifications that could not be persisted
// after retrying.
var NotificationsFailedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_failed_total",
		Help:      "Total number of notifications dropped after persistence retries.",
	},
)

// NotifyQueueDepth tracks the current number of notifications waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotifyQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// AccessCacheTotal counts entitlement cache lookups.
// Label:
//   - result: "hit", "miss", or "error"
var AccessCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_cache_total",
		Help:      "Total number of entitlement cache lookups, labelled by result.",
	},
	[]string{"result"},
)
