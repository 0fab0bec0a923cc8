// Package metrics defines and registers the custom Prometheus metrics of the
// agency API. It is the single source of truth for metric names, labels, and
// help strings.
//
// All collectors are registered with the default Prometheus registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agency"

// ── Authorization ─────────────────────────────────────────────────────────────

// AuthorizationDecisionsTotal counts admin checks.
// Label:
//   - result: "granted", "denied", "missing_email", or "error"
var AuthorizationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_decisions_total",
		Help:      "Total number of admin authorization checks, by result.",
	},
	[]string{"result"},
)

// ── Messages ──────────────────────────────────────────────────────────────────

// MessagesCreatedTotal counts stored contact-form submissions.
var MessagesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_created_total",
		Help:      "Total number of contact messages stored.",
	},
)

// ── Guards ────────────────────────────────────────────────────────────────────

// GuardLogAppendsTotal counts entries appended to guard logs.
// Label:
//   - log: "transactions" or "presence"
var GuardLogAppendsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_log_appends_total",
		Help:      "Total number of entries appended to guard transaction and presence logs.",
	},
	[]string{"log"},
)

// ── Audit trail ───────────────────────────────────────────────────────────────

// AuditEventsTotal counts audit events handled by the dispatcher.
// Label:
//   - result: "written", "failed", or "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events handled, by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWriteDuration measures how long persisting one audit event takes.
var AuditWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of a single audit event insert.",
		Buckets:   prometheus.DefBuckets,
	},
)
