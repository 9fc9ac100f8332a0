// Package metrics defines and registers all custom Prometheus metrics for the
// editorial system. It is the single source of truth for metric names, labels,
// and help strings; metrics register with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "editorial"

// SubmissionsAssignedTotal counts editor assignments.
// Label:
//   - mode: "auto" (round-robin batch), "manual", or "reassign"
var SubmissionsAssignedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_assigned_total",
		Help:      "Total number of editor assignments, by assignment mode.",
	},
	[]string{"mode"},
)

// ReviewsTotal counts review actions that reached the store.
// Labels:
//   - entity: "manuscript", "research-paper", or "article"
//   - decision: the status written by the review
var ReviewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_total",
		Help:      "Total number of review actions applied, by entity and decision.",
	},
	[]string{"entity", "decision"},
)

// RoleRequestsTotal counts role escalation workflow outcomes.
// Label:
//   - outcome: "submitted", "approved", "rejected", or "revoked"
var RoleRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_requests_total",
		Help:      "Total number of role request workflow outcomes.",
	},
	[]string{"outcome"},
)

// NotificationsTotal counts notification delivery attempts. Delivery is
// best-effort, so the error count here is the only trace of dropped messages.
// Labels:
//   - channel: "email" or "realtime"
//   - result: "ok" or "error"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notification delivery attempts, by channel and result.",
	},
	[]string{"channel", "result"},
)

// NotificationQueueDepth tracks the number of notifications waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index ("0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
