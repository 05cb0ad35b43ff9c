// Package metrics defines and registers all custom Prometheus metrics for the
// GreenCode platform API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time and are
// exposed through the /metrics route wired by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "greencode"

// ── Login path ────────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (failure reasons are deliberately not
//     labelled so the metric cannot be used for user enumeration)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by coarse result.",
	},
	[]string{"result"},
)

// LoginDuration measures wall time of the login operation end-to-end.
var LoginDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login requests including the identity lookup and hash comparison.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ── Validation path ───────────────────────────────────────────────────────────

// TokenValidationsTotal counts bearer-token validations on protected routes.
// Label:
//   - result: "valid", "malformed", "signature_invalid", "expired"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of access-token validations, by result.",
	},
	[]string{"result"},
)

// AuthzDecisionsTotal counts access-engine decisions.
// Labels:
//   - permission: the requested "<resource>:<action>"
//   - decision: "allow" or "deny"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of role-level authorization decisions.",
	},
	[]string{"permission", "decision"},
)

// ── Supporting infrastructure ─────────────────────────────────────────────────

// UserCacheRequestsTotal counts cache-aside lookups in the user cache.
// Label:
//   - result: "hit", "miss", or "error"
var UserCacheRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_cache_requests_total",
		Help:      "Total number of user-cache reads, by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the events waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
