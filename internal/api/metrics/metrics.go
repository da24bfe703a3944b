// Package metrics defines the custom Prometheus metrics of the admin API.
// HTTP request metrics come from the echoprometheus middleware; the ones
// here describe authentication and role management outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tenant_admin"

// ── Authentication ────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled", "rate_limited" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionChecksTotal counts session cookie verifications by the guard.
// Label:
//   - result: "valid", "malformed", "invalid_signature", "expired"
var SessionChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_checks_total",
		Help:      "Total number of session token verifications, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts issued session tokens.
// Label:
//   - user_type: "employee" or "customer"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of session tokens issued, by user type.",
	},
	[]string{"user_type"},
)

// LoginDuration measures the full login exchange, bcrypt included.
var LoginDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login requests including password verification.",
		Buckets:   []float64{.025, .05, .1, .25, .5, 1, 2.5},
	},
)

// ── Front door ────────────────────────────────────────────────────────────────

// FrontDoorDecisionsTotal counts host/path routing decisions.
// Labels:
//   - class: "admin", "customer", "root", "api" or "public"
//   - action: "pass", "rewrite" or "redirect"
var FrontDoorDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frontdoor_decisions_total",
		Help:      "Total number of front door routing decisions, by route class and action.",
	},
	[]string{"class", "action"},
)

// ── Roles ─────────────────────────────────────────────────────────────────────

// RoleMutationsTotal counts role writes.
// Labels:
//   - op: "create", "update", "delete", "toggle_category"
//   - result: "ok", "conflict", "not_found", "in_use", "invalid" or "error"
var RoleMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_mutations_total",
		Help:      "Total number of role mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// RoleReconcileRunsTotal counts scheduled userCount reconciliations.
// Label:
//   - result: "ok" or "error"
var RoleReconcileRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_reconcile_runs_total",
		Help:      "Total number of role user count reconciliation runs, by result.",
	},
	[]string{"result"},
)
