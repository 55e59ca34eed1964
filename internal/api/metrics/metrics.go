// Package metrics defines and registers the custom Prometheus metrics of the
// admin API. HTTP request metrics are collected by the echoprometheus
// middleware installed in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eie_admin"

// ── Session metrics ───────────────────────────────────────────────────────────

// AuthenticationsTotal counts bearer token checks.
// Label:
//   - result: "ok" or the failure kind (e.g. "expired_session", "session_not_found")
var AuthenticationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authentications_total",
		Help:      "Total number of bearer token checks, by result.",
	},
	[]string{"result"},
)

// AuthorizationsTotal counts module permission checks.
// Label:
//   - result: "ok", "no_role" or "insufficient_permission"
var AuthorizationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorizations_total",
		Help:      "Total number of module permission checks, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", "unknown_user", "inactive_user" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
