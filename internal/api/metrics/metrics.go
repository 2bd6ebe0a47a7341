// Package metrics defines and registers all custom Prometheus metrics for the
// job portal API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at package
// init; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// UsersRegisteredTotal counts successful registrations.
// Label:
//   - role: "applicant" or "employer"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of successfully registered users, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsIssuedTotal counts sessions created at login or registration.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of sessions issued.",
	},
)

// SessionsRevokedTotal counts explicit logouts.
var SessionsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of sessions invalidated by logout.",
	},
)

// SessionResolveDuration measures cookie-to-user resolution on protected
// routes.
// Label:
//   - result: "ok" (session valid) or "none" (missing/expired/invalid)
var SessionResolveDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "session_resolve_duration_seconds",
		Help:      "Duration of session resolution on protected routes.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
