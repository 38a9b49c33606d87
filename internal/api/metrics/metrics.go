// Package metrics defines all custom Prometheus metrics for the clinic
// backend. It is the single source of truth for metric names, labels,
// and help strings; promauto registers everything with the default
// registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clinic"

// LoginAttemptsTotal counts admin login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of admin login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts successful refresh-token rotations.
var TokenRefreshesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of successful refresh token rotations.",
	},
)

// TokenVerificationsTotal counts access token checks in the auth middleware.
// Label:
//   - result: "success", "failure" (invalid/expired/malformed), or
//     "revoked" (stale token version or missing/inactive user)
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of access token verifications, by result.",
	},
	[]string{"result"},
)

// RateLimitedTotal counts requests rejected by a rate limiter.
// Label:
//   - limiter: the limiter name (e.g. "login", "public_submit")
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by a rate limiter.",
	},
	[]string{"limiter"},
)

// SubmissionsTotal counts accepted public form submissions.
// Label:
//   - kind: "appointment", "inquiry", or "feedback"
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of accepted public submissions, by kind.",
	},
	[]string{"kind"},
)
