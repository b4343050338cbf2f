// Package metrics defines all custom Prometheus metrics for the taskdesk
// client. It is the single source of truth for metric names, labels, and
// help strings; metrics register with the default registry at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskdesk"

// ── Request metrics ───────────────────────────────────────────────────────────

// RequestsTotal counts every request issued by the HTTP layer.
// Labels:
//   - method: HTTP verb (GET, POST, PUT, DELETE)
//   - status: numeric HTTP status, or "error" when no response arrived
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of API requests issued, by method and status.",
	},
	[]string{"method", "status"},
)

// RequestDuration measures wall time from request issue to response decode.
// Label:
//   - method: HTTP verb
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of API requests, by method.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionRecoveriesTotal counts startup session-recovery checks.
// Label:
//   - result: "recovered", "rejected" (stored token refused by the server)
//     or "no_token" (nothing persisted, no network call made)
var SessionRecoveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_recoveries_total",
		Help:      "Total number of session recovery checks, by result.",
	},
	[]string{"result"},
)
