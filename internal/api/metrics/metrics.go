// Package metrics defines the custom Prometheus metrics for the Pathshala
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pathshala"

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "success", "invalid_credentials", "rate_limited", or "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// SignUpsTotal counts account creations.
// Label:
//   - role: "user" or "admin"
var SignUpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// AuthRejectionsTotal counts requests turned away by the auth middleware.
// Label:
//   - stage: "unauthenticated" (no valid session) or "forbidden" (role gate)
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or authorization.",
	},
	[]string{"stage"},
)

// UploadsTotal counts stored files.
// Label:
//   - kind: "video" or "material"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of files uploaded, by kind.",
	},
	[]string{"kind"},
)

// FeedbackSubmittedTotal counts feedback submissions.
// Label:
//   - type: "feedback" or "doubt"
var FeedbackSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_submitted_total",
		Help:      "Total number of feedback entries submitted, by type.",
	},
	[]string{"type"},
)
