// Package metrics declares the prometheus collectors exported by the activities service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "activities"

// Membership operations and outcomes used as label values.
const (
	OpSignup     = "signup"
	OpUnregister = "unregister"

	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeRejected = "rejected"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP request handling in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	MembershipChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "membership_changes_total",
			Help:      "Signup and unregister attempts by activity and outcome",
		},
		[]string{"activity", "operation", "outcome"},
	)

	Participants = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "participants",
			Help:      "Current number of participants per activity",
		},
		[]string{"activity"},
	)
)

// RecordMembership counts one signup or unregister attempt.
// Unknown activity names are folded into a single label to bound cardinality.
func RecordMembership(activity, operation, outcome string) {
	if outcome == OutcomeNotFound {
		activity = "unknown"
	}
	MembershipChanges.WithLabelValues(activity, operation, outcome).Inc()
}

// SetParticipants updates the participant gauge for an activity.
func SetParticipants(activity string, n int) {
	Participants.WithLabelValues(activity).Set(float64(n))
}
