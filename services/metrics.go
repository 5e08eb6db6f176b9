package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values
const (
	OutcomeSuccess          = "success"
	OutcomeValidation       = "validation"
	OutcomeAlreadySubmitted = "already_submitted"
	OutcomeError            = "error"
)

var (
	IntakeSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_intake_submissions_total",
			Help: "Intake form submissions by outcome",
		},
		[]string{"outcome"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_notifications_total",
			Help: "Lawyer notifications by outcome",
		},
		[]string{"outcome"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_store_errors_total",
			Help: "Record store failures by operation",
		},
		[]string{"operation"},
	)

	NotificationStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portal_notification_streams_active",
			Help: "Open live notification streams",
		},
	)
)
