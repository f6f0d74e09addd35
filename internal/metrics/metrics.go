package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assessment_sessions_started_total",
			Help: "Sessions that moved from draft to in_progress",
		},
	)

	SessionsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_sessions_completed_total",
			Help: "Sessions that reached a terminal state",
		},
		[]string{"outcome"}, // submitted, expired
	)

	SessionsFlagged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assessment_sessions_flagged_total",
			Help: "Sessions flagged for manual review by telemetry",
		},
	)

	AnswersRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assessment_answers_recorded_total",
			Help: "Responses appended to sessions",
		},
	)
)
