package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_created_total",
			Help: "Total number of sessions started by participant 1",
		},
	)

	sessionsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_completed_total",
			Help: "Total number of sessions completed by participant 2",
		},
	)

	savesByBackend = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_saves_total",
			Help: "Session saves by backing store",
		},
		[]string{"backend"},
	)

	saveFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_save_fallbacks_total",
			Help: "Saves that fell back to the embedded-token link",
		},
	)

	resolvesBySource = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_link_resolves_total",
			Help: "Successful link resolutions by source",
		},
		[]string{"source"},
	)

	resolveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_link_resolve_failures_total",
			Help: "Link resolutions that found no usable session",
		},
	)

	expiredDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_expired_deleted_total",
			Help: "Expired session rows removed by the sweeper",
		},
	)
)
