package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GuardDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "guard_decisions_total",
		Help:      "Route guard outcomes for the admin area.",
	}, []string{"decision"})

	AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "auth_events_total",
		Help:      "Session change events published by the auth platform.",
	}, []string{"type"})

	StaleAdminChecks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "stale_admin_checks_total",
		Help:      "Admin checks discarded because a newer session superseded them.",
	})

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "notification_failures_total",
		Help:      "Hire request notifications that failed and were swallowed.",
	})

	ActiveStores = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "portfolio",
		Name:      "session_stores_active",
		Help:      "Per-client session stores currently held in memory.",
	})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portfolio",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
