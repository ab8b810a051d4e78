// Package observability exposes the Prometheus instruments the service
// publishes on /metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckInsTotal counts check-in attempts by outcome.
	CheckInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymgate_checkins_total",
			Help: "Total check-in attempts partitioned by result.",
		},
		[]string{"result"},
	)

	// StoreFallbacksTotal counts operations that fell back to the volatile
	// store after a durable store failure.
	StoreFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymgate_store_fallbacks_total",
			Help: "Total repository operations served by the volatile store fallback.",
		},
		[]string{"operation"},
	)

	// NotificationsDispatchedTotal counts notifications handed to the
	// dispatcher, partitioned by delivery outcome.
	NotificationsDispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymgate_notifications_dispatched_total",
			Help: "Total notifications dispatched partitioned by outcome.",
		},
		[]string{"outcome"},
	)
)
