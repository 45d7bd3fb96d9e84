package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics
var (
	LedgerOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Total number of ledger operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"method", "route", "status"},
	)

	OutboxPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_messages_published_total",
			Help: "Total number of outbox messages handed to the broker",
		},
		[]string{"status"},
	)

	AuditEntriesDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_entries_dropped_total",
			Help: "Total number of request audit entries dropped before persistence",
		},
		[]string{"reason"},
	)
)
