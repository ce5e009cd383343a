package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Engine Metrics
var (
	ActionsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_actions_total",
			Help: "Engine actions applied, labeled by action and result code",
		},
		[]string{"action", "code"},
	)

	CropsHarvested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crops_harvested_total",
			Help: "Crops harvested, labeled by crop id",
		},
		[]string{"crop"},
	)

	Prestiges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "prestiges_total",
			Help: "Prestige resets performed",
		},
	)
)

// Collaborator Metrics
var (
	CollaboratorRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collaborator_requests_total",
			Help: "Outbound collaborator requests, labeled by target and outcome",
		},
		[]string{"target", "outcome"},
	)
)
