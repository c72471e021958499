package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// FallbackServed counts resolves answered from the catalog.
	FallbackServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_fallback_served_total",
			Help: "Media resolves served from the hardcoded catalog.",
		},
		[]string{"section", "reason"},
	)

	MediaUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_media_uploads_total",
			Help: "Media uploads by section and result.",
		},
		[]string{"section", "result"},
	)

	MigratedItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_migrated_items_total",
			Help: "Catalog items copied into the store.",
		},
		[]string{"section"},
	)
)
