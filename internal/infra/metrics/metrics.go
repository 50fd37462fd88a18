package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "The total number of upstream requests by outcome",
		},
		[]string{"source", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of upstream requests that reached the network",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_cache_lookups_total",
			Help: "Upstream response cache lookups by result (hit, miss)",
		},
		[]string{"source", "result"},
	)

	ArticlesNormalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_normalized_total",
			Help: "The total number of articles that passed normalization",
		},
		[]string{"source"},
	)

	ArticlesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_dropped_total",
			Help: "The total number of raw items dropped for a missing title or link",
		},
		[]string{"source"},
	)

	ImageShapes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_image_shapes_total",
			Help: "Detected shapes of the upstream image field",
		},
		[]string{"source", "shape"},
	)

	AggregateSourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregate_source_failures_total",
			Help: "Sources that contributed nothing to an aggregate page because their fetch failed",
		},
		[]string{"source"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Handled API requests by route and status code",
		},
		[]string{"route", "code"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)
