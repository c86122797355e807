// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

// Package metrics defines the Prometheus instrumentation surface:
// database query performance, API latency and throughput, profile and
// recommendation generation, cache efficiency, and event publishing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database metrics.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API endpoint metrics.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Profiler metrics.
	ProfileGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profile_generation_duration_seconds",
			Help:    "Duration of skill profile generation in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ProfilesGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profiles_generated_total",
			Help: "Total number of skill profiles generated",
		},
	)

	ProfileSessionsAnalyzed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profile_sessions_analyzed",
			Help:    "Number of sessions analyzed per profile generation",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// Recommendation engine metrics.
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_generation_duration_seconds",
			Help:    "Duration of recommendation generation in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendationsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_generated_total",
			Help: "Total number of recommendations generated",
		},
	)

	TrainingPlansGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "training_plans_generated_total",
			Help: "Total number of training plans generated",
		},
	)

	// Cache metrics.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry or invalidation)",
		},
		[]string{"cache_type"},
	)

	// Event publishing metrics.
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of domain events published",
		},
		[]string{"topic"},
	)

	EventPublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_publish_errors_total",
			Help: "Total number of event publish failures",
		},
		[]string{"topic"},
	)

	// Circuit breaker metrics.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// System metrics.
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordProfileGeneration records one profile regeneration.
func RecordProfileGeneration(duration time.Duration, sessionCount int) {
	ProfileGenerationDuration.Observe(duration.Seconds())
	ProfilesGenerated.Inc()
	ProfileSessionsAnalyzed.Observe(float64(sessionCount))
}

// RecordRecommendationRequest records one recommendation generation.
func RecordRecommendationRequest(duration time.Duration, returned int) {
	RecommendationDuration.Observe(duration.Seconds())
	RecommendationsGenerated.Add(float64(returned))
}

// RecordEventPublish records a publish attempt for a topic.
func RecordEventPublish(topic string, err error) {
	if err != nil {
		EventPublishErrors.WithLabelValues(topic).Inc()
		return
	}
	EventsPublished.WithLabelValues(topic).Inc()
}
