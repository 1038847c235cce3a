package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Classification Metrics
var (
	// ClassificationsTotal tracks segment classifications by source (ensemble/model/fallback)
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emotion_classifications_total",
			Help: "Total segment classifications by result source (ensemble/model/fallback)",
		},
		[]string{"source"},
	)

	// ClassificationDuration tracks end-to-end classification latency.
	// Buckets top out at the 300ms per-call budget.
	ClassificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "emotion_classification_duration_seconds",
			Help:    "Single-segment classification duration in seconds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .2, .3},
		},
	)

	// FallbackActivationsTotal tracks switches to the keyword fallback by reason
	FallbackActivationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emotion_fallback_activations_total",
			Help: "Total keyword-fallback activations by reason (model_error/breaker_open/not_warm)",
		},
		[]string{"reason"},
	)
)

// Model Adapter Metrics
var (
	// ModelRequestsTotal tracks transformer model requests by status
	ModelRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emotion_model_requests_total",
			Help: "Total transformer model requests by status (success/error)",
		},
		[]string{"status"},
	)

	// ModelRequestDuration tracks transformer model request latency
	ModelRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "emotion_model_request_duration_seconds",
			Help:    "Transformer model request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .15, .2, .3, .5},
		},
	)

	// ModelBreakerStateChanges tracks circuit breaker state transitions
	ModelBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emotion_model_breaker_state_changes_total",
			Help: "Model circuit breaker state transitions by new state",
		},
		[]string{"state"},
	)

	// ModelBreakerState tracks current circuit breaker state (0=closed, 1=half-open, 2=open)
	ModelBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "emotion_model_breaker_state",
			Help: "Current model circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// ModelWarm tracks whether the model adapter completed warm-up (1) or is degraded (0)
	ModelWarm = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "emotion_model_warm",
			Help: "1 if the transformer model adapter is warmed up, 0 if fallback-only",
		},
	)
)

// Trajectory Metrics
var (
	// TrajectoriesTotal tracks completed trajectory analyses by arc type
	TrajectoriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trajectory_analyses_total",
			Help: "Total trajectory analyses by resulting arc type",
		},
		[]string{"arc_type"},
	)

	// TrajectorySegments tracks segment counts per analysis
	TrajectorySegments = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trajectory_segments_per_analysis",
			Help:    "Number of segments per trajectory analysis",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
		},
	)

	// TrajectoryDuration tracks full trajectory analysis latency
	TrajectoryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trajectory_analysis_duration_seconds",
			Help:    "Full trajectory analysis duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .2, .3, .5, 1},
		},
	)
)

// Analysis Cache Metrics
var (
	// CacheHits tracks analysis cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_cache_hits_total",
			Help: "Total analysis cache hits",
		},
	)

	// CacheMisses tracks analysis cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_cache_misses_total",
			Help: "Total analysis cache misses",
		},
	)

	// CacheErrors tracks analysis cache errors (cache degrades to pass-through)
	CacheErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_cache_errors_total",
			Help: "Total analysis cache errors",
		},
	)
)

// Database Metrics
var (
	// DBQueryDuration tracks database query duration by query name
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query"},
	)

	// DBErrorsTotal tracks database errors by query name
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Total database errors by query",
		},
		[]string{"query"},
	)
)

// Build Information Metrics
var (
	// BuildInfo is a gauge that always returns 1, with build metadata as labels
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "build_info",
			Help: "Build information with version, commit, build_time, and go_version labels (value is always 1)",
		},
		[]string{"version", "commit", "build_time", "go_version"},
	)
)

// HTTP Request Metrics
// Note: http_errors_total{type} is provided by the internal/errors package.
