package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	SubmissionsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSubmissionsProcessed,
			Help: HelpTextSubmissionsProcessed,
		},
		[]string{LabelResult},
	)

	ReflectionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameReflectionFailures,
			Help: HelpTextReflectionFailures,
		},
		[]string{LabelReason},
	)

	SafetyEscalations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSafetyEscalations,
			Help: HelpTextSafetyEscalations,
		},
	)

	ModerationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameModerationFailures,
			Help: HelpTextModerationFailures,
		},
		[]string{LabelStage},
	)

	CoinsAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinsAwarded,
			Help: HelpTextCoinsAwarded,
		},
		[]string{LabelSource},
	)

	UnlocksGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUnlocksGranted,
			Help: HelpTextUnlocksGranted,
		},
		[]string{LabelFeature},
	)
)

// AI Provider Metrics
var (
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameProviderRequests,
			Help: HelpTextProviderRequests,
		},
		[]string{LabelOperation, LabelStatus},
	)

	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameProviderLatency,
			Help:    HelpTextProviderLatency,
			Buckets: ProviderLatencyBuckets,
		},
		[]string{LabelOperation},
	)
)
