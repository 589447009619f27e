package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameSubmissionsProcessed = "mood_submissions_processed_total"
	MetricNameReflectionFailures   = "reflection_failures_total"
	MetricNameSafetyEscalations    = "safety_escalations_total"
	MetricNameModerationFailures   = "moderation_check_failures_total"
	MetricNameCoinsAwarded         = "mood_coins_awarded_total"
	MetricNameUnlocksGranted       = "feature_unlocks_granted_total"
	MetricNameProviderRequests     = "ai_provider_requests_total"
	MetricNameProviderLatency      = "ai_provider_request_duration_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextSubmissionsProcessed = "Total number of mood submissions processed, by result"
	HelpTextReflectionFailures   = "Total number of failed reflection generations, by reason"
	HelpTextSafetyEscalations    = "Total number of submissions escalated by the safety workflow"
	HelpTextModerationFailures   = "Total number of moderation or classifier calls that failed open"
	HelpTextCoinsAwarded         = "Total MoodCoins awarded, by source"
	HelpTextUnlocksGranted       = "Total feature unlocks granted, by feature"
	HelpTextProviderRequests     = "Total requests to the AI provider, by operation and status"
	HelpTextProviderLatency      = "AI provider request latency in seconds, by operation"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelResult    = "result"
	LabelReason    = "reason"
	LabelSource    = "source"
	LabelFeature   = "feature"
	LabelOperation = "operation"
	LabelStage     = "stage"
)

// Label values for submission results
const (
	ResultSuccess   = "success"
	ResultFailed    = "failed"
	ResultEscalated = "escalated"
)

// Label values for reflection failure reasons
const (
	ReasonProviderError = "provider_error"
	ReasonInvalidOutput = "invalid_output"
)

// Label values for coin sources
const (
	SourceDaily       = "daily"
	SourceStreakBonus = "streak_bonus"
	SourceReferral    = "referral"
)

// Histogram buckets
var (
	// HTTPLatencyBuckets covers typical request latencies from 1ms to 10s
	HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

	// ProviderLatencyBuckets covers LLM round-trips from 100ms to 60s
	ProviderLatencyBuckets = []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60}
)
