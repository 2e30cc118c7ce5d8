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

// Search metric names
const (
	MetricNameSearchesTotal       = "mix_searches_total"
	MetricNameSearchDuration      = "mix_search_duration_seconds"
	MetricNameCandidatesEvaluated = "mix_candidates_evaluated_total"
	MetricNameCandidatesAdmitted  = "mix_candidates_admitted_total"
	MetricNameSearchCacheLookups  = "mix_search_cache_lookups_total"
	MetricNameSearchCacheEntries  = "mix_search_cache_entries"
	MetricNameSearchesShared      = "mix_searches_shared_total"
	MetricNameMixesEvaluated      = "mix_evaluations_total"
)

// Event stream metric names
const (
	MetricNameStreamClients       = "event_stream_clients"
	MetricNameStreamEventsDropped = "event_stream_events_dropped_total"
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

// Search metric help text
const (
	HelpTextSearchesTotal       = "Total number of searches run, by outcome"
	HelpTextSearchDuration      = "Search duration in seconds"
	HelpTextCandidatesEvaluated = "Total number of candidates mixed and checked"
	HelpTextCandidatesAdmitted  = "Total number of candidates that passed the property constraints"
	HelpTextSearchCacheLookups  = "Total number of search cache lookups, by result"
	HelpTextSearchCacheEntries  = "Current number of cached search outcomes"
	HelpTextSearchesShared      = "Total number of searches answered by an identical in-flight search"
	HelpTextMixesEvaluated      = "Total number of single mixes evaluated"
)

// Event stream metric help text
const (
	HelpTextStreamClients       = "Current number of connected event stream clients"
	HelpTextStreamEventsDropped = "Total number of events not delivered because a buffer was full"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelOutcome = "outcome"
	LabelResult  = "result"
)

// Search outcome label values
const (
	OutcomeFound     = "found"
	OutcomeNone      = "none"
	OutcomeCancelled = "cancelled"
	OutcomeError     = "error"
)

// Cache lookup label values
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// UnmatchedRoute labels requests no route matched
const UnmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// SearchDurationBuckets spans small filtered searches up to full
// eight-modifier sweeps.
var SearchDurationBuckets = []float64{.001, .01, .1, .5, 1, 5, 15, 60, 300, 1200}
