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

// Search Metrics
var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSearchesTotal,
			Help: HelpTextSearchesTotal,
		},
		[]string{LabelOutcome},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSearchDuration,
			Help:    HelpTextSearchDuration,
			Buckets: SearchDurationBuckets,
		},
	)

	CandidatesEvaluated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCandidatesEvaluated,
			Help: HelpTextCandidatesEvaluated,
		},
	)

	CandidatesAdmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCandidatesAdmitted,
			Help: HelpTextCandidatesAdmitted,
		},
	)

	SearchCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSearchCacheLookups,
			Help: HelpTextSearchCacheLookups,
		},
		[]string{LabelResult},
	)

	SearchCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSearchCacheEntries,
			Help: HelpTextSearchCacheEntries,
		},
	)

	SearchesShared = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSearchesShared,
			Help: HelpTextSearchesShared,
		},
	)

	MixesEvaluated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMixesEvaluated,
			Help: HelpTextMixesEvaluated,
		},
	)
)

// Event Stream Metrics
var (
	StreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameStreamClients,
			Help: HelpTextStreamClients,
		},
	)

	StreamEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStreamEventsDropped,
			Help: HelpTextStreamEventsDropped,
		},
	)
)

// RecordSearch records one finished search run
func RecordSearch(outcome string, seconds float64, evaluated, admitted uint64) {
	SearchesTotal.WithLabelValues(outcome).Inc()
	SearchDuration.Observe(seconds)
	CandidatesEvaluated.Add(float64(evaluated))
	CandidatesAdmitted.Add(float64(admitted))
}

// RecordCacheLookup records a search cache hit or miss
func RecordCacheLookup(hit bool) {
	if hit {
		SearchCacheLookups.WithLabelValues(CacheHit).Inc()
		return
	}
	SearchCacheLookups.WithLabelValues(CacheMiss).Inc()
}
