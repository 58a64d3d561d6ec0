package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	StageTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requirement_stage_transitions_total",
			Help: "Accepted requirement stage transitions by target stage",
		},
		[]string{"stage"},
	)

	HistoryAppendFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_append_failures_total",
			Help: "Stage history rows that could not be written after a successful update",
		},
	)

	EventPublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "event_publish_failures_total",
			Help: "Change notifications that could not be published",
		},
	)

	MemberCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "member_cache_lookups_total",
			Help: "Member directory cache lookups",
		},
		[]string{"result"}, // hit, miss, error
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementStageTransition(stage string) {
	StageTransitions.WithLabelValues(stage).Inc()
}

func IncrementHistoryAppendFailure() {
	HistoryAppendFailures.Inc()
}

func IncrementEventPublishFailure() {
	EventPublishFailures.Inc()
}

func RecordMemberCacheLookup(result string) {
	MemberCacheLookups.WithLabelValues(result).Inc()
}
