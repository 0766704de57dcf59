package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeCache = "cache"
	OutcomeAI    = "ai"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

var (
	once sync.Once

	// CaptionRequestsTotal counts caption requests by how they were answered.
	CaptionRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "captions",
		Name:      "requests_total",
		Help:      "Total number of caption requests, labeled by outcome (cache, ai, empty, error).",
	}, []string{"outcome"})

	// LLMDurationSeconds is the wall time of a single generation call.
	LLMDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "captions",
		Name:      "llm_duration_seconds",
		Help:      "Time spent waiting on the LLM provider per caption generation.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 60},
	}, []string{"provider", "result"})

	RedisLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "captions",
		Name:      "redis_lookups_total",
		Help:      "Redis lookaside lookups, labeled by result (hit, miss, error).",
	}, []string{"result"})
)

// Register registers caption metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			CaptionRequestsTotal,
			LLMDurationSeconds,
			RedisLookupsTotal,
		)
	})
}
