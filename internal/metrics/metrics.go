// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Completion outcomes.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	once sync.Once

	// CompletionsTotal counts provider calls by kind, operation and outcome.
	CompletionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lexbridge",
		Subsystem: "llm",
		Name:      "completions_total",
		Help:      "Total number of provider completion calls, labeled by provider, operation and result.",
	}, []string{"provider", "operation", "result"})

	// CompletionDurationSeconds is wall time per provider call.
	CompletionDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lexbridge",
		Subsystem: "llm",
		Name:      "completion_duration_seconds",
		Help:      "Wall time of a provider completion call.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60, 120},
	}, []string{"provider", "operation"})

	// TokensTotal counts tokens reported by providers.
	TokensTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lexbridge",
		Subsystem: "llm",
		Name:      "tokens_total",
		Help:      "Tokens reported by providers, labeled by provider and direction (input/output).",
	}, []string{"provider", "direction"})

	// TranslationRollbacksTotal counts label translations discarded because
	// the response failed to parse or validate.
	TranslationRollbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lexbridge",
		Subsystem: "labels",
		Name:      "translation_rollbacks_total",
		Help:      "Label translations rejected and rolled back to the prior label set.",
	})

	// HTTPRequestsTotal counts web requests by route and status code.
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lexbridge",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests, labeled by route and status.",
	}, []string{"route", "status"})

	// RateLimitedTotal counts requests rejected by the per-IP limiter.
	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lexbridge",
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected with 429 by the per-client rate limiter.",
	})

	// Sessions is the number of sessions currently held in memory.
	Sessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "lexbridge",
		Subsystem: "http",
		Name:      "sessions",
		Help:      "Browser sessions currently held in memory.",
	})
)

// Register registers all collectors with the default registry. Safe to call
// multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			CompletionsTotal,
			CompletionDurationSeconds,
			TokensTotal,
			TranslationRollbacksTotal,
			HTTPRequestsTotal,
			RateLimitedTotal,
			Sessions,
		)
	})
}

// ObserveCompletion records one provider call.
func ObserveCompletion(provider, operation string, d time.Duration, err error, inTokens, outTokens int) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	CompletionsTotal.WithLabelValues(provider, operation, result).Inc()
	CompletionDurationSeconds.WithLabelValues(provider, operation).Observe(d.Seconds())
	if inTokens > 0 {
		TokensTotal.WithLabelValues(provider, "input").Add(float64(inTokens))
	}
	if outTokens > 0 {
		TokensTotal.WithLabelValues(provider, "output").Add(float64(outTokens))
	}
}
