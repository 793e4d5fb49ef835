package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_requests_total",
		Help: "Chat requests by terminal path (stream, sync, image, fatal).",
	}, []string{"path"})

	upstreamFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_upstream_failures_total",
		Help: "Failed calls to the completion service by call kind.",
	}, []string{"call"})

	guardrailViolations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_guardrail_violations_total",
		Help: "Guardrail pattern hits by pattern id and path.",
	}, []string{"pattern", "path"})

	retranslations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_retranslations_total",
		Help: "Corrective re-translation attempts by outcome.",
	}, []string{"outcome"})

	confidenceTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_confidence_total",
		Help: "Validated replies by confidence level.",
	}, []string{"level"})

	reliabilityScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chat_reliability_score",
		Help:    "Reliability score V of validated replies.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 25, 50, 100},
	})
)

func countViolations(path Path, ids []string) {
	for _, id := range ids {
		guardrailViolations.WithLabelValues(id, string(path)).Inc()
	}
}
