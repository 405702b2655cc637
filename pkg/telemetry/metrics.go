package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var Metrics = struct {
	RPCRequestsTotal *prometheus.CounterVec
	RPCDuration      *prometheus.HistogramVec
	TasksTotal       *prometheus.CounterVec
	TokensUsed       *prometheus.CounterVec
	ErrorsTotal      *prometheus.CounterVec
	LLMRequestsTotal *prometheus.CounterVec
	LLMLatency       *prometheus.HistogramVec
}{
	RPCRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "localguide",
		Name:      "rpc_requests_total",
		Help:      "Total JSON-RPC requests by method and outcome.",
	}, []string{"method", "outcome"}),

	RPCDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "localguide",
		Name:      "rpc_duration_seconds",
		Help:      "JSON-RPC dispatch duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"}),

	TasksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "localguide",
		Name:      "tasks_total",
		Help:      "Total tasks produced by terminal state.",
	}, []string{"state"}),

	TokensUsed: promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "localguide",
		Name:      "tokens_used_total",
		Help:      "Total tokens consumed by direction (input/output) and model.",
	}, []string{"direction", "model"}),

	ErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "localguide",
		Name:      "errors_total",
		Help:      "Total errors by component.",
	}, []string{"component"}),

	LLMRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "localguide",
		Name:      "llm_requests_total",
		Help:      "Total LLM API requests by provider and model.",
	}, []string{"provider", "model"}),

	LLMLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "localguide",
		Name:      "llm_latency_seconds",
		Help:      "LLM request latency in seconds.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"provider", "model"}),
}
