package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(aiCallsLatencyMs, aiFallbacksTotal, aiTokensIn) }

var aiCallsLatencyMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "ai_calls_latency_ms",
		Help:    "AI enrichment call latency distribution in milliseconds.",
		Buckets: []float64{50, 100, 200, 400, 800, 1600, 3000, 5000, 10000},
	},
	[]string{"provider", "success"},
)

var aiFallbacksTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ai_template_fallbacks_total",
		Help: "Enrichment calls that fell back to template output.",
	},
	[]string{"provider"},
)

var aiTokensIn = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ai_tokens_in",
		Help: "Sum of prompt (input) tokens per provider.",
	},
	[]string{"provider"},
)

func ObserveAICall(provider string, success bool, ms float64) {
	s := "false"
	if success {
		s = "true"
	}
	aiCallsLatencyMs.WithLabelValues(norm(provider), s).Observe(ms)
}

func IncAIFallback(provider string) {
	aiFallbacksTotal.WithLabelValues(norm(provider)).Inc()
}

func AddAITokensIn(provider string, n int) {
	aiTokensIn.WithLabelValues(norm(provider)).Add(float64(n))
}
