package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(httpRequestsTotal, httpLatencyMs, rateLimitedTotal) }

var httpRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route and status code.",
	},
	[]string{"route", "status"},
)

var httpLatencyMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_latency_ms",
		Help:    "HTTP request latency distribution in milliseconds.",
		Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600, 3000},
	},
	[]string{"route"},
)

var rateLimitedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "http_rate_limited_total",
		Help: "Requests rejected by the rate limiter.",
	},
)

func ObserveHTTP(route string, status int, ms float64) {
	httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	httpLatencyMs.WithLabelValues(route).Observe(ms)
}

func IncRateLimited() {
	rateLimitedTotal.Inc()
}
