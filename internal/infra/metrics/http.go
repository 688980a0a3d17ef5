package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(httpRequestsTotal, httpRequestDurationMs) }

var httpRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Count of handled HTTP requests per route/method/status.",
	},
	[]string{"route", "method", "status"},
)

var httpRequestDurationMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_ms",
		Help:    "HTTP request latency distribution in milliseconds.",
		Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600, 3000},
	},
	[]string{"route", "method"},
)

func ObserveHTTPRequest(route, method string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpRequestDurationMs.WithLabelValues(route, method).Observe(float64(d.Milliseconds()))
}
