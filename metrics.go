// Copyright (C) Pagoda Box, Inc - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential

package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics
var (
	MetricRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total number of requests by route prefix and disposition",
		},
		[]string{"prefix", "kind"},
	)
	MetricProxyErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_proxy_errors_total",
			Help: "Total number of requests that failed to reach the upstream",
		},
	)
	MetricFallbackHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_fallback_hits_total",
			Help: "Total number of requests answered with a route's fallback file",
		},
	)
	MetricRateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// InitMetrics registers Prometheus metrics
func InitMetrics() {
	prometheus.MustRegister(MetricRequests)
	prometheus.MustRegister(MetricProxyErrors)
	prometheus.MustRegister(MetricFallbackHits)
	prometheus.MustRegister(MetricRateLimited)
}
