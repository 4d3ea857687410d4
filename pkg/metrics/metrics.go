// Package metrics provides the centralized Prometheus metrics registry for
// the HubSpot export toolkit. All metrics are defined in their respective
// packages (client, cache, ratelimit) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the toolkit.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Rate Limit Metrics (pkg/ratelimit):
//   - hubspot_rate_limit_remaining (Gauge): Requests remaining in the current interval
//   - hubspot_rate_limit_daily_remaining (Gauge): Requests remaining for the current day
//   - hubspot_rate_limit_warnings_total (Counter): Low budget warnings emitted
//
// Cache Metrics (pkg/cache):
//   - hubspot_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - hubspot_cache_misses_total (Counter): Cache misses
//   - hubspot_cache_errors_total{operation} (Counter): Cache operation errors
//
// Request Metrics (pkg/client):
//   - hubspot_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - hubspot_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - hubspot_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(hubspot_cache_hits_total[5m])) /
//   (sum(rate(hubspot_cache_hits_total[5m])) + sum(rate(hubspot_cache_misses_total[5m])))
//
//   # Rate Limit Budget
//   hubspot_rate_limit_remaining < 10
//
//   # Request Error Rate
//   rate(hubspot_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(hubspot_request_duration_seconds_bucket[5m]))
