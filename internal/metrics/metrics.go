// Package metrics defines Prometheus metrics for the Bigstock API client.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bigstock"

// StatusError labels requests that never produced an HTTP status.
const StatusError = "error"

// Token fetch results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// EndpointLabel reduces an endpoint to its first path segment, so resource
// ids such as "image/123" share the "image" series.
func EndpointLabel(endpoint string) string {
	segment, _, _ := strings.Cut(strings.Trim(endpoint, "/"), "/")
	if segment == "" {
		return "root"
	}

	return segment
}

// API request metrics. The endpoint label is always EndpointLabel(endpoint).
var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of Bigstock API requests.",
	}, []string{"endpoint", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of Bigstock API requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// Token metrics.
var (
	TokenFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_fetches_total",
		Help:      "Total number of token endpoint exchanges by result.",
	}, []string{"result"})
)
