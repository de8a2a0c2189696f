// Package observability holds the prometheus collectors and the HTTP
// request instrumentation middleware.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts requests with low-cardinality route labels.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gamestock",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gamestock",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// SalesCompleted counts successful sale transactions.
	SalesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gamestock",
		Name:      "sales_completed_total",
		Help:      "Successfully committed sales.",
	})

	// SalesRejected counts failed sale attempts by reason.
	SalesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gamestock",
		Name:      "sales_rejected_total",
		Help:      "Rejected sale attempts by reason.",
	}, []string{"reason"})
)
