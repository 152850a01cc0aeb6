package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialhub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socialhub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	DatabaseOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialhub_database_operations_total",
			Help: "Total number of database operations",
		},
		[]string{"operation", "entity"},
	)

	DatabaseOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socialhub_database_operation_duration_seconds",
			Help:    "Database operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "entity"},
	)

	ResetMailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialhub_reset_mails_total",
			Help: "Password reset mails by dispatch outcome",
		},
		[]string{"outcome"},
	)
)

func RecordHttpRequest(method, endpoint, status string, duration time.Duration) {
	HttpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HttpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func RecordDatabaseOperation(operation, entity string, duration time.Duration) {
	DatabaseOperationsTotal.WithLabelValues(operation, entity).Inc()
	DatabaseOperationDuration.WithLabelValues(operation, entity).Observe(duration.Seconds())
}

func RecordResetMail(outcome string) {
	ResetMailsSent.WithLabelValues(outcome).Inc()
}
