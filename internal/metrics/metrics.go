package metrics

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salon_db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_db_query_errors_total",
			Help: "Total number of failed database queries",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBAcquireTimeouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "salon_db_acquire_timeouts_total",
			Help: "Connection acquisitions that timed out waiting for the pool",
		},
	)

	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salon_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Reports
	ReportFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_report_fallbacks_total",
			Help: "Reports answered with default data after a query failure",
		},
		[]string{"report"},
	)

	AuditDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "salon_audit_events_dropped_total",
			Help: "Audit events dropped because the queue was full",
		},
	)
)

// Error type labels for DBQueryErrors.
const (
	ErrorTypeTimeout  = "timeout"
	ErrorTypeNoRows   = "no_rows"
	ErrorTypeCanceled = "canceled"
	ErrorTypeOther    = "error"
)

// RecordDBQuery observes a query duration and counts it as failed when err is non-nil.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, classify(err)).Inc()
	}
}

func classify(err error) string {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrorTypeNoRows
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeTimeout
	case errors.Is(err, context.Canceled):
		return ErrorTypeCanceled
	default:
		return ErrorTypeOther
	}
}

func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func RecordReportFallback(report string) {
	ReportFallbacks.WithLabelValues(report).Inc()
}

func RecordAcquireTimeout() {
	DBAcquireTimeouts.Inc()
}

func RecordAuditDropped() {
	AuditDropped.Inc()
}

// RegisterPool exposes database/sql pool statistics (open, in use, idle,
// wait count) under the given db name. Registering the same name twice is
// a no-op.
func RegisterPool(db *sql.DB, name string) {
	err := prometheus.Register(collectors.NewDBStatsCollector(db, name))
	var are prometheus.AlreadyRegisteredError
	if err != nil && !errors.As(err, &are) {
		panic(err)
	}
}
