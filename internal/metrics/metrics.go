package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "authors_api"

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Histogram of HTTP request durations in seconds by method and route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	authorsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authors_created_total",
		Help:      "Total number of authors created",
	})
	booksCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_created_total",
		Help:      "Total number of books created",
	})
	booksCascadeDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_cascade_deleted_total",
		Help:      "Total number of books removed together with their author",
	})
	serviceErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "service_errors_total",
		Help:      "Total number of failed service operations by kind",
	}, []string{"kind"})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration,
			authorsCreated, booksCreated, booksCascadeDeleted, serviceErrors)
	})
}

// HTTP helpers
func ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Domain helpers
func IncAuthorsCreated()             { authorsCreated.Inc() }
func IncBooksCreated()               { booksCreated.Inc() }
func AddBooksCascadeDeleted(n int64) { booksCascadeDeleted.Add(float64(n)) }
func IncServiceError(kind string)    { serviceErrors.WithLabelValues(kind).Inc() }
