package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so that tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	// HTTP
	RequestsTotal *prometheus.CounterVec
	HTTPLatency   *prometheus.HistogramVec

	// marketplace
	PostsCreated        prometheus.Counter
	TransactionsCreated prometheus.Counter
	TransactionsFailed  *prometheus.CounterVec
	RatingsApplied      prometheus.Counter

	// worker queue
	WorkerQueueDepth prometheus.Gauge
	AuditDropped     prometheus.Counter

	CacheLookups *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		HTTPLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_requests_latency_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		PostsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Posts created",
		}),
		TransactionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transactions_created_total",
			Help: "Sales recorded",
		}),
		TransactionsFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_failed_total",
				Help: "Rejected sale attempts",
			},
			[]string{"reason"},
		),
		RatingsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ratings_applied_total",
			Help: "Seller ratings folded into user aggregates",
		}),
		WorkerQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		}),
		AuditDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "audit_events_dropped_total",
			Help: "Audit events that could not be persisted",
		}),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_lookups_total",
				Help: "Cache lookups by result",
			},
			[]string{"result"}, // hit|miss|error
		),
	}
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.HTTPLatency,
		m.PostsCreated,
		m.TransactionsCreated,
		m.TransactionsFailed,
		m.RatingsApplied,
		m.WorkerQueueDepth,
		m.AuditDropped,
		m.CacheLookups,
	)
	return m
}

// Handler serves the registry at /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
