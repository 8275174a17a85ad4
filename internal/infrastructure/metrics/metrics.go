package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ingestion pipeline metrics
	MessagesIngested  prometheus.Counter
	IngestionFailures *prometheus.CounterVec
	IngestionDuration prometheus.Histogram
	BillsDetected     prometheus.Counter

	// Classification metrics
	Classifications *prometheus.CounterVec

	// Bill lifecycle metrics
	BillsSweptOverdue prometheus.Counter
	StatsCacheHits    prometheus.Counter
	StatsCacheMisses  prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBErrors *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		MessagesIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finsms_messages_ingested_total",
			Help: "Total number of messages successfully ingested",
		}),
		IngestionFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsms_ingestion_failures_total",
				Help: "Total number of failed ingestions by cause",
			},
			[]string{"cause"},
		),
		IngestionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finsms_ingestion_duration_seconds",
			Help:    "Duration of the full ingestion pipeline",
			Buckets: prometheus.DefBuckets,
		}),
		BillsDetected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finsms_bills_detected_total",
			Help: "Total number of ingested messages that produced a bill",
		}),

		Classifications: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsms_classifications_total",
				Help: "Classification outcomes by direction and category",
			},
			[]string{"direction", "category"},
		),

		BillsSweptOverdue: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finsms_bills_swept_overdue_total",
			Help: "Total number of bills marked overdue by the sweep",
		}),
		StatsCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finsms_stats_cache_hits_total",
			Help: "Bill stats requests served from cache",
		}),
		StatsCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finsms_stats_cache_misses_total",
			Help: "Bill stats requests that fell through to the database",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsms_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finsms_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsms_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),
	}
}
