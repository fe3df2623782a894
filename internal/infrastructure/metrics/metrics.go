package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Schedule metrics
	OccurrencesExpanded prometheus.Counter
	ScheduleCacheHits   prometheus.Counter
	ScheduleCacheMisses prometheus.Counter

	// Payment metrics
	PaymentsRecorded prometheus.Counter
	PaymentConflicts prometheus.Counter

	// Catalog metrics
	SuppliersCreated prometheus.Counter
	AccountsCreated  prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Schedule metrics
		OccurrencesExpanded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payables_occurrences_expanded_total",
			Help: "Total number of occurrences produced by schedule expansion",
		}),
		ScheduleCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payables_schedule_cache_hits_total",
			Help: "Total number of schedule cache hits",
		}),
		ScheduleCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payables_schedule_cache_misses_total",
			Help: "Total number of schedule cache misses",
		}),

		// Payment metrics
		PaymentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payables_payments_recorded_total",
			Help: "Total number of payments recorded",
		}),
		PaymentConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payables_payment_conflicts_total",
			Help: "Total number of duplicate settlement attempts rejected",
		}),

		// Catalog metrics
		SuppliersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payables_suppliers_created_total",
			Help: "Total number of suppliers created",
		}),
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payables_accounts_created_total",
			Help: "Total number of recurring accounts created",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payables_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payables_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payables_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payables_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "payables_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payables_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payables_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payables_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payables_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
