package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Cashbook metrics
	EntriesCreated   prometheus.Counter
	EntriesUpdated   prometheus.Counter
	EntriesDeleted   prometheus.Counter
	WildExpenditures prometheus.Counter
	EntryAmount      prometheus.Histogram

	// Transfer metrics
	TransfersCompleted prometheus.Counter
	TransferAmount     prometheus.Histogram
	TransferErrors     *prometheus.CounterVec

	// Inventory metrics
	PurchasesCreated  prometheus.Counter
	PurchasesApproved prometheus.Counter
	PurchasesRejected prometheus.Counter
	SalesRecorded     prometheus.Counter
	TonnagePurchased  prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBErrors *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Cashbook metrics
		EntriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashbook_entries_created_total",
			Help: "Total number of cashbook entries created",
		}),
		EntriesUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashbook_entries_updated_total",
			Help: "Total number of cashbook entries updated",
		}),
		EntriesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashbook_entries_deleted_total",
			Help: "Total number of cashbook entries deleted",
		}),
		WildExpenditures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashbook_wild_expenditures_total",
			Help: "Total number of entries flagged as wild expenditure",
		}),
		EntryAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cashbook_entry_amount_ugx",
			Help:    "Income amounts recorded per entry",
			Buckets: []float64{1000, 10000, 50000, 100000, 500000, 1000000, 5000000},
		}),

		// Transfer metrics
		TransfersCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashbook_transfers_completed_total",
			Help: "Total number of channel transfers completed",
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cashbook_transfer_amount_ugx",
			Help:    "Transfer amounts",
			Buckets: []float64{1000, 10000, 50000, 100000, 500000, 1000000, 5000000},
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashbook_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),

		// Inventory metrics
		PurchasesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashbook_purchases_created_total",
			Help: "Total number of inventory purchases recorded",
		}),
		PurchasesApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashbook_purchases_approved_total",
			Help: "Total number of inventory purchases approved",
		}),
		PurchasesRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashbook_purchases_rejected_total",
			Help: "Total number of inventory purchases rejected",
		}),
		SalesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashbook_sales_recorded_total",
			Help: "Total number of inventory sales recorded",
		}),
		TonnagePurchased: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashbook_tonnage_purchased_kg_total",
			Help: "Total kilograms of recyclables purchased",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashbook_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cashbook_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashbook_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashbook_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashbook_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
