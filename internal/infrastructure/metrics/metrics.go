package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer outcome metrics
	TransfersAttempted    prometheus.Counter
	TransfersSucceeded    prometheus.Counter
	TransfersInsufficient prometheus.Counter
	TransfersFailed       *prometheus.CounterVec
	TransferDuration      prometheus.Histogram
	TransferAmount        prometheus.Histogram

	// Outbound call metrics
	ClientRequests *prometheus.CounterVec
	ClientDuration *prometheus.HistogramVec
	ClientRetries  *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransfersAttempted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transfer_attempts_total",
			Help: "Total number of transfer orchestration runs",
		}),
		TransfersSucceeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transfer_success_total",
			Help: "Total number of transfers accepted by the account service",
		}),
		TransfersInsufficient: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transfer_insufficient_funds_total",
			Help: "Total number of transfers rejected for insufficient funds",
		}),
		TransfersFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transfer_failures_total",
				Help: "Total number of aborted transfer runs by failing step",
			},
			[]string{"step"},
		),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "transfer_duration_seconds",
			Help:    "Duration of complete transfer orchestration runs",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "transfer_amount",
			Help:    "Requested transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		ClientRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "account_service_requests_total",
				Help: "Total outbound requests to the account service",
			},
			[]string{"operation", "outcome"},
		),
		ClientDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "account_service_request_duration_seconds",
				Help:    "Outbound request duration by operation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		ClientRetries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "account_service_retries_total",
				Help: "Total retried outbound requests by operation",
			},
			[]string{"operation"},
		),
	}
}
