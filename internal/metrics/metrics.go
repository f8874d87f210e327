// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RPC calls by procedure and connect code ("ok" on success).
	rpcRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fintrack_rpc_requests_total",
			Help: "Total number of RPC calls by procedure and result code",
		},
		[]string{"procedure", "code"},
	)

	rpcDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fintrack_rpc_duration_seconds",
			Help:    "Duration of RPC calls in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"procedure"},
	)

	transactionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fintrack_transactions_recorded_total",
			Help: "Total number of transactions recorded by kind",
		},
		[]string{"kind"}, // Need, Want, Income
	)

	budgetAlerts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fintrack_budget_alerts_total",
			Help: "Total number of budget alerts raised by status",
		},
		[]string{"status"}, // Warning, Exceeded
	)

	storageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fintrack_storage_errors_total",
			Help: "Total number of backend failures by operation",
		},
		[]string{"operation"},
	)
)

// ObserveRPC records one finished RPC call.
func ObserveRPC(procedure, code string, seconds float64) {
	rpcRequests.WithLabelValues(procedure, code).Inc()
	rpcDuration.WithLabelValues(procedure).Observe(seconds)
}

// TransactionRecorded counts a new transaction of the given kind.
func TransactionRecorded(kind string) {
	transactionsRecorded.WithLabelValues(kind).Inc()
}

// BudgetAlertRaised counts an alert with the given status.
func BudgetAlertRaised(status string) {
	budgetAlerts.WithLabelValues(status).Inc()
}

// StorageError counts a backend failure during operation.
func StorageError(operation string) {
	storageErrors.WithLabelValues(operation).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
