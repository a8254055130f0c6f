package services

import (
	"time"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records engine activity. A nil *Metrics records nothing.
type Metrics struct {
	transactions *prometheus.CounterVec
	errors       *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	cacheLoads   *prometheus.CounterVec
}

// NewMetrics creates the engine collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_transactions_total",
			Help: "Transactions committed by the ledger engine.",
		}, []string{"type", "status"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_transaction_errors_total",
			Help: "Rejected or aborted ledger operations by error kind.",
		}, []string{"type", "kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wallet_transaction_duration_seconds",
			Help:    "Wall time of ledger operations, including lock waits.",
			Buckets: prometheus.DefBuckets,
		}, []string{"type"}),
		cacheLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_system_account_cache_loads_total",
			Help: "System account cache population attempts.",
		}, []string{"status"}),
	}
	if reg != nil {
		reg.MustRegister(m.transactions, m.errors, m.duration, m.cacheLoads)
	}
	return m
}

func (m *Metrics) observe(typ domain.TransactionType, started time.Time, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(string(typ)).Observe(time.Since(started).Seconds())
	if err != nil {
		m.errors.WithLabelValues(string(typ), apperrors.KindOf(err).String()).Inc()
		return
	}
	m.transactions.WithLabelValues(string(typ), string(domain.TransactionStatusCompleted)).Inc()
}

func (m *Metrics) cacheLoad(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.cacheLoads.WithLabelValues(status).Inc()
}
