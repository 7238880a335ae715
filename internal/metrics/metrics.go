package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// The "service" label separates the ledger and orchestrator binaries so one
// query can compare them.
var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "payhold",
		Name:      "requests_total",
		Help:      "Total RPC requests per service, labeled by outcome status",
	}, []string{"service", "method", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "payhold",
		Name:      "request_duration_seconds",
		Help:      "RPC handling latency per service",
		Buckets: []float64{
			0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
		},
	}, []string{"service", "method"})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "payhold",
		Name:      "idempotency_cache_hits_total",
		Help:      "LogAndSettle requests answered from the idempotency cache",
	})

	ReconciledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "payhold",
		Name:      "reconciled_reservations_total",
		Help:      "Stuck PENDING reservations rolled back by the reconciler",
	})
)

func IncRequest(service, method, status string) {
	RequestsTotal.WithLabelValues(service, method, status).Inc()
}

func ObserveDuration(service, method string, seconds float64) {
	RequestDuration.WithLabelValues(service, method).Observe(seconds)
}
