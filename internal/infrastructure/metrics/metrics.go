// Package metrics expone las métricas Prometheus del servicio.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "estoque_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "estoque_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	realtimeConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "estoque_realtime_connections",
		Help: "Number of registered realtime connections",
	})

	realtimeDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "estoque_realtime_deliveries_total",
		Help: "Realtime event deliveries by result (queued, dropped)",
	}, []string{"result"})

	productMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "estoque_product_mutations_total",
		Help: "Successful product mutations by operation",
	}, []string{"operation"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ConnectionOpened increments the realtime connections gauge.
func ConnectionOpened() { realtimeConnections.Inc() }

// ConnectionClosed decrements the realtime connections gauge.
func ConnectionClosed() { realtimeConnections.Dec() }

// ObserveBroadcast records the outcome of one broadcast: events queued per connection and
// connections dropped because their queue was full.
func ObserveBroadcast(queued, dropped int) {
	realtimeDeliveries.WithLabelValues("queued").Add(float64(queued))
	realtimeDeliveries.WithLabelValues("dropped").Add(float64(dropped))
}

// ObserveProductMutation counts a create/update/delete.
func ObserveProductMutation(operation string) {
	productMutations.WithLabelValues(operation).Inc()
}
