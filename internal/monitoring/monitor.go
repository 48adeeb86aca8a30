package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus collectors for the ordering platform, served by the
// standalone metrics server.
var (
	OrdersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tableside_orders_placed_total",
		Help: "Number of orders accepted by the placement endpoint",
	})
	OrderStatusChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tableside_order_status_changes_total",
		Help: "Number of order status transitions by target status",
	}, []string{"status"})
	VisitsTracked = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tableside_visits_total",
		Help: "Number of page visits recorded by the tracking middleware",
	})
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tableside_http_requests_total",
		Help: "Number of HTTP requests by method, route and status code",
	}, []string{"method", "path", "status"})
)

func init() {
	prometheus.MustRegister(OrdersPlaced, OrderStatusChanges, VisitsTracked, HTTPRequests)
}

// Monitor collects in-process metrics for the admin dashboard
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// IncrMetric increments an integer metric, starting it at zero if it
// has not been recorded yet.
func (m *Monitor) IncrMetric(name string) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	current, _ := m.metrics[name].(int64)
	m.metrics[name] = current + 1
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	// Add system metrics
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}
