package app

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type SettlementMetrics struct {
	operations  *prometheus.CounterVec
	deliveries  *prometheus.CounterVec
	busMessages *prometheus.CounterVec
	circulation *prometheus.GaugeVec
}

var (
	metricsOnce     sync.Once
	metricsRegistry *SettlementMetrics
)

// Metrics returns the process wide collectors, registering them on first use.
func Metrics() *SettlementMetrics {
	metricsOnce.Do(func() {
		metricsRegistry = &SettlementMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "walletka",
				Subsystem: "settlement",
				Name:      "operations_total",
				Help:      "Settlement operations partitioned by kind and result.",
			}, []string{"mint_id", "operation", "result"}),
			deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "walletka",
				Subsystem: "lsp",
				Name:      "deliveries_total",
				Help:      "Received payments delivered to customers, by strategy.",
			}, []string{"strategy"}),
			busMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "walletka",
				Subsystem: "bus",
				Name:      "messages_total",
				Help:      "Bus deliveries partitioned by queue and ack decision.",
			}, []string{"queue", "decision"}),
			circulation: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "walletka",
				Subsystem: "settlement",
				Name:      "circulation_msat",
				Help:      "Last observed circulation per mint.",
			}, []string{"mint_id"}),
		}
		prometheus.MustRegister(
			metricsRegistry.operations,
			metricsRegistry.deliveries,
			metricsRegistry.busMessages,
			metricsRegistry.circulation,
		)
	})
	return metricsRegistry
}

func (m *SettlementMetrics) RecordOperation(mintID, operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(mintID, operation, result).Inc()
}

func (m *SettlementMetrics) RecordDelivery(strategy string) {
	m.deliveries.WithLabelValues(strategy).Inc()
}

func (m *SettlementMetrics) RecordBusMessage(queue, decision string) {
	m.busMessages.WithLabelValues(queue, decision).Inc()
}

func (m *SettlementMetrics) SetCirculation(mintID string, msat uint64) {
	m.circulation.WithLabelValues(mintID).Set(float64(msat))
}
