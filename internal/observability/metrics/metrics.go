package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"
	OutcomeSkipped   = "skipped"
)

// Config labels every series with the service identity.
type Config struct {
	ServiceName string
	Environment string
}

// Metrics captures inventory and report delivery signals.
type Metrics struct {
	mutations        *prometheus.CounterVec
	persistFailures  prometheus.Counter
	deliveryAttempts *prometheus.CounterVec
	deliveryDuration *prometheus.HistogramVec
	bootstraps       *prometheus.CounterVec
	inventorySize    prometheus.Gauge
}

// New registers the instruments on registerer, falling back to the default registry.
func New(registerer prometheus.Registerer, cfg Config) (*Metrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "shiftcount"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	m := &Metrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "shiftcount_inventory_mutations_total",
			Help:        "Inventory mutations applied by operation.",
			ConstLabels: constLabels,
		}, []string{"op"}),
		persistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "shiftcount_inventory_persist_failures_total",
			Help:        "Inventory snapshots that could not be written to the storage slot.",
			ConstLabels: constLabels,
		}),
		deliveryAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "shiftcount_delivery_attempts_total",
			Help:        "Report delivery attempts by channel and outcome.",
			ConstLabels: constLabels,
		}, []string{"channel", "outcome"}),
		deliveryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "shiftcount_delivery_duration_seconds",
			Help:        "Report delivery latency by channel.",
			Buckets:     []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			ConstLabels: constLabels,
		}, []string{"channel"}),
		bootstraps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "shiftcount_bootstrap_total",
			Help:        "Startup reconciliations by the source that seeded the inventory.",
			ConstLabels: constLabels,
		}, []string{"source"}),
		inventorySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "shiftcount_inventory_products",
			Help:        "Products currently held in the inventory.",
			ConstLabels: constLabels,
		}),
	}

	collectors := []prometheus.Collector{
		m.mutations,
		m.persistFailures,
		m.deliveryAttempts,
		m.deliveryDuration,
		m.bootstraps,
		m.inventorySize,
	}
	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) RecordMutation(op string, size int) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op).Inc()
	m.inventorySize.Set(float64(size))
}

func (m *Metrics) RecordPersistFailure() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

func (m *Metrics) RecordDelivery(channel, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.deliveryAttempts.WithLabelValues(channel, outcome).Inc()
	if outcome != OutcomeSkipped {
		m.deliveryDuration.WithLabelValues(channel).Observe(seconds)
	}
}

func (m *Metrics) RecordBootstrap(source string, size int) {
	if m == nil {
		return
	}
	m.bootstraps.WithLabelValues(source).Inc()
	m.inventorySize.Set(float64(size))
}
