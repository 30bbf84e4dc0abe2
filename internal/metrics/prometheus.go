package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/greenlight/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use, so constructing a
// PrometheusCollector that is never exercised leaves the registry untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	// Allocator metrics
	allocations         *prometheus.CounterVec
	allocationDuration  *prometheus.HistogramVec
	allocationLanes     *prometheus.HistogramVec
	reconciliations     *prometheus.CounterVec
	reconciliationDelta *prometheus.HistogramVec
	degenerateInputs    *prometheus.CounterVec

	// Service metrics
	requests     *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "greenlight" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "greenlight"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.allocations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "allocator",
			Name:      "allocations_total",
			Help:      "Total completed allocations by strategy.",
		}, []string{"strategy"})

		p.allocationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "allocator",
			Name:      "allocation_duration_seconds",
			Help:      "Time spent computing a plan in seconds by strategy.",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10), // 1µs .. ~0.26s
		}, []string{"strategy"})

		p.allocationLanes = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "allocator",
			Name:      "allocation_lanes",
			Help:      "Number of lanes per allocation by strategy.",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 16},
		}, []string{"strategy"})

		p.reconciliations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "allocator",
			Name:      "reconciliations_total",
			Help:      "Total reconciliation outcomes by kind (none, excess, shortfall).",
		}, []string{"kind"})

		p.reconciliationDelta = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "allocator",
			Name:      "reconciliation_delta_seconds",
			Help:      "Absolute seconds moved by a reconciliation by kind.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}, []string{"kind"})

		p.degenerateInputs = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "allocator",
			Name:      "degenerate_inputs_total",
			Help:      "Allocations accepted outside the well-formed domain by reason.",
		}, []string{"reason"})

		p.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "service",
			Name:      "requests_total",
			Help:      "Total allocation requests by result (success, invalid, error).",
		}, []string{"result"})

		p.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "service",
			Name:      "cache_lookups_total",
			Help:      "Plan cache lookups by result (hit, miss).",
		}, []string{"result"})

		p.reg.MustRegister(p.allocations)
		p.reg.MustRegister(p.allocationDuration)
		p.reg.MustRegister(p.allocationLanes)
		p.reg.MustRegister(p.reconciliations)
		p.reg.MustRegister(p.reconciliationDelta)
		p.reg.MustRegister(p.degenerateInputs)
		p.reg.MustRegister(p.requests)
		p.reg.MustRegister(p.cacheLookups)
	})
}

// AllocatorMetrics implementation

// RecordAllocation counts the allocation and observes its latency and lane count.
func (p *PrometheusCollector) RecordAllocation(strategy string, lanes int, duration float64) {
	p.ensureRegistered()
	p.allocations.WithLabelValues(strategy).Inc()
	p.allocationDuration.WithLabelValues(strategy).Observe(duration)
	p.allocationLanes.WithLabelValues(strategy).Observe(float64(lanes))
}

// RecordReconciliation counts the reconciliation kind and observes the moved seconds.
func (p *PrometheusCollector) RecordReconciliation(kind string, delta int) {
	p.ensureRegistered()
	p.reconciliations.WithLabelValues(kind).Inc()
	if delta < 0 {
		delta = -delta
	}
	if delta > 0 {
		p.reconciliationDelta.WithLabelValues(kind).Observe(float64(delta))
	}
}

// RecordDegenerateInput increments the degenerate input counter for reason.
func (p *PrometheusCollector) RecordDegenerateInput(reason string) {
	p.ensureRegistered()
	p.degenerateInputs.WithLabelValues(reason).Inc()
}

// ServiceMetrics implementation

// RecordRequest increments the request counter for result.
func (p *PrometheusCollector) RecordRequest(result string) {
	p.ensureRegistered()
	p.requests.WithLabelValues(result).Inc()
}

// RecordCacheLookup increments the hit or miss counter.
func (p *PrometheusCollector) RecordCacheLookup(hit bool) {
	p.ensureRegistered()
	if hit {
		p.cacheLookups.WithLabelValues("hit").Inc()
	} else {
		p.cacheLookups.WithLabelValues("miss").Inc()
	}
}
