// Package metrics provides types.MetricsCollector implementations.
package metrics

import "github.com/arloliu/greenlight/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Example:
//
//	alloc, err := greenlight.NewAllocator(&cfg, greenlight.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// AllocatorMetrics implementation

// RecordAllocation discards the allocation metric.
func (n *NopMetrics) RecordAllocation(_ /* strategy */ string, _ /* lanes */ int, _ /* duration */ float64) {
	// No-op
}

// RecordReconciliation discards the reconciliation metric.
func (n *NopMetrics) RecordReconciliation(_ /* kind */ string, _ /* delta */ int) {
	// No-op
}

// RecordDegenerateInput discards the degenerate input metric.
func (n *NopMetrics) RecordDegenerateInput(_ /* reason */ string) {
	// No-op
}

// ServiceMetrics implementation

// RecordRequest discards the request metric.
func (n *NopMetrics) RecordRequest(_ /* result */ string) {
	// No-op
}

// RecordCacheLookup discards the cache lookup metric.
func (n *NopMetrics) RecordCacheLookup(_ /* hit */ bool) {
	// No-op
}
