package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Methods may be called from many goroutines at once and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	AllocatorMetrics
	ServiceMetrics
}

// AllocatorMetrics defines metrics for allocation operations.
type AllocatorMetrics interface {
	// RecordAllocation records a completed allocation.
	//
	// Parameters:
	//   - strategy: Strategy name ("proportional", "largest-remainder")
	//   - lanes: Number of lanes in the plan
	//   - duration: Time taken in seconds
	RecordAllocation(strategy string, lanes int, duration float64)

	// RecordReconciliation records the correction applied to a plan.
	//
	// Parameters:
	//   - kind: "none", "excess" or "shortfall"
	//   - delta: Signed seconds applied to the adjusted lane
	RecordReconciliation(kind string, delta int)

	// RecordDegenerateInput records input accepted outside the well-formed domain.
	//
	// Parameters:
	//   - reason: "floor_exceeds_cycle" or "negative_lane"
	RecordDegenerateInput(reason string)
}

// ServiceMetrics defines metrics for the NATS allocation responder.
type ServiceMetrics interface {
	// RecordRequest records a handled request.
	//
	// Parameters:
	//   - result: "success", "invalid" or "error"
	RecordRequest(result string)

	// RecordCacheLookup records a plan cache lookup.
	RecordCacheLookup(hit bool)
}
