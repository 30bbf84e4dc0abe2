package types

// AllocationStrategy splits a cycle across lanes according to their densities.
//
// Strategy implementations should:
//   - Be deterministic (same input → same output)
//   - Never mutate or retain the densities slice
//   - Return a plan whose GreenTimes has one entry per density
//   - Be safe for concurrent use
type AllocationStrategy interface {
	// Name returns the registry name of the strategy (e.g., "proportional").
	Name() string

	// Allocate computes the green-time plan for one cycle.
	//
	// Parameters:
	//   - densities: Non-negative finite weight per lane (at least one)
	//   - params: Cycle budget and per-lane floor
	//
	// Returns:
	//   - Plan: Allocation with one entry per lane
	//   - error: ErrNoLanes, ErrInvalidDensity or ErrInvalidCycleParams
	Allocate(densities []float64, params CycleParams) (Plan, error)
}
