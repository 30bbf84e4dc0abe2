package strategy

import (
	"cmp"
	"slices"

	"github.com/arloliu/greenlight/types"
)

// LargestRemainder implements the Hamilton method on top of the lane floors.
//
// Each lane gets MinGreenTime plus the integer part of its exact share; the
// seconds lost to truncation are then handed out one at a time to the lanes
// with the largest fractional parts.
type LargestRemainder struct {
	logger types.Logger
}

var _ types.AllocationStrategy = (*LargestRemainder)(nil)

type remainderEntry struct {
	index    int
	fraction float64
}

// NewLargestRemainder creates a new largest-remainder strategy.
//
// Parameters:
//   - opts: Optional configuration (WithLogger)
//
// Returns:
//   - *LargestRemainder: Initialized strategy
func NewLargestRemainder(opts ...Option) *LargestRemainder {
	o := buildOptions(opts)

	return &LargestRemainder{logger: o.logger}
}

// Name returns NameLargestRemainder.
func (lr *LargestRemainder) Name() string {
	return NameLargestRemainder
}

// Allocate splits the cycle proportionally to density, distributing rounding loss.
//
// The algorithm:
//  1. remaining = TotalCycleTime - n*MinGreenTime
//  2. if remaining < 0 fall back to the Proportional split
//  3. weights are the densities, or 1 per lane when every density is zero
//  4. share_i = weight_i/sum(weights)*remaining; lane i gets MinGreenTime + trunc(share_i)
//  5. leftover seconds go to the largest fractional parts, lowest index first on ties
//  6. Reconcile once; a no-op unless float error pushed the floors past the pool
//
// Parameters:
//   - densities: Non-negative finite weight per lane
//   - params: Cycle budget and per-lane floor
//
// Returns:
//   - types.Plan: Allocation with one entry per lane
//   - error: ErrNoLanes, ErrInvalidDensity or ErrInvalidCycleParams
func (lr *LargestRemainder) Allocate(densities []float64, params types.CycleParams) (types.Plan, error) {
	if err := validateInput(densities, params); err != nil {
		return types.Plan{}, err
	}

	remaining := params.Remaining(len(densities))
	if remaining < 0 {
		lr.logger.Debug("lane floors exceed cycle; using proportional split",
			"lanes", len(densities),
			"remaining", remaining,
		)
		greenTimes := proportionalShares(densities, params)
		rec := Reconcile(greenTimes, densities, params.TotalCycleTime)

		return newPlan(lr.Name(), greenTimes, densities, params, rec), nil
	}

	weights := densities
	totalWeight := sumDensities(densities)
	if totalWeight == 0 {
		weights = make([]float64, len(densities))
		for i := range weights {
			weights[i] = 1
		}
		totalWeight = float64(len(weights))
	}

	greenTimes := make([]int, len(densities))
	entries := make([]remainderEntry, len(densities))
	assigned := 0
	for i, w := range weights {
		share := (w / totalWeight) * float64(remaining)
		whole := int(share)
		greenTimes[i] = params.MinGreenTime + whole
		entries[i] = remainderEntry{index: i, fraction: share - float64(whole)}
		assigned += whole
	}

	slices.SortStableFunc(entries, func(a, b remainderEntry) int {
		if c := cmp.Compare(b.fraction, a.fraction); c != 0 {
			return c
		}

		return cmp.Compare(a.index, b.index)
	})

	leftover := remaining - assigned
	for k := 0; k < leftover && k < len(entries); k++ {
		greenTimes[entries[k].index]++
	}

	rec := Reconcile(greenTimes, densities, params.TotalCycleTime)
	if rec.Applied() {
		lr.logger.Debug("largest remainder split reconciled",
			"kind", rec.Kind.String(),
			"lane", rec.Lane+1,
			"delta", rec.Delta,
		)
	}

	return newPlan(lr.Name(), greenTimes, densities, params, rec), nil
}
