package strategy

import "github.com/arloliu/greenlight/types"

// Proportional implements the reference green-time split.
//
// Every lane gets MinGreenTime plus its truncated share of the remaining pool;
// a single reconciliation pass then forces the total to TotalCycleTime.
type Proportional struct {
	logger types.Logger
}

var _ types.AllocationStrategy = (*Proportional)(nil)

// NewProportional creates a new proportional strategy.
//
// Parameters:
//   - opts: Optional configuration (WithLogger)
//
// Returns:
//   - *Proportional: Initialized proportional strategy
func NewProportional(opts ...Option) *Proportional {
	o := buildOptions(opts)

	return &Proportional{logger: o.logger}
}

// Name returns NameProportional.
func (p *Proportional) Name() string {
	return NameProportional
}

// Allocate splits the cycle proportionally to density.
//
// The algorithm:
//  1. remaining = TotalCycleTime - n*MinGreenTime (may be negative)
//  2. totalDensity = sum(densities)
//  3. lane i gets MinGreenTime when totalDensity is zero, otherwise
//     MinGreenTime + trunc(densities[i]/totalDensity*remaining)
//  4. one reconciliation pass (see Reconcile)
//
// Parameters:
//   - densities: Non-negative finite weight per lane
//   - params: Cycle budget and per-lane floor
//
// Returns:
//   - types.Plan: Allocation with one entry per lane
//   - error: ErrNoLanes, ErrInvalidDensity or ErrInvalidCycleParams
//
// Example:
//
//	plan, _ := strategy.NewProportional().Allocate([]float64{10, 30, 20, 40}, types.DefaultCycleParams())
//	// plan.GreenTimes == []int{18, 34, 26, 42}
func (p *Proportional) Allocate(densities []float64, params types.CycleParams) (types.Plan, error) {
	if err := validateInput(densities, params); err != nil {
		return types.Plan{}, err
	}

	greenTimes := proportionalShares(densities, params)
	rec := Reconcile(greenTimes, densities, params.TotalCycleTime)

	if rec.Applied() {
		p.logger.Debug("proportional split reconciled",
			"kind", rec.Kind.String(),
			"lane", rec.Lane+1,
			"delta", rec.Delta,
		)
	}

	return newPlan(p.Name(), greenTimes, densities, params, rec), nil
}

// proportionalShares returns the pre-reconciliation allocation.
func proportionalShares(densities []float64, params types.CycleParams) []int {
	remaining := float64(params.Remaining(len(densities)))
	totalDensity := sumDensities(densities)

	greenTimes := make([]int, len(densities))
	for i, d := range densities {
		if totalDensity == 0 {
			greenTimes[i] = params.MinGreenTime

			continue
		}
		// int() truncates toward zero, matching the reference rounding.
		greenTimes[i] = params.MinGreenTime + int((d/totalDensity)*remaining)
	}

	return greenTimes
}

// Reconcile forces sum(greenTimes) to equal total with one adjustment, in place.
//
// Rules:
//   - sum > total: the excess is taken from the lane with the most green time
//   - sum < total: the shortfall is given to the lane with the highest density
//   - sum == total: nothing changes
//
// Ties resolve to the lowest lane index. A second call on the result is a no-op.
// greenTimes and densities must have the same length; otherwise nothing changes.
//
// Parameters:
//   - greenTimes: Allocation to adjust (modified in place)
//   - densities: Lane densities used for the shortfall lane
//   - total: Target sum
//
// Returns:
//   - types.Reconciliation: The adjustment applied (Kind ReconcileNone, Lane -1 if none)
func Reconcile(greenTimes []int, densities []float64, total int) types.Reconciliation {
	none := types.Reconciliation{Kind: types.ReconcileNone, Lane: -1}
	if len(greenTimes) == 0 || len(greenTimes) != len(densities) {
		return none
	}

	allocated := 0
	for _, t := range greenTimes {
		allocated += t
	}

	switch {
	case allocated > total:
		lane := argMaxInt(greenTimes)
		delta := total - allocated
		greenTimes[lane] += delta

		return types.Reconciliation{Kind: types.ReconcileExcess, Lane: lane, Delta: delta}
	case allocated < total:
		lane := argMaxFloat(densities)
		delta := total - allocated
		greenTimes[lane] += delta

		return types.Reconciliation{Kind: types.ReconcileShortfall, Lane: lane, Delta: delta}
	default:
		return none
	}
}

func sumDensities(densities []float64) float64 {
	total := 0.0
	for _, d := range densities {
		total += d
	}

	return total
}

// argMaxInt returns the first index holding the maximum value.
func argMaxInt(values []int) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}

	return best
}

// argMaxFloat returns the first index holding the maximum value.
func argMaxFloat(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}

	return best
}
