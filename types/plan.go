package types

import "fmt"

// ReconcileKind identifies which correction, if any, was applied to a plan.
type ReconcileKind int

const (
	// ReconcileNone means the proportional pass already summed to the cycle.
	ReconcileNone ReconcileKind = iota

	// ReconcileExcess means seconds were removed from the lane with the most green time.
	ReconcileExcess

	// ReconcileShortfall means seconds were added to the lane with the highest density.
	ReconcileShortfall
)

// String returns the label used in logs, metrics and wire replies.
func (k ReconcileKind) String() string {
	switch k {
	case ReconcileNone:
		return "none"
	case ReconcileExcess:
		return "excess"
	case ReconcileShortfall:
		return "shortfall"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Reconciliation records the single adjustment applied to force an exact total.
type Reconciliation struct {
	// Kind is the adjustment type.
	Kind ReconcileKind `json:"kind"`

	// Lane is the zero-based index of the adjusted lane (-1 when Kind is ReconcileNone).
	Lane int `json:"lane"`

	// Delta is the signed number of seconds applied to Lane.
	Delta int `json:"delta"`
}

// Applied reports whether an adjustment was made.
func (r Reconciliation) Applied() bool {
	return r.Kind != ReconcileNone
}

// Plan is the green-time allocation for one cycle.
type Plan struct {
	// GreenTimes holds the allocated seconds per lane, in input order.
	GreenTimes []int `json:"greenTimes"`

	// Densities is a copy of the input weights.
	Densities []float64 `json:"densities"`

	// Params are the cycle parameters the plan was computed with.
	Params CycleParams `json:"params"`

	// Reconciliation describes the correction applied after the proportional pass.
	Reconciliation Reconciliation `json:"reconciliation"`

	// Strategy is the name of the strategy that produced the plan.
	Strategy string `json:"strategy"`

	// Fingerprint identifies (strategy, params, densities). Zero when not computed.
	Fingerprint uint64 `json:"fingerprint"`
}

// Total returns the sum of all allocated green times.
func (p Plan) Total() int {
	total := 0
	for _, t := range p.GreenTimes {
		total += t
	}

	return total
}

// HasNegativeLane reports whether any lane ended up with negative green time.
//
// Only possible when the lane floors exceed the cycle.
func (p Plan) HasNegativeLane() bool {
	for _, t := range p.GreenTimes {
		if t < 0 {
			return true
		}
	}

	return false
}

// Lanes returns the plan as 1-based lane entries.
func (p Plan) Lanes() []LaneGreen {
	lanes := make([]LaneGreen, len(p.GreenTimes))
	for i, t := range p.GreenTimes {
		lanes[i] = LaneGreen{Lane: i + 1, Seconds: t}
	}

	return lanes
}

// LaneGreen is the green time of a single lane.
type LaneGreen struct {
	// Lane is the 1-based lane number.
	Lane int `json:"lane"`

	// Seconds is the allocated green time.
	Seconds int `json:"seconds"`
}

// String renders the entry as "Lane <i>: <seconds> seconds green".
func (l LaneGreen) String() string {
	return fmt.Sprintf("Lane %d: %d seconds green", l.Lane, l.Seconds)
}
