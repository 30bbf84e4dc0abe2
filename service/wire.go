package service

import (
	"github.com/arloliu/greenlight"
	"github.com/arloliu/greenlight/internal/hash"
)

// Request is the JSON body of an allocation request.
type Request struct {
	// Densities holds one weight per lane.
	Densities []float64 `json:"densities"`

	// TotalCycleTime overrides the responder's configured cycle when set.
	TotalCycleTime *int `json:"totalCycleTime,omitempty"`

	// MinGreenTime overrides the responder's configured floor when set.
	MinGreenTime *int `json:"minGreenTime,omitempty"`
}

// ReconciliationInfo is the wire form of greenlight.Reconciliation.
type ReconciliationInfo struct {
	Kind  string `json:"kind"`
	Lane  int    `json:"lane"`
	Delta int    `json:"delta"`
}

// Reply is the JSON body of an allocation reply.
//
// Exactly one of GreenTimes or Error is set.
type Reply struct {
	GreenTimes     []int               `json:"greenTimes,omitempty"`
	Strategy       string              `json:"strategy,omitempty"`
	Fingerprint    string              `json:"fingerprint,omitempty"`
	Reconciliation *ReconciliationInfo `json:"reconciliation,omitempty"`
	Error          string              `json:"error,omitempty"`
}

// Lanes returns the reply as per-lane entries (1-based lane numbers).
func (r *Reply) Lanes() []greenlight.LaneGreen {
	lanes := make([]greenlight.LaneGreen, len(r.GreenTimes))
	for i, seconds := range r.GreenTimes {
		lanes[i] = greenlight.LaneGreen{Lane: i + 1, Seconds: seconds}
	}

	return lanes
}

// params resolves the request's cycle parameters against defaults.
func (r *Request) params(defaults greenlight.CycleParams) greenlight.CycleParams {
	params := defaults
	if r.TotalCycleTime != nil {
		params.TotalCycleTime = *r.TotalCycleTime
	}
	if r.MinGreenTime != nil {
		params.MinGreenTime = *r.MinGreenTime
	}

	return params
}

// replyFromPlan builds the success reply for plan.
func replyFromPlan(plan greenlight.Plan) *Reply {
	return &Reply{
		GreenTimes:  plan.GreenTimes,
		Strategy:    plan.Strategy,
		Fingerprint: hash.Hex(plan.Fingerprint),
		Reconciliation: &ReconciliationInfo{
			Kind:  plan.Reconciliation.Kind.String(),
			Lane:  plan.Reconciliation.Lane,
			Delta: plan.Reconciliation.Delta,
		},
	}
}
