package types

import "fmt"

const (
	// DefaultTotalCycleTime is the default cycle budget in seconds.
	DefaultTotalCycleTime = 120

	// DefaultMinGreenTime is the default per-lane green floor in seconds.
	DefaultMinGreenTime = 10
)

// CycleParams holds the budget of a single signal cycle.
type CycleParams struct {
	// TotalCycleTime is the number of seconds distributed across all lanes.
	// Must be positive.
	TotalCycleTime int `json:"totalCycleTime" yaml:"totalCycleTime"`

	// MinGreenTime is the floor every lane receives before the proportional share.
	// Must be non-negative; zero disables the floor.
	MinGreenTime int `json:"minGreenTime" yaml:"minGreenTime"`
}

// DefaultCycleParams returns the 120s cycle with a 10s floor.
func DefaultCycleParams() CycleParams {
	return CycleParams{
		TotalCycleTime: DefaultTotalCycleTime,
		MinGreenTime:   DefaultMinGreenTime,
	}
}

// Validate checks that the parameters are usable by an allocation strategy.
//
// A floor that exceeds the cycle for a given lane count is not rejected here;
// see Remaining.
//
// Returns:
//   - error: ErrInvalidCycleParams wrapped with details, nil if valid
func (p CycleParams) Validate() error {
	if p.TotalCycleTime <= 0 {
		return fmt.Errorf("%w: totalCycleTime must be > 0, got %d", ErrInvalidCycleParams, p.TotalCycleTime)
	}

	if p.MinGreenTime < 0 {
		return fmt.Errorf("%w: minGreenTime must be >= 0, got %d", ErrInvalidCycleParams, p.MinGreenTime)
	}

	return nil
}

// Remaining returns the seconds left after every one of n lanes receives its floor.
//
// The result is negative when n*MinGreenTime exceeds TotalCycleTime.
func (p CycleParams) Remaining(n int) int {
	return p.TotalCycleTime - n*p.MinGreenTime
}

// FloorExceedsCycle reports whether the floors of n lanes alone exceed the cycle.
func (p CycleParams) FloorExceedsCycle(n int) bool {
	return p.Remaining(n) < 0
}
