package strategy

import (
	"fmt"
	"math"

	"github.com/arloliu/greenlight/types"
)

// validateInput rejects input outside every strategy's domain.
//
// Floors that exceed the cycle are accepted.
func validateInput(densities []float64, params types.CycleParams) error {
	if len(densities) == 0 {
		return types.ErrNoLanes
	}

	if err := params.Validate(); err != nil {
		return err
	}

	for i, d := range densities {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("%w: lane %d is %v", types.ErrInvalidDensity, i+1, d)
		}
		if d < 0 {
			return fmt.Errorf("%w: lane %d is negative (%v)", types.ErrInvalidDensity, i+1, d)
		}
	}

	return nil
}
