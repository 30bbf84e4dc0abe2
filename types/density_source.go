package types

import "context"

// DensitySource provides the current density weight of every lane.
//
// Implementations can read various backends:
//   - Static: fixed weights for testing and demos
//   - File: YAML lanes file re-read on every call
//   - Custom: any counting or estimation logic owned by the caller
type DensitySource interface {
	// Densities returns one weight per lane, in lane order.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//
	// Returns:
	//   - []float64: Lane weights
	//   - error: Read error (nil on success)
	Densities(ctx context.Context) ([]float64, error)
}
