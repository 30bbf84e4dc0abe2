package source

import (
	"context"
	"sync"

	"github.com/arloliu/greenlight/types"
)

// Static implements a density source with a fixed list of densities.
type Static struct {
	mu        sync.RWMutex
	densities []float64
}

var _ types.DensitySource = (*Static)(nil)

// NewStatic creates a new static density source.
//
// The source returns the same densities until Update replaces them.
// Useful for testing and for intersections whose weights are known at startup.
//
// Parameters:
//   - densities: Density per lane (copied)
//
// Returns:
//   - *Static: Initialized static source
//
// Example:
//
//	src := source.NewStatic([]float64{10, 30, 20, 40})
//	plan, err := alloc.AllocateFrom(ctx, src)
func NewStatic(densities []float64) *Static {
	s := &Static{}
	s.Update(densities)

	return s
}

// Densities returns a copy of the current densities.
//
// Returns:
//   - []float64: Density per lane
//   - error: Always nil (never fails)
func (s *Static) Densities(_ context.Context) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]float64, len(s.densities))
	copy(result, s.densities)

	return result, nil
}

// Update replaces the density list.
//
// This lets the static source simulate changing traffic between cycles.
//
// Parameters:
//   - densities: New density per lane (copied)
func (s *Static) Update(densities []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.densities = make([]float64, len(densities))
	copy(s.densities, densities)
}
