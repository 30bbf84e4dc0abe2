// Package hash computes stable identifiers for allocation inputs.
package hash

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/zeebo/xxh3"

	"github.com/arloliu/greenlight/types"
)

// Fingerprint identifies an allocation request by (strategy, params, densities).
//
// Every component is folded into a single xxh3 64-bit hash, using the previous
// hash as the seed for the next one, so no intermediate buffer is built. Lane
// order matters: [1, 2] and [2, 1] have different fingerprints.
//
// Parameters:
//   - strategy: Strategy name
//   - params: Cycle parameters
//   - densities: Lane densities
//
// Returns:
//   - uint64: Fingerprint, never zero
//
// Example:
//
//	fp := hash.Fingerprint("proportional", types.DefaultCycleParams(), []float64{10, 30, 20, 40})
func Fingerprint(strategy string, params types.CycleParams, densities []float64) uint64 {
	h := xxh3.HashString(strategy)
	h = foldUint64(h, uint64(int64(params.TotalCycleTime))) //nolint:gosec
	h = foldUint64(h, uint64(int64(params.MinGreenTime)))   //nolint:gosec
	h = foldUint64(h, uint64(len(densities)))

	for _, d := range densities {
		// -0 and +0 compare equal and must hash equal.
		if d == 0 {
			d = 0
		}
		h = foldUint64(h, math.Float64bits(d))
	}

	// Zero is reserved for "not computed" on types.Plan.
	if h == 0 {
		h = 1
	}

	return h
}

// Hex renders a fingerprint as a fixed-width lowercase hex string.
func Hex(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}

func foldUint64(seed uint64, v uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)

	return xxh3.HashSeed(b[:], seed)
}
