// Package backoff computes retry delays for the service client.
package backoff

import (
	rand "math/rand/v2"
	"time"
)

// DefaultBase is used when a Jitter is built with a non-positive base.
const DefaultBase = 50 * time.Millisecond

// Jitter produces decorrelated jitter delays ("Full Jitter" variant) with a cap.
// See: https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter/
//
// Given the previous delay (prev), the next delay is
//
//	next = min(max, base + rand(prev*multiplier - base))
//
// Behavior:
//   - The first delay is base
//   - Multiplier < 1.0 falls back to 1.0 (no growth)
//   - Max below base pins every delay to max
//   - Max <= 0 disables the cap
//
// A Jitter is not safe for concurrent use; build one per retry loop.
type Jitter struct {
	base       time.Duration
	max        time.Duration
	multiplier float64
	rng        *rand.Rand
	prev       time.Duration
}

// New creates a Jitter.
//
// Parameters:
//   - base: First and minimum delay (DefaultBase if <= 0)
//   - maxDelay: Cap for every delay (no cap if <= 0)
//   - multiplier: Growth factor applied to the previous delay
//   - seed: Non-zero seed for a deterministic sequence; 0 uses the package-level PRNG
//
// Returns:
//   - *Jitter: Delay generator starting at base
func New(base, maxDelay time.Duration, multiplier float64, seed int64) *Jitter {
	if base <= 0 {
		base = DefaultBase
	}
	if multiplier < 1.0 {
		multiplier = 1.0
	}

	return &Jitter{
		base:       base,
		max:        maxDelay,
		multiplier: multiplier,
		rng:        newRNG(seed),
	}
}

// Next returns the next delay.
func (j *Jitter) Next() time.Duration {
	j.prev = j.next(j.prev)

	return j.prev
}

// Reset restarts the sequence at base.
func (j *Jitter) Reset() {
	j.prev = 0
}

func (j *Jitter) next(prev time.Duration) time.Duration {
	if j.max > 0 && j.max < j.base {
		return j.max
	}

	if prev <= 0 {
		return j.base
	}

	spread := time.Duration(float64(prev)*j.multiplier) - j.base
	if spread <= 0 {
		spread = j.base
	}

	var jitter int64
	if j.rng != nil {
		jitter = j.rng.Int64N(int64(spread))
	} else {
		jitter = rand.Int64N(int64(spread)) //nolint:gosec // non-crypto backoff jitter
	}

	next := j.base + time.Duration(jitter)
	if j.max > 0 && next > j.max {
		return j.max
	}

	return next
}

// newRNG returns a deterministic RNG only when a non-zero seed is provided.
//
//nolint:gosec
func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	s1 := uint64(seed)
	s2 := s1 ^ 0x9e3779b97f4a7c15

	return rand.New(rand.NewPCG(s1, s2))
}
