package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJitter_BoundsAndCap(t *testing.T) {
	base := 200 * time.Millisecond
	maxDelay := 500 * time.Millisecond
	j := New(base, maxDelay, 1.6, 42)

	require.Equal(t, base, j.Next(), "first delay is base")
	for range 10 {
		next := j.Next()
		require.GreaterOrEqual(t, next, base)
		require.LessOrEqual(t, next, maxDelay)
	}
}

func TestJitter_MaxBelowBase(t *testing.T) {
	j := New(200*time.Millisecond, 100*time.Millisecond, 1.6, 1)

	require.Equal(t, 100*time.Millisecond, j.Next())
	require.Equal(t, 100*time.Millisecond, j.Next())
}

func TestJitter_Defaults(t *testing.T) {
	j := New(0, 0, 0.5, 0)

	require.Equal(t, DefaultBase, j.Next())
	// multiplier clamps to 1.0, so the spread stays at base
	for range 5 {
		next := j.Next()
		require.GreaterOrEqual(t, next, DefaultBase)
		require.Less(t, next, 2*DefaultBase)
	}
}

func TestJitter_DeterministicWithSeed(t *testing.T) {
	a := New(10*time.Millisecond, time.Second, 2, 7)
	b := New(10*time.Millisecond, time.Second, 2, 7)

	for range 8 {
		require.Equal(t, a.Next(), b.Next())
	}
}

func TestJitter_Reset(t *testing.T) {
	j := New(10*time.Millisecond, time.Second, 2, 3)
	j.Next()
	j.Next()

	j.Reset()
	require.Equal(t, 10*time.Millisecond, j.Next())
}
