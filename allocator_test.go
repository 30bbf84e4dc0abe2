package greenlight

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/greenlight/strategy"
	"github.com/arloliu/greenlight/types"
)

// recordingMetrics captures allocator metrics for assertions.
type recordingMetrics struct {
	allocations     []string
	reconciliations []string
	degenerate      []string
	requests        []string
	cacheHits       int
	cacheMisses     int
}

func (r *recordingMetrics) RecordAllocation(strategy string, _ int, _ float64) {
	r.allocations = append(r.allocations, strategy)
}

func (r *recordingMetrics) RecordReconciliation(kind string, _ int) {
	r.reconciliations = append(r.reconciliations, kind)
}

func (r *recordingMetrics) RecordDegenerateInput(reason string) {
	r.degenerate = append(r.degenerate, reason)
}

func (r *recordingMetrics) RecordRequest(result string) {
	r.requests = append(r.requests, result)
}

func (r *recordingMetrics) RecordCacheLookup(hit bool) {
	if hit {
		r.cacheHits++
	} else {
		r.cacheMisses++
	}
}

// recordingLogger captures warning messages.
type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Info(string, ...any)  {}
func (l *recordingLogger) Warn(msg string, _ ...any) {
	l.warnings = append(l.warnings, msg)
}
func (l *recordingLogger) Error(string, ...any) {}
func (l *recordingLogger) Fatal(string, ...any) {}

type staticDensities []float64

func (s staticDensities) Densities(context.Context) ([]float64, error) {
	return s, nil
}

type failingSource struct{}

func (failingSource) Densities(context.Context) ([]float64, error) {
	return nil, errors.New("detector offline")
}

func TestAllocate_ReferenceScenarios(t *testing.T) {
	tests := []struct {
		name      string
		densities []float64
		total     int
		minGreen  int
		want      []int
	}{
		{"four lanes", []float64{10, 30, 20, 40}, 120, 10, []int{18, 34, 26, 42}},
		{"idle pair", []float64{0, 0}, 60, 10, []int{50, 10}},
		{"single lane", []float64{5}, 120, 10, []int{120}},
		{"idle triple", []float64{0, 0, 0}, 120, 10, []int{100, 10, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Allocate(tt.densities, tt.total, tt.minGreen)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestAllocate_EmptyInput(t *testing.T) {
	got, err := Allocate(nil, 120, 10)
	require.Nil(t, got)
	require.True(t, errors.Is(err, ErrNoLanes))
}

func TestNewAllocator(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewAllocator(nil)
		require.True(t, errors.Is(err, ErrInvalidConfig))
	})

	t.Run("empty config gets defaults", func(t *testing.T) {
		cfg := Config{}
		alloc, err := NewAllocator(&cfg)
		require.NoError(t, err)

		require.Equal(t, strategy.NameProportional, alloc.StrategyName())
		require.Equal(t, 120, alloc.Params().TotalCycleTime)
		// zero floor is meaningful and is not replaced by SetDefaults
		require.Equal(t, 0, alloc.Params().MinGreenTime)
	})

	t.Run("default config keeps the 10s floor", func(t *testing.T) {
		cfg := DefaultConfig()
		alloc, err := NewAllocator(&cfg)
		require.NoError(t, err)
		require.Equal(t, CycleParams{TotalCycleTime: 120, MinGreenTime: 10}, alloc.Params())
	})

	t.Run("unknown strategy", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Strategy = "webster"
		_, err := NewAllocator(&cfg)
		require.True(t, errors.Is(err, ErrInvalidConfig))
		require.True(t, errors.Is(err, ErrUnknownStrategy))
	})

	t.Run("negative floor", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MinGreenTime = -1
		_, err := NewAllocator(&cfg)
		require.True(t, errors.Is(err, ErrInvalidConfig))
		require.True(t, errors.Is(err, ErrInvalidCycleParams))
	})

	t.Run("strategy option overrides config", func(t *testing.T) {
		cfg := DefaultConfig()
		alloc, err := NewAllocator(&cfg, WithStrategy(strategy.NewLargestRemainder()))
		require.NoError(t, err)
		require.Equal(t, strategy.NameLargestRemainder, alloc.StrategyName())
	})

	t.Run("config warnings reach the logger", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MinGreenTime = 0
		logger := &recordingLogger{}
		_, err := NewAllocator(&cfg, WithLogger(logger))
		require.NoError(t, err)
		require.Len(t, logger.warnings, 1)
	})
}

func TestAllocator_Plan(t *testing.T) {
	cfg := DefaultConfig()
	rec := &recordingMetrics{}
	alloc, err := NewAllocator(&cfg, WithMetrics(rec))
	require.NoError(t, err)

	plan, err := alloc.Plan([]float64{0, 0})
	require.NoError(t, err)

	require.Equal(t, []int{110, 10}, plan.GreenTimes)
	require.Equal(t, Reconciliation{Kind: ReconcileShortfall, Lane: 0, Delta: 100}, plan.Reconciliation)
	require.NotZero(t, plan.Fingerprint)
	require.Equal(t, "Lane 1: 110 seconds green", plan.Lanes()[0].String())

	require.Equal(t, []string{strategy.NameProportional}, rec.allocations)
	require.Equal(t, []string{"shortfall"}, rec.reconciliations)
	require.Empty(t, rec.degenerate)

	again, err := alloc.Plan([]float64{0, 0})
	require.NoError(t, err)
	require.Equal(t, plan.Fingerprint, again.Fingerprint)
}

func TestAllocator_Allocate(t *testing.T) {
	cfg := DefaultConfig()
	alloc, err := NewAllocator(&cfg)
	require.NoError(t, err)

	got, err := alloc.Allocate([]float64{10, 30, 20, 40})
	require.NoError(t, err)
	require.Equal(t, []int{18, 34, 26, 42}, got)

	_, err = alloc.Allocate([]float64{})
	require.True(t, errors.Is(err, ErrNoLanes))
}

func TestAllocator_DegenerateInput(t *testing.T) {
	cfg := DefaultConfig()
	rec := &recordingMetrics{}
	logger := &recordingLogger{}
	alloc, err := NewAllocator(&cfg, WithMetrics(rec), WithLogger(logger))
	require.NoError(t, err)

	plan, err := alloc.PlanWith([]float64{1, 9}, types.CycleParams{TotalCycleTime: 5, MinGreenTime: 10})
	require.NoError(t, err, "degenerate floors are computed, not rejected")

	require.Equal(t, []int{8, -3}, plan.GreenTimes)
	require.Equal(t, 5, plan.Total())
	require.Equal(t, []string{DegenerateFloorExceedsCycle, DegenerateNegativeLane}, rec.degenerate)
	require.Len(t, logger.warnings, 2)
}

func TestAllocator_AllocateFrom(t *testing.T) {
	cfg := DefaultConfig()
	alloc, err := NewAllocator(&cfg)
	require.NoError(t, err)

	plan, err := alloc.AllocateFrom(context.Background(), staticDensities{5})
	require.NoError(t, err)
	require.Equal(t, []int{120}, plan.GreenTimes)

	_, err = alloc.AllocateFrom(context.Background(), failingSource{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "detector offline")
}

func TestAllocator_ConcurrentUse(t *testing.T) {
	cfg := DefaultConfig()
	alloc, err := NewAllocator(&cfg)
	require.NoError(t, err)

	const goroutines = 16
	results := make(chan []int, goroutines)
	for range goroutines {
		go func() {
			got, err := alloc.Allocate([]float64{10, 30, 20, 40})
			if err != nil {
				results <- nil
				return
			}
			results <- got
		}()
	}

	for range goroutines {
		require.Equal(t, []int{18, 34, 26, 42}, <-results)
	}
}
