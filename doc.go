// Package greenlight splits a traffic-signal cycle into per-lane green times
// proportional to lane density.
//
// Every lane first receives a guaranteed floor (MinGreenTime). The rest of the
// cycle is shared in proportion to density, truncated to whole seconds, and a
// single reconciliation pass makes the plan sum to exactly TotalCycleTime.
//
// # Quick Start
//
// One-off allocation with explicit parameters:
//
//	import "github.com/arloliu/greenlight"
//
//	greenTimes, err := greenlight.Allocate([]float64{10, 30, 20, 40}, 120, 10)
//	// greenTimes == []int{18, 34, 26, 42}
//
// Configured allocator with logging and metrics:
//
//	cfg := greenlight.DefaultConfig()
//	alloc, err := greenlight.NewAllocator(&cfg,
//	    greenlight.WithLogger(greenlight.NewSlogLogger(slog.Default())),
//	    greenlight.WithMetrics(greenlight.NewPrometheusMetrics(nil, "")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	plan, err := alloc.Plan([]float64{0, 0})
//	for _, lane := range plan.Lanes() {
//	    fmt.Println(lane) // "Lane 1: 110 seconds green", "Lane 2: 10 seconds green"
//	}
//
// # Reconciliation
//
// Truncation leaves the proportional pass short of the cycle (or, when the
// floors exceed the cycle, over it). One adjustment fixes the total:
//
//   - Short: the missing seconds go to the lane with the highest density
//   - Over: the excess comes off the lane with the most green time
//
// Ties go to the lowest lane index. No second pass is made.
//
// # Degenerate Input
//
// When n*MinGreenTime > TotalCycleTime the remaining pool is negative. The plan
// is still computed exactly as described and may contain negative green times;
// the Allocator logs a warning and records a degenerate-input metric instead of
// altering the result.
//
// # Serving Plans
//
// The service subpackage exposes an Allocator over NATS request/reply, and
// cmd/greenlight wraps both in a CLI.
package greenlight
