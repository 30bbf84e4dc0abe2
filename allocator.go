package greenlight

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/greenlight/internal/hash"
	"github.com/arloliu/greenlight/internal/logging"
	"github.com/arloliu/greenlight/internal/metrics"
	"github.com/arloliu/greenlight/strategy"
	"github.com/arloliu/greenlight/types"
)

// Degenerate input reasons reported to MetricsCollector.RecordDegenerateInput.
const (
	DegenerateFloorExceedsCycle = "floor_exceeds_cycle"
	DegenerateNegativeLane      = "negative_lane"
)

// Allocator computes green-time plans with a fixed configuration.
//
// An Allocator holds no mutable state and is safe for concurrent use.
type Allocator struct {
	cfg      Config
	strategy AllocationStrategy
	metrics  MetricsCollector
	logger   Logger
}

// NewAllocator creates a new Allocator.
//
// Missing configuration values are filled with defaults, the configuration is
// validated, and the strategy named by cfg.Strategy is built unless
// WithStrategy overrides it.
//
// MinGreenTime is not defaulted because zero is a valid floor: a zero-value
// Config{} yields a 0s floor, not 10s. Start from DefaultConfig (or LoadConfig,
// which decodes over it) to get the 10s floor, as the example below does.
//
// Parameters:
//   - cfg: Configuration (defaults applied in place)
//   - opts: Optional dependencies (WithStrategy, WithMetrics, WithLogger)
//
// Returns:
//   - *Allocator: Ready-to-use allocator
//   - error: ErrInvalidConfig if cfg is nil or invalid
//
// Example:
//
//	cfg := greenlight.DefaultConfig()
//	alloc, err := greenlight.NewAllocator(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	greenTimes, _ := alloc.Allocate([]float64{10, 30, 20, 40})
func NewAllocator(cfg *Config, opts ...Option) (*Allocator, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}

	// Fill in missing configuration values with defaults
	SetDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &allocatorOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Provide safe defaults for optional dependencies to avoid nil checks everywhere
	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logging.NewNop()
	}

	// Validate with warnings after logger is available
	cfg.ValidateWithWarnings(loggerInstance)

	strat := options.strategy
	if strat == nil {
		var err error
		strat, err = strategy.New(cfg.Strategy, strategy.WithLogger(loggerInstance))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	return &Allocator{
		cfg:      *cfg,
		strategy: strat,
		metrics:  metricsCollector,
		logger:   loggerInstance,
	}, nil
}

// Config returns a copy of the effective configuration.
func (a *Allocator) Config() Config {
	return a.cfg
}

// Params returns the configured cycle parameters.
func (a *Allocator) Params() CycleParams {
	return a.cfg.CycleParams()
}

// StrategyName returns the name of the strategy in use.
func (a *Allocator) StrategyName() string {
	return a.strategy.Name()
}

// Metrics returns the metrics collector shared with components built on this allocator.
func (a *Allocator) Metrics() MetricsCollector {
	return a.metrics
}

// Logger returns the logger shared with components built on this allocator.
func (a *Allocator) Logger() Logger {
	return a.logger
}

// Allocate returns the green time per lane for the configured cycle.
//
// Parameters:
//   - densities: Non-negative finite weight per lane (at least one)
//
// Returns:
//   - []int: Seconds per lane, summing to the configured TotalCycleTime
//   - error: ErrNoLanes, ErrInvalidDensity
func (a *Allocator) Allocate(densities []float64) ([]int, error) {
	plan, err := a.Plan(densities)
	if err != nil {
		return nil, err
	}

	return plan.GreenTimes, nil
}

// Plan computes the full plan for the configured cycle.
func (a *Allocator) Plan(densities []float64) (Plan, error) {
	return a.PlanWith(densities, a.cfg.CycleParams())
}

// PlanWith computes the full plan for explicit cycle parameters.
//
// Degenerate input, where the lane floors alone exceed the cycle, is computed
// as-is: lanes may come out negative. Both conditions are logged at Warn and
// counted as degenerate inputs.
//
// Parameters:
//   - densities: Non-negative finite weight per lane (at least one)
//   - params: Cycle budget and per-lane floor
//
// Returns:
//   - Plan: Allocation with fingerprint set
//   - error: ErrNoLanes, ErrInvalidDensity or ErrInvalidCycleParams
func (a *Allocator) PlanWith(densities []float64, params CycleParams) (Plan, error) {
	start := time.Now()

	plan, err := a.strategy.Allocate(densities, params)
	if err != nil {
		a.logger.Debug("allocation rejected", "lanes", len(densities), "error", err)
		return Plan{}, err
	}
	plan.Fingerprint = hash.Fingerprint(plan.Strategy, params, densities)

	lanes := len(plan.GreenTimes)
	a.metrics.RecordAllocation(plan.Strategy, lanes, time.Since(start).Seconds())
	a.metrics.RecordReconciliation(plan.Reconciliation.Kind.String(), plan.Reconciliation.Delta)

	if params.FloorExceedsCycle(lanes) {
		a.metrics.RecordDegenerateInput(DegenerateFloorExceedsCycle)
		a.logger.Warn("lane floors exceed cycle time",
			"lanes", lanes,
			"minGreenTime", params.MinGreenTime,
			"totalCycleTime", params.TotalCycleTime,
			"remaining", params.Remaining(lanes),
		)
	}

	if plan.HasNegativeLane() {
		a.metrics.RecordDegenerateInput(DegenerateNegativeLane)
		a.logger.Warn("plan contains negative green time", "greenTimes", plan.GreenTimes)
	}

	a.logger.Debug("allocation computed",
		"strategy", plan.Strategy,
		"lanes", lanes,
		"greenTimes", plan.GreenTimes,
		"reconciliation", plan.Reconciliation.Kind.String(),
		"fingerprint", hash.Hex(plan.Fingerprint),
	)

	return plan, nil
}

// AllocateFrom reads densities from src and computes the plan for the configured cycle.
//
// Parameters:
//   - ctx: Context for the source read
//   - src: Density source
//
// Returns:
//   - Plan: Allocation for the densities currently reported by src
//   - error: Source error (wrapped) or allocation error
func (a *Allocator) AllocateFrom(ctx context.Context, src DensitySource) (Plan, error) {
	densities, err := src.Densities(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to read densities: %w", err)
	}

	return a.Plan(densities)
}

// Allocate splits totalCycleTime across lanes with the proportional strategy.
//
// Pass types.DefaultTotalCycleTime and types.DefaultMinGreenTime (120, 10) for
// the reference defaults.
//
// Parameters:
//   - densities: Non-negative finite weight per lane (at least one)
//   - totalCycleTime: Seconds to distribute (> 0)
//   - minGreenTime: Floor per lane (>= 0)
//
// Returns:
//   - []int: Seconds per lane, summing to totalCycleTime
//   - error: ErrNoLanes, ErrInvalidDensity or ErrInvalidCycleParams
//
// Example:
//
//	greenTimes, _ := greenlight.Allocate([]float64{10, 30, 20, 40}, 120, 10)
//	// greenTimes == []int{18, 34, 26, 42}
func Allocate(densities []float64, totalCycleTime, minGreenTime int) ([]int, error) {
	plan, err := strategy.NewProportional().Allocate(densities, types.CycleParams{
		TotalCycleTime: totalCycleTime,
		MinGreenTime:   minGreenTime,
	})
	if err != nil {
		return nil, err
	}

	return plan.GreenTimes, nil
}

// FingerprintHex renders a plan fingerprint as 16 lowercase hex digits.
func FingerprintHex(fp uint64) string {
	return hash.Hex(fp)
}

// NewPrometheusMetrics creates a Prometheus-backed MetricsCollector.
//
// Parameters:
//   - reg: Registerer (prometheus.DefaultRegisterer if nil)
//   - namespace: Metric namespace ("greenlight" if empty)
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) MetricsCollector {
	return metrics.NewPrometheus(reg, namespace)
}

// NewNopMetrics creates a MetricsCollector that discards everything.
func NewNopMetrics() MetricsCollector {
	return metrics.NewNop()
}
