package greenlight

// Option configures an Allocator with optional dependencies.
type Option func(*allocatorOptions)

// allocatorOptions holds optional Allocator configuration.
type allocatorOptions struct {
	strategy AllocationStrategy
	metrics  MetricsCollector
	logger   Logger
}

// WithStrategy sets a custom allocation strategy, overriding Config.Strategy.
//
// Parameters:
//   - strategy: AllocationStrategy implementation
//
// Returns:
//   - Option: Functional option for NewAllocator
//
// Example:
//
//	alloc, err := greenlight.NewAllocator(&cfg, greenlight.WithStrategy(strategy.NewLargestRemainder()))
func WithStrategy(strategy AllocationStrategy) Option {
	return func(o *allocatorOptions) {
		o.strategy = strategy
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewAllocator
//
// Example:
//
//	collector := greenlight.NewPrometheusMetrics(prometheus.DefaultRegisterer, "greenlight")
//	alloc, err := greenlight.NewAllocator(&cfg, greenlight.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *allocatorOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewAllocator
//
// Example:
//
//	logger := greenlight.NewSlogLogger(slog.Default())
//	alloc, err := greenlight.NewAllocator(&cfg, greenlight.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *allocatorOptions) {
		o.logger = logger
	}
}
