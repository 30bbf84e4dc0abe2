package strategy

import (
	"fmt"
	"slices"

	"github.com/arloliu/greenlight/internal/logging"
	"github.com/arloliu/greenlight/types"
)

// Registry names of the built-in strategies.
const (
	NameProportional     = "proportional"
	NameLargestRemainder = "largest-remainder"
)

// Option configures a built-in strategy.
type Option func(*options)

type options struct {
	logger types.Logger
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger types.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}

	return o
}

// New returns the built-in strategy registered under name.
//
// An empty name selects Proportional.
//
// Parameters:
//   - name: NameProportional or NameLargestRemainder
//   - opts: Optional configuration (WithLogger)
//
// Returns:
//   - types.AllocationStrategy: The strategy
//   - error: ErrUnknownStrategy for unregistered names
//
// Example:
//
//	strat, err := strategy.New(cfg.Strategy, strategy.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
func New(name string, opts ...Option) (types.AllocationStrategy, error) {
	switch name {
	case "", NameProportional:
		return NewProportional(opts...), nil
	case NameLargestRemainder:
		return NewLargestRemainder(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q (known: %v)", types.ErrUnknownStrategy, name, Names())
	}
}

// Names returns the registered strategy names in sorted order.
func Names() []string {
	names := []string{NameProportional, NameLargestRemainder}
	slices.Sort(names)

	return names
}

func newPlan(name string, greenTimes []int, densities []float64, params types.CycleParams, rec types.Reconciliation) types.Plan {
	return types.Plan{
		GreenTimes:     greenTimes,
		Densities:      append([]float64(nil), densities...),
		Params:         params,
		Reconciliation: rec,
		Strategy:       name,
	}
}
