package greenlight

import (
	"log/slog"

	"github.com/arloliu/greenlight/internal/logging"
	"github.com/arloliu/greenlight/types"
)

// Re-export types from the types package.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the `types`
// subpackage, which lets strategy and service depend on `types` without
// depending on the root `greenlight` package.
type (
	CycleParams    = types.CycleParams
	Plan           = types.Plan
	LaneGreen      = types.LaneGreen
	Reconciliation = types.Reconciliation
	ReconcileKind  = types.ReconcileKind
)

// Re-export interfaces from the types package for convenience.
type (
	AllocationStrategy = types.AllocationStrategy
	DensitySource      = types.DensitySource
	MetricsCollector   = types.MetricsCollector
	Logger             = types.Logger
)

// Re-export ReconcileKind constants from the types package.
const (
	ReconcileNone      = types.ReconcileNone
	ReconcileExcess    = types.ReconcileExcess
	ReconcileShortfall = types.ReconcileShortfall
)

// DefaultCycleParams returns the 120s cycle with a 10s floor.
func DefaultCycleParams() CycleParams {
	return types.DefaultCycleParams()
}

// NewSlogLogger adapts a *slog.Logger to the Logger interface.
//
// A nil logger selects slog.Default().
func NewSlogLogger(logger *slog.Logger) Logger {
	return logging.NewSlog(logger)
}
