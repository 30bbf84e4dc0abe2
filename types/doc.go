// Package types provides core type definitions and interfaces for the greenlight library.
//
// This package contains shared types that are used across multiple packages in the
// greenlight library. By keeping these types in a separate package, we avoid import cycles
// between the root greenlight package and its strategy, service and internal packages.
//
// Key types:
//   - CycleParams: Cycle budget and per-lane floor
//   - Plan: Green-time allocation for one cycle
//   - Reconciliation: The single correction applied to force an exact total
//   - AllocationStrategy: Allocation algorithm interface
//   - DensitySource: Lane density provider interface
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
