package types

import "errors"

// Sentinel errors for the greenlight library.
//
// These errors provide type-safe error checking using errors.Is().
// All components should use these sentinel errors for known error conditions
// and wrap them with context using fmt.Errorf("%w: detail", err).
//
// Error Naming Convention:
//   - Use descriptive names with Err prefix
//   - Group by component (Allocator, Strategy, Service)
//   - Use consistent messages across similar error types

// Allocation errors - returned by strategies and the Allocator.
var (
	// ErrNoLanes is returned when the density vector is empty.
	ErrNoLanes = errors.New("no lanes to allocate")

	// ErrInvalidDensity is returned when a density is negative, NaN or infinite.
	ErrInvalidDensity = errors.New("invalid lane density")

	// ErrInvalidCycleParams is returned when the cycle time or floor is out of range.
	ErrInvalidCycleParams = errors.New("invalid cycle parameters")
)

// Configuration errors - returned while building components.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownStrategy is returned when a strategy name is not registered.
	ErrUnknownStrategy = errors.New("unknown allocation strategy")

	// ErrAllocatorRequired is returned when a component is built without an allocator.
	ErrAllocatorRequired = errors.New("allocator is required")
)

// Service errors - returned by the NATS responder and client.
var (
	// ErrNATSConnectionRequired is returned when NATS connection is nil.
	ErrNATSConnectionRequired = errors.New("NATS connection is required")

	// ErrAlreadyStarted is returned when Start is called on a running responder.
	ErrAlreadyStarted = errors.New("responder already started")

	// ErrNotStarted is returned when Stop is called on a responder that hasn't been started.
	ErrNotStarted = errors.New("responder not started")

	// ErrInvalidRequest is returned when an allocation request cannot be decoded.
	ErrInvalidRequest = errors.New("invalid allocation request")

	// ErrRemote is returned by the client when the responder replied with an error.
	ErrRemote = errors.New("allocation failed on responder")

	// ErrConnectivity is returned when the responder cannot be reached.
	ErrConnectivity = errors.New("allocation service unreachable")
)
