package greenlight

import "github.com/arloliu/greenlight/types"

// Sentinel errors re-exported from the types package.
var (
	// ErrNoLanes is returned when the density vector is empty.
	ErrNoLanes = types.ErrNoLanes

	// ErrInvalidDensity is returned when a density is negative, NaN or infinite.
	ErrInvalidDensity = types.ErrInvalidDensity

	// ErrInvalidCycleParams is returned when the cycle time or floor is out of range.
	ErrInvalidCycleParams = types.ErrInvalidCycleParams

	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrUnknownStrategy is returned when a strategy name is not registered.
	ErrUnknownStrategy = types.ErrUnknownStrategy

	// ErrAllocatorRequired is returned when a component is built without an allocator.
	ErrAllocatorRequired = types.ErrAllocatorRequired

	// ErrNATSConnectionRequired is returned when NATS connection is nil.
	ErrNATSConnectionRequired = types.ErrNATSConnectionRequired

	// ErrAlreadyStarted is returned when Start is called on a running responder.
	ErrAlreadyStarted = types.ErrAlreadyStarted

	// ErrNotStarted is returned when Stop is called on a responder that hasn't been started.
	ErrNotStarted = types.ErrNotStarted

	// ErrInvalidRequest is returned when an allocation request cannot be decoded.
	ErrInvalidRequest = types.ErrInvalidRequest

	// ErrRemote is returned by the client when the responder replied with an error.
	ErrRemote = types.ErrRemote

	// ErrConnectivity is returned when the responder cannot be reached.
	ErrConnectivity = types.ErrConnectivity
)
