package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors shared by both engines and the hosting layer.
var (
	// ErrUninitialized indicates an operation on a simulation that has not been
	// selected or initialized yet.
	ErrUninitialized = errors.New("dynamo: simulation not initialized")

	// ErrInvalidRange indicates a range whose minimum exceeds its maximum.
	ErrInvalidRange = errors.New("dynamo: invalid range (min > max)")

	// ErrDegenerateGeometry indicates a zero-length vector was normalized.
	// Collision code recovers from it locally.
	ErrDegenerateGeometry = errors.New("dynamo: degenerate geometry (zero-length vector)")

	// ErrInvariantViolation indicates a modeling bug, e.g. a particle with zero density.
	ErrInvariantViolation = errors.New("dynamo: invariant violation")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownTemplate indicates a template id or name with no registered simulation.
	ErrUnknownTemplate = errors.New("dynamo: unknown simulation template")

	// ErrUnknownEvent indicates an event name a simulation does not handle.
	ErrUnknownEvent = errors.New("dynamo: unknown event")
)

// SimulationError wraps an error with the tick it happened on.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
