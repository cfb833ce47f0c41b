// Package dynamo holds the primitives shared by every layer of the playground:
// the error kinds both engines report and small generic helpers.
//
// Error policy:
//
//   - [ErrDegenerateGeometry] is absorbed where it happens (a random unit
//     direction is substituted) and never reaches the caller.
//   - [ErrUninitialized], [ErrInvalidRange], [ErrParameterBounds],
//     [ErrUnknownTemplate] and [ErrUnknownEvent] are returned to the caller.
//   - [ErrInvariantViolation] aborts the current step; the host stops its loop.
//
// Use [errors.Is] against the sentinels; step failures surfaced by the host are
// wrapped in a [SimulationError].
package dynamo
