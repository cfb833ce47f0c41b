// Package templates adapts the rigid-body world and the SPH fluid to the
// sim.Template contract: JSON starter data, JSON snapshots and named events.
//
// Template ids follow the host application: 0 is the bouncing-ball toy and is
// not available, 1 is the fluid and 2 the rigid-body sandbox.
package templates
