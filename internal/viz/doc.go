// Package viz renders simulation frames in the terminal.
//
//   - [Canvas]: braille dot canvas with per-cell colour
//   - [DrawSnapshot]: draws rigid-body and fluid snapshots through a [Viewport]
//   - [Model]: bubbletea viewer that steps a sim.Manager
//   - [Chart], [ChartMany]: asciigraph plots of metric series
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reload the template
//	F     - Toggle the interactive force at the cursor
//	A     - Attract/Repel
//	B     - Drop a rigid body at the cursor
//	T     - Cycle color themes
//	[]    - Replay history
//	?     - Show help overlay
package viz
