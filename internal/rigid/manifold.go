package rigid

import "github.com/san-kum/physplay/internal/vmath"

// Manifold describes one colliding pair for a single substep. Normal points
// from BodyA to BodyB and Depth is non-negative.
type Manifold struct {
	BodyA        int
	BodyB        int
	Normal       vmath.Vec2
	Depth        float64
	Contacts     [2]vmath.Vec2
	ContactCount int
}
