package rigid

import "github.com/san-kum/physplay/internal/vmath"

type AABB struct {
	Min vmath.Vec2
	Max vmath.Vec2
}

// IntersectAABBs reports whether a and b overlap. Boxes that only touch do
// not intersect.
func IntersectAABBs(a, b AABB) bool {
	if a.Max.X <= b.Min.X || b.Max.X <= a.Min.X ||
		a.Max.Y <= b.Min.Y || b.Max.Y <= a.Min.Y {
		return false
	}
	return true
}
