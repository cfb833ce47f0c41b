package rigid

import (
	"math"

	"github.com/san-kum/physplay/internal/vmath"
)

// FindContactPoints returns up to two world-space contact points for a pair
// that Collide reported as overlapping.
func FindContactPoints(a, b *Body) ([2]vmath.Vec2, int) {
	var contacts [2]vmath.Vec2

	switch sa := a.shape.(type) {
	case Circle:
		switch b.shape.(type) {
		case Circle:
			contacts[0] = a.position.Add(b.position.Sub(a.position).Direction().Scale(sa.Radius))
			return contacts, 1
		case Polygon:
			contacts[0] = closestPointOnPolygon(a.position, b.Vertices())
			return contacts, 1
		}
	case Polygon:
		switch b.shape.(type) {
		case Circle:
			contacts[0] = closestPointOnPolygon(b.position, a.Vertices())
			return contacts, 1
		case Polygon:
			return polygonContacts(a.Vertices(), b.Vertices())
		}
	}
	return contacts, 0
}

// pointSegmentDistance returns the squared distance from p to segment ab and
// the closest point on it.
func pointSegmentDistance(p, a, b vmath.Vec2) (float64, vmath.Vec2) {
	ab := b.Sub(a)
	lenSq := ab.LenSq()
	if lenSq == 0 {
		return p.DistSq(a), a
	}
	t := p.Sub(a).Dot(ab) / lenSq
	var cp vmath.Vec2
	switch {
	case t <= 0:
		cp = a
	case t >= 1:
		cp = b
	default:
		cp = a.Add(ab.Scale(t))
	}
	return p.DistSq(cp), cp
}

func closestPointOnPolygon(p vmath.Vec2, vertices []vmath.Vec2) vmath.Vec2 {
	best := math.Inf(1)
	var contact vmath.Vec2
	for i := range vertices {
		d, cp := pointSegmentDistance(p, vertices[i], vertices[(i+1)%len(vertices)])
		if d < best {
			best = d
			contact = cp
		}
	}
	return contact
}

func polygonContacts(va, vb []vmath.Vec2) ([2]vmath.Vec2, int) {
	var contacts [2]vmath.Vec2
	count := 0
	best := math.Inf(1)

	scan := func(points, edges []vmath.Vec2) {
		for _, p := range points {
			for j := range edges {
				d, cp := pointSegmentDistance(p, edges[j], edges[(j+1)%len(edges)])
				switch {
				case vmath.NearlyEqual(d, best):
					if !cp.NearlyEqual(contacts[0]) {
						contacts[1] = cp
						count = 2
					}
				case d < best:
					best = d
					contacts[0] = cp
					count = 1
				}
			}
		}
	}
	scan(va, vb)
	scan(vb, va)
	return contacts, count
}
