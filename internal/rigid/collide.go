package rigid

import (
	"math"

	"github.com/san-kum/physplay/internal/vmath"
)

// Collide runs the narrow phase on a and b. When they overlap it returns the
// unit normal pointing from a to b and the penetration depth.
func Collide(a, b *Body) (normal vmath.Vec2, depth float64, ok bool) {
	switch sa := a.shape.(type) {
	case Circle:
		switch sb := b.shape.(type) {
		case Circle:
			return IntersectCircles(a.position, sa.Radius, b.position, sb.Radius)
		case Polygon:
			return IntersectCirclePolygon(a.position, sa.Radius, b.position, b.Vertices())
		}
	case Polygon:
		switch sb := b.shape.(type) {
		case Circle:
			n, d, hit := IntersectCirclePolygon(b.position, sb.Radius, a.position, a.Vertices())
			return n.Neg(), d, hit
		case Polygon:
			return IntersectPolygons(a.position, a.Vertices(), b.position, b.Vertices())
		}
	}
	return vmath.Vec2{}, 0, false
}

// IntersectCircles tests two circles. They collide iff the centre distance is
// strictly less than the sum of the radii.
func IntersectCircles(centerA vmath.Vec2, radiusA float64, centerB vmath.Vec2, radiusB float64) (vmath.Vec2, float64, bool) {
	dist := centerA.Dist(centerB)
	radii := radiusA + radiusB
	if dist >= radii {
		return vmath.Vec2{}, 0, false
	}
	return centerB.Sub(centerA).Direction(), radii - dist, true
}

// IntersectPolygons is a separating axis test over the edge normals of both
// polygons. The returned normal points from centerA to centerB.
func IntersectPolygons(centerA vmath.Vec2, verticesA []vmath.Vec2, centerB vmath.Vec2, verticesB []vmath.Vec2) (vmath.Vec2, float64, bool) {
	normal := vmath.Vec2{}
	depth := math.Inf(1)

	for _, verts := range [2][]vmath.Vec2{verticesA, verticesB} {
		for i := range verts {
			edge := verts[(i+1)%len(verts)].Sub(verts[i])
			axis := edge.Perp().Direction()

			minA, maxA := projectVertices(verticesA, axis)
			minB, maxB := projectVertices(verticesB, axis)
			if minA >= maxB || minB >= maxA {
				return vmath.Vec2{}, 0, false
			}
			if d := math.Min(maxB-minA, maxA-minB); d < depth {
				depth = d
				normal = axis
			}
		}
	}

	if vmath.Centroid(verticesB).Sub(vmath.Centroid(verticesA)).Dot(normal) < 0 {
		normal = normal.Neg()
	}
	return normal, depth, true
}

// IntersectCirclePolygon tests a circle against a polygon. The returned
// normal points from the circle to the polygon.
func IntersectCirclePolygon(circleCenter vmath.Vec2, radius float64, polygonCenter vmath.Vec2, vertices []vmath.Vec2) (vmath.Vec2, float64, bool) {
	normal := vmath.Vec2{}
	depth := math.Inf(1)

	test := func(axis vmath.Vec2) bool {
		minA, maxA := projectVertices(vertices, axis)
		minB, maxB := projectCircle(circleCenter, radius, axis)
		if minA >= maxB || minB >= maxA {
			return false
		}
		if d := math.Min(maxB-minA, maxA-minB); d < depth {
			depth = d
			normal = axis
		}
		return true
	}

	for i := range vertices {
		edge := vertices[(i+1)%len(vertices)].Sub(vertices[i])
		if !test(edge.Perp().Direction()) {
			return vmath.Vec2{}, 0, false
		}
	}

	closest := vertices[closestVertex(circleCenter, vertices)]
	if !test(closest.Sub(circleCenter).Direction()) {
		return vmath.Vec2{}, 0, false
	}

	if vmath.Centroid(vertices).Sub(circleCenter).Dot(normal) < 0 {
		normal = normal.Neg()
	}
	return normal, depth, true
}

func projectVertices(vertices []vmath.Vec2, axis vmath.Vec2) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vertices {
		p := v.Dot(axis)
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return lo, hi
}

func projectCircle(center vmath.Vec2, radius float64, axis vmath.Vec2) (lo, hi float64) {
	p := center.Dot(axis)
	return p - radius, p + radius
}

func closestVertex(p vmath.Vec2, vertices []vmath.Vec2) int {
	best := -1
	bestDist := math.Inf(1)
	for i, v := range vertices {
		if d := v.DistSq(p); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
