package rigid

import (
	"math"

	"github.com/san-kum/physplay/internal/vmath"
)

// Shape is the closed set of collision geometries: Circle and Polygon.
type Shape interface {
	Area() float64
	// Inertia returns the moment of inertia about the body origin for the
	// given mass.
	Inertia(mass float64) float64
	isShape()
}

type Circle struct {
	Radius float64
}

func (c Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

func (c Circle) Inertia(mass float64) float64 { return 0.5 * mass * c.Radius * c.Radius }

func (Circle) isShape() {}

// Polygon vertices are in local space, wound counter-clockwise and centred on
// the body origin.
type Polygon struct {
	Vertices []vmath.Vec2
}

// NewBox returns a w×h rectangle centred on the origin.
func NewBox(w, h float64) Polygon {
	hw, hh := w/2, h/2
	return Polygon{Vertices: []vmath.Vec2{
		vmath.V(-hw, -hh),
		vmath.V(hw, -hh),
		vmath.V(hw, hh),
		vmath.V(-hw, hh),
	}}
}

// Area uses the shoelace formula.
func (p Polygon) Area() float64 {
	var sum float64
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		sum += p.Vertices[i].Cross(p.Vertices[(i+1)%n])
	}
	return math.Abs(sum) / 2
}

func (p Polygon) Inertia(mass float64) float64 {
	var num, den float64
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		cross := math.Abs(a.Cross(b))
		num += cross * (a.Dot(a) + a.Dot(b) + b.Dot(b))
		den += cross
	}
	if den == 0 {
		return 0
	}
	return mass * num / (6 * den)
}

func (Polygon) isShape() {}

// Size reports the bounding width and height of the local vertices.
func (p Polygon) Size() (w, h float64) {
	if len(p.Vertices) == 0 {
		return 0, 0
	}
	minV, maxV := p.Vertices[0], p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		minV = vmath.V(math.Min(minV.X, v.X), math.Min(minV.Y, v.Y))
		maxV = vmath.V(math.Max(maxV.X, v.X), math.Max(maxV.Y, v.Y))
	}
	return maxV.X - minV.X, maxV.Y - minV.Y
}
