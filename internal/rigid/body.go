package rigid

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/physplay/internal/dynamo"
	"github.com/san-kum/physplay/internal/vmath"
)

// Limits bound the size and density of user-created bodies.
type Limits struct {
	MinArea    float64
	MaxArea    float64
	MinDensity float64
	MaxDensity float64
}

var DefaultLimits = Limits{
	MinArea:    0.01 * 0.01,
	MaxArea:    64 * 64,
	MinDensity: 0.5,
	MaxDensity: 21.4,
}

func (l Limits) check(area, density float64) error {
	if area < l.MinArea || area > l.MaxArea {
		return fmt.Errorf("%w: area %.4f outside [%.4f, %.4f]", dynamo.ErrParameterBounds, area, l.MinArea, l.MaxArea)
	}
	if density < l.MinDensity || density > l.MaxDensity {
		return fmt.Errorf("%w: density %.4f outside [%.4f, %.4f]", dynamo.ErrParameterBounds, density, l.MinDensity, l.MaxDensity)
	}
	return nil
}

// Body is a rigid body owned by a World. Position and angle are only
// changed through the mutators so that the cached world-space vertices and
// AABB stay coherent.
type Body struct {
	LinearVelocity  vmath.Vec2
	AngularVelocity float64

	position vmath.Vec2
	angle    float64
	force    vmath.Vec2

	mass        float64
	invMass     float64
	inertia     float64
	invInertia  float64
	density     float64
	area        float64
	restitution float64
	static      bool

	shape         Shape
	worldVertices []vmath.Vec2
	aabb          AABB

	dirtyTransform bool
	dirtyAABB      bool

	index int
}

func newBody(pos vmath.Vec2, shape Shape, density, restitution float64, static bool) Body {
	e, _ := dynamo.Clamp(restitution, 0, 1)
	area := shape.Area()
	b := Body{
		position:       pos,
		density:        density,
		area:           area,
		restitution:    e,
		static:         static,
		shape:          shape,
		dirtyTransform: true,
		dirtyAABB:      true,
		index:          -1,
	}
	b.mass = area * density
	b.inertia = shape.Inertia(b.mass)
	if !static {
		b.invMass = 1 / b.mass
		if b.inertia > 0 {
			b.invInertia = 1 / b.inertia
		}
	}
	return b
}

// NewCircleBody validates radius and density against DefaultLimits.
func NewCircleBody(pos vmath.Vec2, radius, density, restitution float64, static bool) (Body, error) {
	shape := Circle{Radius: radius}
	if err := DefaultLimits.check(shape.Area(), density); err != nil {
		return Body{}, fmt.Errorf("circle body: %w", err)
	}
	return newBody(pos, shape, density, restitution, static), nil
}

func NewBoxBody(pos vmath.Vec2, w, h, density, restitution float64, static bool) (Body, error) {
	shape := NewBox(w, h)
	if err := DefaultLimits.check(shape.Area(), density); err != nil {
		return Body{}, fmt.Errorf("box body: %w", err)
	}
	return newBody(pos, shape, density, restitution, static), nil
}

// NewPolygonBody takes local vertices wound counter-clockwise around the
// origin.
func NewPolygonBody(pos vmath.Vec2, vertices []vmath.Vec2, density, restitution float64, static bool) (Body, error) {
	if len(vertices) < 3 {
		return Body{}, fmt.Errorf("polygon body: %w: need at least 3 vertices, got %d", dynamo.ErrDegenerateGeometry, len(vertices))
	}
	local := make([]vmath.Vec2, len(vertices))
	copy(local, vertices)
	shape := Polygon{Vertices: local}
	if err := DefaultLimits.check(shape.Area(), density); err != nil {
		return Body{}, fmt.Errorf("polygon body: %w", err)
	}
	return newBody(pos, shape, density, restitution, static), nil
}

// NewStaticBox builds an unchecked static box, used for boundary walls.
func NewStaticBox(pos vmath.Vec2, w, h, restitution float64) Body {
	return newBody(pos, NewBox(w, h), 1, restitution, true)
}

func (b *Body) Position() vmath.Vec2 { return b.position }
func (b *Body) Angle() float64       { return b.angle }
func (b *Body) Force() vmath.Vec2    { return b.force }
func (b *Body) Mass() float64        { return b.mass }
func (b *Body) InvMass() float64     { return b.invMass }
func (b *Body) Inertia() float64     { return b.inertia }
func (b *Body) InvInertia() float64  { return b.invInertia }
func (b *Body) Density() float64     { return b.density }
func (b *Body) Area() float64        { return b.area }
func (b *Body) Restitution() float64 { return b.restitution }
func (b *Body) IsStatic() bool       { return b.static }
func (b *Body) Shape() Shape         { return b.shape }
func (b *Body) Index() int           { return b.index }

func (b *Body) SetRestitution(e float64) {
	b.restitution, _ = dynamo.Clamp(e, 0, 1)
}

func (b *Body) markDirty() {
	b.dirtyTransform = true
	b.dirtyAABB = true
}

func (b *Body) Move(delta vmath.Vec2) {
	b.position = b.position.Add(delta)
	b.markDirty()
}

func (b *Body) MoveTo(p vmath.Vec2) {
	b.position = p
	b.markDirty()
}

func (b *Body) Rotate(delta float64) {
	b.angle += delta
	b.markDirty()
}

func (b *Body) RotateTo(angle float64) {
	b.angle = angle
	b.markDirty()
}

// ApplyForce accumulates f until the next Integrate.
func (b *Body) ApplyForce(f vmath.Vec2) {
	b.force = b.force.Add(f)
}

// Integrate advances a dynamic body by dt under gravity and the accumulated
// force, then clears the force. Static bodies are left untouched.
func (b *Body) Integrate(dt float64, gravity vmath.Vec2) {
	if b.static {
		return
	}
	accel := b.force.Scale(b.invMass).Add(gravity)
	b.LinearVelocity = b.LinearVelocity.Add(accel.Scale(dt))
	b.position = b.position.Add(b.LinearVelocity.Scale(dt))
	b.angle += b.AngularVelocity * dt
	b.force = vmath.Zero()
	b.markDirty()
}

// Vertices returns the world-space polygon vertices, or nil for circles.
// The returned slice is owned by the body.
func (b *Body) Vertices() []vmath.Vec2 {
	poly, ok := b.shape.(Polygon)
	if !ok {
		return nil
	}
	if !b.dirtyTransform && len(b.worldVertices) == len(poly.Vertices) {
		return b.worldVertices
	}
	if cap(b.worldVertices) < len(poly.Vertices) {
		b.worldVertices = make([]vmath.Vec2, len(poly.Vertices))
	}
	b.worldVertices = b.worldVertices[:len(poly.Vertices)]

	rot := mgl64.Rotate2D(b.angle)
	for i, v := range poly.Vertices {
		r := rot.Mul2x1(mgl64.Vec2{v.X, v.Y})
		b.worldVertices[i] = vmath.V(r[0]+b.position.X, r[1]+b.position.Y)
	}
	b.dirtyTransform = false
	return b.worldVertices
}

func (b *Body) AABB() AABB {
	if !b.dirtyAABB {
		return b.aabb
	}
	switch s := b.shape.(type) {
	case Circle:
		r := vmath.V(s.Radius, s.Radius)
		b.aabb = AABB{Min: b.position.Sub(r), Max: b.position.Add(r)}
	case Polygon:
		verts := b.Vertices()
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, v := range verts {
			minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
			minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
		}
		b.aabb = AABB{Min: vmath.V(minX, minY), Max: vmath.V(maxX, maxY)}
	}
	b.dirtyAABB = false
	return b.aabb
}

// KineticEnergy is the translational plus rotational energy.
func (b *Body) KineticEnergy() float64 {
	if b.static {
		return 0
	}
	return 0.5*b.mass*b.LinearVelocity.LenSq() + 0.5*b.inertia*b.AngularVelocity*b.AngularVelocity
}
