package rigid

import (
	"math"

	"github.com/san-kum/physplay/internal/vmath"
)

// ResolveMode selects the impulse model applied to each manifold.
type ResolveMode int

const (
	// ResolveRotational applies per-contact impulses with angular terms.
	ResolveRotational ResolveMode = iota
	// ResolveLinear applies a single impulse through the centres of mass.
	ResolveLinear
)

func (m ResolveMode) String() string {
	switch m {
	case ResolveRotational:
		return "rotational"
	case ResolveLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// Separate pushes a and b apart along normal by depth. A static body never
// moves; two dynamic bodies move half the depth each.
func Separate(a, b *Body, normal vmath.Vec2, depth float64) {
	switch {
	case a.static && b.static:
	case a.static:
		b.Move(normal.Scale(depth))
	case b.static:
		a.Move(normal.Scale(-depth))
	default:
		half := depth / 2
		a.Move(normal.Scale(-half))
		b.Move(normal.Scale(half))
	}
}

// ResolveCollisionLinear applies an impulse along the normal through both
// centres of mass, ignoring rotation.
func ResolveCollisionLinear(a, b *Body, m Manifold) {
	invMassSum := a.invMass + b.invMass
	if invMassSum == 0 {
		return
	}
	relVel := b.LinearVelocity.Sub(a.LinearVelocity)
	velAlongNormal := relVel.Dot(m.Normal)
	if velAlongNormal > 0 {
		return
	}
	e := math.Min(a.restitution, b.restitution)
	j := -(1 + e) * velAlongNormal / invMassSum
	impulse := m.Normal.Scale(j)

	a.LinearVelocity = a.LinearVelocity.Sub(impulse.Scale(a.invMass))
	b.LinearVelocity = b.LinearVelocity.Add(impulse.Scale(b.invMass))
}

// ResolveCollisionRotational computes one impulse per contact point from the
// pre-collision velocities, then applies them all.
func ResolveCollisionRotational(a, b *Body, m Manifold) {
	if m.ContactCount == 0 {
		return
	}
	e := math.Min(a.restitution, b.restitution)

	var impulses, ra, rb [2]vmath.Vec2
	for i := 0; i < m.ContactCount; i++ {
		ra[i] = m.Contacts[i].Sub(a.position)
		rb[i] = m.Contacts[i].Sub(b.position)
		raPerp := ra[i].Perp()
		rbPerp := rb[i].Perp()

		velA := a.LinearVelocity.Add(raPerp.Scale(a.AngularVelocity))
		velB := b.LinearVelocity.Add(rbPerp.Scale(b.AngularVelocity))
		contactVel := velB.Sub(velA).Dot(m.Normal)
		if contactVel > 0 {
			continue
		}

		raPerpDotN := raPerp.Dot(m.Normal)
		rbPerpDotN := rbPerp.Dot(m.Normal)
		denom := a.invMass + b.invMass +
			raPerpDotN*raPerpDotN*a.invInertia +
			rbPerpDotN*rbPerpDotN*b.invInertia
		if denom == 0 {
			continue
		}

		j := -(1 + e) * contactVel / denom / float64(m.ContactCount)
		impulses[i] = m.Normal.Scale(j)
	}

	for i := 0; i < m.ContactCount; i++ {
		imp := impulses[i]
		a.LinearVelocity = a.LinearVelocity.Sub(imp.Scale(a.invMass))
		a.AngularVelocity -= ra[i].Cross(imp) * a.invInertia
		b.LinearVelocity = b.LinearVelocity.Add(imp.Scale(b.invMass))
		b.AngularVelocity += rb[i].Cross(imp) * b.invInertia
	}
}
