package fluid

import (
	"fmt"

	"github.com/san-kum/physplay/internal/dynamo"
	"github.com/san-kum/physplay/internal/vmath"
)

const (
	DefaultInteractiveRadius   = 120
	DefaultInteractiveStrength = 800
)

// ForceMode is the direction of the interactive force.
type ForceMode int

const (
	Attract ForceMode = iota
	Repel
)

// InteractiveForce is a pointer-driven radial force with linear falloff.
type InteractiveForce struct {
	Enabled  bool
	Position vmath.Vec2f
	Mode     ForceMode
	Radius   float32
	Strength float32
}

// Acceleration returns the force contribution at p.
func (f InteractiveForce) Acceleration(p vmath.Vec2f) vmath.Vec2f {
	if !f.Enabled || f.Radius <= 0 {
		return vmath.Vec2f{}
	}
	offset := f.Position.Sub(p)
	d := offset.Len()
	if d >= f.Radius || d == 0 {
		return vmath.Vec2f{}
	}
	falloff := 1 - d/f.Radius
	acc := offset.Scale(f.Strength * falloff / d)
	if f.Mode == Repel {
		return acc.Scale(-1)
	}
	return acc
}

type Config struct {
	ParticleRadius       float32
	TargetDensity        float32
	PressureMultiplier   float32
	SmoothingRadius      float32
	ViscosityStrength    float32
	Gravity              float32
	CollisionRestitution float32
	Mass                 float32
	Bounds               vmath.Vec2f
	VisualFilter         VisualFilter
}

func DefaultConfig() Config {
	return Config{
		ParticleRadius:       5,
		TargetDensity:        0.75,
		PressureMultiplier:   3.5,
		SmoothingRadius:      30,
		ViscosityStrength:    0.2,
		Gravity:              0,
		CollisionRestitution: 0.95,
		Mass:                 50,
		Bounds:               vmath.F(800, 600),
		VisualFilter:         FilterNone,
	}
}

func (c Config) Validate() error {
	if c.SmoothingRadius <= 0 {
		return fmt.Errorf("%w: smoothing radius must be positive, got %f", dynamo.ErrParameterBounds, c.SmoothingRadius)
	}
	if c.ParticleRadius < 0 {
		return fmt.Errorf("%w: particle radius must not be negative, got %f", dynamo.ErrParameterBounds, c.ParticleRadius)
	}
	if c.Mass <= 0 {
		return fmt.Errorf("%w: mass must be positive, got %f", dynamo.ErrParameterBounds, c.Mass)
	}
	if c.Bounds.X <= 2*c.ParticleRadius || c.Bounds.Y <= 2*c.ParticleRadius {
		return fmt.Errorf("%w: bounds %v cannot hold particles of radius %f", dynamo.ErrParameterBounds, c.Bounds, c.ParticleRadius)
	}
	if !c.VisualFilter.Valid() {
		return fmt.Errorf("%w: visual filter %d", dynamo.ErrParameterBounds, c.VisualFilter)
	}
	return nil
}

// Fluid is the SPH solver. Gravity pulls towards -y.
type Fluid struct {
	Particles *Particles

	Gravity              float32
	ViscosityStrength    float32
	CollisionRestitution float32
	VisualFilter         VisualFilter
	Bounds               vmath.Vec2f
	Interactive          InteractiveForce

	mass     float32
	gradient Gradient

	pressureForces  []vmath.Vec2f
	viscosityForces []vmath.Vec2f
}

func New(cfg Config) (*Fluid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e, err := dynamo.Clamp(cfg.CollisionRestitution, 0, 1)
	if err != nil {
		return nil, err
	}
	f := &Fluid{
		Particles:            NewParticles(cfg.ParticleRadius, cfg.TargetDensity, cfg.PressureMultiplier, cfg.SmoothingRadius),
		Gravity:              cfg.Gravity,
		ViscosityStrength:    cfg.ViscosityStrength,
		CollisionRestitution: e,
		VisualFilter:         cfg.VisualFilter,
		Bounds:               cfg.Bounds,
		Interactive: InteractiveForce{
			Radius:   DefaultInteractiveRadius,
			Strength: DefaultInteractiveStrength,
		},
		mass:     cfg.Mass,
		gradient: DefaultGradient(),
	}
	f.updateParticleMass()
	return f, nil
}

// Mass is the total fluid mass, shared equally between particles.
func (f *Fluid) Mass() float32 { return f.mass }

func (f *Fluid) SetMass(m float32) error {
	if m <= 0 {
		return fmt.Errorf("%w: mass must be positive, got %f", dynamo.ErrParameterBounds, m)
	}
	f.mass = m
	f.updateParticleMass()
	return nil
}

func (f *Fluid) updateParticleMass() {
	n := f.Particles.Len()
	if n == 0 {
		f.Particles.Mass = 0
		return
	}
	f.Particles.Mass = f.mass / float32(n)
}

func (f *Fluid) Push(pos vmath.Vec2f) {
	f.Particles.Push(pos)
	f.updateParticleMass()
}

// SetInteractiveForce enables the force field at pos.
func (f *Fluid) SetInteractiveForce(pos vmath.Vec2f, mode ForceMode) {
	f.Interactive.Enabled = true
	f.Interactive.Position = pos
	f.Interactive.Mode = mode
}

func (f *Fluid) ToggleInteractiveForce(enabled bool) {
	f.Interactive.Enabled = enabled
}

// Update advances the fluid by dt. A particle with zero density aborts the
// step with ErrInvariantViolation.
func (f *Fluid) Update(dt float32) error {
	p := f.Particles
	n := p.Len()
	if n == 0 {
		return nil
	}

	down := vmath.F(0, -1)
	for i := 0; i < n; i++ {
		acc := down.Scale(f.Gravity).Add(f.Interactive.Acceleration(p.Positions[i]))
		p.Velocities[i] = p.Velocities[i].Add(acc.Scale(dt))
		p.PredictedPositions[i] = p.Positions[i].Add(p.Velocities[i].Scale(dt))
	}

	p.UpdateSpatialLookup()

	for i := 0; i < n; i++ {
		p.Densities[i] = f.density(i)
		if p.Densities[i] == 0 {
			return fmt.Errorf("%w: particle %d has zero density", dynamo.ErrInvariantViolation, i)
		}
	}

	f.pressureForces = resize(f.pressureForces, n)
	f.viscosityForces = resize(f.viscosityForces, n)
	for i := 0; i < n; i++ {
		f.pressureForces[i] = f.pressureForce(i)
		f.viscosityForces[i] = f.viscosityForce(i)
	}

	for i := 0; i < n; i++ {
		acc := f.pressureForces[i].Div(p.Densities[i]).Add(f.viscosityForces[i])
		p.Velocities[i] = p.Velocities[i].Add(acc.Scale(dt))
		p.Positions[i] = p.Positions[i].Add(p.Velocities[i].Scale(dt))
		f.resolveCollision(i)
	}

	f.updateColors()
	return nil
}

func (f *Fluid) density(i int) float32 {
	p := f.Particles
	var density float32
	p.ForEachNeighbor(p.PredictedPositions[i], func(_ int, dist float32) {
		density += p.Mass * SmoothingKernel(dist, p.SmoothingRadius)
	})
	return density
}

// pressureForce pushes particle i away from neighbours above the target
// density and pulls it towards those below.
func (f *Fluid) pressureForce(i int) vmath.Vec2f {
	p := f.Particles
	var force vmath.Vec2f
	origin := p.PredictedPositions[i]
	p.ForEachNeighbor(origin, func(j int, dist float32) {
		if j == i {
			return
		}
		var dir vmath.Vec2f
		if dist == 0 {
			dir = vmath.RandomUnitf()
		} else {
			dir = p.PredictedPositions[j].Sub(origin).Div(dist)
		}
		slope := SmoothingKernelDerivative(dist, p.SmoothingRadius)
		shared := p.SharedPressure(i, j)
		force = force.Add(dir.Scale(shared * slope * p.Mass / p.Densities[j]))
	})
	return force
}

func (f *Fluid) viscosityForce(i int) vmath.Vec2f {
	p := f.Particles
	var force vmath.Vec2f
	if f.ViscosityStrength == 0 {
		return force
	}
	vi := p.Velocities[i]
	p.ForEachNeighbor(p.PredictedPositions[i], func(j int, dist float32) {
		if j == i {
			return
		}
		influence := ViscosityKernel(dist, p.SmoothingRadius)
		force = force.Add(p.Velocities[j].Sub(vi).Scale(influence * f.ViscosityStrength))
	})
	return force
}

// resolveCollision keeps particle i inside the box, damping the velocity
// component perpendicular to the wall it hit.
func (f *Fluid) resolveCollision(i int) {
	p := f.Particles
	pos := p.Positions[i]
	vel := p.Velocities[i]
	r := p.Radius
	e := f.CollisionRestitution

	if pos.X-r < 0 {
		pos.X = r
		vel.X = -vel.X * e
	} else if pos.X+r > f.Bounds.X {
		pos.X = f.Bounds.X - r
		vel.X = -vel.X * e
	}

	if pos.Y-r < 0 {
		pos.Y = r
		vel.Y = -vel.Y * e
	} else if pos.Y+r > f.Bounds.Y {
		pos.Y = f.Bounds.Y - r
		vel.Y = -vel.Y * e
	}

	p.Positions[i] = pos
	p.Velocities[i] = vel
}

func (f *Fluid) updateColors() {
	p := f.Particles
	for i := range p.Colors {
		switch f.VisualFilter {
		case FilterVelocity:
			p.Colors[i] = f.gradient.Hex(float64(p.Velocities[i].Len() / 100))
		case FilterPressure:
			p.Colors[i] = f.gradient.Hex(float64(f.pressureForces[i].Len() * 100))
		case FilterDensity:
			p.Colors[i] = f.gradient.Hex(float64(p.Densities[i] * 1000 / p.TargetDensity))
		default:
			p.Colors[i] = NoColor
		}
	}
}

func resize(s []vmath.Vec2f, n int) []vmath.Vec2f {
	if cap(s) < n {
		return make([]vmath.Vec2f, n)
	}
	return s[:n]
}
