// Package metrics provides sim.Metric implementations for the rigid-body and
// fluid templates.
package metrics

import (
	"math"

	"github.com/san-kum/physplay/internal/fluid"
	"github.com/san-kum/physplay/internal/rigid"
	"github.com/san-kum/physplay/internal/sim"
	"github.com/san-kum/physplay/internal/vmath"
)

// RigidSource is implemented by templates backed by a rigid.World.
type RigidSource interface {
	World() *rigid.World
}

// FluidSource is implemented by templates backed by a fluid.Fluid.
type FluidSource interface {
	Fluid() *fluid.Fluid
}

// Sample is a set of aggregate quantities measured at one instant.
type Sample struct {
	KineticEnergy float64
	Momentum      vmath.Vec2
	MaxSpeed      float64
	MeanDensity   float64
	Contacts      int
	Count         int
}

// Measure computes a Sample from tpl. ok is false when tpl exposes neither
// engine or has not been initialized.
func Measure(tpl sim.Template) (Sample, bool) {
	switch src := tpl.(type) {
	case RigidSource:
		if w := src.World(); w != nil {
			return MeasureWorld(w), true
		}
	case FluidSource:
		if f := src.Fluid(); f != nil {
			return MeasureFluid(f), true
		}
	}
	return Sample{}, false
}

// MeasureWorld skips static bodies.
func MeasureWorld(w *rigid.World) Sample {
	var s Sample
	bodies := w.Bodies()
	for i := range bodies {
		b := &bodies[i]
		if b.IsStatic() {
			continue
		}
		s.Count++
		s.KineticEnergy += b.KineticEnergy()
		s.Momentum = s.Momentum.Add(b.LinearVelocity.Scale(b.Mass()))
		s.MaxSpeed = math.Max(s.MaxSpeed, b.LinearVelocity.Len())
	}
	s.Contacts = len(w.Manifolds())
	return s
}

func MeasureFluid(f *fluid.Fluid) Sample {
	p := f.Particles
	s := Sample{Count: p.Len()}
	if s.Count == 0 {
		return s
	}
	m := float64(p.Mass)
	var density float64
	for i, v := range p.Velocities {
		vel := v.Vec2()
		speed := vel.Len()
		s.KineticEnergy += 0.5 * m * speed * speed
		s.Momentum = s.Momentum.Add(vel.Scale(m))
		s.MaxSpeed = math.Max(s.MaxSpeed, speed)
		density += float64(p.Densities[i])
	}
	s.MeanDensity = density / float64(s.Count)
	return s
}
