// Package fluid implements a smoothed-particle hydrodynamics solver over a
// flat particle store indexed by a sorted spatial hash.
package fluid

import "github.com/san-kum/physplay/internal/vmath"

// NoColor is the colour of every particle when no visual filter is active.
const NoColor = "#FFFFFFFF"

// Particles holds the shared fluid constants and the per-particle arrays.
// All per-particle slices have the same length.
type Particles struct {
	Mass               float32 `json:"mass"`
	Radius             float32 `json:"radius"`
	TargetDensity      float32 `json:"target_density"`
	PressureMultiplier float32 `json:"pressure_multiplier"`
	SmoothingRadius    float32 `json:"smoothing_radius"`

	Positions          []vmath.Vec2f `json:"positions"`
	PredictedPositions []vmath.Vec2f `json:"predicted_positions"`
	Velocities         []vmath.Vec2f `json:"velocities"`
	Densities          []float32     `json:"densities"`
	Colors             []string      `json:"colors"`

	lookup    []Entry
	cellStart []int
}

func NewParticles(radius, targetDensity, pressureMultiplier, smoothingRadius float32) *Particles {
	return &Particles{
		Radius:             radius,
		TargetDensity:      targetDensity,
		PressureMultiplier: pressureMultiplier,
		SmoothingRadius:    smoothingRadius,
	}
}

func (p *Particles) Len() int { return len(p.Positions) }

// Push appends a particle at rest.
func (p *Particles) Push(pos vmath.Vec2f) {
	p.Positions = append(p.Positions, pos)
	p.PredictedPositions = append(p.PredictedPositions, pos)
	p.Velocities = append(p.Velocities, vmath.Vec2f{})
	p.Densities = append(p.Densities, 0)
	p.Colors = append(p.Colors, NoColor)
}

// Pressure converts a density into pressure relative to the target density.
func (p *Particles) Pressure(density float32) float32 {
	return (density - p.TargetDensity) * p.PressureMultiplier
}

// SharedPressure is the mean pressure of particles i and j.
func (p *Particles) SharedPressure(i, j int) float32 {
	return (p.Pressure(p.Densities[i]) + p.Pressure(p.Densities[j])) / 2
}

// Clone returns a deep copy of the exported state. The spatial index is not
// copied.
func (p *Particles) Clone() *Particles {
	return &Particles{
		Mass:               p.Mass,
		Radius:             p.Radius,
		TargetDensity:      p.TargetDensity,
		PressureMultiplier: p.PressureMultiplier,
		SmoothingRadius:    p.SmoothingRadius,
		Positions:          append([]vmath.Vec2f{}, p.Positions...),
		PredictedPositions: append([]vmath.Vec2f{}, p.PredictedPositions...),
		Velocities:         append([]vmath.Vec2f{}, p.Velocities...),
		Densities:          append([]float32{}, p.Densities...),
		Colors:             append([]string{}, p.Colors...),
	}
}
