package fluid

import (
	"fmt"

	"github.com/san-kum/physplay/internal/dynamo"
)

// Settings is the runtime-tunable parameter bundle.
type Settings struct {
	CollisionRestitution float32      `json:"collision_restitution" yaml:"collision_restitution"`
	Gravity              float32      `json:"gravity" yaml:"gravity"`
	TargetDensity        float32      `json:"target_density" yaml:"target_density"`
	Mass                 float32      `json:"mass" yaml:"mass"`
	PressureStiffness    float32      `json:"pressure_stiffness" yaml:"pressure_stiffness"`
	VisualFilter         VisualFilter `json:"visual_filter" yaml:"visual_filter"`
	SmoothingRadius      float32      `json:"smoothing_radius" yaml:"smoothing_radius"`
	ViscosityStrength    float32      `json:"viscosity_strength" yaml:"viscosity_strength"`
}

// Settings reports the current parameters.
func (f *Fluid) Settings() Settings {
	return Settings{
		CollisionRestitution: f.CollisionRestitution,
		Gravity:              f.Gravity,
		TargetDensity:        f.Particles.TargetDensity,
		Mass:                 f.mass,
		PressureStiffness:    f.Particles.PressureMultiplier,
		VisualFilter:         f.VisualFilter,
		SmoothingRadius:      f.Particles.SmoothingRadius,
		ViscosityStrength:    f.ViscosityStrength,
	}
}

// ApplySettings validates s and applies it atomically: on error nothing
// changes. Restitution is clamped to [0, 1].
func (f *Fluid) ApplySettings(s Settings) error {
	if !s.VisualFilter.Valid() {
		return fmt.Errorf("%w: visual filter %d", dynamo.ErrParameterBounds, s.VisualFilter)
	}
	if s.SmoothingRadius <= 0 {
		return fmt.Errorf("%w: smoothing radius must be positive, got %f", dynamo.ErrParameterBounds, s.SmoothingRadius)
	}
	if s.Mass <= 0 {
		return fmt.Errorf("%w: mass must be positive, got %f", dynamo.ErrParameterBounds, s.Mass)
	}
	e, err := dynamo.Clamp(s.CollisionRestitution, 0, 1)
	if err != nil {
		return err
	}

	f.CollisionRestitution = e
	f.Gravity = s.Gravity
	f.Particles.TargetDensity = s.TargetDensity
	f.Particles.PressureMultiplier = s.PressureStiffness
	f.Particles.SmoothingRadius = s.SmoothingRadius
	f.ViscosityStrength = s.ViscosityStrength
	f.VisualFilter = s.VisualFilter
	f.mass = s.Mass
	f.updateParticleMass()

	if f.VisualFilter == FilterNone {
		for i := range f.Particles.Colors {
			f.Particles.Colors[i] = NoColor
		}
	}
	return nil
}
