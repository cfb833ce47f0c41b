package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/physplay/internal/dynamo"
)

// params maps the dotted yaml path of every tunable scalar to its field.
func (c *Config) params() map[string]*float64 {
	return map[string]*float64{
		"dt":                          &c.Dt,
		"duration":                    &c.Duration,
		"spawn.spacing":               &c.Spawn.Spacing,
		"fluid.particle_radius":       &c.Fluid.ParticleRadius,
		"fluid.target_density":        &c.Fluid.TargetDensity,
		"fluid.pressure_multiplier":   &c.Fluid.PressureMultiplier,
		"fluid.smoothing_radius":      &c.Fluid.SmoothingRadius,
		"fluid.viscosity_strength":    &c.Fluid.ViscosityStrength,
		"fluid.gravity":               &c.Fluid.Gravity,
		"fluid.collision_restitution": &c.Fluid.CollisionRestitution,
		"fluid.mass":                  &c.Fluid.Mass,
		"rigid.gravity.x":             &c.Rigid.Gravity.X,
		"rigid.gravity.y":             &c.Rigid.Gravity.Y,
		"rigid.circle_radius":         &c.Rigid.CircleRadius,
		"rigid.box_size":              &c.Rigid.BoxSize,
		"rigid.density":               &c.Rigid.Density,
		"rigid.restitution":           &c.Rigid.Restitution,
	}
}

// SetParam sets a tunable parameter by its dotted yaml path, for example
// "fluid.pressure_multiplier".
func (c *Config) SetParam(name string, v float64) error {
	p, ok := c.params()[name]
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q", dynamo.ErrParameterBounds, name)
	}
	*p = v
	return nil
}

// Param returns the current value of a tunable parameter.
func (c *Config) Param(name string) (float64, bool) {
	p, ok := c.params()[name]
	if !ok {
		return 0, false
	}
	return *p, true
}

func ParamNames() []string {
	var c Config
	names := make([]string, 0, len(c.params()))
	for name := range c.params() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
