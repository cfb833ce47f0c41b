package config

import (
	"sort"

	"github.com/san-kum/physplay/internal/vmath"
)

func preset(template string, apply func(*Config)) *Config {
	cfg := DefaultConfig()
	cfg.Template = template
	apply(cfg)
	return cfg
}

var Presets = map[string]map[string]*Config{
	"fluid": {
		"calm": preset("fluid", func(c *Config) {}),
		"gas": preset("fluid", func(c *Config) {
			c.Fluid.TargetDensity = 0.5
			c.Fluid.PressureMultiplier = 3.0
			c.Spawn.Layout = "random"
		}),
		"rain": preset("fluid", func(c *Config) {
			c.Fluid.Gravity = 120
			c.Fluid.VisualFilter = 1
			c.Spawn.Count = 400
			c.Spawn.Layout = "random"
			c.Duration = 20
		}),
	},
	"rigid": {
		"pile": preset("rigid", func(c *Config) {
			c.Rigid.Gravity = vmath.V(0, -98.1)
			c.Rigid.MaxIterations = 16
			c.Spawn.Count = 20
			c.Spawn.Spacing = 30
		}),
		"pool": preset("rigid", func(c *Config) {
			c.Rigid.Gravity = vmath.Zero()
			c.Rigid.Restitution = 1
			c.Rigid.MaxIterations = 8
			c.Spawn.Count = 30
			c.Spawn.Layout = "random"
			c.Spawn.Spacing = 30
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(template, name string) *Config {
	templatePresets, ok := Presets[template]
	if !ok {
		return nil
	}
	cfg, ok := templatePresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(template string) []string {
	templatePresets, ok := Presets[template]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(templatePresets))
	for name := range templatePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
