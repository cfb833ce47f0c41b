package config

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/physplay/internal/dynamo"
	"github.com/san-kum/physplay/internal/fluid"
	"github.com/san-kum/physplay/internal/rigid"
	"github.com/san-kum/physplay/internal/vmath"
)

const (
	DefaultTemplate       = "fluid"
	DefaultWidth          = 800.0
	DefaultHeight         = 600.0
	DefaultDt             = 1.0 / 60
	DefaultDuration       = 10.0
	DefaultTickRate       = 60.0
	DefaultHistorySeconds = 10.0
	DefaultSpawnCount     = 200
	DefaultSpacing        = 12.0
)

type Config struct {
	Template       string  `yaml:"template"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Dt             float64 `yaml:"dt"`
	Duration       float64 `yaml:"duration"`
	TickRate       float64 `yaml:"tick_rate"`
	HistorySeconds float64 `yaml:"history_seconds"`
	Seed           int64   `yaml:"seed"`

	Spawn SpawnConfig `yaml:"spawn"`
	Fluid FluidConfig `yaml:"fluid"`
	Rigid RigidConfig `yaml:"rigid"`
}

// SpawnConfig describes the starter positions handed to a template.
type SpawnConfig struct {
	Count   int     `yaml:"count"`
	Layout  string  `yaml:"layout"`
	Spacing float64 `yaml:"spacing"`
}

type FluidConfig struct {
	ParticleRadius       float64 `yaml:"particle_radius"`
	TargetDensity        float64 `yaml:"target_density"`
	PressureMultiplier   float64 `yaml:"pressure_multiplier"`
	SmoothingRadius      float64 `yaml:"smoothing_radius"`
	ViscosityStrength    float64 `yaml:"viscosity_strength"`
	Gravity              float64 `yaml:"gravity"`
	CollisionRestitution float64 `yaml:"collision_restitution"`
	Mass                 float64 `yaml:"mass"`
	VisualFilter         int     `yaml:"visual_filter"`
}

type RigidConfig struct {
	Gravity       vmath.Vec2 `yaml:"gravity"`
	MinIterations int        `yaml:"min_iterations"`
	MaxIterations int        `yaml:"max_iterations"`
	Resolver      string     `yaml:"resolver"`
	CircleRadius  float64    `yaml:"circle_radius"`
	BoxSize       float64    `yaml:"box_size"`
	Density       float64    `yaml:"density"`
	Restitution   float64    `yaml:"restitution"`
}

func DefaultConfig() *Config {
	fc := fluid.DefaultConfig()
	rc := rigid.DefaultConfig()
	return &Config{
		Template:       DefaultTemplate,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		Dt:             DefaultDt,
		Duration:       DefaultDuration,
		TickRate:       DefaultTickRate,
		HistorySeconds: DefaultHistorySeconds,
		Spawn: SpawnConfig{
			Count:   DefaultSpawnCount,
			Layout:  "grid",
			Spacing: DefaultSpacing,
		},
		Fluid: FluidConfig{
			ParticleRadius:       float64(fc.ParticleRadius),
			TargetDensity:        float64(fc.TargetDensity),
			PressureMultiplier:   float64(fc.PressureMultiplier),
			SmoothingRadius:      float64(fc.SmoothingRadius),
			ViscosityStrength:    float64(fc.ViscosityStrength),
			Gravity:              float64(fc.Gravity),
			CollisionRestitution: float64(fc.CollisionRestitution),
			Mass:                 float64(fc.Mass),
			VisualFilter:         int(fc.VisualFilter),
		},
		Rigid: RigidConfig{
			Gravity:       rc.Gravity,
			MinIterations: rc.MinIterations,
			MaxIterations: rc.MaxIterations,
			Resolver:      rc.Mode.String(),
			CircleRadius:  10,
			BoxSize:       20,
			Density:       1,
			Restitution:   rigid.DefaultRestitution,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrParameterBounds, c.Dt)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: bounds must be positive, got %fx%f", dynamo.ErrParameterBounds, c.Width, c.Height)
	}
	if c.Spawn.Count < 0 {
		return fmt.Errorf("%w: spawn count must not be negative", dynamo.ErrParameterBounds)
	}
	return nil
}

func (c *Config) Bounds() vmath.Vec2 { return vmath.V(c.Width, c.Height) }

// Steps is the number of ticks covering Duration.
func (c *Config) Steps() int {
	if c.Dt <= 0 {
		return 0
	}
	return int(math.Round(c.Duration / c.Dt))
}

func (c *Config) FluidConfig() fluid.Config {
	f := c.Fluid
	return fluid.Config{
		ParticleRadius:       float32(f.ParticleRadius),
		TargetDensity:        float32(f.TargetDensity),
		PressureMultiplier:   float32(f.PressureMultiplier),
		SmoothingRadius:      float32(f.SmoothingRadius),
		ViscosityStrength:    float32(f.ViscosityStrength),
		Gravity:              float32(f.Gravity),
		CollisionRestitution: float32(f.CollisionRestitution),
		Mass:                 float32(f.Mass),
		Bounds:               vmath.F(float32(c.Width), float32(c.Height)),
		VisualFilter:         fluid.VisualFilter(f.VisualFilter),
	}
}

func (c *Config) WorldConfig() (rigid.Config, error) {
	var mode rigid.ResolveMode
	switch c.Rigid.Resolver {
	case "", "rotational":
		mode = rigid.ResolveRotational
	case "linear":
		mode = rigid.ResolveLinear
	default:
		return rigid.Config{}, fmt.Errorf("%w: unknown resolver %q", dynamo.ErrParameterBounds, c.Rigid.Resolver)
	}
	return rigid.Config{
		Gravity:       c.Rigid.Gravity,
		MinIterations: c.Rigid.MinIterations,
		MaxIterations: c.Rigid.MaxIterations,
		Mode:          mode,
	}, nil
}

// StarterPositions lays out Spawn.Count points inside the bounds. The grid
// layout packs rows upward from the lower-left third of the box; the random
// layout is reproducible for a given Seed.
func (c *Config) StarterPositions() []vmath.Vec2 {
	n := c.Spawn.Count
	if n <= 0 {
		return nil
	}
	margin := math.Max(c.Spawn.Spacing, 1) * 2
	positions := make([]vmath.Vec2, 0, n)

	switch c.Spawn.Layout {
	case "random":
		rng := rand.New(rand.NewSource(c.Seed))
		for i := 0; i < n; i++ {
			positions = append(positions, vmath.V(
				margin+rng.Float64()*math.Max(c.Width-2*margin, 0),
				margin+rng.Float64()*math.Max(c.Height-2*margin, 0),
			))
		}
	default:
		spacing := math.Max(c.Spawn.Spacing, 1)
		cols := int(math.Ceil(math.Sqrt(float64(n))))
		x0 := c.Width/3 - float64(cols-1)*spacing/2
		y0 := margin
		for i := 0; i < n; i++ {
			positions = append(positions, vmath.V(
				x0+float64(i%cols)*spacing,
				y0+float64(i/cols)*spacing,
			))
		}
	}
	return positions
}
