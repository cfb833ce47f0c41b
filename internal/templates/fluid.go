package templates

import (
	"encoding/json"
	"fmt"

	"github.com/san-kum/physplay/internal/dynamo"
	"github.com/san-kum/physplay/internal/fluid"
	"github.com/san-kum/physplay/internal/vmath"
)

const (
	EventSetSettings              = "set_settings"
	EventInteractiveForceToggle   = "interactive_force_toggle"
	EventInteractiveForcePosition = "interactive_force_position"
	EventInteractiveForce         = "interactive_force"

	// legacyInteractiveForceToggle is the misspelled event name older
	// front ends still send.
	legacyInteractiveForceToggle = "interractive_force_toggle"
)

type FluidSnapshot struct {
	FluidParticles *fluid.Particles `json:"fluid_particles"`
}

type InteractiveForceEvent struct {
	Position vmath.Vec2f `json:"position"`
	Attract  bool        `json:"attract"`
}

// FluidSimulation is the SPH fluid template.
type FluidSimulation struct {
	cfg   fluid.Config
	fluid *fluid.Fluid
}

func NewFluidSimulation(cfg fluid.Config) *FluidSimulation {
	return &FluidSimulation{cfg: cfg}
}

// Fluid exposes the underlying solver, or nil before Initialize.
func (f *FluidSimulation) Fluid() *fluid.Fluid { return f.fluid }

// Initialize sizes the box to bounds and pushes one particle per starter
// position.
func (f *FluidSimulation) Initialize(bounds vmath.Vec2, starter json.RawMessage) error {
	cfg := f.cfg
	cfg.Bounds = bounds.Vec2f()
	fl, err := fluid.New(cfg)
	if err != nil {
		return err
	}
	data, err := decodeStarter(starter)
	if err != nil {
		return err
	}
	for _, pos := range data.Positions {
		fl.Push(pos.Vec2f())
	}
	f.fluid = fl
	return nil
}

func (f *FluidSimulation) Step(dt float64) error {
	if f.fluid == nil {
		return dynamo.ErrUninitialized
	}
	return f.fluid.Update(float32(dt))
}

func (f *FluidSimulation) Snapshot() (any, error) {
	if f.fluid == nil {
		return nil, dynamo.ErrUninitialized
	}
	return FluidSnapshot{FluidParticles: f.fluid.Particles.Clone()}, nil
}

func (f *FluidSimulation) HandleEvent(name string, payload json.RawMessage) error {
	if f.fluid == nil {
		return dynamo.ErrUninitialized
	}
	switch name {
	case EventSetSettings:
		var s fluid.Settings
		if err := decodePayload(name, payload, &s); err != nil {
			return err
		}
		return f.fluid.ApplySettings(s)
	case EventInteractiveForceToggle, legacyInteractiveForceToggle:
		var enabled bool
		if err := decodePayload(name, payload, &enabled); err != nil {
			return err
		}
		f.fluid.ToggleInteractiveForce(enabled)
		return nil
	case EventInteractiveForcePosition:
		var pos vmath.Vec2f
		if err := decodePayload(name, payload, &pos); err != nil {
			return err
		}
		f.fluid.SetInteractiveForce(pos, f.fluid.Interactive.Mode)
		return nil
	case EventInteractiveForce:
		var ev InteractiveForceEvent
		if err := decodePayload(name, payload, &ev); err != nil {
			return err
		}
		mode := fluid.Repel
		if ev.Attract {
			mode = fluid.Attract
		}
		f.fluid.SetInteractiveForce(ev.Position, mode)
		return nil
	default:
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownEvent, name)
	}
}
