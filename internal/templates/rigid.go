package templates

import (
	"encoding/json"
	"fmt"

	"github.com/san-kum/physplay/internal/dynamo"
	"github.com/san-kum/physplay/internal/rigid"
	"github.com/san-kum/physplay/internal/vmath"
)

const (
	EventAddBody    = "add_body"
	EventRemoveBody = "remove_body"
	EventSetGravity = "set_gravity"
)

// RigidOptions control the bodies spawned from starter positions.
type RigidOptions struct {
	World        rigid.Config
	CircleRadius float64
	BoxSize      float64
	Density      float64
	Restitution  float64
}

func DefaultRigidOptions() RigidOptions {
	return RigidOptions{
		World:        rigid.DefaultConfig(),
		CircleRadius: 10,
		BoxSize:      20,
		Density:      1,
		Restitution:  rigid.DefaultRestitution,
	}
}

// LightRigidBody is the render view of one body.
type LightRigidBody struct {
	Position vmath.Vec2 `json:"position"`
	Rotation float64    `json:"rotation"`
	Radius   float64    `json:"radius"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Shape    bool       `json:"shape"` // true for polygons
	Static   bool       `json:"static"`
}

type RigidSnapshot struct {
	Bodies []LightRigidBody `json:"bodies"`
}

type AddBodyEvent struct {
	Position vmath.Vec2 `json:"position"`
	Shape    string     `json:"shape"`
}

type RemoveBodyEvent struct {
	Index int `json:"index"`
}

// RigidSimulation is the rigid-body sandbox template.
type RigidSimulation struct {
	opts   RigidOptions
	world  *rigid.World
	bounds vmath.Vec2
}

func NewRigidSimulation(opts RigidOptions) *RigidSimulation {
	return &RigidSimulation{opts: opts}
}

// World exposes the underlying world, or nil before Initialize.
func (r *RigidSimulation) World() *rigid.World { return r.world }

// Initialize frames the bounds with four static walls and spawns circles and
// boxes alternately at the starter positions.
func (r *RigidSimulation) Initialize(bounds vmath.Vec2, starter json.RawMessage) error {
	world, err := rigid.NewWorld(r.opts.World)
	if err != nil {
		return err
	}
	if err := world.AddBoundaryWalls(bounds); err != nil {
		return err
	}
	data, err := decodeStarter(starter)
	if err != nil {
		return err
	}

	r.world = world
	r.bounds = bounds
	for i, pos := range data.Positions {
		shape := "circle"
		if i%2 == 1 {
			shape = "box"
		}
		if err := r.addBody(pos, shape); err != nil {
			r.world = nil
			return err
		}
	}
	return nil
}

func (r *RigidSimulation) addBody(pos vmath.Vec2, shape string) error {
	var (
		b   rigid.Body
		err error
	)
	switch shape {
	case "circle":
		b, err = rigid.NewCircleBody(pos, r.opts.CircleRadius, r.opts.Density, r.opts.Restitution, false)
	case "box":
		b, err = rigid.NewBoxBody(pos, r.opts.BoxSize, r.opts.BoxSize, r.opts.Density, r.opts.Restitution, false)
	default:
		return fmt.Errorf("%w: unknown shape %q", dynamo.ErrParameterBounds, shape)
	}
	if err != nil {
		return err
	}
	r.world.AddBody(b)
	return nil
}

// Step runs MaxIterations substeps.
func (r *RigidSimulation) Step(dt float64) error {
	if r.world == nil {
		return dynamo.ErrUninitialized
	}
	return r.world.Step(dt, r.world.MaxIterations())
}

func (r *RigidSimulation) Snapshot() (any, error) {
	if r.world == nil {
		return nil, dynamo.ErrUninitialized
	}
	bodies := r.world.Bodies()
	snap := RigidSnapshot{Bodies: make([]LightRigidBody, len(bodies))}
	for i := range bodies {
		b := &bodies[i]
		light := LightRigidBody{
			Position: b.Position(),
			Rotation: b.Angle(),
			Static:   b.IsStatic(),
		}
		switch s := b.Shape().(type) {
		case rigid.Circle:
			light.Radius = s.Radius
		case rigid.Polygon:
			light.Width, light.Height = s.Size()
			light.Shape = true
		}
		snap.Bodies[i] = light
	}
	return snap, nil
}

func (r *RigidSimulation) HandleEvent(name string, payload json.RawMessage) error {
	if r.world == nil {
		return dynamo.ErrUninitialized
	}
	switch name {
	case EventAddBody:
		var ev AddBodyEvent
		if err := decodePayload(name, payload, &ev); err != nil {
			return err
		}
		return r.addBody(ev.Position, ev.Shape)
	case EventRemoveBody:
		var ev RemoveBodyEvent
		if err := decodePayload(name, payload, &ev); err != nil {
			return err
		}
		b, err := r.world.Body(ev.Index)
		if err != nil {
			return err
		}
		if b.IsStatic() {
			return fmt.Errorf("%w: body %d is a wall", dynamo.ErrParameterBounds, ev.Index)
		}
		return r.world.RemoveBody(ev.Index)
	case EventSetGravity:
		var g vmath.Vec2
		if err := decodePayload(name, payload, &g); err != nil {
			return err
		}
		r.world.Gravity = g
		return nil
	default:
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownEvent, name)
	}
}
