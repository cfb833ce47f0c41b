package templates

import (
	"fmt"
	"sort"

	"github.com/san-kum/physplay/internal/config"
	"github.com/san-kum/physplay/internal/dynamo"
	"github.com/san-kum/physplay/internal/sim"
)

type ID int

const (
	BouncingBallsID ID = iota
	FluidID
	RigidID
)

func (id ID) String() string {
	switch id {
	case BouncingBallsID:
		return "bouncing_balls"
	case FluidID:
		return "fluid"
	case RigidID:
		return "rigid"
	default:
		return fmt.Sprintf("template(%d)", int(id))
	}
}

type factory func(cfg *config.Config) (sim.Template, error)

type Registry struct {
	byID   map[ID]factory
	byName map[string]ID
}

func NewRegistry() *Registry {
	r := &Registry{
		byID:   make(map[ID]factory),
		byName: make(map[string]ID),
	}

	r.register(FluidID, func(cfg *config.Config) (sim.Template, error) {
		return NewFluidSimulation(cfg.FluidConfig()), nil
	})
	r.register(RigidID, func(cfg *config.Config) (sim.Template, error) {
		world, err := cfg.WorldConfig()
		if err != nil {
			return nil, err
		}
		return NewRigidSimulation(RigidOptions{
			World:        world,
			CircleRadius: cfg.Rigid.CircleRadius,
			BoxSize:      cfg.Rigid.BoxSize,
			Density:      cfg.Rigid.Density,
			Restitution:  cfg.Rigid.Restitution,
		}), nil
	})

	return r
}

func (r *Registry) register(id ID, fn factory) {
	r.byID[id] = fn
	r.byName[id.String()] = id
}

func (r *Registry) Get(id ID, cfg *config.Config) (sim.Template, error) {
	fn, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownTemplate, id)
	}
	return fn(cfg)
}

func (r *Registry) GetByName(name string, cfg *config.Config) (sim.Template, error) {
	id, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownTemplate, name)
	}
	return r.Get(id, cfg)
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
