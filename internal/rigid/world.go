package rigid

import (
	"fmt"

	"github.com/san-kum/physplay/internal/dynamo"
	"github.com/san-kum/physplay/internal/vmath"
)

const (
	DefaultMinIterations = 1
	DefaultMaxIterations = 128
	DefaultRestitution   = 0.5
)

type Config struct {
	Gravity       vmath.Vec2
	MinIterations int
	MaxIterations int
	Mode          ResolveMode
}

func DefaultConfig() Config {
	return Config{
		Gravity:       vmath.V(0, -9.81),
		MinIterations: DefaultMinIterations,
		MaxIterations: DefaultMaxIterations,
		Mode:          ResolveRotational,
	}
}

// World owns its bodies. Body indices are stable handles until RemoveBody.
type World struct {
	Gravity vmath.Vec2

	bodies        []Body
	minIterations int
	maxIterations int
	mode          ResolveMode
	manifolds     []Manifold
}

func NewWorld(cfg Config) (*World, error) {
	if cfg.MinIterations < 1 {
		return nil, fmt.Errorf("%w: min iterations must be at least 1, got %d", dynamo.ErrInvalidRange, cfg.MinIterations)
	}
	if err := dynamo.CheckRange(cfg.MinIterations, cfg.MaxIterations); err != nil {
		return nil, fmt.Errorf("iterations: %w", err)
	}
	return &World{
		Gravity:       cfg.Gravity,
		minIterations: cfg.MinIterations,
		maxIterations: cfg.MaxIterations,
		mode:          cfg.Mode,
	}, nil
}

func (w *World) MinIterations() int { return w.minIterations }
func (w *World) MaxIterations() int { return w.maxIterations }
func (w *World) Mode() ResolveMode  { return w.mode }
func (w *World) Len() int           { return len(w.bodies) }

// AddBody copies b into the world and returns its index.
func (w *World) AddBody(b Body) int {
	b.index = len(w.bodies)
	b.worldVertices = nil
	b.markDirty()
	w.bodies = append(w.bodies, b)
	return b.index
}

// RemoveBody deletes the body at i. Every later body shifts down by one.
func (w *World) RemoveBody(i int) error {
	if i < 0 || i >= len(w.bodies) {
		return fmt.Errorf("remove body %d: %w: world has %d bodies", i, dynamo.ErrInvalidRange, len(w.bodies))
	}
	w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
	for j := i; j < len(w.bodies); j++ {
		w.bodies[j].index = j
	}
	return nil
}

func (w *World) Body(i int) (*Body, error) {
	if i < 0 || i >= len(w.bodies) {
		return nil, fmt.Errorf("body %d: %w: world has %d bodies", i, dynamo.ErrInvalidRange, len(w.bodies))
	}
	return &w.bodies[i], nil
}

// Bodies exposes the arena. Callers must not retain the slice across Step,
// AddBody or RemoveBody.
func (w *World) Bodies() []Body { return w.bodies }

// Manifolds returns a copy of the contacts found in the last substep.
func (w *World) Manifolds() []Manifold {
	out := make([]Manifold, len(w.manifolds))
	copy(out, w.manifolds)
	return out
}

// AddBoundaryWalls adds four static walls framing a bounds.X × bounds.Y
// area with its origin at the bottom-left corner.
func (w *World) AddBoundaryWalls(bounds vmath.Vec2) error {
	if bounds.X <= 2 || bounds.Y <= 2 {
		return fmt.Errorf("%w: bounds %v too small for walls", dynamo.ErrInvalidRange, bounds)
	}
	walls := []Body{
		NewStaticBox(vmath.V(bounds.X/2, bounds.Y), bounds.X-2, 2, DefaultRestitution),
		NewStaticBox(vmath.V(bounds.X/2, 0), bounds.X-2, 2, DefaultRestitution),
		NewStaticBox(vmath.V(0, bounds.Y/2), 2, bounds.Y-2, DefaultRestitution),
		NewStaticBox(vmath.V(bounds.X, bounds.Y/2), 2, bounds.Y-2, DefaultRestitution),
	}
	for _, b := range walls {
		w.AddBody(b)
	}
	return nil
}

// Step advances the world by dt split into iterations substeps, clamped to
// the configured range.
func (w *World) Step(dt float64, iterations int) error {
	if dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidRange, dt)
	}
	n, err := dynamo.Clamp(iterations, w.minIterations, w.maxIterations)
	if err != nil {
		return fmt.Errorf("iterations: %w", err)
	}

	sub := dt / float64(n)
	for it := 0; it < n; it++ {
		w.substep(sub)
	}
	return nil
}

func (w *World) substep(dt float64) {
	for i := range w.bodies {
		w.bodies[i].Integrate(dt, w.Gravity)
	}

	w.manifolds = w.manifolds[:0]
	for _, p := range BroadPhase(w.bodies) {
		a, b := &w.bodies[p.A], &w.bodies[p.B]
		normal, depth, ok := Collide(a, b)
		if !ok {
			continue
		}
		contacts, count := FindContactPoints(a, b)
		Separate(a, b, normal, depth)
		w.manifolds = append(w.manifolds, Manifold{
			BodyA:        p.A,
			BodyB:        p.B,
			Normal:       normal,
			Depth:        depth,
			Contacts:     contacts,
			ContactCount: count,
		})
	}

	for _, m := range w.manifolds {
		a, b := &w.bodies[m.BodyA], &w.bodies[m.BodyB]
		switch w.mode {
		case ResolveLinear:
			ResolveCollisionLinear(a, b, m)
		default:
			ResolveCollisionRotational(a, b, m)
		}
	}
}
