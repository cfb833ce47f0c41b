// Package sim hosts a simulation template behind a single lock and drives it
// with a fixed-rate tick loop.
package sim

import (
	"encoding/json"

	"github.com/san-kum/physplay/internal/vmath"
)

// Template is a simulation that can be hosted by a Manager.
type Template interface {
	// Initialize seeds the simulation. starter may be nil.
	Initialize(bounds vmath.Vec2, starter json.RawMessage) error
	Step(dt float64) error
	// Snapshot returns a deep copy of the renderable state, ready to be
	// marshalled as JSON.
	Snapshot() (any, error)
	HandleEvent(name string, payload json.RawMessage) error
}

// Frame is one rendered tick.
type Frame struct {
	Step     int     `json:"step"`
	Time     float64 `json:"time"`
	Snapshot any     `json:"snapshot"`
}

type Metric interface {
	Name() string
	Observe(tpl Template, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(frame Frame)
}

type ObserverFunc func(frame Frame)

func (f ObserverFunc) OnStep(frame Frame) { f(frame) }

// Renderer receives every frame. It is called with the manager lock held
// and must not call back into the manager.
type Renderer interface {
	Render(frame Frame) error
}

type RendererFunc func(frame Frame) error

func (f RendererFunc) Render(frame Frame) error { return f(frame) }
