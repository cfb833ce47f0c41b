package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/physplay/internal/dynamo"
	"github.com/san-kum/physplay/internal/vmath"
)

const (
	DefaultTickRate        = 60
	DefaultHistorySeconds  = 10
	defaultHistoryCapacity = DefaultHistorySeconds * DefaultTickRate
)

type Option func(*Manager)

func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithTickRate sets the number of ticks per second used by Run.
func WithTickRate(hz float64) Option {
	return func(m *Manager) {
		if hz > 0 {
			m.tickRate = hz
		}
	}
}

func WithHistory(capacity int) Option {
	return func(m *Manager) { m.history = NewFrameHistory[Frame](capacity) }
}

func WithRenderer(r Renderer) Option {
	return func(m *Manager) { m.renderer = r }
}

// Manager owns one template. Every operation on the template happens under a
// single mutex; a step is never interrupted.
type Manager struct {
	mu       sync.Mutex
	tpl      Template
	step     int
	time     float64
	metrics  []Metric
	renderer Renderer

	observers []Observer
	history   *FrameHistory[Frame]
	tickRate  float64
	running   atomic.Bool
	logger    *log.Logger
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		tickRate: DefaultTickRate,
		history:  NewFrameHistory[Frame](defaultHistoryCapacity),
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) AddMetric(metric Metric) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = append(m.metrics, metric)
}

func (m *Manager) AddObserver(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
}

// Load initializes tpl and makes it the hosted template, replacing any
// previous one. Metrics and history are reset.
func (m *Manager) Load(tpl Template, bounds vmath.Vec2, starter json.RawMessage) error {
	if err := tpl.Initialize(bounds, starter); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.tpl = tpl
	m.step = 0
	m.time = 0
	m.history.Clear()
	for _, metric := range m.metrics {
		metric.Reset()
	}
	m.logger.Printf("loaded %T (bounds %.0fx%.0f)", tpl, bounds.X, bounds.Y)
	return nil
}

// Unload drops the hosted template.
func (m *Manager) Unload() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tpl = nil
}

// Tick performs one step of dt and publishes the resulting frame.
func (m *Manager) Tick(dt float64) (Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tpl == nil {
		return Frame{}, dynamo.ErrUninitialized
	}

	if err := m.tpl.Step(dt); err != nil {
		return Frame{}, &dynamo.SimulationError{Step: m.step, Time: m.time, Wrapped: err}
	}
	m.step++
	m.time += dt

	snap, err := m.tpl.Snapshot()
	if err != nil {
		return Frame{}, fmt.Errorf("snapshot: %w", err)
	}
	frame := Frame{Step: m.step, Time: m.time, Snapshot: snap}
	m.history.Push(frame)

	for _, metric := range m.metrics {
		metric.Observe(m.tpl, m.time)
	}
	for _, o := range m.observers {
		o.OnStep(frame)
	}
	if m.renderer != nil {
		if err := m.renderer.Render(frame); err != nil {
			m.logger.Printf("render step %d: %v", m.step, err)
		}
	}
	return frame, nil
}

// Run ticks at the configured rate until Stop is called, ctx is done or a
// step fails. The running flag is checked once per tick.
func (m *Manager) Run(ctx context.Context) error {
	m.mu.Lock()
	loaded := m.tpl != nil
	m.mu.Unlock()
	if !loaded {
		return dynamo.ErrUninitialized
	}

	if !m.running.CompareAndSwap(false, true) {
		return fmt.Errorf("manager already running")
	}
	defer m.running.Store(false)

	period := time.Duration(float64(time.Second) / m.tickRate)
	dt := 1 / m.tickRate
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	m.logger.Printf("running at %.0f Hz", m.tickRate)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if !m.running.Load() {
			m.logger.Printf("stopped at step %d", m.Steps())
			return nil
		}
		if _, err := m.Tick(dt); err != nil {
			m.logger.Printf("halted: %v", err)
			return err
		}
	}
}

// RunSteps ticks n times back to back with a fixed dt, without pacing.
func (m *Manager) RunSteps(ctx context.Context, n int, dt float64) error {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := m.Tick(dt); err != nil {
			return err
		}
	}
	return nil
}

// Stop asks Run to return after the current tick.
func (m *Manager) Stop() { m.running.Store(false) }

func (m *Manager) Running() bool { return m.running.Load() }

func (m *Manager) HandleEvent(name string, payload json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tpl == nil {
		return dynamo.ErrUninitialized
	}
	if err := m.tpl.HandleEvent(name, payload); err != nil {
		return fmt.Errorf("event %q: %w", name, err)
	}
	return nil
}

// Snapshot returns the current state without stepping.
func (m *Manager) Snapshot() (Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tpl == nil {
		return Frame{}, dynamo.ErrUninitialized
	}
	snap, err := m.tpl.Snapshot()
	if err != nil {
		return Frame{}, err
	}
	return Frame{Step: m.step, Time: m.time, Snapshot: snap}, nil
}

func (m *Manager) Steps() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

func (m *Manager) History() []Frame { return m.history.Items() }

func (m *Manager) Metrics() map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]float64, len(m.metrics))
	for _, metric := range m.metrics {
		out[metric.Name()] = metric.Value()
	}
	return out
}
