// Package experiment runs a configured template headless for a fixed number
// of steps, firing scheduled events and sampling metrics after every step.
package experiment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"time"

	"github.com/san-kum/physplay/internal/config"
	"github.com/san-kum/physplay/internal/sim"
	"github.com/san-kum/physplay/internal/storage"
	"github.com/san-kum/physplay/internal/templates"
)

// Event is a template event delivered once the simulated time reaches At.
type Event struct {
	At      float64
	Name    string
	Payload json.RawMessage
}

type Result struct {
	Steps   int
	Elapsed time.Duration
	Series  *storage.Series
	Metrics map[string]float64
	Final   sim.Frame
}

type Option func(*Experiment)

func WithLogger(l *log.Logger) Option {
	return func(e *Experiment) { e.logger = l }
}

// WithEvents schedules events. They are fired in order of At.
func WithEvents(events ...Event) Option {
	return func(e *Experiment) { e.events = append(e.events, events...) }
}

// WithProgress registers a callback invoked after every step.
func WithProgress(fn func(done, total int)) Option {
	return func(e *Experiment) { e.progress = fn }
}

type Experiment struct {
	cfg      *config.Config
	manager  *sim.Manager
	events   []Event
	progress func(done, total int)
	logger   *log.Logger
}

func New(cfg *config.Config, opts ...Option) *Experiment {
	e := &Experiment{
		cfg:    cfg,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	sort.SliceStable(e.events, func(i, j int) bool { return e.events[i].At < e.events[j].At })
	return e
}

// Setup builds the template named by the config and loads it with the
// configured starter positions.
func (e *Experiment) Setup(registry *templates.Registry, metrics []sim.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	tpl, err := registry.GetByName(e.cfg.Template, e.cfg)
	if err != nil {
		return err
	}
	starter, err := templates.NewStarter(e.cfg.StarterPositions())
	if err != nil {
		return err
	}

	e.manager = sim.NewManager(sim.WithLogger(e.logger), sim.WithHistory(0))
	for _, m := range metrics {
		e.manager.AddMetric(m)
	}
	return e.manager.Load(tpl, e.cfg.Bounds(), starter)
}

// Run steps the template for the configured duration. On failure the
// partial result is returned together with the error.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.manager == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	total := e.cfg.Steps()
	result := &Result{Series: storage.SeriesFor(e.manager.Metrics())}
	start := time.Now()
	next := 0

	var runErr error
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		now := float64(i) * e.cfg.Dt
		for next < len(e.events) && e.events[next].At <= now {
			ev := e.events[next]
			if err := e.manager.HandleEvent(ev.Name, ev.Payload); err != nil {
				runErr = fmt.Errorf("at t=%.3f: %w", ev.At, err)
				break
			}
			e.logger.Printf("t=%.3f: %s", now, ev.Name)
			next++
		}
		if runErr != nil {
			break
		}

		frame, err := e.manager.Tick(e.cfg.Dt)
		if err != nil {
			runErr = err
			break
		}
		result.Final = frame
		result.Series.Append(frame.Time, e.manager.Metrics())
		if e.progress != nil {
			e.progress(i+1, total)
		}
	}

	result.Steps = e.manager.Steps()
	result.Elapsed = time.Since(start)
	result.Metrics = e.manager.Metrics()
	return result, runErr
}

// Manager exposes the manager hosting the template, or nil before Setup.
func (e *Experiment) Manager() *sim.Manager {
	return e.manager
}
