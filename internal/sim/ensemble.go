package sim

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/san-kum/physplay/internal/vmath"
)

// Factory builds a fresh template for one ensemble member.
type Factory func() (Template, error)

type RunResult struct {
	Index   int
	Steps   int
	Elapsed time.Duration
	Metrics map[string]float64
}

// StepsPerSecond is the throughput of the run.
func (r RunResult) StepsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Steps) / r.Elapsed.Seconds()
}

// Ensemble runs independent copies of a template concurrently, one goroutine
// per copy. Each copy is still stepped sequentially.
type Ensemble struct {
	factory Factory
	numRuns int
	metrics func() []Metric
}

// NewEnsemble takes a metrics constructor so that every run gets its own
// metric instances.
func NewEnsemble(factory Factory, numRuns int, metrics func() []Metric) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, metrics: metrics}
}

func (e *Ensemble) Run(ctx context.Context, bounds vmath.Vec2, starter json.RawMessage, steps int, dt float64) ([]RunResult, error) {
	results := make([]RunResult, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			tpl, err := e.factory()
			if err != nil {
				errs[idx] = err
				return
			}
			m := NewManager(WithHistory(0))
			if e.metrics != nil {
				for _, metric := range e.metrics() {
					m.AddMetric(metric)
				}
			}
			if err := m.Load(tpl, bounds, starter); err != nil {
				errs[idx] = err
				return
			}

			start := time.Now()
			errs[idx] = m.RunSteps(ctx, steps, dt)
			results[idx] = RunResult{
				Index:   idx,
				Steps:   m.Steps(),
				Elapsed: time.Since(start),
				Metrics: m.Metrics(),
			}
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
