package experiment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/san-kum/physplay/internal/config"
	"github.com/san-kum/physplay/internal/dynamo"
	"github.com/san-kum/physplay/internal/metrics"
	"github.com/san-kum/physplay/internal/templates"
)

func smallConfig(template string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Template = template
	cfg.Dt = 0.01
	cfg.Duration = 0.1
	cfg.Spawn.Count = 16
	cfg.Rigid.MaxIterations = 4
	return cfg
}

func TestExperimentRun(t *testing.T) {
	exp := New(smallConfig("rigid"))
	if err := exp.Setup(templates.NewRegistry(), metrics.Default()); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	calls := 0
	exp.progress = func(done, total int) { calls++ }

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Steps != 10 {
		t.Errorf("expected 10 steps, got %d", result.Steps)
	}
	if result.Series.Len() != 10 {
		t.Errorf("expected 10 samples, got %d", result.Series.Len())
	}
	if calls != 10 {
		t.Errorf("expected 10 progress calls, got %d", calls)
	}
	if _, ok := result.Metrics["kinetic_energy"]; !ok {
		t.Error("expected kinetic_energy metric")
	}
	if result.Final.Step != 10 {
		t.Errorf("expected final frame 10, got %d", result.Final.Step)
	}
}

func TestExperimentEvents(t *testing.T) {
	payload, _ := json.Marshal(map[string]any{"position": map[string]float64{"x": 400, "y": 300}, "attract": true})
	toggle, _ := json.Marshal(true)

	exp := New(smallConfig("fluid"), WithEvents(
		Event{At: 0.05, Name: templates.EventInteractiveForceToggle, Payload: toggle},
		Event{At: 0.02, Name: templates.EventInteractiveForce, Payload: payload},
	))
	if exp.events[0].At != 0.02 {
		t.Fatalf("expected events sorted by time, got %v", exp.events[0].At)
	}

	registry := templates.NewRegistry()
	if err := exp.Setup(registry, nil); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if _, err := exp.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	snap, err := exp.Manager().Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := snap.Snapshot.(templates.FluidSnapshot); !ok {
		t.Fatalf("expected fluid snapshot, got %T", snap.Snapshot)
	}
}

func TestExperimentUnknownEvent(t *testing.T) {
	exp := New(smallConfig("rigid"), WithEvents(Event{At: 0.025, Name: "explode", Payload: json.RawMessage(`{}`)}))
	if err := exp.Setup(templates.NewRegistry(), nil); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	result, err := exp.Run(context.Background())
	if !errors.Is(err, dynamo.ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
	if result == nil || result.Steps != 3 {
		t.Errorf("expected partial result of 3 steps, got %+v", result)
	}
}

func TestExperimentNotSetup(t *testing.T) {
	if _, err := New(smallConfig("rigid")).Run(context.Background()); err == nil {
		t.Error("expected error before setup")
	}
}

func TestExperimentUnknownTemplate(t *testing.T) {
	err := New(smallConfig("bouncing_balls")).Setup(templates.NewRegistry(), nil)
	if !errors.Is(err, dynamo.ErrUnknownTemplate) {
		t.Errorf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestExperimentCancelled(t *testing.T) {
	exp := New(smallConfig("rigid"))
	if err := exp.Setup(templates.NewRegistry(), nil); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := exp.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result.Steps != 0 {
		t.Errorf("expected no steps, got %d", result.Steps)
	}
}
