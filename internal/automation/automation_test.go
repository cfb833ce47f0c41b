package automation

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/physplay/internal/templates"
)

const scenarioYAML = `name: stir
description: drop a fluid and stir it
steps:
  - template: fluid
    duration: 0.05
    dt: 0.01
    params:
      fluid.viscosity_strength: 0.5
    events:
      - at: 0.01
        event: interactive_force
        payload:
          position: {x: 200, y: 100}
          attract: true
      - at: 0.02
        event: interactive_force_toggle
        payload: false
  - template: rigid
    preset: pile
    duration: 0.03
    events:
      - at: 0
        event: set_gravity
        payload: {x: 0, y: -50}
`

var quiet = log.New(io.Discard, "", 0)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	scenario, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if scenario.Name != "stir" {
		t.Errorf("expected name stir, got %s", scenario.Name)
	}
	if len(scenario.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(scenario.Steps))
	}
	if len(scenario.Steps[0].Events) != 2 {
		t.Errorf("expected 2 events, got %d", len(scenario.Steps[0].Events))
	}

	cfg, err := scenario.Steps[0].Config()
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if cfg.Fluid.ViscosityStrength != 0.5 {
		t.Errorf("expected viscosity 0.5, got %f", cfg.Fluid.ViscosityStrength)
	}
	if cfg.Dt != 0.01 {
		t.Errorf("expected dt 0.01, got %f", cfg.Dt)
	}
}

func TestLoadScenarioEmpty(t *testing.T) {
	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
}

func TestRunScenario(t *testing.T) {
	scenario, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	results, err := RunScenario(context.Background(), scenario, templates.NewRegistry(), quiet)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Result.Steps != 5 {
		t.Errorf("expected 5 fluid steps, got %d", results[0].Result.Steps)
	}
	if results[1].Config.Rigid.MaxIterations != 16 {
		t.Errorf("expected pile preset, got %d iterations", results[1].Config.Rigid.MaxIterations)
	}
}

func TestRunScenarioBadEvent(t *testing.T) {
	scenario := &Scenario{Steps: []ScenarioStep{{
		Template: "rigid",
		Duration: 0.02,
		Dt:       0.01,
		Events:   []ScenarioEvent{{At: 0, Event: "interactive_force_toggle", Payload: true}},
	}}}

	results, err := RunScenario(context.Background(), scenario, templates.NewRegistry(), quiet)
	if err == nil {
		t.Fatal("expected rigid template to reject a fluid event")
	}
	if len(results) != 0 {
		t.Errorf("expected no completed steps, got %d", len(results))
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Template:  "rigid",
		Preset:    "pile",
		ParamName: "rigid.restitution",
		ParamMin:  0,
		ParamMax:  1,
		NumSteps:  3,
		Duration:  0.05,
	}

	results, err := RunSweep(context.Background(), sweep, templates.NewRegistry(), quiet)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	expected := []float64{0, 0.5, 1}
	for i, r := range results {
		if r.ParamValue != expected[i] {
			t.Errorf("expected value %f, got %f", expected[i], r.ParamValue)
		}
		if r.Err != nil {
			t.Errorf("value %f failed: %v", r.ParamValue, r.Err)
		}
		if r.Steps == 0 {
			t.Errorf("value %f ran no steps", r.ParamValue)
		}
	}
}

func TestRunSweepUnknownParam(t *testing.T) {
	sweep := &ParameterSweep{Template: "rigid", ParamName: "rigid.nope", NumSteps: 2, Duration: 0.01}
	if _, err := RunSweep(context.Background(), sweep, templates.NewRegistry(), quiet); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
