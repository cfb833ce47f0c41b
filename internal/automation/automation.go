package automation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/physplay/internal/config"
	"github.com/san-kum/physplay/internal/experiment"
	"github.com/san-kum/physplay/internal/metrics"
	"github.com/san-kum/physplay/internal/templates"
)

// Scenario is a scripted sequence of runs, each with timed events.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

type ScenarioStep struct {
	Template string             `yaml:"template"`
	Preset   string             `yaml:"preset"`
	Duration float64            `yaml:"duration"`
	Dt       float64            `yaml:"dt"`
	Seed     int64              `yaml:"seed"`
	Params   map[string]float64 `yaml:"params"`
	Events   []ScenarioEvent    `yaml:"events"`
	SaveAs   string             `yaml:"save_as"`
}

// ScenarioEvent is a template event fired at simulated time At. Payload is
// any yaml value; it is handed to the template as JSON.
type ScenarioEvent struct {
	At      float64 `yaml:"at"`
	Event   string  `yaml:"event"`
	Payload any     `yaml:"payload"`
}

// StepResult pairs a scenario step with its outcome.
type StepResult struct {
	Step   ScenarioStep
	Config *config.Config
	Result *experiment.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Config resolves the step into a full configuration: the preset (or the
// defaults), then any explicitly set fields and params.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Template, s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", s.Preset, config.ListPresets(s.Template))
		}
	}
	cfg.Template = s.Template
	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	if s.Dt > 0 {
		cfg.Dt = s.Dt
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	for name, v := range s.Params {
		if err := cfg.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (s ScenarioStep) events() ([]experiment.Event, error) {
	events := make([]experiment.Event, 0, len(s.Events))
	for _, ev := range s.Events {
		payload, err := json.Marshal(ev.Payload)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", ev.Event, err)
		}
		events = append(events, experiment.Event{At: ev.At, Name: ev.Event, Payload: payload})
	}
	return events, nil
}

// RunScenario executes all steps in order and stops at the first failure.
func RunScenario(ctx context.Context, scenario *Scenario, registry *templates.Registry, logger *log.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Printf("running step %d/%d: %s", i+1, len(scenario.Steps), step.Template)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		events, err := step.events()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg, experiment.WithLogger(logger), experiment.WithEvents(events...))
		if err := exp.Setup(registry, metrics.Default()); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Config: cfg, Result: result})
	}

	return results, nil
}

// ParameterSweep runs one template across evenly spaced values of a single
// config parameter.
type ParameterSweep struct {
	Template  string
	Preset    string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Duration  float64
}

type SweepResult struct {
	ParamValue float64
	Steps      int
	Metrics    map[string]float64
	Err        error
}

// RunSweep executes a parameter sweep. A value whose run fails is recorded
// with its error; the sweep goes on.
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *templates.Registry, logger *log.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one value, got %d", sweep.NumSteps)
	}

	base := ScenarioStep{Template: sweep.Template, Preset: sweep.Preset, Duration: sweep.Duration}
	if _, err := base.Config(); err != nil {
		return nil, err
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		paramVal := sweep.ParamMin + float64(i)*paramStep
		step := base
		step.Params = map[string]float64{sweep.ParamName: paramVal}

		res := SweepResult{ParamValue: paramVal}
		cfg, err := step.Config()
		if err != nil {
			return results, err
		}

		exp := experiment.New(cfg, experiment.WithLogger(logger))
		if err := exp.Setup(registry, metrics.Default()); err != nil {
			res.Err = err
		} else if result, err := exp.Run(ctx); err != nil {
			res.Err = err
			res.Steps = result.Steps
			res.Metrics = result.Metrics
		} else {
			res.Steps = result.Steps
			res.Metrics = result.Metrics
		}

		results = append(results, res)
		logger.Printf("sweep %d/%d: %s=%.4f", i+1, sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}
