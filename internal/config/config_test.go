package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/physplay/internal/dynamo"
	"github.com/san-kum/physplay/internal/fluid"
	"github.com/san-kum/physplay/internal/rigid"
	"github.com/san-kum/physplay/internal/vmath"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Template != "fluid" {
		t.Errorf("expected template fluid, got %s", cfg.Template)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Fluid.SmoothingRadius != 30 {
		t.Errorf("expected smoothing radius 30, got %f", cfg.Fluid.SmoothingRadius)
	}
	if cfg.Rigid.MaxIterations != 128 || cfg.Rigid.MinIterations != 1 {
		t.Errorf("expected iterations [1, 128], got [%d, %d]", cfg.Rigid.MinIterations, cfg.Rigid.MaxIterations)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
	if cfg.Steps() != 600 {
		t.Errorf("expected 600 steps, got %d", cfg.Steps())
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0
	if err := cfg.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Width = -1
	if err := cfg.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("fluid", "gas")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Fluid.TargetDensity != 0.5 || cfg.Fluid.PressureMultiplier != 3.0 {
		t.Errorf("unexpected gas parameters: %+v", cfg.Fluid)
	}

	// Presets are copies.
	cfg.Fluid.TargetDensity = 9
	if GetPreset("fluid", "gas").Fluid.TargetDensity != 0.5 {
		t.Error("modifying a preset copy changed the preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("fluid", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "calm"); cfg != nil {
		t.Error("expected nil for nonexistent template")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("rigid")
	if len(presets) != 2 || presets[0] != "pile" || presets[1] != "pool" {
		t.Errorf("expected [pile pool], got %v", presets)
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent template")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physplay.yaml")

	cfg := GetPreset("rigid", "pile")
	cfg.Seed = 42
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\nsaved  %+v\nloaded %+v", cfg, loaded)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("template: rigid\nrigid:\n  gravity: {x: 1, y: 2}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Template != "rigid" {
		t.Errorf("expected template rigid, got %s", cfg.Template)
	}
	if cfg.Rigid.Gravity != vmath.V(1, 2) {
		t.Errorf("expected gravity (1, 2), got %v", cfg.Rigid.Gravity)
	}
	if cfg.Rigid.MaxIterations != 128 {
		t.Errorf("expected default max iterations, got %d", cfg.Rigid.MaxIterations)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEngineConfigs(t *testing.T) {
	cfg := DefaultConfig()

	fc := cfg.FluidConfig()
	if fc.Bounds != vmath.F(800, 600) {
		t.Errorf("expected fluid bounds 800x600, got %v", fc.Bounds)
	}
	if fc != fluid.DefaultConfig() {
		t.Errorf("default fluid config should round-trip, got %+v", fc)
	}

	wc, err := cfg.WorldConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wc != rigid.DefaultConfig() {
		t.Errorf("default world config should round-trip, got %+v", wc)
	}

	cfg.Rigid.Resolver = "linear"
	if wc, _ := cfg.WorldConfig(); wc.Mode != rigid.ResolveLinear {
		t.Errorf("expected linear resolver, got %v", wc.Mode)
	}
	cfg.Rigid.Resolver = "magic"
	if _, err := cfg.WorldConfig(); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestStarterPositions(t *testing.T) {
	tests := []struct {
		name   string
		layout string
	}{
		{"grid", "grid"},
		{"random", "random"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Spawn.Layout = tt.layout
			cfg.Seed = 9

			positions := cfg.StarterPositions()
			if len(positions) != cfg.Spawn.Count {
				t.Fatalf("expected %d positions, got %d", cfg.Spawn.Count, len(positions))
			}
			for _, p := range positions {
				if p.X < 0 || p.X > cfg.Width || p.Y < 0 || p.Y > cfg.Height {
					t.Errorf("position %v outside bounds", p)
				}
			}

			again := cfg.StarterPositions()
			for i := range positions {
				if positions[i] != again[i] {
					t.Fatal("layout is not reproducible")
				}
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Spawn.Count = 0
	if cfg.StarterPositions() != nil {
		t.Error("expected no positions for zero count")
	}
}

func TestSetParam(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.SetParam("fluid.pressure_multiplier", 7); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if cfg.Fluid.PressureMultiplier != 7 {
		t.Errorf("expected 7, got %f", cfg.Fluid.PressureMultiplier)
	}

	if err := cfg.SetParam("rigid.gravity.y", -1); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if v, ok := cfg.Param("rigid.gravity.y"); !ok || v != -1 {
		t.Errorf("expected -1, got %f", v)
	}

	if err := cfg.SetParam("nope", 1); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}

	for _, name := range ParamNames() {
		if _, ok := cfg.Param(name); !ok {
			t.Errorf("listed parameter %s is not readable", name)
		}
	}
}
