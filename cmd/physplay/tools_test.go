package main

import "testing"

func TestParseRange(t *testing.T) {
	name, lo, hi, err := parseRange("fluid.viscosity_strength=0.1:0.5")
	if err != nil {
		t.Fatal(err)
	}
	if name != "fluid.viscosity_strength" || lo != 0.1 || hi != 0.5 {
		t.Errorf("expected fluid.viscosity_strength 0.1:0.5, got %s %g:%g", name, lo, hi)
	}

	for _, bad := range []string{"nope", "a=1", "a=x:2", "a=1:y"} {
		if _, _, _, err := parseRange(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
