package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/physplay/internal/fluid"
	"github.com/san-kum/physplay/internal/storage"
	"github.com/san-kum/physplay/internal/templates"
	"github.com/san-kum/physplay/internal/viz"
	"github.com/san-kum/physplay/internal/vmath"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.SetColor(3, 3, lipgloss.Color("#ff0000"))

	svg := CanvasToSVG(c, 10, "#00ff00")
	if !strings.HasPrefix(svg, "<?xml") {
		t.Error("expected xml header")
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `fill="#ff0000"`) {
		t.Error("expected coloured dot")
	}
	if CanvasToSVG(nil, 1, "#fff") != "" {
		t.Error("expected empty output for nil canvas")
	}
}

func TestWriteSnapshotSVGRigid(t *testing.T) {
	snap := templates.RigidSnapshot{Bodies: []templates.LightRigidBody{
		{Position: vmath.V(10, 10), Radius: 5},
		{Position: vmath.V(30, 10), Width: 4, Height: 4, Shape: true},
	}}

	var buf bytes.Buffer
	if err := WriteSnapshotSVG(&buf, snap, vmath.V(100, 50), 2, viz.ThemeOcean); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `<circle cx="20.0" cy="80.0" r="10.0"`) {
		t.Errorf("expected projected circle, got:\n%s", out)
	}
	if !strings.Contains(out, `<polygon points="56.0,84.0 64.0,84.0 64.0,76.0 56.0,76.0"`) {
		t.Errorf("expected projected box, got:\n%s", out)
	}
}

func TestWriteSnapshotSVGFluid(t *testing.T) {
	p := fluid.NewParticles(2, 1, 1, 10)
	p.Push(vmath.F(5, 5))
	p.Push(vmath.F(15, 5))
	p.Colors[1] = "#24ff6f"

	var buf bytes.Buffer
	if err := WriteSnapshotSVG(&buf, templates.FluidSnapshot{FluidParticles: p}, vmath.V(20, 10), 1, viz.ThemeOcean); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if n := strings.Count(buf.String(), "<circle"); n != 2 {
		t.Errorf("expected 2 particles, got %d", n)
	}
	if !strings.Contains(buf.String(), "#24ff6f") {
		t.Error("expected particle colour")
	}
}

func TestWriteSnapshotSVGUnknown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSnapshotSVG(&buf, "nope", vmath.V(1, 1), 1, viz.ThemeOcean); err == nil {
		t.Error("expected error for unknown snapshot")
	}
}

func TestSeriesToSVG(t *testing.T) {
	series := storage.NewSeries([]string{"kinetic_energy"})
	series.Append(0, map[string]float64{"kinetic_energy": 1})
	series.Append(1, map[string]float64{"kinetic_energy": 2})

	svg, err := SeriesToSVG(series, "kinetic_energy", 100, 50, "#00ccff")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(svg, "<path") {
		t.Error("expected path element")
	}

	if _, err := SeriesToSVG(series, "missing", 100, 50, "#fff"); err == nil {
		t.Error("expected error for unknown column")
	}
}
