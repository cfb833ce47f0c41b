package viz

import (
	"testing"

	"github.com/san-kum/physplay/internal/fluid"
	"github.com/san-kum/physplay/internal/templates"
	"github.com/san-kum/physplay/internal/vmath"
)

func TestViewportRoundTrip(t *testing.T) {
	c := NewCanvas(40, 20)
	vp := NewViewport(c, vmath.V(800, 600))

	x, y := vp.Project(vmath.V(0, 0))
	if y < c.DotsHigh()/2 {
		t.Errorf("expected origin near the bottom, got y=%d", y)
	}
	if x < 0 || x >= c.DotsWide() {
		t.Errorf("expected origin on canvas, got x=%d", x)
	}

	p := vp.Unproject(vp.Project(vmath.V(400, 300)))
	if p.Dist(vmath.V(400, 300)) > 10 {
		t.Errorf("expected round trip near (400, 300), got %v", p)
	}

	_, top := vp.Project(vmath.V(0, 600))
	_, bottom := vp.Project(vmath.V(0, 0))
	if top >= bottom {
		t.Errorf("expected y axis to point up, top=%d bottom=%d", top, bottom)
	}
}

func TestDrawSnapshotRigid(t *testing.T) {
	c := NewCanvas(40, 20)
	snap := templates.RigidSnapshot{Bodies: []templates.LightRigidBody{
		{Position: vmath.V(100, 100), Radius: 20},
		{Position: vmath.V(300, 100), Width: 40, Height: 40, Shape: true, Rotation: 0.3},
		{Position: vmath.V(200, 0), Width: 398, Height: 2, Shape: true, Static: true},
	}}

	if err := DrawSnapshot(c, snap, vmath.V(400, 300), ThemeOcean); err != nil {
		t.Fatalf("draw failed: %v", err)
	}

	lit := 0
	for y := 0; y < c.DotsHigh(); y++ {
		for x := 0; x < c.DotsWide(); x++ {
			if c.IsSet(x, y) {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected bodies to be drawn")
	}
}

func TestDrawSnapshotFluidColors(t *testing.T) {
	c := NewCanvas(20, 10)
	p := fluid.NewParticles(1, 1, 1, 10)
	p.Push(vmath.F(50, 50))
	p.Colors[0] = "#ff3131"

	if err := DrawSnapshot(c, templates.FluidSnapshot{FluidParticles: p}, vmath.V(100, 100), ThemeOcean); err != nil {
		t.Fatalf("draw failed: %v", err)
	}

	x, y := NewViewport(c, vmath.V(100, 100)).Project(vmath.V(50, 50))
	if !c.IsSet(x, y) {
		t.Fatal("expected particle dot")
	}
	if got := c.Colors[y/4][x/2]; got != "#ff3131" {
		t.Errorf("expected particle colour #ff3131, got %s", got)
	}
}

func TestDrawSnapshotUnknown(t *testing.T) {
	c := NewCanvas(4, 4)
	if err := DrawSnapshot(c, 42, vmath.V(10, 10), ThemeOcean); err == nil {
		t.Error("expected error for unknown snapshot")
	}
}

func TestNextThemeWraps(t *testing.T) {
	last := Themes[len(Themes)-1]
	if got := NextTheme(last.Name); got.Name != Themes[0].Name {
		t.Errorf("expected %s, got %s", Themes[0].Name, got.Name)
	}
	if got := GetTheme("missing"); got.Name != ThemeOcean.Name {
		t.Errorf("expected fallback %s, got %s", ThemeOcean.Name, got.Name)
	}
}
