package viz

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/physplay/internal/fluid"
	"github.com/san-kum/physplay/internal/templates"
	"github.com/san-kum/physplay/internal/vmath"
)

// Viewport maps world coordinates (y up) onto canvas dots (y down), keeping
// the aspect ratio and centring the world on the canvas.
type Viewport struct {
	scale      float64
	offX, offY float64
	dotsHigh   int
}

func NewViewport(c *Canvas, bounds vmath.Vec2) Viewport {
	w, h := float64(c.DotsWide()), float64(c.DotsHigh())
	if bounds.X <= 0 || bounds.Y <= 0 {
		return Viewport{scale: 1, dotsHigh: c.DotsHigh()}
	}
	scale := math.Min((w-1)/bounds.X, (h-1)/bounds.Y)
	return Viewport{
		scale:    scale,
		offX:     (w - 1 - bounds.X*scale) / 2,
		offY:     (h - 1 - bounds.Y*scale) / 2,
		dotsHigh: c.DotsHigh(),
	}
}

func (v Viewport) Project(p vmath.Vec2) (int, int) {
	x := v.offX + p.X*v.scale
	y := float64(v.dotsHigh-1) - (v.offY + p.Y*v.scale)
	return int(math.Round(x)), int(math.Round(y))
}

// Unproject is the inverse of Project.
func (v Viewport) Unproject(x, y int) vmath.Vec2 {
	wx := (float64(x) - v.offX) / v.scale
	wy := (float64(v.dotsHigh-1) - float64(y) - v.offY) / v.scale
	return vmath.V(wx, wy)
}

// Length converts a world distance to dots.
func (v Viewport) Length(d float64) int {
	return int(math.Round(d * v.scale))
}

// DrawSnapshot clears c and renders a rigid or fluid template snapshot.
func DrawSnapshot(c *Canvas, snap any, bounds vmath.Vec2, theme Theme) error {
	c.Clear()
	vp := NewViewport(c, bounds)

	switch s := snap.(type) {
	case templates.RigidSnapshot:
		drawRigid(c, vp, s, theme)
	case *templates.RigidSnapshot:
		drawRigid(c, vp, *s, theme)
	case templates.FluidSnapshot:
		drawBounds(c, vp, bounds, theme.Muted)
		drawFluid(c, vp, s.FluidParticles, theme)
	case *templates.FluidSnapshot:
		drawBounds(c, vp, bounds, theme.Muted)
		drawFluid(c, vp, s.FluidParticles, theme)
	default:
		return fmt.Errorf("unsupported snapshot %T", snap)
	}
	return nil
}

// DrawMarker draws a small cross at p, used for the interactive force
// cursor.
func DrawMarker(c *Canvas, vp Viewport, p vmath.Vec2, radius float64, color lipgloss.Color) {
	x, y := vp.Project(p)
	c.DrawLine(x-2, y, x+2, y, color)
	c.DrawLine(x, y-2, x, y+2, color)
	if r := vp.Length(radius); r > 2 {
		c.DrawCircle(x, y, r, color)
	}
}

func drawBounds(c *Canvas, vp Viewport, bounds vmath.Vec2, color lipgloss.Color) {
	x0, y0 := vp.Project(vmath.Zero())
	x1, y1 := vp.Project(bounds)
	c.DrawPolygon([][2]int{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}, color)
}

func drawRigid(c *Canvas, vp Viewport, snap templates.RigidSnapshot, theme Theme) {
	for _, b := range snap.Bodies {
		color := theme.Body
		if b.Static {
			color = theme.Wall
		}

		if !b.Shape {
			cx, cy := vp.Project(b.Position)
			r := vp.Length(b.Radius)
			c.DrawCircle(cx, cy, r, color)
			// A spoke shows the rotation of the circle.
			rim := b.Position.Add(vmath.V(math.Cos(b.Rotation), math.Sin(b.Rotation)).Scale(b.Radius))
			rx, ry := vp.Project(rim)
			c.DrawLine(cx, cy, rx, ry, color)
			continue
		}

		rot := mgl64.Rotate2D(b.Rotation)
		hw, hh := b.Width/2, b.Height/2
		corners := [4]mgl64.Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
		pts := make([][2]int, len(corners))
		for i, corner := range corners {
			r := rot.Mul2x1(corner)
			x, y := vp.Project(b.Position.Add(vmath.V(r[0], r[1])))
			pts[i] = [2]int{x, y}
		}
		c.DrawPolygon(pts, color)
	}
}

func drawFluid(c *Canvas, vp Viewport, p *fluid.Particles, theme Theme) {
	if p == nil {
		return
	}
	r := vp.Length(float64(p.Radius))
	for i, pos := range p.Positions {
		color := theme.Fluid
		if i < len(p.Colors) && p.Colors[i] != "" && p.Colors[i] != fluid.NoColor {
			color = lipgloss.Color(p.Colors[i])
		}
		x, y := vp.Project(pos.Vec2())
		if r > 1 {
			c.DrawCircle(x, y, r, color)
		} else {
			c.SetColor(x, y, color)
		}
	}
}
