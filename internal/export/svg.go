// Package export renders frames and metric series as standalone SVG
// documents.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/physplay/internal/fluid"
	"github.com/san-kum/physplay/internal/storage"
	"github.com/san-kum/physplay/internal/templates"
	"github.com/san-kum/physplay/internal/viz"
	"github.com/san-kum/physplay/internal/vmath"
)

const background = "#0a0a0a"

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot.
// Dots take the colour of their cell, or fill when the cell has none.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.DotsWide()) * scale
	height := float64(canvas.DotsHigh()) * scale

	var sb strings.Builder
	writeHeader(&sb, width, height)
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", fill)

	dotRadius := scale * 0.4
	for y := 0; y < canvas.DotsHigh(); y++ {
		for x := 0; x < canvas.DotsWide(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			if c := canvas.Colors[y/4][x/2]; c != "" {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", cx, cy, dotRadius, string(c))
			} else {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
			}
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// WriteSnapshotSVG draws a template snapshot as vector shapes at scale
// pixels per world unit. The world y axis points up.
func WriteSnapshotSVG(w io.Writer, snap any, bounds vmath.Vec2, scale float64, theme viz.Theme) error {
	if scale <= 0 {
		scale = 1
	}
	width, height := bounds.X*scale, bounds.Y*scale
	project := func(p vmath.Vec2) (float64, float64) {
		return p.X * scale, height - p.Y*scale
	}

	var sb strings.Builder
	writeHeader(&sb, width, height)

	switch s := snap.(type) {
	case templates.RigidSnapshot:
		writeRigid(&sb, s, project, scale, theme)
	case *templates.RigidSnapshot:
		writeRigid(&sb, *s, project, scale, theme)
	case templates.FluidSnapshot:
		writeFluid(&sb, s.FluidParticles, project, scale, theme)
	case *templates.FluidSnapshot:
		writeFluid(&sb, s.FluidParticles, project, scale, theme)
	default:
		return fmt.Errorf("unsupported snapshot %T", snap)
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeRigid(sb *strings.Builder, snap templates.RigidSnapshot, project func(vmath.Vec2) (float64, float64), scale float64, theme viz.Theme) {
	sb.WriteString("<g fill=\"none\" stroke-width=\"1.5\">\n")
	for _, b := range snap.Bodies {
		color := theme.Body
		if b.Static {
			color = theme.Wall
		}

		if !b.Shape {
			cx, cy := project(b.Position)
			fmt.Fprintf(sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" stroke=\"%s\"/>\n", cx, cy, b.Radius*scale, string(color))
			continue
		}

		rot := mgl64.Rotate2D(b.Rotation)
		hw, hh := b.Width/2, b.Height/2
		points := make([]string, 0, 4)
		for _, corner := range [4]mgl64.Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}} {
			r := rot.Mul2x1(corner)
			x, y := project(b.Position.Add(vmath.V(r[0], r[1])))
			points = append(points, fmt.Sprintf("%.1f,%.1f", x, y))
		}
		fmt.Fprintf(sb, "<polygon points=\"%s\" stroke=\"%s\"/>\n", strings.Join(points, " "), string(color))
	}
	sb.WriteString("</g>\n")
}

func writeFluid(sb *strings.Builder, p *fluid.Particles, project func(vmath.Vec2) (float64, float64), scale float64, theme viz.Theme) {
	if p == nil {
		return
	}
	r := math.Max(float64(p.Radius)*scale, 0.5)
	fmt.Fprintf(sb, "<g fill=\"%s\">\n", string(theme.Fluid))
	for i, pos := range p.Positions {
		x, y := project(pos.Vec2())
		if i < len(p.Colors) && p.Colors[i] != "" && p.Colors[i] != fluid.NoColor {
			fmt.Fprintf(sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", x, y, r, p.Colors[i])
		} else {
			fmt.Fprintf(sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", x, y, r)
		}
	}
	sb.WriteString("</g>\n")
}

// SeriesToSVG draws one column of a metric series against time.
func SeriesToSVG(series *storage.Series, column string, width, height int, strokeColor string) (string, error) {
	values, ok := series.Column(column)
	if !ok {
		return "", fmt.Errorf("unknown column %q", column)
	}
	if len(values) < 2 {
		return "", fmt.Errorf("column %q: need at least 2 samples, got %d", column, len(values))
	}

	minX, maxX := series.Times[0], series.Times[len(series.Times)-1]
	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder
	writeHeader(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"M", strokeColor)

	for i, v := range values {
		x := (series.Times[i] - minX) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString("\"/>\n</svg>\n")
	return sb.String(), nil
}

func writeHeader(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}
