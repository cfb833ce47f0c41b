package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/physplay/internal/storage"
)

// Portrait pairs two metric columns of a recorded series.
type Portrait struct {
	XName, YName string
	Points       []struct{ X, Y float64 }
}

func NewPortrait(series *storage.Series, xName, yName string) (*Portrait, error) {
	xs, ok := series.Column(xName)
	if !ok {
		return nil, fmt.Errorf("unknown metric %q", xName)
	}
	ys, ok := series.Column(yName)
	if !ok {
		return nil, fmt.Errorf("unknown metric %q", yName)
	}

	p := &Portrait{
		XName:  xName,
		YName:  yName,
		Points: make([]struct{ X, Y float64 }, len(xs)),
	}
	for i := range xs {
		p.Points[i].X = xs[i]
		p.Points[i].Y = ys[i]
	}
	return p, nil
}

// ASCII plots the portrait on a width x height character grid.
func (p *Portrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y

	for _, pt := range p.Points {
		minX = min(minX, pt.X)
		maxX = max(maxX, pt.X)
		minY = min(minY, pt.Y)
		maxY = max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// axes
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
