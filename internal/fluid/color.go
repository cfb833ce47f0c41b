package fluid

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/physplay/internal/dynamo"
)

// VisualFilter selects the quantity that drives particle colour. It has no
// effect on the physics.
type VisualFilter uint8

const (
	FilterNone VisualFilter = iota
	FilterVelocity
	FilterPressure
	FilterDensity
)

func (v VisualFilter) String() string {
	switch v {
	case FilterNone:
		return "none"
	case FilterVelocity:
		return "velocity"
	case FilterPressure:
		return "pressure"
	case FilterDensity:
		return "density"
	default:
		return fmt.Sprintf("filter(%d)", uint8(v))
	}
}

func (v VisualFilter) Valid() bool { return v <= FilterDensity }

type gradientStop struct {
	at    float64
	color colorful.Color
}

// Gradient is a piecewise-linear colour ramp.
type Gradient struct {
	stops []gradientStop
}

var (
	defaultColors = []string{"#0077ff", "#24ff6f", "#ffff20", "#ff3131"}
	defaultDomain = []float64{0, 0.5, 0.7, 1}
)

func NewGradient(colors []string, domain []float64) (Gradient, error) {
	if len(colors) < 2 || len(colors) != len(domain) {
		return Gradient{}, fmt.Errorf("%w: gradient needs matching colors and domain, got %d and %d",
			dynamo.ErrInvalidRange, len(colors), len(domain))
	}
	stops := make([]gradientStop, len(colors))
	for i, hex := range colors {
		c, err := colorful.Hex(hex)
		if err != nil {
			return Gradient{}, fmt.Errorf("gradient color %q: %w", hex, err)
		}
		if i > 0 {
			if err := dynamo.CheckRange(domain[i-1], domain[i]); err != nil {
				return Gradient{}, fmt.Errorf("gradient domain: %w", err)
			}
		}
		stops[i] = gradientStop{at: domain[i], color: c}
	}
	return Gradient{stops: stops}, nil
}

// DefaultGradient runs blue, green, yellow, red.
func DefaultGradient() Gradient {
	g, err := NewGradient(defaultColors, defaultDomain)
	if err != nil {
		panic(err)
	}
	return g
}

// At samples the gradient, clamping t to the domain.
func (g Gradient) At(t float64) colorful.Color {
	first, last := g.stops[0], g.stops[len(g.stops)-1]
	if t <= first.at || math.IsNaN(t) {
		return first.color
	}
	if t >= last.at {
		return last.color
	}
	for i := 1; i < len(g.stops); i++ {
		hi := g.stops[i]
		if t > hi.at {
			continue
		}
		lo := g.stops[i-1]
		span := hi.at - lo.at
		if span == 0 {
			return hi.color
		}
		return lo.color.BlendRgb(hi.color, (t-lo.at)/span)
	}
	return last.color
}

func (g Gradient) Hex(t float64) string {
	return g.At(t).Hex()
}
