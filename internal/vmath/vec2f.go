package vmath

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/san-kum/physplay/internal/dynamo"
)

// Vec2f is the float32 counterpart of Vec2, used by the fluid solver.
type Vec2f struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

func F(x, y float32) Vec2f { return Vec2f{X: x, Y: y} }

func (v Vec2f) Add(o Vec2f) Vec2f { return Vec2f{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2f) Sub(o Vec2f) Vec2f { return Vec2f{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2f) Scale(s float32) Vec2f { return Vec2f{X: v.X * s, Y: v.Y * s} }
func (v Vec2f) Div(s float32) Vec2f { return Vec2f{X: v.X / s, Y: v.Y / s} }
func (v Vec2f) Dot(o Vec2f) float32 { return v.X*o.X + v.Y*o.Y }
func (v Vec2f) LenSq() float32 { return v.X*v.X + v.Y*v.Y }
func (v Vec2f) Len() float32 { return math32.Sqrt(v.LenSq()) }
func (v Vec2f) DistSq(o Vec2f) float32 { return v.Sub(o).LenSq() }
func (v Vec2f) Dist(o Vec2f) float32 { return math32.Sqrt(v.DistSq(o)) }

func (v Vec2f) Normalize() (Vec2f, error) {
	l := v.Len()
	if l == 0 {
		return Vec2f{}, dynamo.ErrDegenerateGeometry
	}
	return Vec2f{X: v.X / l, Y: v.Y / l}, nil
}

func (v Vec2f) Direction() Vec2f {
	n, err := v.Normalize()
	if err != nil {
		return RandomUnitf()
	}
	return n
}

func (v Vec2f) Vec2() Vec2 { return Vec2{X: float64(v.X), Y: float64(v.Y)} }

func (v Vec2) Vec2f() Vec2f { return Vec2f{X: float32(v.X), Y: float32(v.Y)} }

func RandomUnitf() Vec2f {
	a := rand.Float32() * 2 * math32.Pi
	s, c := math32.Sincos(a)
	return Vec2f{X: c, Y: s}
}
