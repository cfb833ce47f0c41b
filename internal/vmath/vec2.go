// Package vmath provides the 2D vector types used by the engines.
//
// The rigid-body engine works in float64 ([Vec2]); the fluid solver works in
// float32 ([Vec2f]) to halve the size of its per-particle arrays. Both are
// immutable value types: every operation returns a new vector.
package vmath

import (
	"math"
	"math/rand"

	"github.com/san-kum/physplay/internal/dynamo"
)

// Epsilon is the tolerance used by NearlyEqual.
const Epsilon = 0.0005

// Vec2 is a float64 2D vector.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func Zero() Vec2 { return Vec2{} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }
func (v Vec2) Neg() Vec2 { return Vec2{X: -v.X, Y: -v.Y} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

// Perp rotates v by +90 degrees.
func (v Vec2) Perp() Vec2 { return Vec2{X: -v.Y, Y: v.X} }

func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64 { return math.Sqrt(v.LenSq()) }

func (v Vec2) DistSq(o Vec2) float64 { return v.Sub(o).LenSq() }
func (v Vec2) Dist(o Vec2) float64 { return math.Sqrt(v.DistSq(o)) }

// Normalize returns the unit vector along v, or ErrDegenerateGeometry when v
// has zero length.
func (v Vec2) Normalize() (Vec2, error) {
	l := v.Len()
	if l == 0 {
		return Vec2{}, dynamo.ErrDegenerateGeometry
	}
	return Vec2{X: v.X / l, Y: v.Y / l}, nil
}

// Direction is Normalize with the degenerate case replaced by a random unit
// vector.
func (v Vec2) Direction() Vec2 {
	n, err := v.Normalize()
	if err != nil {
		return RandomUnit()
	}
	return n
}

func (v Vec2) NearlyEqual(o Vec2) bool {
	return NearlyEqual(v.X, o.X) && NearlyEqual(v.Y, o.Y)
}

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// RandomUnit returns a uniformly distributed unit vector.
func RandomUnit() Vec2 {
	a := rand.Float64() * 2 * math.Pi
	return Vec2{X: math.Cos(a), Y: math.Sin(a)}
}

// Centroid is the arithmetic mean of the points, X and Y averaged separately.
func Centroid(points []Vec2) Vec2 {
	if len(points) == 0 {
		return Vec2{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Vec2{X: sx / n, Y: sy / n}
}
