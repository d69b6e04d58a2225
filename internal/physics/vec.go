package physics

import "math"

// Vec2 is a pair of per-axis values (rotation about X and Y, or a screen delta).
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Small reports whether both components are strictly below eps in magnitude.
func (v Vec2) Small(eps float64) bool {
	return math.Abs(v.X) < eps && math.Abs(v.Y) < eps
}
