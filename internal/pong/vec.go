package pong

import "math"

// Vec2 is a point or displacement in court units.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean magnitude of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// WithLen returns v rescaled to magnitude l. The zero vector stays zero.
func (v Vec2) WithLen(l float64) Vec2 {
	cur := v.Len()
	if cur == 0 {
		return v
	}
	return v.Scale(l / cur)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// aabbOverlap reports whether two centre/half-extent boxes overlap on both axes.
// Touching edges do not count as overlap.
func aabbOverlap(ac, ah, bc, bh Vec2) bool {
	if ac.X+ah.X <= bc.X-bh.X || ac.X-ah.X >= bc.X+bh.X {
		return false
	}
	if ac.Y+ah.Y <= bc.Y-bh.Y || ac.Y-ah.Y >= bc.Y+bh.Y {
		return false
	}
	return true
}
