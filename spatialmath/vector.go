package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

const floatEpsilon = 1e-9

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}

// Lerp linearly interpolates from a to b by t: t = 0 is a, t = 1 is b.
func Lerp(a, b r3.Vector, t float64) r3.Vector {
	return a.Add(b.Sub(a).Mul(t))
}

// DivideSafe divides a by b componentwise. Any component where b is exactly zero yields zero.
func DivideSafe(a, b r3.Vector) r3.Vector {
	div := func(n, d float64) float64 {
		if d == 0 {
			return 0
		}
		return n / d
	}
	return r3.Vector{X: div(a.X, b.X), Y: div(a.Y, b.Y), Z: div(a.Z, b.Z)}
}

// PlaneNormal returns the unit normal of the plane through three points, following the right hand rule.
func PlaneNormal(p0, p1, p2 r3.Vector) r3.Vector {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}
