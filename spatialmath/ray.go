package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Ray is a half line starting at Origin heading along the unit vector Direction.
type Ray struct {
	Origin    r3.Vector
	Direction r3.Vector
}

// NewRaySegment returns the ray from `from` toward `to` and the length of that segment.
// A zero length segment yields a zero direction and length.
func NewRaySegment(from, to r3.Vector) (Ray, float64) {
	d := to.Sub(from)
	length := d.Norm()
	if length == 0 {
		return Ray{Origin: from}, 0
	}
	return Ray{Origin: from, Direction: d.Mul(1 / length)}, length
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) r3.Vector {
	return r.Origin.Add(r.Direction.Mul(t))
}

// RayHit describes where a ray met a surface. Normal faces against the ray.
type RayHit struct {
	Distance float64
	Point    r3.Vector
	Normal   r3.Vector
}

// Shape is static geometry that can be queried with rays.
type Shape interface {
	// IntersectRay returns the nearest hit within [0, maxDistance], if any.
	IntersectRay(ray Ray, maxDistance float64) (RayHit, bool)
}

// facing flips n so that it opposes dir.
func facing(n, dir r3.Vector) r3.Vector {
	if n.Dot(dir) > 0 {
		return n.Mul(-1)
	}
	return n
}
