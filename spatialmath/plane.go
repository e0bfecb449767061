package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Plane is an infinite plane through Point with unit Normal.
type Plane struct {
	Point  r3.Vector
	Normal r3.Vector
}

// NewPlane returns a plane through pt. The normal is normalized.
func NewPlane(pt, normal r3.Vector) *Plane {
	return &Plane{Point: pt, Normal: normal.Normalize()}
}

// IntersectRay intersects the ray with the plane. Rays parallel to the plane never hit.
func (p *Plane) IntersectRay(ray Ray, maxDistance float64) (RayHit, bool) {
	denom := p.Normal.Dot(ray.Direction)
	if math.Abs(denom) < floatEpsilon {
		return RayHit{}, false
	}
	t := p.Point.Sub(ray.Origin).Dot(p.Normal) / denom
	if t < 0 || t > maxDistance {
		return RayHit{}, false
	}
	return RayHit{Distance: t, Point: ray.At(t), Normal: facing(p.Normal, ray.Direction)}, true
}

// SignedDistance returns the distance of pt above the plane along its normal.
func (p *Plane) SignedDistance(pt r3.Vector) float64 {
	return pt.Sub(p.Point).Dot(p.Normal)
}
