package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Triangle is a single face of static geometry.
type Triangle struct {
	p0 r3.Vector
	p1 r3.Vector
	p2 r3.Vector

	normal r3.Vector
}

// NewTriangle returns a triangle whose normal follows the right hand rule over p0, p1, p2.
func NewTriangle(p0, p1, p2 r3.Vector) *Triangle {
	return &Triangle{
		p0:     p0,
		p1:     p1,
		p2:     p2,
		normal: PlaneNormal(p0, p1, p2),
	}
}

// Points returns the three vertices.
func (t *Triangle) Points() []r3.Vector {
	return []r3.Vector{t.p0, t.p1, t.p2}
}

// Normal returns the unit face normal.
func (t *Triangle) Normal() r3.Vector {
	return t.normal
}

// IntersectRay intersects a ray with the triangle using the Moller-Trumbore method.
// Both faces are solid.
func (t *Triangle) IntersectRay(ray Ray, maxDistance float64) (RayHit, bool) {
	e0 := t.p1.Sub(t.p0)
	e1 := t.p2.Sub(t.p0)
	pvec := ray.Direction.Cross(e1)
	det := e0.Dot(pvec)
	// The determinant is 0 when the ray is parallel to the triangle's plane.
	if math.Abs(det) < floatEpsilon {
		return RayHit{}, false
	}
	invDet := 1 / det
	tvec := ray.Origin.Sub(t.p0)
	u := tvec.Dot(pvec) * invDet
	if u < -floatEpsilon || u > 1+floatEpsilon {
		return RayHit{}, false
	}
	qvec := tvec.Cross(e0)
	v := ray.Direction.Dot(qvec) * invDet
	if v < -floatEpsilon || u+v > 1+floatEpsilon {
		return RayHit{}, false
	}
	dist := e1.Dot(qvec) * invDet
	if dist < 0 || dist > maxDistance {
		return RayHit{}, false
	}
	return RayHit{Distance: dist, Point: ray.At(dist), Normal: facing(t.normal, ray.Direction)}, true
}
