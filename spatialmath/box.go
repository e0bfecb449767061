package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Box is an oriented box: a pose for its centre and half sizes along each local axis.
type Box struct {
	pose     Pose
	halfSize [3]float64
	label    string
}

// NewBox instantiates a box from a pose and full dimensions.
func NewBox(pose Pose, dims r3.Vector, label string) (*Box, error) {
	if dims.X <= 0 || dims.Y <= 0 || dims.Z <= 0 {
		return nil, newBadGeometryDimensionsError(dims)
	}
	return &Box{pose: pose, halfSize: [3]float64{dims.X / 2, dims.Y / 2, dims.Z / 2}, label: label}, nil
}

func newBadGeometryDimensionsError(dims r3.Vector) error {
	return errors.Errorf("invalid box dimensions %v: every dimension must be positive", dims)
}

// Pose returns the pose of the box centre.
func (b *Box) Pose() Pose {
	return b.pose
}

// Label returns the box label.
func (b *Box) Label() string {
	return b.label
}

func (b *Box) String() string {
	return fmt.Sprintf("Type: Box | Position: X:%.2f, Y:%.2f, Z:%.2f | Dims: X:%.2f, Y:%.2f, Z:%.2f",
		b.pose.Point.X, b.pose.Point.Y, b.pose.Point.Z, 2*b.halfSize[0], 2*b.halfSize[1], 2*b.halfSize[2])
}

// closestPoint returns the closest point on or inside the box to pt.
func (b *Box) closestPoint(pt r3.Vector) r3.Vector {
	local := b.pose.InverseTransformPoint(pt)
	clamped := r3.Vector{
		X: math.Max(-b.halfSize[0], math.Min(local.X, b.halfSize[0])),
		Y: math.Max(-b.halfSize[1], math.Min(local.Y, b.halfSize[1])),
		Z: math.Max(-b.halfSize[2], math.Min(local.Z, b.halfSize[2])),
	}
	return b.pose.TransformPoint(clamped)
}

// Contains reports whether pt is inside or on the box.
func (b *Box) Contains(pt r3.Vector) bool {
	return R3VectorAlmostEqual(b.closestPoint(pt), pt, 1e-9)
}

// IntersectRay intersects a ray with the box using the slab method in the box frame.
// A ray starting inside the box reports the exit face.
func (b *Box) IntersectRay(ray Ray, maxDistance float64) (RayHit, bool) {
	origin := b.pose.InverseTransformPoint(ray.Origin)
	dir := b.pose.InverseTransformNormal(ray.Direction)
	o := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}

	tNear, tFar := math.Inf(-1), math.Inf(1)
	nearAxis, farAxis := -1, -1
	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < floatEpsilon {
			if o[i] < -b.halfSize[i] || o[i] > b.halfSize[i] {
				return RayHit{}, false
			}
			continue
		}
		t1 := (-b.halfSize[i] - o[i]) / d[i]
		t2 := (b.halfSize[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear, nearAxis = t1, i
		}
		if t2 < tFar {
			tFar, farAxis = t2, i
		}
		if tNear > tFar {
			return RayHit{}, false
		}
	}

	t, axis := tNear, nearAxis
	if t < 0 {
		t, axis = tFar, farAxis
	}
	if t < 0 || t > maxDistance || axis < 0 {
		return RayHit{}, false
	}
	var n [3]float64
	n[axis] = 1
	normal := b.pose.TransformNormal(r3.Vector{X: n[0], Y: n[1], Z: n[2]})
	return RayHit{Distance: t, Point: ray.At(t), Normal: facing(normal, ray.Direction)}, true
}

// Vertices returns the eight corners of the box in world coordinates.
func (b *Box) Vertices() []r3.Vector {
	verts := make([]r3.Vector, 0, 8)
	for _, i := range []float64{1, -1} {
		for _, j := range []float64{1, -1} {
			for _, k := range []float64{1, -1} {
				offset := r3.Vector{X: i * b.halfSize[0], Y: j * b.halfSize[1], Z: k * b.halfSize[2]}
				verts = append(verts, b.pose.TransformPoint(offset))
			}
		}
	}
	return verts
}
