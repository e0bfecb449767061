package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// AxisAngle is a rotation of Theta radians about a unit Axis.
type AxisAngle struct {
	Axis  r3.Vector `json:"axis"`
	Theta float64   `json:"theta"`
}

// NoRotation is the axis angle of the identity rotation. Its axis is arbitrary but kept unit length.
func NoRotation() AxisAngle {
	return AxisAngle{Axis: r3.Vector{Z: 1}}
}

// NewAxisAngle returns theta radians about axis, normalizing the axis. A zero axis gives NoRotation.
func NewAxisAngle(axis r3.Vector, theta float64) AxisAngle {
	n := axis.Norm()
	if n == 0 {
		return NoRotation()
	}
	return AxisAngle{Axis: axis.Mul(1 / n), Theta: theta}
}

// AxisAngleFromVector reads a rotation vector, whose direction is the axis and length the angle.
func AxisAngleFromVector(v r3.Vector) AxisAngle {
	return NewAxisAngle(v, v.Norm())
}

// AxisAngleFromQuat converts a unit quaternion, returning theta in [0, pi].
func AxisAngleFromQuat(q quat.Number) AxisAngle {
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	vec := r3.Vector{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
	sinHalf := vec.Norm()
	if sinHalf < 1e-12 {
		return NoRotation()
	}
	return AxisAngle{Axis: vec.Mul(1 / sinHalf), Theta: 2 * math.Atan2(sinHalf, q.Real)}
}

// Vector returns the rotation vector Axis*Theta.
func (aa AxisAngle) Vector() r3.Vector {
	return aa.Axis.Mul(aa.Theta)
}

// Quat returns the unit quaternion for the rotation.
func (aa AxisAngle) Quat() quat.Number {
	s, c := math.Sincos(aa.Theta / 2)
	return quat.Number{Real: c, Imag: aa.Axis.X * s, Jmag: aa.Axis.Y * s, Kmag: aa.Axis.Z * s}
}
