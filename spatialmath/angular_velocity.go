package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// IntegrateOrientation advances the unit quaternion q by the world-space angular velocity w (rad/s)
// held constant over dt seconds.
func IntegrateOrientation(q quat.Number, w r3.Vector, dt float64) quat.Number {
	step := AxisAngleFromVector(w.Mul(dt)).Quat()
	return NormalizeQuat(quat.Mul(step, q))
}

// PointVelocity returns the velocity of a point rigidly attached to a body moving with linear
// velocity v and angular velocity w about origin: v + w x (point - origin).
func PointVelocity(v, w, origin, point r3.Vector) r3.Vector {
	return v.Add(w.Cross(point.Sub(origin)))
}
