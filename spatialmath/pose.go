package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a rigid transform: a world position and a unit quaternion orientation.
type Pose struct {
	Point       r3.Vector
	Orientation quat.Number
}

// NewZeroPose returns a pose at the origin with no rotation.
func NewZeroPose() Pose {
	return Pose{Orientation: QuatIdentity()}
}

// NewPose returns a pose from a point and an orientation. The orientation is normalized.
func NewPose(pt r3.Vector, o quat.Number) Pose {
	return Pose{Point: pt, Orientation: NormalizeQuat(o)}
}

// NewPoseFromPoint returns a pose at pt with no rotation.
func NewPoseFromPoint(pt r3.Vector) Pose {
	return Pose{Point: pt, Orientation: QuatIdentity()}
}

// TransformPoint maps a point from the pose's local frame into the parent frame.
func (p Pose) TransformPoint(local r3.Vector) r3.Vector {
	return RotateVector(p.Orientation, local).Add(p.Point)
}

// TransformNormal maps a direction from the pose's local frame into the parent frame.
// Translation is ignored.
func (p Pose) TransformNormal(local r3.Vector) r3.Vector {
	return RotateVector(p.Orientation, local)
}

// InverseTransformPoint maps a point from the parent frame into the pose's local frame.
func (p Pose) InverseTransformPoint(world r3.Vector) r3.Vector {
	return RotateVector(quat.Conj(p.Orientation), world.Sub(p.Point))
}

// InverseTransformNormal maps a direction from the parent frame into the pose's local frame.
func (p Pose) InverseTransformNormal(world r3.Vector) r3.Vector {
	return RotateVector(quat.Conj(p.Orientation), world)
}

// Compose returns the pose obtained by applying b in the frame of a.
func Compose(a, b Pose) Pose {
	return Pose{
		Point:       a.TransformPoint(b.Point),
		Orientation: NormalizeQuat(quat.Mul(a.Orientation, b.Orientation)),
	}
}

func (p Pose) String() string {
	return fmt.Sprintf("{X:%.3f Y:%.3f Z:%.3f Q:[%.4f %.4f %.4f %.4f]}",
		p.Point.X, p.Point.Y, p.Point.Z,
		p.Orientation.Real, p.Orientation.Imag, p.Orientation.Jmag, p.Orientation.Kmag)
}
