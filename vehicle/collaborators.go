package vehicle

import (
	"github.com/golang/geo/r3"

	"github.com/RaggarDK/ArcadeRaycastVehicle/spatialmath"
)

// Body is the chassis rigid body. It is owned by the physics engine; the vehicle only reads its
// state, applies forces and, while airborne, overwrites its angular velocity.
//
// Pose must report the centre of mass frame. Its orientation is always a unit quaternion.
type Body interface {
	Pose() spatialmath.Pose
	LinearVelocity() r3.Vector
	AngularVelocity() r3.Vector
	SetAngularVelocity(w r3.Vector)
	// ApplyForce queues a world space force at a world space point for the next integration.
	ApplyForce(force, point r3.Vector)
	GravityScale() float64
}

// RaycastResult is the answer to a World raycast. Distance is measured from the ray start.
type RaycastResult struct {
	Hit      bool
	Point    r3.Vector
	Normal   r3.Vector
	Distance float64
}

// World is the physics world the chassis lives in.
type World interface {
	// Raycast returns the nearest hit on the segment from -> to.
	Raycast(from, to r3.Vector) RaycastResult
	// FixedTimeStep is the tick duration in seconds.
	FixedTimeStep() float64
	Gravity() r3.Vector
}
