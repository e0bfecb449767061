// Package inject provides collaborator fakes whose behaviour can be replaced per method.
package inject

import (
	"github.com/golang/geo/r3"

	"github.com/RaggarDK/ArcadeRaycastVehicle/spatialmath"
	"github.com/RaggarDK/ArcadeRaycastVehicle/vehicle"
)

// AppliedForce records one ApplyForce call.
type AppliedForce struct {
	Force r3.Vector
	Point r3.Vector
}

// Body is an injected chassis body. Unset funcs fall back to the embedded Body; with no embedded
// Body the fake holds its own state and records every applied force.
type Body struct {
	vehicle.Body
	PoseFunc               func() spatialmath.Pose
	LinearVelocityFunc     func() r3.Vector
	AngularVelocityFunc    func() r3.Vector
	SetAngularVelocityFunc func(w r3.Vector)
	ApplyForceFunc         func(force, point r3.Vector)
	GravityScaleFunc       func() float64

	// State used when neither a func nor an embedded Body is set.
	BodyPose        spatialmath.Pose
	LinearVel       r3.Vector
	AngularVel      r3.Vector
	Scale           float64
	Forces          []AppliedForce
	SetAngularCalls int
}

// NewBody returns a body at pose with unit gravity scale.
func NewBody(pose spatialmath.Pose) *Body {
	return &Body{BodyPose: pose, Scale: 1}
}

// Pose calls the injected Pose or the real version.
func (b *Body) Pose() spatialmath.Pose {
	if b.PoseFunc != nil {
		return b.PoseFunc()
	}
	if b.Body != nil {
		return b.Body.Pose()
	}
	return b.BodyPose
}

// LinearVelocity calls the injected LinearVelocity or the real version.
func (b *Body) LinearVelocity() r3.Vector {
	if b.LinearVelocityFunc != nil {
		return b.LinearVelocityFunc()
	}
	if b.Body != nil {
		return b.Body.LinearVelocity()
	}
	return b.LinearVel
}

// AngularVelocity calls the injected AngularVelocity or the real version.
func (b *Body) AngularVelocity() r3.Vector {
	if b.AngularVelocityFunc != nil {
		return b.AngularVelocityFunc()
	}
	if b.Body != nil {
		return b.Body.AngularVelocity()
	}
	return b.AngularVel
}

// SetAngularVelocity calls the injected SetAngularVelocity or the real version.
func (b *Body) SetAngularVelocity(w r3.Vector) {
	b.SetAngularCalls++
	if b.SetAngularVelocityFunc != nil {
		b.SetAngularVelocityFunc(w)
		return
	}
	if b.Body != nil {
		b.Body.SetAngularVelocity(w)
		return
	}
	b.AngularVel = w
}

// ApplyForce calls the injected ApplyForce or the real version.
func (b *Body) ApplyForce(force, point r3.Vector) {
	b.Forces = append(b.Forces, AppliedForce{Force: force, Point: point})
	if b.ApplyForceFunc != nil {
		b.ApplyForceFunc(force, point)
		return
	}
	if b.Body != nil {
		b.Body.ApplyForce(force, point)
	}
}

// GravityScale calls the injected GravityScale or the real version.
func (b *Body) GravityScale() float64 {
	if b.GravityScaleFunc != nil {
		return b.GravityScaleFunc()
	}
	if b.Body != nil {
		return b.Body.GravityScale()
	}
	return b.Scale
}

// NetForce sums every recorded force.
func (b *Body) NetForce() r3.Vector {
	var sum r3.Vector
	for _, f := range b.Forces {
		sum = sum.Add(f.Force)
	}
	return sum
}

// ResetForces clears the recorded forces.
func (b *Body) ResetForces() {
	b.Forces = nil
}
