package sim

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/RaggarDK/ArcadeRaycastVehicle/spatialmath"
	"github.com/RaggarDK/ArcadeRaycastVehicle/utils"
)

// BodyConfig describes a box shaped rigid body.
type BodyConfig struct {
	Mass        float64   `json:"mass"`
	HalfExtents r3.Vector `json:"half_extents"`
	// CenterOfMass is the offset of the centre of mass from the box centre, in body space.
	CenterOfMass   r3.Vector `json:"center_of_mass"`
	Position       r3.Vector `json:"position"`
	LinearDamping  float64   `json:"linear_damping"`
	AngularDamping float64   `json:"angular_damping"`
	// GravityScale multiplies world gravity. Zero is treated as 1.
	GravityScale float64 `json:"gravity_scale,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *BodyConfig) Validate(path string) error {
	if cfg.Mass <= 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("%q must be positive, got %v", "mass", cfg.Mass))
	}
	if cfg.HalfExtents.X <= 0 || cfg.HalfExtents.Y <= 0 || cfg.HalfExtents.Z <= 0 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("%q must be positive on every axis, got %v", "half_extents", cfg.HalfExtents))
	}
	if cfg.LinearDamping < 0 || cfg.AngularDamping < 0 {
		return utils.NewConfigValidationError(path, errors.New("damping must not be negative"))
	}
	if cfg.GravityScale < 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("%q must not be negative", "gravity_scale"))
	}
	return nil
}

// Body is a rigid box integrated with semi-implicit Euler. Its pose is the centre of mass frame.
// Forces applied between steps are accumulated and cleared by Step.
type Body struct {
	cfg BodyConfig

	invMass    float64
	inertia    r3.Vector // principal moments in body space
	invInertia r3.Vector

	pose   spatialmath.Pose
	linVel r3.Vector
	angVel r3.Vector

	force  r3.Vector
	torque r3.Vector
}

// NewBody returns a body at rest at cfg.Position.
func NewBody(cfg BodyConfig) (*Body, error) {
	if err := cfg.Validate("body"); err != nil {
		return nil, err
	}
	if cfg.GravityScale == 0 {
		cfg.GravityScale = 1
	}
	inertia := boxInertia(cfg.Mass, cfg.HalfExtents, cfg.CenterOfMass)
	return &Body{
		cfg:        cfg,
		invMass:    1 / cfg.Mass,
		inertia:    inertia,
		invInertia: r3.Vector{X: 1 / inertia.X, Y: 1 / inertia.Y, Z: 1 / inertia.Z},
		pose:       spatialmath.NewPoseFromPoint(cfg.Position),
	}, nil
}

// boxInertia returns the principal moments of a solid box about a point offset from its centre.
// Products of inertia from the offset are ignored.
func boxInertia(mass float64, half, offset r3.Vector) r3.Vector {
	x2, y2, z2 := utils.Square(half.X), utils.Square(half.Y), utils.Square(half.Z)
	return r3.Vector{
		X: mass/3*(y2+z2) + mass*(utils.Square(offset.Y)+utils.Square(offset.Z)),
		Y: mass/3*(x2+z2) + mass*(utils.Square(offset.X)+utils.Square(offset.Z)),
		Z: mass/3*(x2+y2) + mass*(utils.Square(offset.X)+utils.Square(offset.Y)),
	}
}

// Config returns the body configuration.
func (b *Body) Config() BodyConfig {
	return b.cfg
}

// Mass returns the body mass.
func (b *Body) Mass() float64 {
	return b.cfg.Mass
}

// Inertia returns the principal moments of inertia in body space.
func (b *Body) Inertia() r3.Vector {
	return b.inertia
}

// Pose returns the centre of mass pose.
func (b *Body) Pose() spatialmath.Pose {
	return b.pose
}

// SetPose teleports the body.
func (b *Body) SetPose(pose spatialmath.Pose) {
	b.pose = spatialmath.NewPose(pose.Point, pose.Orientation)
}

// LinearVelocity returns the centre of mass velocity.
func (b *Body) LinearVelocity() r3.Vector {
	return b.linVel
}

// SetLinearVelocity sets the centre of mass velocity.
func (b *Body) SetLinearVelocity(v r3.Vector) {
	b.linVel = v
}

// AngularVelocity returns the world space angular velocity.
func (b *Body) AngularVelocity() r3.Vector {
	return b.angVel
}

// SetAngularVelocity sets the world space angular velocity.
func (b *Body) SetAngularVelocity(w r3.Vector) {
	b.angVel = w
}

// GravityScale returns the gravity multiplier.
func (b *Body) GravityScale() float64 {
	return b.cfg.GravityScale
}

// ApplyForce accumulates a world force at a world point, adding the torque about the centre of mass.
func (b *Body) ApplyForce(force, point r3.Vector) {
	b.force = b.force.Add(force)
	b.torque = b.torque.Add(point.Sub(b.pose.Point).Cross(force))
}

// AccumulatedForce returns the force applied since the last Step.
func (b *Body) AccumulatedForce() r3.Vector {
	return b.force
}

// AccumulatedTorque returns the torque applied since the last Step.
func (b *Body) AccumulatedTorque() r3.Vector {
	return b.torque
}

// Step integrates velocities from the accumulated forces, then positions from the new velocities,
// and clears the accumulators.
func (b *Body) Step(dt float64, gravity r3.Vector) {
	accel := b.force.Mul(b.invMass).Add(gravity.Mul(b.cfg.GravityScale))
	b.linVel = b.linVel.Add(accel.Mul(dt))

	// Euler's equations in body space: I dw/dt = tau - w x (I w)
	wLocal := b.pose.InverseTransformNormal(b.angVel)
	tauLocal := b.pose.InverseTransformNormal(b.torque)
	iw := r3.Vector{X: b.inertia.X * wLocal.X, Y: b.inertia.Y * wLocal.Y, Z: b.inertia.Z * wLocal.Z}
	net := tauLocal.Sub(wLocal.Cross(iw))
	alphaLocal := r3.Vector{X: net.X * b.invInertia.X, Y: net.Y * b.invInertia.Y, Z: net.Z * b.invInertia.Z}
	b.angVel = b.angVel.Add(b.pose.TransformNormal(alphaLocal).Mul(dt))

	// Pade approximation of exp(-c dt).
	b.linVel = b.linVel.Mul(1 / (1 + dt*b.cfg.LinearDamping))
	b.angVel = b.angVel.Mul(1 / (1 + dt*b.cfg.AngularDamping))

	b.pose = spatialmath.Pose{
		Point:       b.pose.Point.Add(b.linVel.Mul(dt)),
		Orientation: spatialmath.IntegrateOrientation(b.pose.Orientation, b.angVel, dt),
	}

	b.force = r3.Vector{}
	b.torque = r3.Vector{}
}
