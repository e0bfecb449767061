// Package vehicle implements an arcade raycast vehicle: a chassis rigid body held up and driven
// by massless wheels that raycast for the ground every tick.
//
// The owning application sets each wheel's Steering and Force, calls Update once per fixed
// physics tick before the engine integrates, then reads WheelPoses to place visual wheels.
// A Vehicle is not safe for concurrent use.
package vehicle

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/RaggarDK/ArcadeRaycastVehicle/logging"
	"github.com/RaggarDK/ArcadeRaycastVehicle/spatialmath"
	"github.com/RaggarDK/ArcadeRaycastVehicle/utils"
)

// Vehicle computes suspension, drive, side, anti-roll and landing forces for a chassis.
type Vehicle struct {
	body   Body
	world  World
	opts   Options
	logger logging.Logger

	wheels []*Wheel
	axles  []*axleState

	speed           float64
	nWheelsOnGround int
	airborne        bool
	predicting      bool
}

// New returns a vehicle with no wheels driving body inside world.
func New(body Body, world World, opts Options, logger logging.Logger) (*Vehicle, error) {
	if body == nil {
		return nil, errors.New("vehicle requires a chassis body")
	}
	if world == nil {
		return nil, errors.New("vehicle requires a physics world")
	}
	if err := opts.Validate("vehicle"); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Global().Sublogger("vehicle")
	}
	opts.ForwardAxisLocal = opts.ForwardAxisLocal.Normalize()
	opts.UpAxisLocal = opts.UpAxisLocal.Normalize()
	return &Vehicle{
		body:   body,
		world:  world,
		opts:   opts,
		logger: logger,
	}, nil
}

// AddWheel appends a wheel and returns its handle.
func (v *Vehicle) AddWheel(w *Wheel) int {
	v.wheels = append(v.wheels, w)
	return len(v.wheels) - 1
}

// AddAntiRollAxle registers an axle. Handles are resolved every tick, so an axle may name a
// wheel that is added later; while a wheel is missing the axle applies no force.
func (v *Vehicle) AddAntiRollAxle(axle AntiRollAxle) {
	v.axles = append(v.axles, &axleState{AntiRollAxle: axle})
}

// AntiRollAxles returns the registered axles.
func (v *Vehicle) AntiRollAxles() []AntiRollAxle {
	axles := make([]AntiRollAxle, 0, len(v.axles))
	for _, a := range v.axles {
		axles = append(axles, a.AntiRollAxle)
	}
	return axles
}

// Options returns the vehicle options.
func (v *Vehicle) Options() Options {
	return v.opts
}

// Body returns the chassis body.
func (v *Vehicle) Body() Body {
	return v.body
}

// Wheels returns the wheels in handle order.
func (v *Vehicle) Wheels() []*Wheel {
	return v.wheels
}

// Wheel returns the wheel with handle i.
func (v *Vehicle) Wheel(i int) (*Wheel, error) {
	if i < 0 || i >= len(v.wheels) {
		return nil, NewWheelIndexError(i, len(v.wheels))
	}
	return v.wheels[i], nil
}

// SetSteering sets the steering angle in radians of wheel i.
func (v *Vehicle) SetSteering(i int, radians float64) error {
	w, err := v.Wheel(i)
	if err != nil {
		return err
	}
	w.Steering = radians
	return nil
}

// SetForce sets the longitudinal drive force of wheel i.
func (v *Vehicle) SetForce(i int, force float64) error {
	w, err := v.Wheel(i)
	if err != nil {
		return err
	}
	w.Force = force
	return nil
}

// Speed is the chassis velocity along its forward axis as of the last Update. Positive is forward.
func (v *Vehicle) Speed() float64 {
	return v.speed
}

// WheelsOnGround is the number of wheels whose raycast hit during the last Update.
func (v *Vehicle) WheelsOnGround() int {
	return v.nWheelsOnGround
}

// Airborne reports whether no wheel touched the ground during the last Update.
func (v *Vehicle) Airborne() bool {
	return v.nWheelsOnGround == 0
}

// WheelPoses returns the world pose of every visual wheel, in handle order.
func (v *Vehicle) WheelPoses() []spatialmath.Pose {
	poses := make([]spatialmath.Pose, 0, len(v.wheels))
	for _, w := range v.wheels {
		poses = append(poses, w.Transform)
	}
	return poses
}

// Reset returns every wheel to full droop and clears the per tick results.
func (v *Vehicle) Reset() {
	for _, w := range v.wheels {
		w.Reset()
	}
	v.speed = 0
	v.nWheelsOnGround = 0
	v.airborne = false
	v.predicting = false
}

// Update runs one tick: wheels first, then anti-roll axles, then the airborne landing correction.
// It must be called once per fixed physics tick, before the physics engine integrates.
func (v *Vehicle) Update() error {
	dt := v.world.FixedTimeStep()
	if dt <= 0 {
		return errors.Wrapf(ErrInvalidTimeStep, "got %v", dt)
	}

	chassis := v.body.Pose()
	linVel := v.body.LinearVelocity()
	angVel := v.body.AngularVelocity()

	v.nWheelsOnGround = 0
	v.speed = chassis.InverseTransformNormal(linVel).Dot(v.opts.ForwardAxisLocal)

	for _, w := range v.wheels {
		v.updateWheel(w, chassis, linVel, angVel, dt)
	}
	for _, axle := range v.axles {
		v.applyAntiRoll(axle)
	}
	v.logTransition()
	v.predictLanding(chassis, linVel, angVel, dt)
	return nil
}

func (v *Vehicle) updateWheel(w *Wheel, chassis spatialmath.Pose, linVel, angVel r3.Vector, dt float64) {
	cfg := &w.cfg

	w.PositionWorld = chassis.TransformPoint(cfg.Position)
	w.DirectionWorld = chassis.TransformNormal(cfg.SuspensionAxis)

	steer := spatialmath.QuatFromAxisAngle(cfg.SuspensionAxis.Mul(-1), w.Steering)
	w.orientation = spatialmath.NormalizeQuat(quat.Mul(chassis.Orientation, steer))

	v.raycastWheel(w)
	if w.InContact {
		v.applySuspension(w, dt)
		v.applyDrive(w, chassis)
		v.applySideForce(w, chassis, linVel, angVel, dt)
	}

	w.Rotation += v.speed * cfg.RotationMultiplier * cfg.Radius
	hub := spatialmath.NewPose(w.PositionWorld.Add(w.DirectionWorld.Mul(w.HitDistance-cfg.Radius)), w.orientation)
	spin := spatialmath.NewPose(r3.Vector{}, spatialmath.QuatFromAxisAngle(cfg.AxleAxis, w.Rotation))
	w.Transform = spatialmath.Compose(hub, spin)
}

func (v *Vehicle) raycastWheel(w *Wheel) {
	rest := w.cfg.SuspensionRestLength
	res := v.world.Raycast(w.PositionWorld, w.PositionWorld.Add(w.DirectionWorld.Mul(rest)))
	if !res.Hit {
		w.InContact = false
		w.HitDistance = rest
		w.PrevCompression = w.CompressionDistance
		w.AppliedSuspensionForce = 0
		return
	}
	w.HitPoint = res.Point
	w.HitNormal = res.Normal
	w.HitDistance = res.Distance
	w.InContact = true
	v.nWheelsOnGround++
}

// applySuspension applies the spring and damper along the negated suspension axis at the hit point.
func (v *Vehicle) applySuspension(w *Wheel, dt float64) {
	cfg := &w.cfg
	w.CompressionDistance = utils.Clamp(cfg.SuspensionRestLength-w.HitDistance, 0, cfg.SuspensionRestLength)

	force := cfg.SuspensionForce * (w.CompressionDistance / cfg.SuspensionRestLength)
	rate := (w.PrevCompression - w.CompressionDistance) / dt
	force -= rate * cfg.SuspensionForce * cfg.SuspensionDamping
	w.PrevCompression = w.CompressionDistance
	w.AppliedSuspensionForce = force

	v.body.ApplyForce(w.DirectionWorld.Mul(-force), w.HitPoint)
}

func (v *Vehicle) applyDrive(w *Wheel, chassis spatialmath.Pose) {
	if w.Force == 0 {
		return
	}
	forward := spatialmath.RotateVector(w.orientation, w.cfg.ForwardAxis)
	at := w.HitPoint.Add(chassis.TransformNormal(v.opts.DriveForceOffset))
	v.body.ApplyForce(forward.Mul(w.Force), at)
}

// applySideForce cancels the lateral slip velocity at the wheel mount within one tick, scaled by
// the wheel's side force gain.
func (v *Vehicle) applySideForce(w *Wheel, chassis spatialmath.Pose, linVel, angVel r3.Vector, dt float64) {
	cfg := &w.cfg
	tireVel := spatialmath.PointVelocity(linVel, angVel, chassis.Point, w.PositionWorld)
	axle := spatialmath.RotateVector(w.orientation, cfg.AxleAxis)
	slip := axle.Dot(tireVel)
	accel := -slip / dt
	at := spatialmath.Lerp(w.HitPoint, w.PositionWorld, cfg.SideForcePositionRatio)
	v.body.ApplyForce(axle.Mul(cfg.SideForce*accel), at)
}

func (v *Vehicle) logTransition() {
	airborne := v.nWheelsOnGround == 0
	if airborne == v.airborne {
		return
	}
	v.airborne = airborne
	if airborne {
		v.logger.Debug("vehicle airborne")
	} else {
		v.logger.Debugw("vehicle grounded", "wheels_on_ground", v.nWheelsOnGround)
		v.predicting = false
	}
}

// predictLanding nudges the chassis angular velocity so that its up axis meets the normal of the
// surface found along the ballistic path. It only runs with every wheel off the ground.
func (v *Vehicle) predictLanding(chassis spatialmath.Pose, linVel, angVel r3.Vector, dt float64) {
	if v.nWheelsOnGround > 0 || v.opts.PredictionRatio == 0 || v.opts.FramesToPredict == 0 {
		return
	}
	t := dt * float64(v.opts.FramesToPredict)
	gravity := v.world.Gravity().Mul(v.body.GravityScale())
	predicted := chassis.Point.Add(linVel.Mul(t)).Add(gravity.Mul(0.5 * t * t))

	res := v.world.Raycast(chassis.Point, predicted)
	if !res.Hit {
		return
	}

	// Axes where the velocity direction is zero contribute no displacement.
	displacement := spatialmath.DivideSafe(res.Point.Sub(chassis.Point), linVel.Normalize())
	nFrames := displacement.Norm()
	if nFrames == 0 {
		return
	}
	up := chassis.TransformNormal(v.opts.UpAxisLocal)
	target := up.Cross(res.Normal).Mul(1 / (dt * nFrames))
	v.body.SetAngularVelocity(spatialmath.Lerp(angVel, target, v.opts.PredictionRatio))

	if !v.predicting {
		v.predicting = true
		v.logger.Debugw("landing prediction engaged", "hit", res.Point, "normal", res.Normal, "frames", nFrames)
	}
}
