package vehicle_test

import (
	"context"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/RaggarDK/ArcadeRaycastVehicle/logging"
	"github.com/RaggarDK/ArcadeRaycastVehicle/sim"
	"github.com/RaggarDK/ArcadeRaycastVehicle/spatialmath"
	"github.com/RaggarDK/ArcadeRaycastVehicle/vehicle"
)

type scenario struct {
	world   *sim.World
	chassis *sim.Body
	car     *vehicle.Vehicle
	loop    *sim.Loop
}

func newScenario(t *testing.T, chassisHeight float64, shapes ...spatialmath.Shape) *scenario {
	t.Helper()
	logger := logging.NewTestLogger(t)
	world, err := sim.NewWorld(r3.Vector{Y: -9.81}, testDt, logger)
	test.That(t, err, test.ShouldBeNil)
	for _, s := range shapes {
		world.AddShape(s)
	}
	chassis, err := sim.NewBody(sim.BodyConfig{
		Mass:           800,
		HalfExtents:    r3.Vector{X: 0.5, Y: 0.2, Z: 1},
		CenterOfMass:   r3.Vector{Y: -0.5},
		Position:       r3.Vector{Y: chassisHeight},
		AngularDamping: 0.5,
	})
	test.That(t, err, test.ShouldBeNil)
	world.AddBody(chassis)

	car := newTestVehicle(t, chassis, world, vehicle.DefaultOptions(), demoWheelPositions...)
	car.AddAntiRollAxle(vehicle.AntiRollAxle{WheelA: 0, WheelB: 1, Force: 10000})
	car.AddAntiRollAxle(vehicle.AntiRollAxle{WheelA: 2, WheelB: 3, Force: 10000})
	return &scenario{world: world, chassis: chassis, car: car, loop: sim.NewLoop(world, nil, logger)}
}

func (s *scenario) run(t *testing.T, steps int, each func(step int)) {
	t.Helper()
	err := s.loop.Run(context.Background(), steps, func(ctx context.Context, step int) error {
		if err := s.car.Update(); err != nil {
			return err
		}
		if each != nil {
			each(step)
		}
		return nil
	})
	test.That(t, err, test.ShouldBeNil)
}

func TestScenarioRestingChassis(t *testing.T) {
	s := newScenario(t, 0.3, sim.NewGround(0))

	test.That(t, s.car.Update(), test.ShouldBeNil)
	test.That(t, s.car.WheelsOnGround(), test.ShouldEqual, 4)
	for _, w := range s.car.Wheels() {
		test.That(t, w.InContact, test.ShouldBeTrue)
		test.That(t, w.CompressionDistance, test.ShouldAlmostEqual, 0.3, 1e-9)
	}
	push := s.chassis.AccumulatedForce()
	test.That(t, push.Dot(s.world.Gravity()), test.ShouldBeLessThan, 0)
}

func TestScenarioFreeFall(t *testing.T) {
	t.Run("nothing below", func(t *testing.T) {
		s := newScenario(t, 50)
		s.chassis.SetAngularVelocity(r3.Vector{X: 0.1})
		s.run(t, 10, func(step int) {
			test.That(t, s.car.WheelsOnGround(), test.ShouldEqual, 0)
			for _, w := range s.car.Wheels() {
				test.That(t, w.InContact, test.ShouldBeFalse)
			}
		})
		test.That(t, s.chassis.AngularVelocity().X, test.ShouldBeGreaterThan, 0)
		test.That(t, s.chassis.AngularVelocity().Z, test.ShouldAlmostEqual, 0, 1e-9)
	})

	t.Run("tilted ramp ahead", func(t *testing.T) {
		ramp, err := sim.NewRamp(sim.RampConfig{
			Center:      r3.Vector{Y: 0},
			HalfExtents: r3.Vector{X: 10, Y: 0.5, Z: 10},
			Pitch:       0.3,
		}, "ramp")
		test.That(t, err, test.ShouldBeNil)
		s := newScenario(t, 4, ramp)
		s.chassis.SetLinearVelocity(r3.Vector{Y: -1})

		test.That(t, s.car.Update(), test.ShouldBeNil)
		test.That(t, s.car.WheelsOnGround(), test.ShouldEqual, 0)
		// Level chassis over a ramp pitched about X: the correction is about X only.
		w := s.chassis.AngularVelocity()
		test.That(t, w.X, test.ShouldBeLessThan, 0)
		test.That(t, w.Y, test.ShouldAlmostEqual, 0, 1e-9)
		test.That(t, w.Z, test.ShouldAlmostEqual, 0, 1e-9)
	})
}

func TestScenarioFrontWheelDrive(t *testing.T) {
	s := newScenario(t, 0.65, sim.NewGround(0))
	s.run(t, 120, nil)
	test.That(t, s.car.WheelsOnGround(), test.ShouldEqual, 4)
	// Nothing resists longitudinal motion, so a settled chassis may still creep slowly.
	settled := s.car.Speed()
	test.That(t, math.Abs(settled), test.ShouldBeLessThan, 0.5)
	start := s.chassis.Pose().Point.Z

	for _, i := range []int{2, 3} {
		test.That(t, s.car.SetForce(i, 1000), test.ShouldBeNil)
	}
	prev := settled
	s.run(t, 60, func(step int) {
		test.That(t, s.car.Wheels()[2].InContact, test.ShouldBeTrue)
		test.That(t, s.car.Wheels()[3].InContact, test.ShouldBeTrue)
		test.That(t, s.car.Speed(), test.ShouldBeGreaterThanOrEqualTo, prev)
		prev = s.car.Speed()
	})
	test.That(t, prev-settled, test.ShouldBeGreaterThan, 1)
	test.That(t, s.chassis.Pose().Point.Z-start, test.ShouldBeGreaterThan, 0.5)
}
