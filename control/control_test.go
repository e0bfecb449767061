package control

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/RaggarDK/ArcadeRaycastVehicle/logging"
	"github.com/RaggarDK/ArcadeRaycastVehicle/spatialmath"
	"github.com/RaggarDK/ArcadeRaycastVehicle/testutils/inject"
	"github.com/RaggarDK/ArcadeRaycastVehicle/vehicle"
)

func TestSteeringRamp(t *testing.T) {
	r := SteeringRamp{Max: 0.6, Increment: 0.005, Recover: 0.05}
	test.That(t, r.Next(1), test.ShouldAlmostEqual, 0.005)
	test.That(t, r.Next(1), test.ShouldAlmostEqual, 0.01)

	for i := 0; i < 200; i++ {
		r.Next(1)
	}
	test.That(t, r.Value(), test.ShouldAlmostEqual, 0.6)

	test.That(t, r.Next(0), test.ShouldAlmostEqual, 0.6*0.95)
	test.That(t, r.Next(0), test.ShouldAlmostEqual, 0.6*0.95*0.95)

	r.Reset()
	test.That(t, r.Next(-1), test.ShouldAlmostEqual, -0.005)
	for i := 0; i < 200; i++ {
		r.Next(-3)
	}
	test.That(t, r.Value(), test.ShouldAlmostEqual, -0.6)
}

func TestCurve(t *testing.T) {
	c := DefaultAccelerationCurve()
	for _, tc := range []struct {
		frame    float64
		expected float64
	}{
		{-5, 1},
		{0, 1},
		{30, 0.85},
		{60, 0.7},
		{80, 0.5},
		{100, 0.3},
		{150, 0.3},
	} {
		test.That(t, c.Evaluate(tc.frame), test.ShouldAlmostEqual, tc.expected)
	}

	t.Run("unsorted keys", func(t *testing.T) {
		c := NewCurve(CurveKey{Frame: 10, Value: 2}, CurveKey{Frame: 0, Value: 0})
		test.That(t, c.Keys()[0].Frame, test.ShouldEqual, 0)
		test.That(t, c.Evaluate(2.5), test.ShouldAlmostEqual, 0.5)
	})

	t.Run("empty", func(t *testing.T) {
		test.That(t, Curve{}.Evaluate(42), test.ShouldEqual, 1)
	})
}

func TestThrottle(t *testing.T) {
	th := Throttle{MaxSpeed: 60, MaxForce: 2200, Curve: DefaultAccelerationCurve()}
	for _, tc := range []struct {
		name     string
		speed    float64
		input    float64
		expected float64
	}{
		{"standstill", 0, 1, 2200},
		{"half speed", 30, 1, 1650},
		{"half speed reversing", -30, 1, 1650},
		{"past top speed", 100, 1, 660},
		{"reverse input", 0, -1, -2200},
		{"input clamped", 0, 2, 2200},
		{"no input", 30, 0, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, th.Force(tc.speed, tc.input), test.ShouldAlmostEqual, tc.expected)
		})
	}
	test.That(t, Throttle{}.Force(10, 1), test.ShouldEqual, 0)
}

func TestGearbox(t *testing.T) {
	g := Gearbox{Gears: 5, MaxSpeed: 60}
	for _, tc := range []struct {
		speed    float64
		gear     int
		progress float64
	}{
		{0, 0, 0},
		{18, 1, 0.5},
		{-30, 2, 0.5},
		{59.4, 4, 0.95},
		{60, 5, 0},
		{90, 5, 0},
	} {
		gear, progress := g.Gear(tc.speed)
		test.That(t, gear, test.ShouldEqual, tc.gear)
		test.That(t, progress, test.ShouldAlmostEqual, tc.progress)
	}
	test.That(t, g.RevRate(18), test.ShouldAlmostEqual, 0.8)

	gear, progress := Gearbox{}.Gear(10)
	test.That(t, gear, test.ShouldEqual, 0)
	test.That(t, progress, test.ShouldEqual, 0)
}

func TestDriverConfigValidate(t *testing.T) {
	cfg := DefaultDriverConfig()
	test.That(t, cfg.Validate("driver"), test.ShouldBeNil)

	for _, tc := range []struct {
		name   string
		mutate func(cfg *DriverConfig)
		errStr string
	}{
		{"max speed", func(cfg *DriverConfig) { cfg.MaxSpeed = 0 }, `"max_speed" must be positive`},
		{"max force", func(cfg *DriverConfig) { cfg.MaxForce = -1 }, `"max_force" must be positive`},
		{"recover", func(cfg *DriverConfig) { cfg.SteerRecover = 1.5 }, `"steer_recover" must be in [0, 1]`},
		{"gears", func(cfg *DriverConfig) { cfg.Gears = 0 }, `"gears" must be at least 1`},
		{"steered", func(cfg *DriverConfig) { cfg.SteeredWheels = []int{2, -1} }, `"steered_wheels.1"`},
		{"driven", func(cfg *DriverConfig) { cfg.DrivenWheels = []int{-3} }, `"driven_wheels.0"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultDriverConfig()
			tc.mutate(&cfg)
			err := cfg.Validate("driver")
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, `error validating "driver"`)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.errStr)
		})
	}

	_, err := NewDriver(DriverConfig{}, nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func newDriverTestVehicle(t *testing.T, forwardSpeed float64) *vehicle.Vehicle {
	t.Helper()
	body := inject.NewBody(spatialmath.NewPoseFromPoint(r3.Vector{Y: 5}))
	body.LinearVel = r3.Vector{Z: forwardSpeed}
	v, err := vehicle.New(body, inject.NewWorld(1./60), vehicle.DefaultOptions(), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	for _, x := range []float64{0.49, -0.49, -0.49, 0.49} {
		w, err := vehicle.NewWheel(vehicle.WheelConfig{
			Position:       r3.Vector{X: x},
			SuspensionAxis: r3.Vector{Y: -1},
			AxleAxis:       r3.Vector{X: 1},
			ForwardAxis:    r3.Vector{Z: 1},
		})
		test.That(t, err, test.ShouldBeNil)
		v.AddWheel(w)
	}
	// Speed is sampled during Update.
	test.That(t, v.Update(), test.ShouldBeNil)
	return v
}

func TestDriverApply(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	d, err := NewDriver(DefaultDriverConfig(), logger)
	test.That(t, err, test.ShouldBeNil)

	v := newDriverTestVehicle(t, 30)
	test.That(t, v.Speed(), test.ShouldAlmostEqual, 30)

	state, err := d.Apply(v, Input{Throttle: 1, Steer: 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, state.Steering, test.ShouldAlmostEqual, 0.005)
	test.That(t, state.Force, test.ShouldAlmostEqual, 1650)
	test.That(t, state.Gear, test.ShouldEqual, 2)
	test.That(t, state.GearProgress, test.ShouldAlmostEqual, 0.5)
	test.That(t, state.RevRate, test.ShouldAlmostEqual, 0.4+0.6)

	wheels := v.Wheels()
	for _, i := range []int{0, 1} {
		test.That(t, wheels[i].Steering, test.ShouldEqual, 0)
		test.That(t, wheels[i].Force, test.ShouldEqual, 0)
	}
	for _, i := range []int{2, 3} {
		test.That(t, wheels[i].Steering, test.ShouldAlmostEqual, 0.005)
		test.That(t, wheels[i].Force, test.ShouldAlmostEqual, 1650)
	}
	test.That(t, logs.FilterMessage("gear change").Len(), test.ShouldEqual, 1)

	_, err = d.Apply(v, Input{Throttle: 1, Steer: 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logs.FilterMessage("gear change").Len(), test.ShouldEqual, 1)

	d.Reset()
	state, err = d.Apply(v, Input{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, state.Steering, test.ShouldEqual, 0)
	test.That(t, state.Force, test.ShouldEqual, 0)
	test.That(t, logs.FilterMessage("gear change").Len(), test.ShouldEqual, 2)
}

func TestDriverMissingWheel(t *testing.T) {
	cfg := DefaultDriverConfig()
	cfg.SteeredWheels = []int{7}
	d, err := NewDriver(cfg, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	_, err = d.Apply(newDriverTestVehicle(t, 0), Input{Steer: 1})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "steered wheel")
	test.That(t, err.Error(), test.ShouldContainSubstring, "out of range")
}
