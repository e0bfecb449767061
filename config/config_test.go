package config

import (
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/RaggarDK/ArcadeRaycastVehicle/control"
	"github.com/RaggarDK/ArcadeRaycastVehicle/logging"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	test.That(t, cfg.Validate(""), test.ShouldBeNil)
	test.That(t, cfg.Wheels, test.ShouldHaveLength, 4)
	test.That(t, cfg.Axles, test.ShouldHaveLength, 2)
	test.That(t, cfg.Warnings(), test.ShouldBeEmpty)
	test.That(t, cfg.Wheels[2].Name, test.ShouldEqual, "front_left")
	test.That(t, cfg.Wheels[2].SuspensionRestLength, test.ShouldEqual, 0.6)

	out := cfg.String()
	for _, w := range cfg.Wheels {
		test.That(t, out, test.ShouldContainSubstring, w.Name)
	}
	test.That(t, out, test.ShouldContainSubstring, "X:-0.49, Y:0.00, Z:0.80")
}

func TestRead(t *testing.T) {
	logger := logging.NewTestLogger(t)

	cfg, err := Read("data/demo_car.json", logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, "data/demo_car.json")
	test.That(t, cfg.Wheels, test.ShouldHaveLength, 4)
	test.That(t, cfg.Wheels[3].Name, test.ShouldEqual, "front_right")
	test.That(t, cfg.Wheels[3].Position.X, test.ShouldEqual, 0.49)
	test.That(t, cfg.Wheels[3].SuspensionDamping, test.ShouldEqual, 0.15)
	test.That(t, cfg.Axles[1].Force, test.ShouldEqual, DefaultAntiRollForce)
	test.That(t, cfg.World.TimeStep, test.ShouldAlmostEqual, 1./60)
	test.That(t, cfg.World.Ramps, test.ShouldHaveLength, 1)
	test.That(t, cfg.World.Ramps[0].Pitch, test.ShouldEqual, 0.25)
	test.That(t, cfg.World.Meshes, test.ShouldHaveLength, 1)
	test.That(t, cfg.World.Meshes[0].Faces[1][2], test.ShouldResemble, r3.Vector{X: -4, Y: 0.4, Z: 2})
	test.That(t, cfg.Chassis.Mass, test.ShouldEqual, 800)
	// Untouched by the file, kept from the defaults.
	test.That(t, cfg.Driver.MaxForce, test.ShouldEqual, 2200)
	test.That(t, cfg.Vehicle.DriveForceOffset.Y, test.ShouldEqual, -0.8)

	t.Setenv("RAYCASTSIM_TIME_STEP", "0.01")
	cfg, err = Read("data/demo_car.json", logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.World.TimeStep, test.ShouldEqual, 0.01)

	_, err = Read("data/does_not_exist.json", logger)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFromReader(t *testing.T) {
	t.Run("wheels decode over the template", func(t *testing.T) {
		logger, logs := logging.NewObservedTestLogger(t)
		cfg, err := FromReader("", strings.NewReader(`{
			"wheels": [{"name": "solo", "position": {"x": 1}, "radius": 0.3}],
			"axles": []
		}`), logger)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, cfg.Wheels, test.ShouldHaveLength, 1)
		test.That(t, cfg.Wheels[0].Name, test.ShouldEqual, "solo")
		test.That(t, cfg.Wheels[0].Position.X, test.ShouldEqual, 1)
		test.That(t, cfg.Wheels[0].Radius, test.ShouldEqual, 0.3)
		test.That(t, cfg.Wheels[0].SuspensionRestLength, test.ShouldEqual, 0.6)
		test.That(t, cfg.Wheels[0].SuspensionAxis.Y, test.ShouldEqual, -1)
		test.That(t, cfg.Axles, test.ShouldBeEmpty)
		// The default driver still names wheels 2 and 3.
		test.That(t, cfg.Warnings(), test.ShouldHaveLength, 2)
		test.That(t, logs.FilterLevelExact(logging.WARN.AsZap()).Len(), test.ShouldEqual, 2)
	})

	t.Run("driver lists are replaced", func(t *testing.T) {
		cfg, err := FromReader("", strings.NewReader(`{"driver": {"steered_wheels": [0], "gears": 6}}`), nil)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, cfg.Driver.SteeredWheels, test.ShouldResemble, []int{0})
		test.That(t, cfg.Driver.DrivenWheels, test.ShouldResemble, []int{2, 3})
		test.That(t, cfg.Driver.Gears, test.ShouldEqual, 6)
	})

	t.Run("axle outside the wheel list is a warning", func(t *testing.T) {
		cfg, err := FromReader("", strings.NewReader(`{"axles": [{"wheel_a": 0, "wheel_b": 9, "force": 500}]}`), nil)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, cfg.Axles[0].Force, test.ShouldEqual, 500)
		warnings := cfg.Warnings()
		test.That(t, warnings, test.ShouldHaveLength, 1)
		test.That(t, warnings[0], test.ShouldContainSubstring, "(0, 9)")
	})

	for _, tc := range []struct {
		name   string
		input  string
		errStr string
	}{
		{"bad json", `{"wheels": [`, "cannot parse config"},
		{"unknown section", `{"wheelz": []}`, "unknown field"},
		{"unknown key", `{"chassis": {"mas": 1}}`, `cannot decode "chassis"`},
		{"unknown wheel key", `{"wheels": [{"radiuss": 1}]}`, `cannot decode "wheels.0"`},
		{"axle without wheel", `{"axles": [{"wheel_a": 0}]}`, `error validating "axles.0": "wheel_b" is required`},
		{"zero axis", `{"wheels": [{"forward_axis": {"x": 0, "y": 0, "z": 0}}]}`, `error validating "wheels.0"`},
		{"no wheels", `{"wheels": []}`, `"wheels" is required`},
		{"time step", `{"world": {"time_step": 0}}`, `error validating "world"`},
		{"ramp", `{"world": {"ramps": [{"half_extents": {"x": 1}}]}}`, `error validating "world.ramps.0"`},
		{"mesh", `{"world": {"meshes": [{"center": {"y": 1}}]}}`, `error validating "world.meshes.0": "faces" is required`},
		{"chassis", `{"chassis": {"mass": -1}}`, `error validating "chassis"`},
		{"prediction", `{"vehicle": {"prediction_ratio": 2}}`, `error validating "vehicle"`},
		{"driver", `{"driver": {"gears": 0}}`, `error validating "driver"`},
		{"negative axle force", `{"axles": [{"wheel_a": 0, "wheel_b": 1, "force": -1}]}`, `error validating "axles.0"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromReader("", strings.NewReader(tc.input), logging.NewTestLogger(t))
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.errStr)
		})
	}
}

func TestBuild(t *testing.T) {
	logger := logging.NewTestLogger(t)

	a, err := Build(Default(), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a.Vehicle.Wheels(), test.ShouldHaveLength, 4)
	test.That(t, a.Vehicle.AntiRollAxles(), test.ShouldHaveLength, 2)
	test.That(t, a.World.Shapes(), test.ShouldHaveLength, 1)
	test.That(t, a.Chassis.Pose().Point.Y, test.ShouldEqual, 5)

	for i := 0; i < 30; i++ {
		_, err := a.Tick(control.Input{Throttle: 1})
		test.That(t, err, test.ShouldBeNil)
	}
	test.That(t, a.World.Steps(), test.ShouldEqual, 30)
	// Still falling from the drop height.
	test.That(t, a.Chassis.Pose().Point.Y, test.ShouldBeLessThan, 5)
	test.That(t, a.Vehicle.Airborne(), test.ShouldBeTrue)

	cfg, err := Read("data/demo_car.json", logger)
	test.That(t, err, test.ShouldBeNil)
	a, err = Build(cfg, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a.World.Shapes(), test.ShouldHaveLength, 3)

	bad := Default()
	bad.World.TimeStep = -1
	_, err = Build(bad, logger)
	test.That(t, err, test.ShouldNotBeNil)
}
