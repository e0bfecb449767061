// Package config defines the vehicle definition file and builds a runnable vehicle from it.
package config

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/RaggarDK/ArcadeRaycastVehicle/control"
	"github.com/RaggarDK/ArcadeRaycastVehicle/sim"
	"github.com/RaggarDK/ArcadeRaycastVehicle/utils"
	"github.com/RaggarDK/ArcadeRaycastVehicle/vehicle"
)

// Config describes a vehicle, the chassis carrying it, the world it drives in and how driver
// input is mapped onto its wheels.
type Config struct {
	Vehicle       vehicle.Options        `json:"vehicle"`
	WheelTemplate vehicle.WheelConfig    `json:"wheel_template"`
	Wheels        []vehicle.WheelConfig  `json:"wheels"`
	Axles         []vehicle.AntiRollAxle `json:"axles"`
	Chassis       sim.BodyConfig         `json:"chassis"`
	World         WorldConfig            `json:"world"`
	Driver        control.DriverConfig   `json:"driver"`

	// ConfigFilePath is the path the config was read from, if any.
	ConfigFilePath string `json:"-"`
}

// WorldConfig describes the static world.
type WorldConfig struct {
	Gravity      r3.Vector        `json:"gravity"`
	TimeStep     float64          `json:"time_step"`
	GroundHeight float64          `json:"ground_height"`
	Ramps        []sim.RampConfig `json:"ramps"`
	Meshes       []sim.MeshConfig `json:"meshes"`
}

// Validate ensures all parts of the config are valid.
func (cfg *WorldConfig) Validate(path string) error {
	if cfg.TimeStep <= 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("%q must be positive, got %v", "time_step", cfg.TimeStep))
	}
	for i, ramp := range cfg.Ramps {
		h := ramp.HalfExtents
		if h.X <= 0 || h.Y <= 0 || h.Z <= 0 {
			return utils.NewConfigValidationError(fmt.Sprintf("%s.ramps.%d", path, i),
				errors.Errorf("%q must be positive on every axis, got %v", "half_extents", h))
		}
	}
	for i, mesh := range cfg.Meshes {
		if len(mesh.Faces) == 0 {
			return utils.NewConfigValidationFieldRequiredError(fmt.Sprintf("%s.meshes.%d", path, i), "faces")
		}
	}
	return nil
}

var demoWheels = []struct {
	name string
	pos  r3.Vector
}{
	{"rear_right", r3.Vector{X: 0.49, Y: 0, Z: -0.7}},
	{"rear_left", r3.Vector{X: -0.49, Y: 0, Z: -0.7}},
	{"front_left", r3.Vector{X: -0.49, Y: 0, Z: 0.8}},
	{"front_right", r3.Vector{X: 0.49, Y: 0, Z: 0.8}},
}

// DefaultWheelTemplate is the wheel shared by every corner of the demo car.
func DefaultWheelTemplate() vehicle.WheelConfig {
	return vehicle.WheelConfig{
		SuspensionAxis:         r3.Vector{Y: -1},
		AxleAxis:               r3.Vector{X: 1},
		ForwardAxis:            r3.Vector{Z: 1},
		Radius:                 vehicle.DefaultRadius,
		SuspensionRestLength:   0.6,
		SuspensionForce:        vehicle.DefaultSuspensionForce,
		SuspensionDamping:      0.15,
		SideForce:              vehicle.DefaultSideForce,
		SideForcePositionRatio: vehicle.DefaultSideForcePositionRatio,
		RotationMultiplier:     vehicle.DefaultRotationMultiplier,
	}
}

// Default returns the demo car: four mirrored wheels, an anti-roll axle per end, front wheel
// steering and drive, dropped onto flat ground from 5m.
func Default() *Config {
	template := DefaultWheelTemplate()
	wheels := make([]vehicle.WheelConfig, 0, len(demoWheels))
	for _, w := range demoWheels {
		cfg := template
		cfg.Name = w.name
		cfg.Position = w.pos
		wheels = append(wheels, cfg)
	}
	return &Config{
		Vehicle:       vehicle.DefaultOptions(),
		WheelTemplate: template,
		Wheels:        wheels,
		Axles: []vehicle.AntiRollAxle{
			{WheelA: 0, WheelB: 1, Force: DefaultAntiRollForce},
			{WheelA: 2, WheelB: 3, Force: DefaultAntiRollForce},
		},
		Chassis: sim.BodyConfig{
			Mass:           800,
			HalfExtents:    r3.Vector{X: 0.5, Y: 0.2, Z: 1},
			CenterOfMass:   r3.Vector{Y: -0.5},
			Position:       r3.Vector{Y: 5},
			AngularDamping: 0.5,
			GravityScale:   1,
		},
		World: WorldConfig{
			Gravity:  r3.Vector{Y: -9.81},
			TimeStep: 1. / 60,
		},
		Driver: control.DefaultDriverConfig(),
	}
}

// Validate ensures all parts of the config are valid. Axles naming wheels that do not exist are
// not an error; see Warnings.
func (cfg *Config) Validate(path string) error {
	if err := cfg.Vehicle.Validate(join(path, "vehicle")); err != nil {
		return err
	}
	if len(cfg.Wheels) == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "wheels")
	}
	for i := range cfg.Wheels {
		if err := cfg.Wheels[i].Validate(join(path, fmt.Sprintf("wheels.%d", i))); err != nil {
			return err
		}
	}
	for i, axle := range cfg.Axles {
		if axle.Force < 0 {
			return utils.NewConfigValidationError(join(path, fmt.Sprintf("axles.%d", i)),
				errors.Errorf("%q must not be negative, got %v", "force", axle.Force))
		}
	}
	if err := cfg.Chassis.Validate(join(path, "chassis")); err != nil {
		return err
	}
	if err := cfg.World.Validate(join(path, "world")); err != nil {
		return err
	}
	return cfg.Driver.Validate(join(path, "driver"))
}

// Warnings lists problems that do not stop the vehicle from running.
func (cfg *Config) Warnings() []string {
	inRange := func(i int) bool { return i >= 0 && i < len(cfg.Wheels) }
	broken := lo.Filter(cfg.Axles, func(a vehicle.AntiRollAxle, _ int) bool {
		return !inRange(a.WheelA) || !inRange(a.WheelB)
	})
	warnings := lo.Map(broken, func(a vehicle.AntiRollAxle, _ int) string {
		return fmt.Sprintf("anti-roll axle (%d, %d) references a wheel outside [0, %d) and will be skipped",
			a.WheelA, a.WheelB, len(cfg.Wheels))
	})
	for _, i := range lo.Uniq(append(append([]int{}, cfg.Driver.SteeredWheels...), cfg.Driver.DrivenWheels...)) {
		if !inRange(i) {
			warnings = append(warnings, fmt.Sprintf("driver references wheel %d outside [0, %d)", i, len(cfg.Wheels)))
		}
	}
	return warnings
}

// String prints out a table of each wheel, with its mount point, suspension and tyre tuning.
func (cfg Config) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Position", "Rest", "Stiffness", "Damping", "Radius", "Steered", "Driven"})
	for i, w := range cfg.Wheels {
		w = w.WithDefaults()
		t.AppendRow([]interface{}{
			fmt.Sprintf("%d", i),
			w.Name,
			fmt.Sprintf("X:%.2f, Y:%.2f, Z:%.2f", w.Position.X, w.Position.Y, w.Position.Z),
			fmt.Sprintf("%.2f", w.SuspensionRestLength),
			fmt.Sprintf("%.0f", w.SuspensionForce),
			fmt.Sprintf("%.2f", w.SuspensionDamping),
			fmt.Sprintf("%.2f", w.Radius),
			lo.Contains(cfg.Driver.SteeredWheels, i),
			lo.Contains(cfg.Driver.DrivenWheels, i),
		})
	}
	return t.Render()
}

func join(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}
