package config

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/RaggarDK/ArcadeRaycastVehicle/control"
	"github.com/RaggarDK/ArcadeRaycastVehicle/logging"
	"github.com/RaggarDK/ArcadeRaycastVehicle/sim"
	"github.com/RaggarDK/ArcadeRaycastVehicle/vehicle"
)

// Assembly is everything needed to run a configured vehicle headless.
type Assembly struct {
	World   *sim.World
	Chassis *sim.Body
	Vehicle *vehicle.Vehicle
	Driver  *control.Driver
}

// Build constructs the world, chassis, vehicle and driver described by cfg.
func Build(cfg *Config, logger logging.Logger) (*Assembly, error) {
	if logger == nil {
		logger = logging.Global()
	}
	if err := cfg.Validate(""); err != nil {
		return nil, err
	}

	world, err := sim.NewWorld(cfg.World.Gravity, cfg.World.TimeStep, logger.Sublogger("world"))
	if err != nil {
		return nil, err
	}
	world.AddShape(sim.NewGround(cfg.World.GroundHeight))
	for i, rc := range cfg.World.Ramps {
		ramp, err := sim.NewRamp(rc, fmt.Sprintf("ramp_%d", i))
		if err != nil {
			return nil, errors.Wrapf(err, "ramp %d", i)
		}
		world.AddShape(ramp)
	}
	for i, mc := range cfg.World.Meshes {
		mesh, err := sim.NewTerrain(mc)
		if err != nil {
			return nil, errors.Wrapf(err, "mesh %d", i)
		}
		world.AddShape(mesh)
	}

	chassis, err := sim.NewBody(cfg.Chassis)
	if err != nil {
		return nil, err
	}
	world.AddBody(chassis)

	v, err := vehicle.New(chassis, world, cfg.Vehicle, logger.Sublogger("vehicle"))
	if err != nil {
		return nil, err
	}
	for i, wc := range cfg.Wheels {
		w, err := vehicle.NewWheel(wc)
		if err != nil {
			return nil, errors.Wrapf(err, "wheel %d", i)
		}
		v.AddWheel(w)
	}
	for _, axle := range cfg.Axles {
		v.AddAntiRollAxle(axle)
	}

	driver, err := control.NewDriver(cfg.Driver, logger.Sublogger("driver"))
	if err != nil {
		return nil, err
	}
	return &Assembly{World: world, Chassis: chassis, Vehicle: v, Driver: driver}, nil
}

// Update applies driver input and updates the vehicle, leaving world integration to the caller.
func (a *Assembly) Update(in control.Input) (control.State, error) {
	state, err := a.Driver.Apply(a.Vehicle, in)
	if err != nil {
		return control.State{}, err
	}
	if err := a.Vehicle.Update(); err != nil {
		return control.State{}, err
	}
	return state, nil
}

// Tick runs one fixed step: Update, then world integration.
func (a *Assembly) Tick(in control.Input) (control.State, error) {
	state, err := a.Update(in)
	if err != nil {
		return control.State{}, err
	}
	a.World.Step()
	return state, nil
}
