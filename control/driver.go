package control

import (
	"github.com/pkg/errors"

	"github.com/RaggarDK/ArcadeRaycastVehicle/logging"
	"github.com/RaggarDK/ArcadeRaycastVehicle/utils"
	"github.com/RaggarDK/ArcadeRaycastVehicle/vehicle"
)

// DriverConfig describes how driver input is turned into wheel steering and drive forces.
type DriverConfig struct {
	MaxSpeed          float64    `json:"max_speed"`
	MaxForce          float64    `json:"max_force"`
	MaxSteer          float64    `json:"max_steer"`
	SteerIncrement    float64    `json:"steer_increment"`
	SteerRecover      float64    `json:"steer_recover"`
	Gears             int        `json:"gears"`
	SteeredWheels     []int      `json:"steered_wheels"`
	DrivenWheels      []int      `json:"driven_wheels"`
	AccelerationCurve []CurveKey `json:"acceleration_curve"`
}

// DefaultDriverConfig returns the tuning of the demo car: front wheels (handles 2 and 3)
// steer and drive.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		MaxSpeed:          60,
		MaxForce:          2200,
		MaxSteer:          0.6,
		SteerIncrement:    0.005,
		SteerRecover:      0.05,
		Gears:             5,
		SteeredWheels:     []int{2, 3},
		DrivenWheels:      []int{2, 3},
		AccelerationCurve: DefaultAccelerationCurve().Keys(),
	}
}

// Validate ensures all parts of the config are valid.
func (cfg *DriverConfig) Validate(path string) error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"max_speed", cfg.MaxSpeed},
		{"max_force", cfg.MaxForce},
		{"max_steer", cfg.MaxSteer},
		{"steer_increment", cfg.SteerIncrement},
	} {
		if f.value <= 0 {
			return utils.NewConfigValidationError(path, errors.Errorf("%q must be positive, got %v", f.name, f.value))
		}
	}
	if cfg.SteerRecover < 0 || cfg.SteerRecover > 1 {
		return utils.NewConfigValidationError(path,
			errors.Errorf(`"steer_recover" must be in [0, 1], got %v`, cfg.SteerRecover))
	}
	if cfg.Gears < 1 {
		return utils.NewConfigValidationError(path, errors.Errorf(`"gears" must be at least 1, got %d`, cfg.Gears))
	}
	for i, idx := range cfg.SteeredWheels {
		if idx < 0 {
			return utils.NewConfigValidationError(path, errors.Errorf(`"steered_wheels.%d" must not be negative`, i))
		}
	}
	for i, idx := range cfg.DrivenWheels {
		if idx < 0 {
			return utils.NewConfigValidationError(path, errors.Errorf(`"driven_wheels.%d" must not be negative`, i))
		}
	}
	return nil
}

// Input is one tick of driver input. Both values are in [-1, 1].
type Input struct {
	Throttle float64
	Steer    float64
}

// State is what the driver wrote into the vehicle on the last Apply.
type State struct {
	Steering     float64
	Force        float64
	Gear         int
	GearProgress float64
	RevRate      float64
}

// Driver writes steering and drive force into a vehicle's wheels once per tick, before the
// vehicle update.
type Driver struct {
	cfg      DriverConfig
	ramp     SteeringRamp
	throttle Throttle
	gearbox  Gearbox
	logger   logging.Logger

	gear int
}

// NewDriver returns a driver for cfg.
func NewDriver(cfg DriverConfig, logger logging.Logger) (*Driver, error) {
	if err := cfg.Validate("driver"); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Global().Sublogger("driver")
	}
	return &Driver{
		cfg:      cfg,
		ramp:     SteeringRamp{Max: cfg.MaxSteer, Increment: cfg.SteerIncrement, Recover: cfg.SteerRecover},
		throttle: Throttle{MaxSpeed: cfg.MaxSpeed, MaxForce: cfg.MaxForce, Curve: NewCurve(cfg.AccelerationCurve...)},
		gearbox:  Gearbox{Gears: cfg.Gears, MaxSpeed: cfg.MaxSpeed},
		logger:   logger,
	}, nil
}

// Config returns the driver's config.
func (d *Driver) Config() DriverConfig {
	return d.cfg
}

// Apply shapes in against the vehicle's current speed and writes the result into the steered
// and driven wheels.
func (d *Driver) Apply(v *vehicle.Vehicle, in Input) (State, error) {
	steer := d.ramp.Next(in.Steer)
	speed := v.Speed()
	force := d.throttle.Force(speed, in.Throttle)

	for _, i := range d.cfg.SteeredWheels {
		if err := v.SetSteering(i, steer); err != nil {
			return State{}, errors.Wrap(err, "steered wheel")
		}
	}
	for _, i := range d.cfg.DrivenWheels {
		if err := v.SetForce(i, force); err != nil {
			return State{}, errors.Wrap(err, "driven wheel")
		}
	}

	gear, progress := d.gearbox.Gear(speed)
	if gear != d.gear {
		d.logger.Debugw("gear change", "from", d.gear, "to", gear, "speed", speed)
		d.gear = gear
	}
	return State{
		Steering:     steer,
		Force:        force,
		Gear:         gear,
		GearProgress: progress,
		RevRate:      d.gearbox.RevRate(speed),
	}, nil
}

// Reset centres the steering and drops back to first gear.
func (d *Driver) Reset() {
	d.ramp.Reset()
	d.gear = 0
}
