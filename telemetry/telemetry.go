// Package telemetry records per tick vehicle and wheel state of a simulation run.
package telemetry

import (
	"time"

	"github.com/google/uuid"

	"github.com/RaggarDK/ArcadeRaycastVehicle/spatialmath"
	"github.com/RaggarDK/ArcadeRaycastVehicle/vehicle"
)

// Backend stores runs and their samples.
type Backend interface {
	Init() error
	Close() error

	// StartRun begins a run. Every RecordTick until the next StartRun belongs to it.
	StartRun(run *Run) error
	// RecordTick stores a sample for the current run and sets its RunID.
	RecordTick(sample *TickSample) error
}

// Run identifies one simulation run.
type Run struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	ConfigPath string    `json:"config_path" gorm:"size:255"`
	StartedAt  time.Time `json:"started_at"`
	TimeStep   float64   `json:"time_step"`
	WheelCount int       `json:"wheel_count"`
}

// NewRun returns a run with a fresh id.
func NewRun(configPath string, timeStep float64, wheelCount int) *Run {
	return &Run{
		ID:         uuid.New().String(),
		ConfigPath: configPath,
		StartedAt:  time.Now().UTC(),
		TimeStep:   timeStep,
		WheelCount: wheelCount,
	}
}

// TickSample is the vehicle state after one update.
type TickSample struct {
	ID             uint    `json:"-" gorm:"primaryKey"`
	RunID          string  `json:"run_id" gorm:"size:36;index:idx_run_tick"`
	Tick           int     `json:"tick" gorm:"index:idx_run_tick"`
	Speed          float64 `json:"speed"`
	WheelsOnGround int     `json:"wheels_on_ground"`
	Airborne       bool    `json:"airborne"`
	PositionX      float64 `json:"position_x"`
	PositionY      float64 `json:"position_y"`
	PositionZ      float64 `json:"position_z"`
	// Chassis orientation as a rotation vector: axis scaled by angle in radians.
	OrientationX float64 `json:"orientation_x"`
	OrientationY float64 `json:"orientation_y"`
	OrientationZ float64 `json:"orientation_z"`

	Wheels []WheelSample `json:"wheels" gorm:"foreignKey:TickSampleID;constraint:OnDelete:CASCADE;"`
}

// WheelSample is one wheel's state within a TickSample.
type WheelSample struct {
	ID              uint    `json:"-" gorm:"primaryKey"`
	TickSampleID    uint    `json:"-" gorm:"index"`
	Wheel           int     `json:"wheel"`
	InContact       bool    `json:"in_contact"`
	HitDistance     float64 `json:"hit_distance"`
	Compression     float64 `json:"compression"`
	SuspensionForce float64 `json:"suspension_force"`
	Steering        float64 `json:"steering"`
	Force           float64 `json:"force"`
	Rotation        float64 `json:"rotation"`
}

// SampleVehicle captures the state of v and its chassis body as of the last update.
func SampleVehicle(tick int, v *vehicle.Vehicle, body vehicle.Body) *TickSample {
	pose := body.Pose()
	p := pose.Point
	o := spatialmath.AxisAngleFromQuat(pose.Orientation).Vector()
	sample := &TickSample{
		Tick:           tick,
		Speed:          v.Speed(),
		WheelsOnGround: v.WheelsOnGround(),
		Airborne:       v.Airborne(),
		PositionX:      p.X,
		PositionY:      p.Y,
		PositionZ:      p.Z,
		OrientationX:   o.X,
		OrientationY:   o.Y,
		OrientationZ:   o.Z,
		Wheels:         make([]WheelSample, 0, len(v.Wheels())),
	}
	for i, w := range v.Wheels() {
		sample.Wheels = append(sample.Wheels, WheelSample{
			Wheel:           i,
			InContact:       w.InContact,
			HitDistance:     w.HitDistance,
			Compression:     w.CompressionDistance,
			SuspensionForce: w.AppliedSuspensionForce,
			Steering:        w.Steering,
			Force:           w.Force,
			Rotation:        w.Rotation,
		})
	}
	return sample
}
