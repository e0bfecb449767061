package vehicle

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/RaggarDK/ArcadeRaycastVehicle/spatialmath"
)

// Wheel defaults applied to zero valued WheelConfig fields.
const (
	DefaultRadius                 = 0.2
	DefaultSuspensionRestLength   = 0.5
	DefaultSuspensionForce        = 15000.
	DefaultSuspensionDamping      = 0.1
	DefaultSideForce              = 40.
	DefaultSideForcePositionRatio = 0.1
	DefaultRotationMultiplier     = 0.1
)

// WheelConfig is the static description of one wheel. Vectors are in chassis local space.
// A zero scalar means "use the default".
type WheelConfig struct {
	Name           string    `json:"name,omitempty"`
	Position       r3.Vector `json:"position"`
	SuspensionAxis r3.Vector `json:"suspension_axis"`
	AxleAxis       r3.Vector `json:"axle_axis"`
	ForwardAxis    r3.Vector `json:"forward_axis"`

	Radius               float64 `json:"radius,omitempty"`
	SuspensionRestLength float64 `json:"suspension_rest_length,omitempty"`
	// SuspensionForce is the spring stiffness at full compression.
	SuspensionForce float64 `json:"suspension_force,omitempty"`
	// SuspensionDamping is the damping rate as a fraction of SuspensionForce.
	SuspensionDamping float64 `json:"suspension_damping,omitempty"`
	// SideForce is the lateral grip gain.
	SideForce float64 `json:"side_force,omitempty"`
	// SideForcePositionRatio places the side force between the hit point (0) and the mount point (1).
	SideForcePositionRatio float64 `json:"side_force_position_ratio,omitempty"`
	RotationMultiplier     float64 `json:"rotation_multiplier,omitempty"`
}

// WithDefaults returns a copy of the config with zero scalars replaced by their defaults.
func (cfg WheelConfig) WithDefaults() WheelConfig {
	def := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}
	def(&cfg.Radius, DefaultRadius)
	def(&cfg.SuspensionRestLength, DefaultSuspensionRestLength)
	def(&cfg.SuspensionForce, DefaultSuspensionForce)
	def(&cfg.SuspensionDamping, DefaultSuspensionDamping)
	def(&cfg.SideForce, DefaultSideForce)
	def(&cfg.SideForcePositionRatio, DefaultSideForcePositionRatio)
	def(&cfg.RotationMultiplier, DefaultRotationMultiplier)
	return cfg
}

// Validate ensures all parts of the config are valid.
func (cfg *WheelConfig) Validate(path string) error {
	for _, axis := range []struct {
		field string
		v     r3.Vector
	}{
		{"suspension_axis", cfg.SuspensionAxis},
		{"axle_axis", cfg.AxleAxis},
		{"forward_axis", cfg.ForwardAxis},
	} {
		if axis.v.Norm2() == 0 {
			return newZeroAxisError(path, axis.field)
		}
	}
	for _, scalar := range []struct {
		field string
		v     float64
	}{
		{"radius", cfg.Radius},
		{"suspension_rest_length", cfg.SuspensionRestLength},
		{"suspension_force", cfg.SuspensionForce},
		{"suspension_damping", cfg.SuspensionDamping},
		{"side_force", cfg.SideForce},
		{"side_force_position_ratio", cfg.SideForcePositionRatio},
		{"rotation_multiplier", cfg.RotationMultiplier},
	} {
		if scalar.v < 0 {
			return newNegativeFieldError(path, scalar.field, scalar.v)
		}
	}
	return nil
}

// Wheel is a massless raycast sensor: the static config of one wheel plus the state the vehicle
// recomputes every tick. Steering and Force are inputs written by the application before
// Vehicle.Update; everything else is output.
type Wheel struct {
	cfg WheelConfig

	Steering float64
	Force    float64
	Rotation float64

	PositionWorld  r3.Vector
	DirectionWorld r3.Vector
	InContact      bool
	HitPoint       r3.Vector
	HitNormal      r3.Vector
	HitDistance    float64

	CompressionDistance float64
	PrevCompression     float64
	// AppliedSuspensionForce is the net spring and damper force applied this tick, zero when airborne.
	AppliedSuspensionForce float64

	// Transform is the world pose of the visual wheel.
	Transform spatialmath.Pose

	// orientation is the chassis orientation composed with steering, without spin.
	orientation quat.Number
}

// NewWheel validates cfg and builds a wheel from it. Axes are normalized. The config is held by
// value, so the caller may reuse or mutate its WheelConfig afterwards.
func NewWheel(cfg WheelConfig) (*Wheel, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(wheelPath(cfg)); err != nil {
		return nil, err
	}
	cfg.SuspensionAxis = cfg.SuspensionAxis.Normalize()
	cfg.AxleAxis = cfg.AxleAxis.Normalize()
	cfg.ForwardAxis = cfg.ForwardAxis.Normalize()

	w := &Wheel{cfg: cfg}
	w.Reset()
	return w, nil
}

func wheelPath(cfg WheelConfig) string {
	if cfg.Name == "" {
		return "wheel"
	}
	return fmt.Sprintf("wheel %q", cfg.Name)
}

// Config returns the wheel configuration with defaults applied.
func (w *Wheel) Config() WheelConfig {
	return w.cfg
}

// Name returns the configured wheel name, which may be empty.
func (w *Wheel) Name() string {
	return w.cfg.Name
}

// RestLength returns the suspension rest length.
func (w *Wheel) RestLength() float64 {
	return w.cfg.SuspensionRestLength
}

// Reset returns the wheel to full droop with no contact and no inputs.
func (w *Wheel) Reset() {
	w.Steering = 0
	w.Force = 0
	w.Rotation = 0
	w.PositionWorld = w.cfg.Position
	w.DirectionWorld = w.cfg.SuspensionAxis
	w.InContact = false
	w.HitPoint = r3.Vector{}
	w.HitNormal = r3.Vector{}
	w.HitDistance = w.cfg.SuspensionRestLength
	w.CompressionDistance = 0
	w.PrevCompression = 0
	w.AppliedSuspensionForce = 0
	w.orientation = spatialmath.QuatIdentity()
	w.Transform = spatialmath.NewPoseFromPoint(w.cfg.Position)
}
