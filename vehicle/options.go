package vehicle

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/RaggarDK/ArcadeRaycastVehicle/utils"
)

// Options are the vehicle wide tuning values.
type Options struct {
	// FramesToPredict is how many ticks ahead the airborne landing raycast looks.
	FramesToPredict int `json:"frames_to_predict"`
	// PredictionRatio blends angular velocity toward the landing alignment. Zero disables it.
	PredictionRatio float64 `json:"prediction_ratio"`
	// ForwardAxisLocal is the chassis axis Speed is measured along.
	ForwardAxisLocal r3.Vector `json:"forward_axis"`
	// UpAxisLocal is the chassis axis aligned with the landing surface normal.
	UpAxisLocal r3.Vector `json:"up_axis"`
	// DriveForceOffset is added to the hit point, after rotation by the chassis orientation, to
	// place the drive force.
	DriveForceOffset r3.Vector `json:"drive_force_offset"`
}

// DefaultOptions returns the tuning of the arcade demo car.
func DefaultOptions() Options {
	return Options{
		FramesToPredict:  60,
		PredictionRatio:  0.6,
		ForwardAxisLocal: r3.Vector{X: 0, Y: 0, Z: 1},
		UpAxisLocal:      r3.Vector{X: 0, Y: 1, Z: 0},
		DriveForceOffset: r3.Vector{X: 0, Y: -0.8, Z: 0.1},
	}
}

// Validate ensures all parts of the options are valid.
func (o *Options) Validate(path string) error {
	if o.FramesToPredict < 0 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("%q must not be negative, got %d", "frames_to_predict", o.FramesToPredict))
	}
	if o.PredictionRatio < 0 || o.PredictionRatio > 1 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("%q must be in [0, 1], got %v", "prediction_ratio", o.PredictionRatio))
	}
	if o.ForwardAxisLocal.Norm2() == 0 {
		return newZeroAxisError(path, "forward_axis")
	}
	if o.UpAxisLocal.Norm2() == 0 {
		return newZeroAxisError(path, "up_axis")
	}
	return nil
}
