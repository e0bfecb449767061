package vehicle

import (
	"github.com/pkg/errors"

	"github.com/RaggarDK/ArcadeRaycastVehicle/utils"
)

// ErrInvalidTimeStep is returned by Update when the world reports a non positive time step.
var ErrInvalidTimeStep = errors.New("fixed time step must be positive")

// NewWheelIndexError is returned when a wheel handle does not refer to a wheel of the vehicle.
func NewWheelIndexError(index, count int) error {
	return errors.Errorf("wheel index %d out of range [0, %d)", index, count)
}

func newZeroAxisError(path, field string) error {
	return utils.NewConfigValidationError(path, errors.Errorf("%q must be a non-zero vector", field))
}

func newNegativeFieldError(path, field string, value float64) error {
	return utils.NewConfigValidationError(path, errors.Errorf("%q must not be negative, got %v", field, value))
}
