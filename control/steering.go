// Package control shapes raw driver input into per wheel steering angles and drive forces.
package control

import (
	"math"

	"github.com/RaggarDK/ArcadeRaycastVehicle/utils"
)

// SteeringRamp turns a held steering direction into a steering angle that ramps toward Max and
// springs back toward zero once released.
type SteeringRamp struct {
	// Max is the largest steering angle in radians.
	Max float64 `json:"max_steer"`
	// Increment is added per tick while a direction is held.
	Increment float64 `json:"steer_increment"`
	// Recover is the fraction of the angle removed per tick with no direction held.
	Recover float64 `json:"steer_recover"`

	value float64
}

// Next advances the ramp by one tick. direction is in [-1, 1]; 0 means released.
func (r *SteeringRamp) Next(direction float64) float64 {
	direction = utils.Clamp(direction, -1, 1)
	r.value += direction * r.Increment
	r.value = utils.Clamp(r.value, -r.Max, r.Max)
	r.value *= 1 - (1-math.Abs(direction))*r.Recover
	return r.value
}

// Value returns the current steering angle.
func (r *SteeringRamp) Value() float64 {
	return r.value
}

// Reset centres the steering.
func (r *SteeringRamp) Reset() {
	r.value = 0
}
