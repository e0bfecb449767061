package control

import (
	"math"

	"github.com/RaggarDK/ArcadeRaycastVehicle/utils"
)

// Throttle maps throttle input to a wheel drive force that falls off with speed along Curve.
type Throttle struct {
	MaxSpeed float64
	MaxForce float64
	Curve    Curve
}

// Force returns the drive force for one wheel. input is in [-1, 1], negative reverses.
func (th Throttle) Force(speed, input float64) float64 {
	if th.MaxSpeed <= 0 {
		return 0
	}
	progress := math.Min(math.Abs(speed), th.MaxSpeed) / th.MaxSpeed * 100
	return th.Curve.Evaluate(progress) * utils.Clamp(input, -1, 1) * th.MaxForce
}
