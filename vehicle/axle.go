package vehicle

import (
	"math"
)

// AntiRollAxle couples the suspension of two wheels, addressed by handle, to resist body roll.
type AntiRollAxle struct {
	WheelA int     `json:"wheel_a"`
	WheelB int     `json:"wheel_b"`
	Force  float64 `json:"force"`
}

type axleState struct {
	AntiRollAxle
	// warned is set once the absent wheel warning has been logged.
	warned bool
}

// antiRoll returns the force magnitude pushing the less compressed wheel down and the more
// compressed wheel up, along with those wheels. ok is false when neither wheel is in contact.
func (a AntiRollAxle) antiRoll(wa, wb *Wheel) (lo, hi *Wheel, magnitude float64, ok bool) {
	if !wa.InContact && !wb.InContact {
		return nil, nil, 0, false
	}
	lo, hi = wa, wb
	if wb.CompressionDistance < wa.CompressionDistance {
		lo, hi = wb, wa
	}
	avgRest := (wa.RestLength() + wb.RestLength()) / 2
	diff := hi.CompressionDistance - lo.CompressionDistance
	ratio := math.Min(diff, avgRest) / avgRest
	return lo, hi, a.Force * ratio, true
}

func (v *Vehicle) applyAntiRoll(axle *axleState) {
	wa, errA := v.Wheel(axle.WheelA)
	wb, errB := v.Wheel(axle.WheelB)
	if errA != nil || errB != nil {
		if !axle.warned {
			v.logger.Warnw("anti-roll axle references a missing wheel, skipping it",
				"wheel_a", axle.WheelA, "wheel_b", axle.WheelB, "wheels", len(v.wheels))
			axle.warned = true
		}
		return
	}
	lo, hi, magnitude, ok := axle.antiRoll(wa, wb)
	if !ok || magnitude == 0 {
		return
	}
	v.body.ApplyForce(lo.DirectionWorld.Mul(magnitude), lo.PositionWorld)
	v.body.ApplyForce(hi.DirectionWorld.Mul(-magnitude), hi.PositionWorld)
}
