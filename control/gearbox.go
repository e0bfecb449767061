package control

import (
	"math"
)

// Gearbox splits the speed range into equal bands, one per gear.
type Gearbox struct {
	Gears    int
	MaxSpeed float64
}

// Gear returns the gear for speed and how far through that gear's band it is, in [0, 1).
func (g Gearbox) Gear(speed float64) (int, float64) {
	if g.Gears <= 0 || g.MaxSpeed <= 0 {
		return 0, 0
	}
	progression := math.Mod(math.Min(math.Abs(speed), g.MaxSpeed)/(g.MaxSpeed/float64(g.Gears)), g.MaxSpeed)
	gear := math.Floor(progression)
	return int(gear), progression - gear
}

// RevRate is the engine note playback rate: it climbs through each gear and drops on a shift.
func (g Gearbox) RevRate(speed float64) float64 {
	if g.Gears <= 0 {
		return 1
	}
	gear, progress := g.Gear(speed)
	return float64(gear)/float64(g.Gears) + 1.2*progress
}
