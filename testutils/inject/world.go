package inject

import (
	"github.com/golang/geo/r3"

	"github.com/RaggarDK/ArcadeRaycastVehicle/vehicle"
)

// Raycast records one Raycast call.
type Raycast struct {
	From r3.Vector
	To   r3.Vector
}

// World is an injected physics world. Unset funcs fall back to the embedded World, then to the
// plain fields: no hits, TimeStep and GravityVector.
type World struct {
	vehicle.World
	RaycastFunc       func(from, to r3.Vector) vehicle.RaycastResult
	FixedTimeStepFunc func() float64
	GravityFunc       func() r3.Vector

	TimeStep      float64
	GravityVector r3.Vector
	Raycasts      []Raycast
}

// NewWorld returns a world with the given time step and earth gravity along -Y.
func NewWorld(timeStep float64) *World {
	return &World{TimeStep: timeStep, GravityVector: r3.Vector{Y: -9.81}}
}

// Raycast calls the injected Raycast or the real version.
func (w *World) Raycast(from, to r3.Vector) vehicle.RaycastResult {
	w.Raycasts = append(w.Raycasts, Raycast{From: from, To: to})
	if w.RaycastFunc != nil {
		return w.RaycastFunc(from, to)
	}
	if w.World != nil {
		return w.World.Raycast(from, to)
	}
	return vehicle.RaycastResult{}
}

// FixedTimeStep calls the injected FixedTimeStep or the real version.
func (w *World) FixedTimeStep() float64 {
	if w.FixedTimeStepFunc != nil {
		return w.FixedTimeStepFunc()
	}
	if w.World != nil {
		return w.World.FixedTimeStep()
	}
	return w.TimeStep
}

// Gravity calls the injected Gravity or the real version.
func (w *World) Gravity() r3.Vector {
	if w.GravityFunc != nil {
		return w.GravityFunc()
	}
	if w.World != nil {
		return w.World.Gravity()
	}
	return w.GravityVector
}
