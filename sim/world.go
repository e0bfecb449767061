// Package sim is a small headless physics world for driving a raycast vehicle without an
// external engine: static geometry answering raycasts and box bodies integrated at a fixed step.
// It resolves no contacts of its own; the chassis is held up only by its wheel forces.
package sim

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/RaggarDK/ArcadeRaycastVehicle/logging"
	"github.com/RaggarDK/ArcadeRaycastVehicle/spatialmath"
	"github.com/RaggarDK/ArcadeRaycastVehicle/vehicle"
)

// World holds static shapes and dynamic bodies.
type World struct {
	gravity  r3.Vector
	timeStep float64
	logger   logging.Logger

	shapes []spatialmath.Shape
	bodies []*Body

	steps int
}

// NewWorld returns an empty world.
func NewWorld(gravity r3.Vector, timeStep float64, logger logging.Logger) (*World, error) {
	if timeStep <= 0 {
		return nil, errors.Wrapf(vehicle.ErrInvalidTimeStep, "got %v", timeStep)
	}
	return &World{gravity: gravity, timeStep: timeStep, logger: logger}, nil
}

// AddShape adds static geometry.
func (w *World) AddShape(shape spatialmath.Shape) {
	w.shapes = append(w.shapes, shape)
}

// Shapes returns the static geometry.
func (w *World) Shapes() []spatialmath.Shape {
	return w.shapes
}

// AddBody registers a body to be integrated by Step.
func (w *World) AddBody(body *Body) {
	w.bodies = append(w.bodies, body)
}

// Raycast returns the nearest static hit on the segment from -> to.
func (w *World) Raycast(from, to r3.Vector) vehicle.RaycastResult {
	ray, length := spatialmath.NewRaySegment(from, to)
	if length == 0 {
		return vehicle.RaycastResult{}
	}
	var best spatialmath.RayHit
	found := false
	for _, shape := range w.shapes {
		hit, ok := shape.IntersectRay(ray, length)
		if !ok || (found && hit.Distance >= best.Distance) {
			continue
		}
		best, found = hit, true
	}
	if !found {
		return vehicle.RaycastResult{}
	}
	return vehicle.RaycastResult{Hit: true, Point: best.Point, Normal: best.Normal, Distance: best.Distance}
}

// FixedTimeStep returns the tick duration in seconds.
func (w *World) FixedTimeStep() float64 {
	return w.timeStep
}

// Gravity returns the gravity acceleration.
func (w *World) Gravity() r3.Vector {
	return w.gravity
}

// Step integrates every body by one fixed time step.
func (w *World) Step() {
	for _, b := range w.bodies {
		b.Step(w.timeStep, w.gravity)
	}
	w.steps++
}

// Steps returns the number of completed steps.
func (w *World) Steps() int {
	return w.steps
}

// Time returns the simulated time in seconds.
func (w *World) Time() float64 {
	return float64(w.steps) * w.timeStep
}
