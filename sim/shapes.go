package sim

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/RaggarDK/ArcadeRaycastVehicle/spatialmath"
)

// RampConfig is a box pitched about the world X axis.
type RampConfig struct {
	Center      r3.Vector `json:"center"`
	HalfExtents r3.Vector `json:"half_extents"`
	// Pitch in radians. Positive raises the +Z end.
	Pitch float64 `json:"pitch"`
}

// NewGround returns a horizontal ground plane at height.
func NewGround(height float64) *spatialmath.Plane {
	return spatialmath.NewPlane(r3.Vector{Y: height}, r3.Vector{Y: 1})
}

// NewRamp returns the box described by cfg.
func NewRamp(cfg RampConfig, label string) (*spatialmath.Box, error) {
	pose := spatialmath.NewPose(cfg.Center, spatialmath.QuatFromAxisAngle(r3.Vector{X: -1}, cfg.Pitch))
	return spatialmath.NewBox(pose, cfg.HalfExtents.Mul(2), label)
}

// MeshConfig is static triangle geometry. Each face lists three points in the frame of Center.
type MeshConfig struct {
	Center r3.Vector      `json:"center"`
	Faces  [][3]r3.Vector `json:"faces"`
}

// NewTerrain returns the mesh described by cfg.
func NewTerrain(cfg MeshConfig) (*spatialmath.Mesh, error) {
	if len(cfg.Faces) == 0 {
		return nil, errors.New("mesh has no faces")
	}
	triangles := make([]*spatialmath.Triangle, 0, len(cfg.Faces))
	for i, f := range cfg.Faces {
		tri := spatialmath.NewTriangle(f[0], f[1], f[2])
		if tri.Normal().Norm() == 0 {
			return nil, errors.Errorf("face %d is degenerate", i)
		}
		triangles = append(triangles, tri)
	}
	return spatialmath.NewMesh(spatialmath.NewPoseFromPoint(cfg.Center), triangles), nil
}
