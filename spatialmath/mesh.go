package spatialmath

// Mesh is static geometry made of triangles expressed in the frame of its pose.
type Mesh struct {
	pose      Pose
	triangles []*Triangle
}

// NewMesh returns a mesh placing the given local-frame triangles at pose.
func NewMesh(pose Pose, triangles []*Triangle) *Mesh {
	return &Mesh{
		pose:      pose,
		triangles: triangles,
	}
}

// Triangles returns the triangles in the mesh frame.
func (m *Mesh) Triangles() []*Triangle {
	return m.triangles
}

// IntersectRay returns the nearest triangle hit. The ray is moved into the mesh frame
// rather than moving every triangle out of it.
func (m *Mesh) IntersectRay(ray Ray, maxDistance float64) (RayHit, bool) {
	local := Ray{
		Origin:    m.pose.InverseTransformPoint(ray.Origin),
		Direction: m.pose.InverseTransformNormal(ray.Direction),
	}
	var best RayHit
	found := false
	for _, tri := range m.triangles {
		hit, ok := tri.IntersectRay(local, maxDistance)
		if !ok || (found && hit.Distance >= best.Distance) {
			continue
		}
		best = hit
		found = true
	}
	if !found {
		return RayHit{}, false
	}
	return RayHit{
		Distance: best.Distance,
		Point:    m.pose.TransformPoint(best.Point),
		Normal:   m.pose.TransformNormal(best.Normal),
	}, true
}
