// Package trace implements the CPU ray/scene intersection service used for
// picking: a flat scan of the packed shape list (the top-level BVH is
// currently only consumed by the GPU uploader; the CPU path intentionally
// does a linear scan instead of descending it - a known, documented
// asymmetry that leaves the top-level BVH free for a future GPU-side
// descent without changing Trace's observable behavior).
package trace

import enginemath "github.com/spaghettifunk/anima/engine/math"

// Hit describes the closest intersection found so far. PrimitiveCoordinates
// carries shape-specific local coordinates: triangle barycentrics (w,u,v)
// summing to 1 for a MeshInstance, (fractional u, fractional v, 0) for a
// Plane, and the shape-local hit point for Sphere/Cube.
type Hit struct {
	Time                 float32
	ShapeType            uint32
	ShapeIndex           uint32
	PrimitiveIndex       uint32
	PrimitiveCoordinates enginemath.Vec3
}
