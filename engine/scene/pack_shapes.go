package scene

import enginemath "github.com/spaghettifunk/anima/engine/math"

// planeSlabHalfExtent and planeSlabHalfThickness encode a Plane's local
// bounds as a thin, near-infinite slab in the XY plane, since a Plane has no
// finite local-space bounds of its own.
const (
	planeSlabHalfExtent    = 1e9
	planeSlabHalfThickness = 1e-4
)

// packShapes depth-first traverses the live scene tree (inactive subtrees
// skipped entirely), emitting one PackedShape per leaf shape entity with its
// composed world transform, and records each entity's PackedShapeIndex.
// Returns the packed shapes alongside each shape's local-space bounds
// (needed by the top-level BVH builder, which transforms them through
// Transform.To rather than re-deriving them).
func (s *Scene) packShapes() ([]PackedShape, []enginemath.Extents3D) {
	var shapes []PackedShape
	var localBounds []enginemath.Extents3D

	var walk func(e *Entity)
	walk = func(e *Entity) {
		if !e.Active {
			return
		}
		if e.Type.isShape() {
			if shape, bounds, ok := s.packShapeEntity(e); ok {
				e.PackedShapeIndex = len(shapes)
				shapes = append(shapes, shape)
				localBounds = append(localBounds, bounds)
			} else {
				e.PackedShapeIndex = NoRef
			}
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	walk(s.Root)

	return shapes, localBounds
}

// packShapeEntity builds the PackedShape for a single leaf shape entity.
// Returns ok=false for a MeshInstance with no mesh reference, which is
// skipped silently rather than emitting a dangling shape.
func (s *Scene) packShapeEntity(e *Entity) (PackedShape, enginemath.Extents3D, bool) {
	world := e.Transform.GetWorld()
	to := world
	from := world.Inverse()

	materialIndex := PackedMaterialIndexFallback
	if m := e.materialIndex(); m != NoRef {
		materialIndex = uint32(m)
	}

	shape := PackedShape{
		MaterialIndex:     materialIndex,
		MeshRootNodeIndex: MeshRootNodeIndexNone,
		Transform:         PackedTransform{To: to, From: from},
	}

	var bounds enginemath.Extents3D
	switch e.Type {
	case EntityTypeMeshInstance:
		payload := e.Payload.(*MeshInstancePayload)
		if payload.MeshIndex == NoRef || payload.MeshIndex >= len(s.Meshes) {
			return PackedShape{}, enginemath.Extents3D{}, false
		}
		mesh := s.Meshes[payload.MeshIndex]
		shape.Type = PackedShapeTypeMeshInstance
		shape.MeshRootNodeIndex = mesh.PackedRootNodeIndex
		if len(mesh.Nodes) > 0 {
			bounds = mesh.Nodes[0].Bounds
		}
	case EntityTypePlane:
		shape.Type = PackedShapeTypePlane
		bounds = enginemath.Extents3D{
			Min: enginemath.Vec3{X: -planeSlabHalfExtent, Y: -planeSlabHalfExtent, Z: -planeSlabHalfThickness},
			Max: enginemath.Vec3{X: planeSlabHalfExtent, Y: planeSlabHalfExtent, Z: planeSlabHalfThickness},
		}
	case EntityTypeSphere:
		shape.Type = PackedShapeTypeSphere
		bounds = enginemath.Extents3D{Min: enginemath.Vec3{X: -1, Y: -1, Z: -1}, Max: enginemath.Vec3{X: 1, Y: 1, Z: 1}}
	case EntityTypeCube:
		shape.Type = PackedShapeTypeCube
		bounds = enginemath.Extents3D{Min: enginemath.Vec3{X: -1, Y: -1, Z: -1}, Max: enginemath.Vec3{X: 1, Y: 1, Z: 1}}
	}

	return shape, bounds, true
}
