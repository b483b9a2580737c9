package scene

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/anima/engine/math"
)

// EntityType discriminates the tagged-variant payload an Entity carries,
// replacing the inheritance hierarchy original_source used for scene nodes.
type EntityType int

const (
	EntityTypeRoot EntityType = iota
	EntityTypeContainer
	EntityTypeCamera
	EntityTypeMeshInstance
	EntityTypePlane
	EntityTypeSphere
	EntityTypeCube
)

func (t EntityType) String() string {
	switch t {
	case EntityTypeRoot:
		return "Root"
	case EntityTypeContainer:
		return "Container"
	case EntityTypeCamera:
		return "Camera"
	case EntityTypeMeshInstance:
		return "MeshInstance"
	case EntityTypePlane:
		return "Plane"
	case EntityTypeSphere:
		return "Sphere"
	case EntityTypeCube:
		return "Cube"
	default:
		panic("unhandled entity type")
	}
}

// isShape reports whether entities of this type emit a PackedShape during
// packing (leaf shapes), as opposed to pure grouping/camera nodes.
func (t EntityType) isShape() bool {
	switch t {
	case EntityTypeMeshInstance, EntityTypePlane, EntityTypeSphere, EntityTypeCube:
		return true
	default:
		return false
	}
}

// MeshInstancePayload is the MeshInstance variant's data: which mesh and
// material it references, both as scene-owned indices (NoRef = none).
type MeshInstancePayload struct {
	MeshIndex     int
	MaterialIndex int
}

// ShapePayload is the variant payload shared by Plane/Sphere/Cube: only a
// material reference, no mesh.
type ShapePayload struct {
	MaterialIndex int
}

// Entity is a node in the scene tree. Exactly one of the variant-specific
// helper accessors (AsMeshInstance etc.) is meaningful, selected by Type.
type Entity struct {
	Name   string
	Type   EntityType
	Active bool
	// Transform's Parent field is kept wired to the parent entity's
	// Transform by AddChild/RemoveChild, so GetWorld() composes the full
	// chain without the packer needing to walk the tree itself.
	Transform *math.Transform
	Children  []*Entity
	Parent    *Entity

	// Payload is *MeshInstancePayload for MeshInstance, *ShapePayload for
	// Plane/Sphere/Cube, and nil for Root/Container/Camera.
	Payload any

	// PackedShapeIndex caches where this entity last landed in ShapePack;
	// meaningless unless Type.isShape().
	PackedShapeIndex int
}

func newEntity(name string, entityType EntityType) *Entity {
	if name == "" {
		name = entityType.String() + "-" + uuid.NewString()
	}
	e := &Entity{
		Name:             name,
		Type:             entityType,
		Active:           true,
		Transform:        math.TransformCreate(),
		PackedShapeIndex: NoRef,
	}
	switch entityType {
	case EntityTypeMeshInstance:
		e.Payload = &MeshInstancePayload{MeshIndex: NoRef, MaterialIndex: NoRef}
	case EntityTypePlane, EntityTypeSphere, EntityTypeCube:
		e.Payload = &ShapePayload{MaterialIndex: NoRef}
	}
	return e
}

// AddChild appends child to e's child list, sets child's parent pointer,
// and wires child.Transform.Parent so world-transform composition follows
// the entity tree automatically.
func (e *Entity) AddChild(child *Entity) {
	child.Parent = e
	child.Transform.Parent = e.Transform
	child.Transform.IsDirty = true
	e.Children = append(e.Children, child)
}

// RemoveChild detaches child from e's child list, if present.
func (e *Entity) RemoveChild(child *Entity) {
	for i, c := range e.Children {
		if c == child {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			child.Parent = nil
			child.Transform.Parent = nil
			child.Transform.IsDirty = true
			return
		}
	}
}

// materialIndex returns the entity's referenced material, or NoRef if the
// entity type carries no material payload.
func (e *Entity) materialIndex() int {
	switch p := e.Payload.(type) {
	case *MeshInstancePayload:
		return p.MaterialIndex
	case *ShapePayload:
		return p.MaterialIndex
	default:
		return NoRef
	}
}

// setMaterialIndex updates the entity's material reference in place; a
// no-op for entity types without a material payload.
func (e *Entity) setMaterialIndex(index int) {
	switch p := e.Payload.(type) {
	case *MeshInstancePayload:
		p.MaterialIndex = index
	case *ShapePayload:
		p.MaterialIndex = index
	}
}

// forEachEntitySubtree visits e and every descendant, regardless of Active,
// in depth-first order.
func forEachEntitySubtree(e *Entity, visit func(*Entity)) {
	if e == nil {
		return
	}
	visit(e)
	for _, c := range e.Children {
		forEachEntitySubtree(c, visit)
	}
}

// forEachEntity visits the live tree rooted at s.Root and every detached
// prefab subtree. Used by reference-scrubbing passes (destroying a texture,
// material or mesh) that must reach every referrer, not just the ones a
// pack pass would traverse.
func (s *Scene) forEachEntity(visit func(*Entity)) {
	forEachEntitySubtree(s.Root, visit)
	for _, prefab := range s.Prefabs {
		forEachEntitySubtree(prefab.Root, visit)
	}
}
