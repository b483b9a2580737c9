package scene

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/anima/engine/math"
)

// Prefab owns a detached entity subtree that can be stamped into the live
// scene tree via InstantiatePrefab, mirroring original_source's prefab list
// and LoadModelAsPrefab wiring (minus the out-of-scope OBJ import itself).
type Prefab struct {
	Name string
	Root *Entity
}

// CreatePrefab registers root (which must not already be attached to the
// live scene tree) as a reusable prefab and returns its index.
func (s *Scene) CreatePrefab(name string, root *Entity) int {
	if name == "" {
		name = "prefab-" + uuid.NewString()
	}
	s.Prefabs = append(s.Prefabs, &Prefab{Name: name, Root: root})
	return len(s.Prefabs) - 1
}

// InstantiatePrefab deep-copies the prefab's subtree and attaches the copy
// under parent, returning the new subtree's root entity.
func (s *Scene) InstantiatePrefab(index int, parent *Entity) *Entity {
	prefab := s.Prefabs[index]
	clone := cloneEntitySubtree(prefab.Root)
	parent.AddChild(clone)
	s.Dirty |= DirtyShapes
	return clone
}

// DestroyPrefab removes the prefab at index. Live instances created via
// InstantiatePrefab are independent copies and are unaffected.
func (s *Scene) DestroyPrefab(index int) {
	if index < 0 || index >= len(s.Prefabs) {
		return
	}
	s.Prefabs = append(s.Prefabs[:index], s.Prefabs[index+1:]...)
}

func cloneEntitySubtree(src *Entity) *Entity {
	transform := math.TransformFromPositionRotationScale(src.Transform.Position, src.Transform.Rotation, src.Transform.Scale)
	clone := &Entity{
		Name:             src.Name,
		Type:             src.Type,
		Active:           src.Active,
		Transform:        transform,
		PackedShapeIndex: NoRef,
	}

	switch p := src.Payload.(type) {
	case *MeshInstancePayload:
		clone.Payload = &MeshInstancePayload{MeshIndex: p.MeshIndex, MaterialIndex: p.MaterialIndex}
	case *ShapePayload:
		clone.Payload = &ShapePayload{MaterialIndex: p.MaterialIndex}
	}

	for _, child := range src.Children {
		clone.AddChild(cloneEntitySubtree(child))
	}
	return clone
}
