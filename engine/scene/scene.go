package scene

import (
	"github.com/spaghettifunk/anima/engine/core"
)

// Scene owns every collection a packed frame is built from: the entity
// tree rooted at Root, and the Textures/Materials/Meshes/Prefabs lists.
// There is exactly one logical writer (the editor frame loop); see
// SPEC_FULL.md's concurrency model for the single-writer invariant this
// type leans on.
type Scene struct {
	Root *Entity

	Textures  []*Texture
	Materials []*Material
	Meshes    []*Mesh
	Prefabs   []*Prefab

	SkyboxTexture    int
	SkyboxBrightness float32
	ScatterRate      float32

	AtlasPageSize int

	Dirty DirtyFlags

	Packed PackedFrame
}

// New constructs an empty scene: a Root entity, no skybox, and the
// reserved fallback material at index 0 so PackedMaterialIndexFallback is
// always a valid slot.
func New(cfg *core.SceneConfig) *Scene {
	if cfg == nil {
		cfg = core.DefaultSceneConfig()
	}
	s := &Scene{
		Root:             newEntity("Root", EntityTypeRoot),
		SkyboxTexture:    NoRef,
		SkyboxBrightness: 1,
		ScatterRate:      cfg.DefaultScatterRate,
		AtlasPageSize:    cfg.AtlasPageSize,
		Dirty:            DirtyAll,
	}
	s.CreateMaterial("fallback")
	return s
}

// CreateContainer adds an empty grouping entity under parent (Root if nil).
func (s *Scene) CreateContainer(name string, parent *Entity) *Entity {
	e := newEntity(name, EntityTypeContainer)
	s.attach(e, parent)
	return e
}

// CreateCamera adds a camera entity under parent (Root if nil). Cameras do
// not emit a PackedShape; they only affect Globals via the Cameras dirty
// bit.
func (s *Scene) CreateCamera(name string, parent *Entity) *Entity {
	e := newEntity(name, EntityTypeCamera)
	s.attach(e, parent)
	s.Dirty |= DirtyCameras
	return e
}

// CreateMeshInstance adds a MeshInstance entity referencing meshIndex and
// materialIndex (NoRef for either is valid; a nil mesh reference is
// skipped silently at pack time).
func (s *Scene) CreateMeshInstance(name string, parent *Entity, meshIndex, materialIndex int) *Entity {
	e := newEntity(name, EntityTypeMeshInstance)
	e.Payload = &MeshInstancePayload{MeshIndex: meshIndex, MaterialIndex: materialIndex}
	s.attach(e, parent)
	s.Dirty |= DirtyShapes
	return e
}

// createAnalyticShape is the shared constructor for Plane/Sphere/Cube.
func (s *Scene) createAnalyticShape(name string, entityType EntityType, parent *Entity, materialIndex int) *Entity {
	e := newEntity(name, entityType)
	e.Payload = &ShapePayload{MaterialIndex: materialIndex}
	s.attach(e, parent)
	s.Dirty |= DirtyShapes
	return e
}

func (s *Scene) CreatePlane(name string, parent *Entity, materialIndex int) *Entity {
	return s.createAnalyticShape(name, EntityTypePlane, parent, materialIndex)
}

func (s *Scene) CreateSphere(name string, parent *Entity, materialIndex int) *Entity {
	return s.createAnalyticShape(name, EntityTypeSphere, parent, materialIndex)
}

func (s *Scene) CreateCube(name string, parent *Entity, materialIndex int) *Entity {
	return s.createAnalyticShape(name, EntityTypeCube, parent, materialIndex)
}

func (s *Scene) attach(e *Entity, parent *Entity) {
	if parent == nil {
		parent = s.Root
	}
	parent.AddChild(e)
}

// DestroyEntity detaches e from its parent. Referenced meshes/materials/
// textures are untouched; only the entity itself (and its subtree) is
// removed from the live tree.
func (s *Scene) DestroyEntity(e *Entity) {
	if e.Parent != nil {
		e.Parent.RemoveChild(e)
	}
	s.Dirty |= DirtyShapes
}
