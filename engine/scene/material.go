package scene

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/anima/engine/math"
)

// NoRef is the scene-level "no reference" sentinel used by every int index
// a scene object holds into another owned collection (textures, materials,
// meshes). Distinct from the packed-layout sentinel PackedTextureIndexNone,
// which only appears once an object has actually been packed.
const NoRef = -1

// NoTexture is NoRef under the name used at material-texture call sites.
const NoTexture = NoRef

// PackedMaterialIndexFallback is the reserved fallback-material slot: index
// 0 of the packed material table, used whenever an entity's Material is nil.
const PackedMaterialIndexFallback uint32 = 0

// Material carries the full OpenPBR attribute bundle original_source's
// openpbr.h declares, per SPEC_FULL.md's supplemented-features note: every
// field is packed regardless of whether a given scene exercises it, so the
// GPU-side struct layout never depends on which features happen to be used.
type Material struct {
	Name string

	BaseWeight        float32
	BaseColor         math.Vec3
	BaseColorTexture  int
	Metalness         float32
	DiffuseRoughness  float32

	SpecularWeight      float32
	SpecularColor       math.Vec3
	SpecularIOR         float32
	SpecularRoughness   float32
	SpecularAnisotropy  float32
	SpecularTexture     int

	TransmissionWeight            float32
	TransmissionColor             math.Vec3
	TransmissionDepth             float32
	TransmissionScatter           math.Vec3
	TransmissionScatterAnisotropy float32
	TransmissionDispersionAbbeNumber float32
	TransmissionDispersionScale      float32

	CoatWeight     float32
	CoatColor      math.Vec3
	CoatRoughness  float32
	CoatAnisotropy float32
	CoatIOR        float32
	CoatDarkening  float32

	EmissionColor     math.Vec3
	EmissionTexture   int
	EmissionLuminance float32

	GeometryOpacity  float32
	ThinWalled       bool
	LayerBounceLimit int

	PackedMaterialIndex uint32
}

// NewMaterial returns a material seeded with original_source's OpenPBR
// defaults: fully opaque dielectric base, no transmission, no coat, no
// emission, non-zero dispersion scale (so the dispersion ratio guard in
// the packer never divides by the undefined DispersionScale=0 case on a
// freshly-created material).
func NewMaterial(name string) *Material {
	if name == "" {
		name = "material-" + uuid.NewString()
	}
	return &Material{
		Name:                             name,
		BaseWeight:                       1,
		BaseColor:                        math.Vec3{X: 0.8, Y: 0.8, Z: 0.8},
		BaseColorTexture:                 NoTexture,
		SpecularWeight:                   1,
		SpecularColor:                    math.Vec3{X: 1, Y: 1, Z: 1},
		SpecularIOR:                      1.5,
		SpecularTexture:                  NoTexture,
		TransmissionDispersionAbbeNumber: 0,
		TransmissionDispersionScale:      20.0,
		CoatIOR:                          1.5,
		EmissionTexture:                  NoTexture,
		GeometryOpacity:                  1,
		LayerBounceLimit:                 16,
		PackedMaterialIndex:              PackedMaterialIndexFallback,
	}
}

// CreateMaterial appends a default-constructed material and returns its index.
func (s *Scene) CreateMaterial(name string) int {
	s.Materials = append(s.Materials, NewMaterial(name))
	s.Dirty |= DirtyMaterials
	return len(s.Materials) - 1
}

// DestroyMaterial removes the material at index, scrubbing every entity
// reference to it (falling back to the reserved fallback slot) before
// deletion.
func (s *Scene) DestroyMaterial(index int) {
	if index < 0 || index >= len(s.Materials) {
		return
	}
	s.forEachEntity(func(e *Entity) {
		if e.materialIndex() == index {
			e.setMaterialIndex(NoRef)
		}
	})
	s.Materials = append(s.Materials[:index], s.Materials[index+1:]...)
	s.forEachEntity(func(e *Entity) {
		if m := e.materialIndex(); m > index {
			e.setMaterialIndex(m - 1)
		}
	})
	s.Dirty |= DirtyMaterials | DirtyShapes
}

func (m *Material) scrubTextureReference(textureIndex int) {
	if m.BaseColorTexture == textureIndex {
		m.BaseColorTexture = NoTexture
	}
	if m.SpecularTexture == textureIndex {
		m.SpecularTexture = NoTexture
	}
	if m.EmissionTexture == textureIndex {
		m.EmissionTexture = NoTexture
	}
}

func (m *Material) shiftTextureReferences(removed int) {
	shift := func(ref int) int {
		if ref > removed {
			return ref - 1
		}
		return ref
	}
	m.BaseColorTexture = shift(m.BaseColorTexture)
	m.SpecularTexture = shift(m.SpecularTexture)
	m.EmissionTexture = shift(m.EmissionTexture)
}
