package scene

import (
	"github.com/spaghettifunk/anima/engine/core"
	enginemath "github.com/spaghettifunk/anima/engine/math"
	"github.com/spaghettifunk/anima/engine/spectrum"
)

// PackSceneData is the pack pass's single entry point and serialization
// point: it consumes s.Dirty, propagates it across tier dependencies
// (Textures=>Materials, Materials/Meshes=>Shapes, Shapes/Cameras=>Globals),
// and rebuilds every forced tier in that order, writing the result into
// s.Packed. Returns the mask of tiers actually rebuilt and resets s.Dirty.
func (s *Scene) PackSceneData(table *spectrum.Table) DirtyFlags {
	rebuilt := s.Dirty.propagate()
	if rebuilt == DirtyNone {
		return DirtyNone
	}

	if rebuilt.Has(DirtyTextures) {
		packed, pages, err := s.packTextures(table)
		if err != nil {
			core.LogError("pack textures: %v", err)
		} else {
			s.Packed.Textures = packed
			s.Packed.Images = pages
			core.LogDebug("packed %d textures onto %d atlas pages", len(packed), len(pages))
		}
	}

	if rebuilt.Has(DirtyMaterials) {
		s.Packed.Materials = s.packMaterials(table)
		core.LogDebug("packed %d materials", len(s.Packed.Materials))
	}

	if rebuilt.Has(DirtyMeshes) {
		s.Packed.MeshFaces, s.Packed.MeshFaceExtras, s.Packed.MeshNodes = s.packMeshes()
		core.LogDebug("packed %d mesh faces across %d mesh BVH nodes", len(s.Packed.MeshFaces), len(s.Packed.MeshNodes))
	}

	if rebuilt.Has(DirtyShapes) {
		var localBounds []enginemath.Extents3D
		s.Packed.Shapes, localBounds = s.packShapes()
		s.Packed.ShapeNodes = buildTopLevelBVH(s.Packed.Shapes, localBounds)
		core.LogDebug("packed %d shapes into a %d-node top-level BVH", len(s.Packed.Shapes), len(s.Packed.ShapeNodes))
	}

	if rebuilt.Has(DirtyGlobals) {
		s.Packed.Globals = s.packGlobals()
	}

	s.Dirty = DirtyNone
	return rebuilt
}

// packGlobals fills the single globals buffer. SkyboxFrame/Concentration
// default to an identity frame/zero concentration regardless of whether a
// skybox is set, so the GPU consumer's struct shape never changes (see
// SPEC_FULL.md's supplemented-features note on skybox fields).
func (s *Scene) packGlobals() PackedSceneGlobals {
	globals := PackedSceneGlobals{
		SkyboxFrame:        identitySkyboxFrame(),
		SkyboxTextureIndex: PackedTextureIndexNone,
		SkyboxBrightness:   s.SkyboxBrightness,
		ShapeCount:         uint32(len(s.Packed.Shapes)),
		SceneScatterRate:   s.ScatterRate,
	}
	if s.SkyboxTexture != NoRef && s.SkyboxTexture < len(s.Textures) {
		globals.SkyboxTextureIndex = s.Textures[s.SkyboxTexture].PackedTextureIndex
	}
	return globals
}

func identitySkyboxFrame() [3][4]float32 {
	return [3][4]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}
}
