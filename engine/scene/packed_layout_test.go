package scene

import (
	"testing"
	"unsafe"
)

// These assertions exist because the packed structs mirror a GPU std430
// layout: a field reorder that compiles fine in Go would silently corrupt
// every buffer the Uploader receives.

func TestPackedTransformLayout(t *testing.T) {
	var v PackedTransform
	if got := unsafe.Sizeof(v); got != sizeofPackedTransform {
		t.Errorf("sizeof(PackedTransform) = %d, want %d", got, sizeofPackedTransform)
	}
	if off := unsafe.Offsetof(v.To); off != 0 {
		t.Errorf("PackedTransform.To offset = %d, want 0", off)
	}
	if off := unsafe.Offsetof(v.From); off != 64 {
		t.Errorf("PackedTransform.From offset = %d, want 64", off)
	}
}

func TestPackedTextureLayout(t *testing.T) {
	var v PackedTexture
	if got := unsafe.Sizeof(v); got != sizeofPackedTexture {
		t.Errorf("sizeof(PackedTexture) = %d, want %d", got, sizeofPackedTexture)
	}
	assertOffset(t, "AtlasMin", unsafe.Offsetof(v.AtlasMin), 0)
	assertOffset(t, "AtlasMax", unsafe.Offsetof(v.AtlasMax), 8)
	assertOffset(t, "AtlasImageIndex", unsafe.Offsetof(v.AtlasImageIndex), 16)
	assertOffset(t, "Type", unsafe.Offsetof(v.Type), 20)
	assertOffset(t, "Flags", unsafe.Offsetof(v.Flags), 24)
	assertOffset(t, "Pad", unsafe.Offsetof(v.Pad), 28)
}

func TestPackedShapeLayout(t *testing.T) {
	var v PackedShape
	if got := unsafe.Sizeof(v); got != sizeofPackedShape {
		t.Errorf("sizeof(PackedShape) = %d, want %d", got, sizeofPackedShape)
	}
	assertOffset(t, "Type", unsafe.Offsetof(v.Type), 0)
	assertOffset(t, "MaterialIndex", unsafe.Offsetof(v.MaterialIndex), 4)
	assertOffset(t, "MeshRootNodeIndex", unsafe.Offsetof(v.MeshRootNodeIndex), 8)
	assertOffset(t, "Pad", unsafe.Offsetof(v.Pad), 12)
	assertOffset(t, "Transform", unsafe.Offsetof(v.Transform), 16)
}

func TestPackedShapeNodeLayout(t *testing.T) {
	var v PackedShapeNode
	if got := unsafe.Sizeof(v); got != sizeofPackedShapeNode {
		t.Errorf("sizeof(PackedShapeNode) = %d, want %d", got, sizeofPackedShapeNode)
	}
	assertOffset(t, "Min", unsafe.Offsetof(v.Min), 0)
	assertOffset(t, "ChildNodeIndices", unsafe.Offsetof(v.ChildNodeIndices), 12)
	assertOffset(t, "Max", unsafe.Offsetof(v.Max), 16)
	assertOffset(t, "ShapeIndex", unsafe.Offsetof(v.ShapeIndex), 28)
}

func TestPackedMeshFaceLayout(t *testing.T) {
	var v PackedMeshFace
	if got := unsafe.Sizeof(v); got != sizeofPackedMeshFace {
		t.Errorf("sizeof(PackedMeshFace) = %d, want %d", got, sizeofPackedMeshFace)
	}
	assertOffset(t, "P0", unsafe.Offsetof(v.P0), 0)
	assertOffset(t, "Vidx0", unsafe.Offsetof(v.Vidx0), 12)
	assertOffset(t, "P1", unsafe.Offsetof(v.P1), 16)
	assertOffset(t, "Vidx1", unsafe.Offsetof(v.Vidx1), 28)
	assertOffset(t, "P2", unsafe.Offsetof(v.P2), 32)
	assertOffset(t, "Vidx2", unsafe.Offsetof(v.Vidx2), 44)
}

func TestPackedMeshVertexLayout(t *testing.T) {
	var v PackedMeshVertex
	if got := unsafe.Sizeof(v); got != sizeofPackedMeshVertex {
		t.Errorf("sizeof(PackedMeshVertex) = %d, want %d", got, sizeofPackedMeshVertex)
	}
	assertOffset(t, "PackedNormal", unsafe.Offsetof(v.PackedNormal), 0)
	assertOffset(t, "PackedUV", unsafe.Offsetof(v.PackedUV), 4)
}

func TestPackedMeshNodeLayout(t *testing.T) {
	var v PackedMeshNode
	if got := unsafe.Sizeof(v); got != sizeofPackedMeshNode {
		t.Errorf("sizeof(PackedMeshNode) = %d, want %d", got, sizeofPackedMeshNode)
	}
	assertOffset(t, "Min", unsafe.Offsetof(v.Min), 0)
	assertOffset(t, "FaceBeginOrNodeIndex", unsafe.Offsetof(v.FaceBeginOrNodeIndex), 12)
	assertOffset(t, "Max", unsafe.Offsetof(v.Max), 16)
	assertOffset(t, "FaceEndIndex", unsafe.Offsetof(v.FaceEndIndex), 28)
}

func TestPackedSceneGlobalsLayout(t *testing.T) {
	var v PackedSceneGlobals
	if got := unsafe.Sizeof(v); got != sizeofPackedSceneGlobals {
		t.Errorf("sizeof(PackedSceneGlobals) = %d, want %d", got, sizeofPackedSceneGlobals)
	}
	assertOffset(t, "SkyboxFrame", unsafe.Offsetof(v.SkyboxFrame), 0)
	assertOffset(t, "SkyboxConcentration", unsafe.Offsetof(v.SkyboxConcentration), 48)
	assertOffset(t, "SkyboxBrightness", unsafe.Offsetof(v.SkyboxBrightness), 52)
	assertOffset(t, "SkyboxTextureIndex", unsafe.Offsetof(v.SkyboxTextureIndex), 56)
	assertOffset(t, "ShapeCount", unsafe.Offsetof(v.ShapeCount), 60)
	assertOffset(t, "SceneScatterRate", unsafe.Offsetof(v.SceneScatterRate), 64)
}

func assertOffset(t *testing.T, field string, got, want uintptr) {
	t.Helper()
	if got != want {
		t.Errorf("offset of %s = %d, want %d", field, got, want)
	}
}
