package scene

import (
	"github.com/spaghettifunk/anima/engine/atlas"
	"github.com/spaghettifunk/anima/engine/math"
)

// The packed types below mirror the GPU's std430 layout exactly: field
// order and padding are load-bearing, not cosmetic. packed_layout_test.go
// asserts sizes and offsets with unsafe.Sizeof/unsafe.Offsetof for every
// type below except PackedMaterial, so a careless reorder fails the build's
// test suite rather than corrupting a GPU buffer.

// PackedTransform carries both the forward and inverse world matrices so
// the tracer can map a world-space ray into shape-local space without
// inverting per intersection test.
type PackedTransform struct {
	To   math.Mat4
	From math.Mat4
}

const sizeofPackedTransform = 128

// PackedTexture is one atlas placement: which page, and the half-pixel-
// inset UV rectangle within it.
type PackedTexture struct {
	AtlasMin        math.Vec2
	AtlasMax        math.Vec2
	AtlasImageIndex uint32
	Type            uint32
	Flags           uint32
	Pad             uint32
}

const sizeofPackedTexture = 32

// TextureFlagFilterNearest marks a packed texture for nearest-neighbor
// sampling instead of bilinear.
const TextureFlagFilterNearest uint32 = 1 << 0

// PackedMaterial is the flattened OpenPBR attribute bundle, colors already
// upsampled to spectral coefficients by the spectrum table.
type PackedMaterial struct {
	BaseWeight       float32
	BaseColor        math.Vec3
	BaseColorTexture uint32
	Metalness        float32
	DiffuseRoughness float32

	SpecularWeight     float32
	SpecularColor      math.Vec3
	SpecularIOR        float32
	SpecularRoughness  float32
	SpecularAnisotropy float32
	SpecularTexture    uint32

	TransmissionWeight            float32
	TransmissionColor             math.Vec3
	TransmissionDepth             float32
	TransmissionScatter           math.Vec3
	TransmissionScatterAnisotropy float32
	TransmissionDispersionRatio   float32

	CoatWeight     float32
	CoatColor      math.Vec3
	CoatRoughness  float32
	CoatAnisotropy float32
	CoatIOR        float32
	CoatDarkening  float32

	EmissionColor     math.Vec3
	EmissionTexture   uint32
	EmissionLuminance float32

	GeometryOpacity  float32
	ThinWalled       uint32
	LayerBounceLimit uint32
}

// Shape type discriminants, in the same order as the shape-bearing EntityType
// variants (the numeric values differ).
const (
	PackedShapeTypeMeshInstance uint32 = iota
	PackedShapeTypePlane
	PackedShapeTypeSphere
	PackedShapeTypeCube
)

// MeshRootNodeIndexNone marks a PackedShape that is not a mesh instance.
const MeshRootNodeIndexNone uint32 = 0xFFFFFFFF

// PackedShape is one instance in the flat shape list the tracer and the
// top-level BVH both index into.
type PackedShape struct {
	Type              uint32
	MaterialIndex     uint32
	MeshRootNodeIndex uint32
	Pad               uint32
	Transform         PackedTransform
}

const sizeofPackedShape = 144

// ShapeIndexNone marks a PackedShapeNode as an internal node (it has no
// single shape of its own).
const ShapeIndexNone uint32 = 0xFFFFFFFF

// PackedShapeNode is one node of the top-level BVH. Leaves encode
// ShapeIndex and have ChildNodeIndices == 0; internal nodes pack two
// 16-bit child indices into ChildNodeIndices and set ShapeIndex = none.
type PackedShapeNode struct {
	Min              math.Vec3
	ChildNodeIndices uint32
	Max              math.Vec3
	ShapeIndex       uint32
}

const sizeofPackedShapeNode = 32

// PackedMeshFace is one triangle: raw vertex positions (needed directly by
// Möller-Trumbore) plus indices into the mesh's vertex-extra array for
// shading attributes (normal, uv).
type PackedMeshFace struct {
	P0    math.Vec3
	Vidx0 uint32
	P1    math.Vec3
	Vidx1 uint32
	P2    math.Vec3
	Vidx2 uint32
}

const sizeofPackedMeshFace = 48

// PackedMeshVertex is the oct-encoded normal and half-float UV for one
// mesh vertex, indexed by a PackedMeshFace's Vidx fields.
type PackedMeshVertex struct {
	PackedNormal uint32
	PackedUV     uint32
}

const sizeofPackedMeshVertex = 8

// PackedMeshNode is one node of a mesh's BVH. Leaves set FaceEndIndex > 0
// and store the face range's start in FaceBeginOrNodeIndex; internal nodes
// set FaceEndIndex = 0 and store the left child's index (right = left+1)
// in FaceBeginOrNodeIndex.
type PackedMeshNode struct {
	Min                  math.Vec3
	FaceBeginOrNodeIndex uint32
	Max                  math.Vec3
	FaceEndIndex         uint32
}

const sizeofPackedMeshNode = 32

// PackedSceneGlobals is the single globals buffer, uploaded whenever the
// Globals dirty bit is set. SkyboxFrame is carried std430-style: a mat3
// stored as three vec4-padded columns.
type PackedSceneGlobals struct {
	SkyboxFrame         [3][4]float32
	SkyboxConcentration float32
	SkyboxBrightness    float32
	SkyboxTextureIndex  uint32
	ShapeCount          uint32
	SceneScatterRate    float32
	_                   [3]float32 // pad struct to a 16-byte multiple
}

const sizeofPackedSceneGlobals = 80

// PackedFrame holds every tier's packed output plus the rasterized atlas
// pages, the single structure handed to the Uploader.
type PackedFrame struct {
	Textures       []PackedTexture
	Materials      []PackedMaterial
	Shapes         []PackedShape
	ShapeNodes     []PackedShapeNode
	MeshFaces      []PackedMeshFace
	MeshFaceExtras []PackedMeshVertex
	MeshNodes      []PackedMeshNode
	Globals        PackedSceneGlobals
	Images         []*atlas.Page
}
