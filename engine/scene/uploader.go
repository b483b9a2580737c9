package scene

import "github.com/spaghettifunk/anima/engine/atlas"

// Uploader is the boundary to the external GPU compute/render collaborator.
// PackSceneData never calls an Uploader directly - the command entry point
// owns the uploader and decides which methods to call based on the dirty
// mask PackSceneData returns, so a pack pass with no GPU consumer attached
// (as in a test, or the CPU-only Tracer) never has to know one exists.
type Uploader interface {
	UploadTextureTable(textures []PackedTexture)
	UploadMaterialTable(materials []PackedMaterial)
	UploadShapeTable(shapes []PackedShape)
	UploadShapeNodeTable(nodes []PackedShapeNode)
	UploadMeshFaces(faces []PackedMeshFace)
	UploadMeshFaceExtras(extras []PackedMeshVertex)
	UploadMeshNodes(nodes []PackedMeshNode)
	UploadGlobals(globals PackedSceneGlobals)
	UploadAtlasImage(pageIndex int, page *atlas.Page)
}

// UploadPackedFrame calls the subset of Uploader methods whose tier is set
// in rebuilt, the mask PackSceneData returned. Atlas images are re-uploaded
// in full whenever Textures rebuilds, since individual page diffing is not
// worth the bookkeeping at this scale.
func UploadPackedFrame(u Uploader, frame *PackedFrame, rebuilt DirtyFlags) {
	if rebuilt.Has(DirtyTextures) {
		u.UploadTextureTable(frame.Textures)
		for i, page := range frame.Images {
			u.UploadAtlasImage(i, page)
		}
	}
	if rebuilt.Has(DirtyMaterials) {
		u.UploadMaterialTable(frame.Materials)
	}
	if rebuilt.Has(DirtyMeshes) {
		u.UploadMeshFaces(frame.MeshFaces)
		u.UploadMeshFaceExtras(frame.MeshFaceExtras)
		u.UploadMeshNodes(frame.MeshNodes)
	}
	if rebuilt.Has(DirtyShapes) {
		u.UploadShapeTable(frame.Shapes)
		u.UploadShapeNodeTable(frame.ShapeNodes)
	}
	if rebuilt.Has(DirtyGlobals) {
		u.UploadGlobals(frame.Globals)
	}
}
