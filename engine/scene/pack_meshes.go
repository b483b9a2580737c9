package scene

// packMeshes flattens every mesh's face list, per-vertex extras (packed
// normal/UV) and BVH node list into the scene's single global arrays,
// offsetting each mesh's locally-relative indices (face ranges, child node
// indices) by where that mesh landed in the global arrays. Mesh.
// PackedRootNodeIndex records the mesh's root node's position in the global
// node array so the scene packer can wire a MeshInstance's PackedShape to
// the right BVH root.
func (s *Scene) packMeshes() ([]PackedMeshFace, []PackedMeshVertex, []PackedMeshNode) {
	var faces []PackedMeshFace
	var extras []PackedMeshVertex
	var nodes []PackedMeshNode

	for _, m := range s.Meshes {
		faceOffset := len(faces)
		nodeOffset := len(nodes)
		m.PackedRootNodeIndex = uint32(nodeOffset)

		for _, f := range m.Faces {
			v0 := uint32(len(extras))
			extras = append(extras,
				PackedMeshVertex{PackedNormal: PackUnitVector(f.Normals[0]), PackedUV: PackUV(f.UVs[0])},
				PackedMeshVertex{PackedNormal: PackUnitVector(f.Normals[1]), PackedUV: PackUV(f.UVs[1])},
				PackedMeshVertex{PackedNormal: PackUnitVector(f.Normals[2]), PackedUV: PackUV(f.UVs[2])},
			)
			faces = append(faces, PackedMeshFace{
				P0: f.Positions[0], Vidx0: v0,
				P1: f.Positions[1], Vidx1: v0 + 1,
				P2: f.Positions[2], Vidx2: v0 + 2,
			})
		}

		for _, n := range m.Nodes {
			packed := PackedMeshNode{
				Min: n.Bounds.Min,
				Max: n.Bounds.Max,
			}
			if n.isLeaf() {
				packed.FaceBeginOrNodeIndex = uint32(faceOffset + n.FaceBeginOrNodeIndex)
				packed.FaceEndIndex = uint32(faceOffset + n.FaceEndIndex)
			} else {
				packed.FaceBeginOrNodeIndex = uint32(nodeOffset + n.FaceBeginOrNodeIndex)
				packed.FaceEndIndex = 0
			}
			nodes = append(nodes, packed)
		}
	}

	return faces, extras, nodes
}
