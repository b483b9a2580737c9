package scene

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/anima/engine/math"
)

// MeshFace is one triangle: three vertex positions plus their per-vertex
// attributes, and a cached centroid used by the SAH builder.
type MeshFace struct {
	Positions [3]math.Vec3
	Normals   [3]math.Vec3
	UVs       [3]math.Vec2
	Centroid  math.Vec3
}

func (f *MeshFace) bounds() math.Extents3D {
	b := math.EmptyExtents3D()
	for _, p := range f.Positions {
		b = b.Grow(p)
	}
	return b
}

// MeshNode is one node of a mesh's BVH: a leaf when FaceEndIndex > 0 (faces
// [FaceBeginOrNodeIndex, FaceEndIndex) belong to it), otherwise internal
// (FaceBeginOrNodeIndex holds the left child index; the right child is
// always left+1).
type MeshNode struct {
	Bounds               math.Extents3D
	FaceBeginOrNodeIndex int
	FaceEndIndex         int
}

func (n MeshNode) isLeaf() bool { return n.FaceEndIndex > 0 }

// Mesh owns a face list (triangles, reordered in place by the BVH builder)
// and the node list the builder produces.
type Mesh struct {
	Name  string
	Faces []MeshFace
	Nodes []MeshNode
	Depth int

	PackedRootNodeIndex uint32
}

// NewMesh constructs a mesh from a flat triangle list (position/normal/uv
// per vertex, three vertices per face) and immediately builds its BVH.
func NewMesh(name string, faces []MeshFace) *Mesh {
	if name == "" {
		name = "mesh-" + uuid.NewString()
	}
	for i := range faces {
		faces[i].Centroid = faces[i].Positions[0].Add(faces[i].Positions[1]).Add(faces[i].Positions[2]).MulScalar(1.0 / 3.0)
	}
	m := &Mesh{Name: name, Faces: faces}
	buildMeshBVH(m)
	return m
}

// CreateMesh appends a new mesh to the scene and returns its index.
func (s *Scene) CreateMesh(name string, faces []MeshFace) int {
	s.Meshes = append(s.Meshes, NewMesh(name, faces))
	s.Dirty |= DirtyMeshes
	return len(s.Meshes) - 1
}

// DestroyMesh removes the mesh at index, scrubbing every MeshInstance
// entity referencing it before deletion.
func (s *Scene) DestroyMesh(index int) {
	if index < 0 || index >= len(s.Meshes) {
		return
	}
	s.forEachEntity(func(e *Entity) {
		if mi, ok := e.Payload.(*MeshInstancePayload); ok {
			if mi.MeshIndex == index {
				mi.MeshIndex = NoRef
			} else if mi.MeshIndex > index {
				mi.MeshIndex--
			}
		}
	})
	s.Meshes = append(s.Meshes[:index], s.Meshes[index+1:]...)
	s.Dirty |= DirtyMeshes | DirtyShapes
}
