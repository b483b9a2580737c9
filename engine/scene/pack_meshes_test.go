package scene

import (
	"testing"

	enginemath "github.com/spaghettifunk/anima/engine/math"
)

func triangleFace(ox float32) MeshFace {
	return MeshFace{
		Positions: [3]enginemath.Vec3{
			{X: ox + 0, Y: 0, Z: 0},
			{X: ox + 1, Y: 0, Z: 0},
			{X: ox + 0, Y: 1, Z: 0},
		},
		Normals: [3]enginemath.Vec3{
			{X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1},
		},
		UVs: [3]enginemath.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
	}
}

func TestPackMeshesOffsetsFacesAndNodesAcrossMeshes(t *testing.T) {
	s := newTestScene()
	s.CreateMesh("first", []MeshFace{triangleFace(0), triangleFace(10)})
	s.CreateMesh("second", []MeshFace{triangleFace(20)})

	faces, extras, nodes := s.packMeshes()

	if len(faces) != 3 {
		t.Fatalf("len(faces) = %d, want 3", len(faces))
	}
	if len(extras) != 9 {
		t.Fatalf("len(extras) = %d, want 9 (3 vertices per face)", len(extras))
	}

	firstMesh, secondMesh := s.Meshes[0], s.Meshes[1]
	if firstMesh.PackedRootNodeIndex != 0 {
		t.Errorf("first mesh PackedRootNodeIndex = %d, want 0", firstMesh.PackedRootNodeIndex)
	}
	if int(secondMesh.PackedRootNodeIndex) != len(firstMesh.Nodes) {
		t.Errorf("second mesh PackedRootNodeIndex = %d, want %d (first mesh's node count)",
			secondMesh.PackedRootNodeIndex, len(firstMesh.Nodes))
	}

	// Every leaf's face range must stay inside the global faces slice.
	for i, n := range nodes {
		if n.FaceEndIndex > 0 {
			if n.FaceBeginOrNodeIndex >= n.FaceEndIndex || n.FaceEndIndex > uint32(len(faces)) {
				t.Errorf("node %d: leaf face range [%d,%d) invalid for %d global faces",
					i, n.FaceBeginOrNodeIndex, n.FaceEndIndex, len(faces))
			}
		}
	}
}

func TestPackMeshesVertexIndicesPointIntoExtras(t *testing.T) {
	s := newTestScene()
	s.CreateMesh("only", []MeshFace{triangleFace(0)})

	faces, extras, _ := s.packMeshes()
	if len(faces) != 1 {
		t.Fatalf("len(faces) = %d, want 1", len(faces))
	}
	f := faces[0]
	for _, vidx := range []uint32{f.Vidx0, f.Vidx1, f.Vidx2} {
		if vidx >= uint32(len(extras)) {
			t.Errorf("face vertex index %d out of range for %d extras", vidx, len(extras))
		}
	}
}
