package scene

import (
	"testing"

	enginemath "github.com/spaghettifunk/anima/engine/math"
)

func unitSphereShapeAt(x, y, z float32) (PackedShape, enginemath.Extents3D) {
	to := enginemath.NewMat4Translation(enginemath.Vec3{X: x, Y: y, Z: z})
	from := to.Inverse()
	shape := PackedShape{
		Type:              PackedShapeTypeSphere,
		MeshRootNodeIndex: MeshRootNodeIndexNone,
		Transform:         PackedTransform{To: to, From: from},
	}
	bounds := enginemath.Extents3D{Min: enginemath.Vec3{X: -1, Y: -1, Z: -1}, Max: enginemath.Vec3{X: 1, Y: 1, Z: 1}}
	return shape, bounds
}

func TestBuildTopLevelBVHSingleShape(t *testing.T) {
	shape, bounds := unitSphereShapeAt(0, 0, 0)
	nodes := buildTopLevelBVH([]PackedShape{shape}, []enginemath.Extents3D{bounds})
	if len(nodes) != 1 {
		t.Fatalf("len(nodes) = %d, want 1", len(nodes))
	}
	if nodes[0].ShapeIndex != 0 {
		t.Errorf("root leaf ShapeIndex = %d, want 0", nodes[0].ShapeIndex)
	}
}

func TestBuildTopLevelBVHTwoShapesRootIsInternal(t *testing.T) {
	shapeA, boundsA := unitSphereShapeAt(0, 0, 0)
	shapeB, boundsB := unitSphereShapeAt(10, 0, 0)

	nodes := buildTopLevelBVH([]PackedShape{shapeA, shapeB}, []enginemath.Extents3D{boundsA, boundsB})
	if len(nodes) != 3 {
		t.Fatalf("len(nodes) = %d, want 3 (2 leaves + 1 internal root)", len(nodes))
	}
	root := nodes[0]
	if root.ShapeIndex != ShapeIndexNone {
		t.Fatalf("root.ShapeIndex = %d, want ShapeIndexNone (root must be internal)", root.ShapeIndex)
	}

	left := root.ChildNodeIndices & 0xFFFF
	right := root.ChildNodeIndices >> 16
	if left == right {
		t.Fatalf("root's two children must be distinct node indices, got %d and %d", left, right)
	}

	// The root's bounds must contain both leaves' bounds.
	leftNode, rightNode := nodes[left], nodes[right]
	union := extentsOf(leftNode).Union(extentsOf(rightNode))
	if union.Min != root.Min || union.Max != root.Max {
		t.Errorf("root bounds %v/%v do not match union of children %v/%v", root.Min, root.Max, union.Min, union.Max)
	}
}

func TestBuildTopLevelBVHManyShapesEveryLeafReachableFromRoot(t *testing.T) {
	const n = 8
	var shapes []PackedShape
	var bounds []enginemath.Extents3D
	for i := 0; i < n; i++ {
		shape, b := unitSphereShapeAt(float32(i)*3, 0, 0)
		shapes = append(shapes, shape)
		bounds = append(bounds, b)
	}

	nodes := buildTopLevelBVH(shapes, bounds)
	if len(nodes) != 2*n-1 {
		t.Fatalf("len(nodes) = %d, want %d (2N-1 for N leaves in a binary tree)", len(nodes), 2*n-1)
	}

	seen := make(map[uint32]bool)
	var walk func(idx uint32)
	walk = func(idx uint32) {
		node := nodes[idx]
		if node.ShapeIndex != ShapeIndexNone {
			seen[node.ShapeIndex] = true
			return
		}
		walk(node.ChildNodeIndices & 0xFFFF)
		walk(node.ChildNodeIndices >> 16)
	}
	walk(0)

	if len(seen) != n {
		t.Errorf("reached %d distinct leaves from the root, want %d", len(seen), n)
	}
}
