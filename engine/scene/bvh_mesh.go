package scene

import "github.com/spaghettifunk/anima/engine/math"

const sahBinCount = 32

// buildMeshBVH builds m's BVH in place over m.Faces (reordering them by
// partition) using 32-bin SAH binning per SPEC_FULL.md 4.C, starting from a
// single root node.
func buildMeshBVH(m *Mesh) {
	m.Nodes = append(m.Nodes, MeshNode{})
	m.Nodes[0].Bounds = boundsOfFaces(m.Faces, 0, len(m.Faces))
	m.Nodes[0].FaceBeginOrNodeIndex = 0
	m.Nodes[0].FaceEndIndex = len(m.Faces)
	splitMeshNode(m, 0, 1)
}

func boundsOfFaces(faces []MeshFace, begin, end int) math.Extents3D {
	b := math.EmptyExtents3D()
	for i := begin; i < end; i++ {
		b = b.Union(faces[i].bounds())
	}
	return b
}

type sahBin struct {
	bounds math.Extents3D
	count  int
}

// splitMeshNode attempts to SAH-split node nodeIndex, recursing into the
// two children it creates. depth tracks the mesh's resulting BVH depth.
func splitMeshNode(m *Mesh, nodeIndex, depth int) {
	if depth > m.Depth {
		m.Depth = depth
	}
	node := m.Nodes[nodeIndex]
	begin, end := node.FaceBeginOrNodeIndex, node.FaceEndIndex
	faceCount := end - begin
	if faceCount <= 1 {
		return
	}

	nodeBounds := node.Bounds
	nodeHalfArea := nodeBounds.HalfArea()
	bestCost := float32(faceCount) * nodeHalfArea
	bestAxis := -1
	var bestSplitPos float32

	for axis := 0; axis < 3; axis++ {
		lo, hi := centroidRange(m.Faces, begin, end, axis)
		if hi-lo < 1e-8 {
			continue
		}

		var bins [sahBinCount]sahBin
		for i := range bins {
			bins[i].bounds = math.EmptyExtents3D()
		}
		scale := float32(sahBinCount) / (hi - lo)
		binIndexOf := func(f *MeshFace) int {
			idx := int((componentOf(f.Centroid, axis) - lo) * scale)
			return math.Clamp(idx, 0, sahBinCount-1)
		}
		for i := begin; i < end; i++ {
			b := binIndexOf(&m.Faces[i])
			bins[b].bounds = bins[b].bounds.Union(m.Faces[i].bounds())
			bins[b].count++
		}

		var prefixBounds [sahBinCount]math.Extents3D
		var prefixCount [sahBinCount]int
		acc := math.EmptyExtents3D()
		accCount := 0
		for i := 0; i < sahBinCount; i++ {
			acc = acc.Union(bins[i].bounds)
			accCount += bins[i].count
			prefixBounds[i] = acc
			prefixCount[i] = accCount
		}

		suffixBounds := math.EmptyExtents3D()
		suffixCount := 0
		for i := sahBinCount - 1; i > 0; i-- {
			suffixBounds = suffixBounds.Union(bins[i].bounds)
			suffixCount += bins[i].count

			leftCount, rightCount := prefixCount[i-1], suffixCount
			if leftCount == 0 || rightCount == 0 {
				continue
			}
			cost := float32(leftCount)*prefixBounds[i-1].HalfArea() + float32(rightCount)*suffixBounds.HalfArea()
			if cost < bestCost {
				bestCost = cost
				bestAxis = axis
				bestSplitPos = lo + float32(i)/scale
			}
		}
	}

	if bestAxis < 0 {
		return
	}

	mid := partitionFaces(m.Faces, begin, end, bestAxis, bestSplitPos)
	if mid == begin || mid == end {
		return
	}

	leftIndex := len(m.Nodes)
	m.Nodes = append(m.Nodes,
		MeshNode{Bounds: boundsOfFaces(m.Faces, begin, mid), FaceBeginOrNodeIndex: begin, FaceEndIndex: mid},
		MeshNode{Bounds: boundsOfFaces(m.Faces, mid, end), FaceBeginOrNodeIndex: mid, FaceEndIndex: end},
	)
	m.Nodes[nodeIndex].FaceBeginOrNodeIndex = leftIndex
	m.Nodes[nodeIndex].FaceEndIndex = 0

	splitMeshNode(m, leftIndex, depth+1)
	splitMeshNode(m, leftIndex+1, depth+1)
}

func centroidRange(faces []MeshFace, begin, end, axis int) (float32, float32) {
	lo, hi := componentOf(faces[begin].Centroid, axis), componentOf(faces[begin].Centroid, axis)
	for i := begin + 1; i < end; i++ {
		c := componentOf(faces[i].Centroid, axis)
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return lo, hi
}

func componentOf(v math.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// partitionFaces performs a Hoare-style two-pointer in-place partition of
// faces[begin:end] by centroid[axis] < splitPos, returning the partition
// point.
func partitionFaces(faces []MeshFace, begin, end int, axis int, splitPos float32) int {
	i, j := begin, end-1
	for {
		for i < end && componentOf(faces[i].Centroid, axis) < splitPos {
			i++
		}
		for j >= begin && componentOf(faces[j].Centroid, axis) >= splitPos {
			j--
		}
		if i >= j {
			return i
		}
		faces[i], faces[j] = faces[j], faces[i]
		i++
		j--
	}
}
