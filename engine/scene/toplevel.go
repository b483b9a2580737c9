package scene

import enginemath "github.com/spaghettifunk/anima/engine/math"

// buildTopLevelBVH builds an agglomerative nearest-neighbor-chain BVH (PLOC-
// style) over the packed shapes' world-space bounds (each shape's local
// bounds transformed through its own Transform.To). Node 0 is always the
// BVH root; leaves encode ShapeIndex and ChildNodeIndices=0, internal nodes
// pack two 16-bit child indices into ChildNodeIndices and set
// ShapeIndex=ShapeIndexNone.
func buildTopLevelBVH(shapes []PackedShape, localBounds []enginemath.Extents3D) []PackedShapeNode {
	n := len(shapes)
	if n == 0 {
		return nil
	}

	nodes := make([]PackedShapeNode, n)
	for i := range shapes {
		world := localBounds[i].Transform(shapes[i].Transform.To)
		nodes[i] = PackedShapeNode{Min: world.Min, Max: world.Max, ShapeIndex: uint32(i)}
	}
	if n == 1 {
		return nodes
	}

	mapArr := make([]int, n)
	for i := range mapArr {
		mapArr[i] = i
	}

	nearest := func(m []int, from int) int {
		best := -1
		var bestCost float32
		for i := range m {
			if i == from {
				continue
			}
			cost := mergedMetric(nodes[m[from]], nodes[m[i]])
			if best < 0 || cost < bestCost {
				best, bestCost = i, cost
			}
		}
		return best
	}

	indexA := 0
	indexB := nearest(mapArr, indexA)

	for len(mapArr) > 1 {
		indexC := nearest(mapArr, indexB)
		if indexC == indexA {
			nodeAIdx, nodeBIdx := mapArr[indexA], mapArr[indexB]
			union := extentsOf(nodes[nodeAIdx]).Union(extentsOf(nodes[nodeBIdx]))
			newIndex := len(nodes)
			nodes = append(nodes, PackedShapeNode{
				Min:              union.Min,
				Max:              union.Max,
				ChildNodeIndices: uint32(nodeAIdx) | uint32(nodeBIdx)<<16,
				ShapeIndex:       ShapeIndexNone,
			})

			mapArr[indexA] = newIndex
			last := len(mapArr) - 1
			mapArr[indexB] = mapArr[last]
			mapArr = mapArr[:last]
			if indexA == last {
				indexA = indexB
			}
			indexB = nearest(mapArr, indexA)
			continue
		}
		indexA, indexB = indexB, indexC
	}

	if root := mapArr[0]; root != 0 {
		swapNodeSlots(nodes, 0, root)
	}
	return nodes
}

func extentsOf(n PackedShapeNode) enginemath.Extents3D {
	return enginemath.Extents3D{Min: n.Min, Max: n.Max}
}

// mergedMetric is the agglomerative builder's "nearest" cost: the merged
// (union) box's sx*sy + sy*sz + sz*sz. The sz*sz term (rather than sz*sx) is
// not a typo here - it is carried over verbatim from the source algorithm,
// which this module's BVH shape intentionally matches.
func mergedMetric(a, b PackedShapeNode) float32 {
	union := extentsOf(a).Union(extentsOf(b))
	s := union.Size()
	return s.X*s.Y + s.Y*s.Z + s.Z*s.Z
}

// swapNodeSlots exchanges nodes[a] and nodes[b] in place, patching every
// internal node's encoded child indices so the tree's shape is preserved
// after the relabeling.
func swapNodeSlots(nodes []PackedShapeNode, a, b int) {
	nodes[a], nodes[b] = nodes[b], nodes[a]
	relabel := func(idx uint32) uint32 {
		switch int(idx) {
		case a:
			return uint32(b)
		case b:
			return uint32(a)
		default:
			return idx
		}
	}
	for i := range nodes {
		if nodes[i].ShapeIndex != ShapeIndexNone {
			continue
		}
		left := nodes[i].ChildNodeIndices & 0xFFFF
		right := nodes[i].ChildNodeIndices >> 16
		nodes[i].ChildNodeIndices = relabel(left) | relabel(right)<<16
	}
}
