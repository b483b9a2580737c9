package trace

import (
	stdmath "math"

	"github.com/spaghettifunk/anima/engine/containers"
	enginemath "github.com/spaghettifunk/anima/engine/math"
	"github.com/spaghettifunk/anima/engine/scene"
)

const meshStackDepth = 32
const triangleEpsilon = 1e-7

// Trace finds the closest intersection of ray against scene's most recently
// packed frame. Hit.Time starts at +Inf; the second return value reports
// whether the final time is finite.
func Trace(s *scene.Scene, ray enginemath.Ray) (Hit, bool) {
	best := Hit{Time: float32(stdmath.Inf(1))}

	for i := range s.Packed.Shapes {
		shape := &s.Packed.Shapes[i]
		o := ray.Origin.Transform(shape.Transform.From)
		v := transformDirection(ray.Vector, shape.Transform.From)
		shapeIndex := uint32(i)

		switch shape.Type {
		case scene.PackedShapeTypePlane:
			intersectPlane(o, v, shapeIndex, &best)
		case scene.PackedShapeTypeSphere:
			intersectSphere(o, v, shapeIndex, &best)
		case scene.PackedShapeTypeCube:
			intersectCube(o, v, shapeIndex, &best)
		case scene.PackedShapeTypeMeshInstance:
			intersectMeshInstance(s, shape, o, v, shapeIndex, &best)
		}
	}

	return best, !stdmath.IsInf(float64(best.Time), 1)
}

// transformDirection applies the upper 3x3 (rotation+scale) of m to v,
// dropping the translation column - the homogeneous-w=0 transform a ray
// direction needs, as opposed to Vec3.Transform's w=1 point transform.
func transformDirection(v enginemath.Vec3, m enginemath.Mat4) enginemath.Vec3 {
	return enginemath.Vec3{
		X: v.X*m.Data[0] + v.Y*m.Data[4] + v.Z*m.Data[8],
		Y: v.X*m.Data[1] + v.Y*m.Data[5] + v.Z*m.Data[9],
		Z: v.X*m.Data[2] + v.Y*m.Data[6] + v.Z*m.Data[10],
	}
}

func intersectPlane(o, v enginemath.Vec3, shapeIndex uint32, best *Hit) {
	if v.Z == 0 {
		return
	}
	t := -o.Z / v.Z
	if t < 0 || t >= best.Time {
		return
	}
	best.Time = t
	best.ShapeType = scene.PackedShapeTypePlane
	best.ShapeIndex = shapeIndex
	best.PrimitiveIndex = 0
	best.PrimitiveCoordinates = enginemath.Vec3{
		X: fract(o.X + t*v.X),
		Y: fract(o.Y + t*v.Y),
		Z: 0,
	}
}

func intersectSphere(o, v enginemath.Vec3, shapeIndex uint32, best *Hit) {
	a := v.Dot(v)
	bHalf := o.Dot(v)
	c := o.Dot(o) - 1
	disc := bHalf*bHalf - a*c
	if disc < 0 {
		return
	}
	sqrtDisc := float32(stdmath.Sqrt(float64(disc)))
	t := (-bHalf - sqrtDisc) / a
	if t < 0 {
		t = (-bHalf + sqrtDisc) / a
	}
	if t < 0 || t >= best.Time {
		return
	}
	best.Time = t
	best.ShapeType = scene.PackedShapeTypeSphere
	best.ShapeIndex = shapeIndex
	best.PrimitiveIndex = 0
	best.PrimitiveCoordinates = enginemath.Vec3{X: o.X + t*v.X, Y: o.Y + t*v.Y, Z: o.Z + t*v.Z}
}

func intersectCube(o, v enginemath.Vec3, shapeIndex uint32, best *Hit) {
	invX, invY, invZ := 1/v.X, 1/v.Y, 1/v.Z

	tx0, tx1 := (-1-o.X)*invX, (1-o.X)*invX
	ty0, ty1 := (-1-o.Y)*invY, (1-o.Y)*invY
	tz0, tz1 := (-1-o.Z)*invZ, (1-o.Z)*invZ

	tEntry := maxf32(minf32(tx0, tx1), maxf32(minf32(ty0, ty1), minf32(tz0, tz1)))
	tExit := minf32(maxf32(tx0, tx1), minf32(maxf32(ty0, ty1), maxf32(tz0, tz1)))

	if tExit < tEntry || tExit <= 0 || tEntry >= best.Time {
		return
	}
	t := tEntry
	if t < 0 {
		t = tExit
	}
	if t >= best.Time {
		return
	}

	best.Time = t
	best.ShapeType = scene.PackedShapeTypeCube
	best.ShapeIndex = shapeIndex
	best.PrimitiveIndex = 0
	best.PrimitiveCoordinates = enginemath.Vec3{X: o.X + t*v.X, Y: o.Y + t*v.Y, Z: o.Z + t*v.Z}
}

// intersectMeshInstance descends the mesh's BVH with an explicit stack
// (depth meshStackDepth), always visiting the nearer child first and
// pushing the farther one only if its box is actually hit within the
// current best time.
func intersectMeshInstance(s *scene.Scene, shape *scene.PackedShape, o, v enginemath.Vec3, shapeIndex uint32, best *Hit) {
	if shape.MeshRootNodeIndex == scene.MeshRootNodeIndexNone {
		return
	}
	invDir := enginemath.Vec3{X: 1 / v.X, Y: 1 / v.Y, Z: 1 / v.Z}

	stack := containers.NewStack[uint32](meshStackDepth)
	if err := stack.Push(shape.MeshRootNodeIndex); err != nil {
		panic("mesh BVH traversal stack overflow")
	}

	for !stack.IsEmpty() {
		nodeIndex, err := stack.Pop()
		if err != nil {
			panic("mesh BVH traversal stack underflow")
		}
		node := &s.Packed.MeshNodes[nodeIndex]

		if node.FaceEndIndex > 0 {
			for fi := node.FaceBeginOrNodeIndex; fi < node.FaceEndIndex; fi++ {
				intersectTriangle(o, v, &s.Packed.MeshFaces[fi], fi, shapeIndex, best)
			}
			continue
		}

		left, right := node.FaceBeginOrNodeIndex, node.FaceBeginOrNodeIndex+1
		leftNode, rightNode := &s.Packed.MeshNodes[left], &s.Packed.MeshNodes[right]
		tLeft := intersectAABB(o, invDir, leftNode.Min, leftNode.Max, best.Time)
		tRight := intersectAABB(o, invDir, rightNode.Min, rightNode.Max, best.Time)

		near, far, tNear, tFar := left, right, tLeft, tRight
		if tRight < tLeft {
			near, far, tNear, tFar = right, left, tRight, tLeft
		}

		if !stdmath.IsInf(float64(tFar), 1) {
			if err := stack.Push(far); err != nil {
				panic("mesh BVH traversal stack overflow")
			}
		}
		if !stdmath.IsInf(float64(tNear), 1) {
			if err := stack.Push(near); err != nil {
				panic("mesh BVH traversal stack overflow")
			}
		}
	}
}

// intersectAABB is the ray-box slab test shared by mesh BVH descent. Returns
// +Inf (rather than a bool) so the caller's near/far bookkeeping stays
// branch-free; relies on IEEE-754 semantics for the V=0 divide-by-zero case.
func intersectAABB(o, invDir, min, max enginemath.Vec3, reach float32) float32 {
	tx0, tx1 := (min.X-o.X)*invDir.X, (max.X-o.X)*invDir.X
	ty0, ty1 := (min.Y-o.Y)*invDir.Y, (max.Y-o.Y)*invDir.Y
	tz0, tz1 := (min.Z-o.Z)*invDir.Z, (max.Z-o.Z)*invDir.Z

	tEntry := maxf32(minf32(tx0, tx1), maxf32(minf32(ty0, ty1), minf32(tz0, tz1)))
	tExit := minf32(maxf32(tx0, tx1), minf32(maxf32(ty0, ty1), maxf32(tz0, tz1)))

	if tEntry >= reach || tExit < tEntry || tExit <= 0 {
		return float32(stdmath.Inf(1))
	}
	return tEntry
}

// intersectTriangle is a standard Möller-Trumbore test; barycentric (u,v)
// become PrimitiveCoordinates (w=1-u-v, u, v).
func intersectTriangle(o, v enginemath.Vec3, face *scene.PackedMeshFace, faceIndex uint32, shapeIndex uint32, best *Hit) {
	edge1 := face.P1.Sub(face.P0)
	edge2 := face.P2.Sub(face.P0)
	pvec := v.Cross(edge2)
	det := edge1.Dot(pvec)
	if absf32(det) < triangleEpsilon {
		return
	}
	invDet := 1 / det

	tvec := o.Sub(face.P0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return
	}

	qvec := tvec.Cross(edge1)
	bary := v.Dot(qvec) * invDet
	if bary < 0 || u+bary > 1 {
		return
	}

	t := edge2.Dot(qvec) * invDet
	if t < 0 || t >= best.Time {
		return
	}

	best.Time = t
	best.ShapeType = scene.PackedShapeTypeMeshInstance
	best.ShapeIndex = shapeIndex
	best.PrimitiveIndex = faceIndex
	best.PrimitiveCoordinates = enginemath.Vec3{X: 1 - u - bary, Y: u, Z: bary}
}

func fract(x float32) float32 {
	return x - float32(stdmath.Floor(float64(x)))
}

func minf32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func absf32(a float32) float32 {
	if a < 0 {
		return -a
	}
	return a
}
