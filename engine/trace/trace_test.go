package trace

import (
	"math"
	"testing"

	"github.com/spaghettifunk/anima/engine/core"
	enginemath "github.com/spaghettifunk/anima/engine/math"
	"github.com/spaghettifunk/anima/engine/scene"
	"github.com/spaghettifunk/anima/engine/spectrum"
)

func newTracedScene() (*scene.Scene, *spectrum.Table) {
	return scene.New(core.DefaultSceneConfig()), spectrum.NewTable(2)
}

func TestTraceMissReturnsFalse(t *testing.T) {
	s, table := newTracedScene()
	s.PackSceneData(table)

	ray := enginemath.Ray{Origin: enginemath.Vec3{X: 0, Y: 0, Z: 10}, Vector: enginemath.Vec3{X: 0, Y: 0, Z: 1}}
	_, ok := Trace(s, ray)
	if ok {
		t.Fatalf("Trace against an empty scene reported a hit")
	}
}

func TestTraceHitsPlane(t *testing.T) {
	s, table := newTracedScene()
	s.CreatePlane("Ground", nil, 0)
	s.PackSceneData(table)

	ray := enginemath.Ray{Origin: enginemath.Vec3{X: 0, Y: 0, Z: 10}, Vector: enginemath.Vec3{X: 0, Y: 0, Z: -1}}
	hit, ok := Trace(s, ray)
	if !ok {
		t.Fatalf("Trace missed the ground plane")
	}
	if hit.ShapeType != scene.PackedShapeTypePlane {
		t.Errorf("ShapeType = %d, want Plane", hit.ShapeType)
	}
	if absf32(hit.Time-10) > 1e-4 {
		t.Errorf("Time = %v, want ~10", hit.Time)
	}
}

func TestTraceHitsSphere(t *testing.T) {
	s, table := newTracedScene()
	sphere := s.CreateSphere("Sphere", nil, 0)
	sphere.Transform.SetPosition(enginemath.Vec3{X: 0, Y: 0, Z: 1})
	sphere.Transform.SetScale(enginemath.Vec3{X: 0.5, Y: 0.5, Z: 0.5})
	s.PackSceneData(table)

	ray := enginemath.Ray{Origin: enginemath.Vec3{X: 0, Y: -5, Z: 1}, Vector: enginemath.Vec3{X: 0, Y: 1, Z: 0}}
	hit, ok := Trace(s, ray)
	if !ok {
		t.Fatalf("Trace missed the sphere")
	}
	if hit.ShapeType != scene.PackedShapeTypeSphere {
		t.Errorf("ShapeType = %d, want Sphere", hit.ShapeType)
	}
	if absf32(hit.Time-4.5) > 1e-3 {
		t.Errorf("Time = %v, want ~4.5", hit.Time)
	}
}

func TestTraceHitsMeshInstance(t *testing.T) {
	s, table := newTracedScene()
	face := scene.MeshFace{
		Positions: [3]enginemath.Vec3{
			{X: -1, Y: -1, Z: 0},
			{X: 1, Y: -1, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		Normals: [3]enginemath.Vec3{
			{X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1},
		},
		UVs: [3]enginemath.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 1}},
	}
	meshIndex := s.CreateMesh("Triangle", []scene.MeshFace{face})
	s.CreateMeshInstance("Instance", nil, meshIndex, 0)
	s.PackSceneData(table)

	ray := enginemath.Ray{Origin: enginemath.Vec3{X: 0, Y: -0.3, Z: 10}, Vector: enginemath.Vec3{X: 0, Y: 0, Z: -1}}
	hit, ok := Trace(s, ray)
	if !ok {
		t.Fatalf("Trace missed the mesh instance")
	}
	if hit.ShapeType != scene.PackedShapeTypeMeshInstance {
		t.Errorf("ShapeType = %d, want MeshInstance", hit.ShapeType)
	}
	sum := hit.PrimitiveCoordinates.X + hit.PrimitiveCoordinates.Y + hit.PrimitiveCoordinates.Z
	if absf32(sum-1) > 1e-5 {
		t.Errorf("barycentric coordinates sum to %v, want 1", sum)
	}
}

func TestTraceClosestHitWins(t *testing.T) {
	s, table := newTracedScene()
	near := s.CreateSphere("Near", nil, 0)
	near.Transform.SetPosition(enginemath.Vec3{X: 0, Y: 0, Z: 5})
	far := s.CreateSphere("Far", nil, 0)
	far.Transform.SetPosition(enginemath.Vec3{X: 0, Y: 0, Z: 10})
	s.PackSceneData(table)

	ray := enginemath.Ray{Origin: enginemath.Vec3{X: 0, Y: 0, Z: 0}, Vector: enginemath.Vec3{X: 0, Y: 0, Z: 1}}
	hit, ok := Trace(s, ray)
	if !ok {
		t.Fatalf("Trace missed both spheres")
	}
	if absf32(hit.Time-4) > 1e-3 {
		t.Errorf("Time = %v, want ~4 (the nearer sphere's surface)", hit.Time)
	}
}

func absf32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
