package scene

import (
	"testing"

	"github.com/spaghettifunk/anima/engine/spectrum"
)

func TestPackSceneDataDefaultScene(t *testing.T) {
	s := newTestScene()
	s.CreateCamera("Camera", nil)
	s.CreatePlane("Ground", nil, 0)
	table := spectrum.NewTable(2)

	rebuilt := s.PackSceneData(table)
	if rebuilt == DirtyNone {
		t.Fatalf("PackSceneData on a freshly edited scene returned DirtyNone")
	}
	if len(s.Packed.Shapes) != 1 {
		t.Fatalf("len(Packed.Shapes) = %d, want 1", len(s.Packed.Shapes))
	}
	if len(s.Packed.ShapeNodes) != 1 {
		t.Fatalf("len(Packed.ShapeNodes) = %d, want 1", len(s.Packed.ShapeNodes))
	}
	if s.Packed.Globals.ShapeCount != 1 {
		t.Errorf("Globals.ShapeCount = %d, want 1", s.Packed.Globals.ShapeCount)
	}
	if s.Dirty != DirtyNone {
		t.Errorf("Scene.Dirty after pack = %d, want DirtyNone", s.Dirty)
	}
}

func TestPackSceneDataNoOpWhenClean(t *testing.T) {
	s := newTestScene()
	table := spectrum.NewTable(2)

	s.PackSceneData(table)
	if rebuilt := s.PackSceneData(table); rebuilt != DirtyNone {
		t.Errorf("second PackSceneData call on a clean scene returned %d, want DirtyNone", rebuilt)
	}
}

func TestPackSceneDataAddingShapeGrowsTopLevelBVH(t *testing.T) {
	s := newTestScene()
	s.CreatePlane("Ground", nil, 0)
	table := spectrum.NewTable(2)
	s.PackSceneData(table)

	s.CreateSphere("Sphere", nil, 0)
	s.PackSceneData(table)

	if len(s.Packed.Shapes) != 2 {
		t.Fatalf("len(Packed.Shapes) = %d, want 2", len(s.Packed.Shapes))
	}
	if len(s.Packed.ShapeNodes) != 3 {
		t.Fatalf("len(Packed.ShapeNodes) = %d, want 3 (2 leaves + 1 internal root)", len(s.Packed.ShapeNodes))
	}
	if s.Packed.ShapeNodes[0].ShapeIndex != ShapeIndexNone {
		t.Errorf("root.ShapeIndex = %d, want ShapeIndexNone", s.Packed.ShapeNodes[0].ShapeIndex)
	}
}

func TestDirtyFlagsPropagateThroughDependencyChain(t *testing.T) {
	cases := []struct {
		name string
		in   DirtyFlags
		want DirtyFlags
	}{
		{"textures imply materials", DirtyTextures, DirtyTextures | DirtyMaterials | DirtyShapes | DirtyGlobals},
		{"materials imply shapes", DirtyMaterials, DirtyMaterials | DirtyShapes | DirtyGlobals},
		{"meshes imply shapes", DirtyMeshes, DirtyMeshes | DirtyShapes | DirtyGlobals},
		{"shapes imply globals", DirtyShapes, DirtyShapes | DirtyGlobals},
		{"cameras imply globals", DirtyCameras, DirtyCameras | DirtyGlobals},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.in.propagate(); got != c.want {
				t.Errorf("propagate() = %#b, want %#b", got, c.want)
			}
		})
	}
}

func TestPackSceneDataTextureDestroyScrubsMaterialReferences(t *testing.T) {
	s := newTestScene()
	table := spectrum.NewTable(2)
	texIndex := s.CreateCheckerTexture("checker", 4, [4]float32{1, 0, 0, 1}, [4]float32{0, 1, 0, 1})

	var matIndices []int
	for i := 0; i < 3; i++ {
		m := s.CreateMaterial("mat")
		s.Materials[m].BaseColorTexture = texIndex
		matIndices = append(matIndices, m)
	}
	s.PackSceneData(table)

	s.DestroyTexture(texIndex)
	rebuilt := s.PackSceneData(table)

	if !rebuilt.Has(DirtyTextures) || !rebuilt.Has(DirtyMaterials) {
		t.Fatalf("rebuilt mask = %d, want DirtyTextures|DirtyMaterials set", rebuilt)
	}
	for _, mi := range matIndices {
		if s.Materials[mi].BaseColorTexture != NoRef {
			t.Errorf("material %d BaseColorTexture = %d, want NoRef after texture destroy", mi, s.Materials[mi].BaseColorTexture)
		}
	}
}
