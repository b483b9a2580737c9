package scene

import (
	"testing"

	"github.com/spaghettifunk/anima/engine/spectrum"
)

func TestPackMaterialsCountAndFallbackSlot(t *testing.T) {
	s := newTestScene()
	table := spectrum.NewTable(2)

	packed := s.packMaterials(table)
	if len(packed) != 1 {
		t.Fatalf("len(packed) = %d, want 1 (fallback material seeded by New)", len(packed))
	}
	if s.Materials[0].PackedMaterialIndex != PackedMaterialIndexFallback {
		t.Errorf("fallback material's PackedMaterialIndex = %d, want %d", s.Materials[0].PackedMaterialIndex, PackedMaterialIndexFallback)
	}
}

func TestPackMaterialsResolvesTextureReferences(t *testing.T) {
	s := newTestScene()
	table := spectrum.NewTable(2)
	texIndex := s.CreateCheckerTexture("checker", 4, [4]float32{1, 0, 0, 1}, [4]float32{0, 1, 0, 1})
	matIndex := s.CreateMaterial("textured")
	s.Materials[matIndex].BaseColorTexture = texIndex

	packed := s.packMaterials(table)
	if got := packed[matIndex]; got.BaseColorTexture != uint32(texIndex) {
		t.Errorf("BaseColorTexture = %d, want %d", got.BaseColorTexture, texIndex)
	}
}

func TestPackMaterialsNoTextureIsSentinel(t *testing.T) {
	s := newTestScene()
	table := spectrum.NewTable(2)

	packed := s.packMaterials(table)
	if packed[0].BaseColorTexture != PackedTextureIndexNone {
		t.Errorf("BaseColorTexture = %#x, want PackedTextureIndexNone", packed[0].BaseColorTexture)
	}
}

func TestDispersionRatioGuardsZeroScale(t *testing.T) {
	m := NewMaterial("glass")
	m.TransmissionDispersionScale = 0
	if got := dispersionRatio(m); got != 0 {
		t.Errorf("dispersionRatio with zero scale = %v, want 0", got)
	}

	m.TransmissionDispersionScale = 20
	m.TransmissionDispersionAbbeNumber = 40
	if got := dispersionRatio(m); got != 2 {
		t.Errorf("dispersionRatio = %v, want 2", got)
	}
}
