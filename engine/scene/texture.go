package scene

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/anima/engine/atlas"
)

// TextureType mirrors the atlas package's pixel-format discriminant; kept
// as a distinct name at the scene layer since it is scene-authored data,
// not an atlas-packer implementation detail.
type TextureType = atlas.PixelFormat

const (
	TextureTypeRaw                  = atlas.Raw
	TextureTypeReflectanceWithAlpha = atlas.ReflectanceWithAlpha
	TextureTypeRadiance             = atlas.Radiance
)

// PackedTextureIndexNone is the sentinel stored in a Texture's
// PackedTextureIndex before the first pack, and in any packed reference to
// "no texture".
const PackedTextureIndexNone uint32 = 0xFFFFFFFF

// Texture owns its RGBA pixel buffer from the moment it is created, whether
// loaded by the (out-of-scope) external image loader or generated
// procedurally by CreateCheckerTexture.
type Texture struct {
	Name          string
	Type          TextureType
	Width, Height int
	// Pixels is row-major RGBA, four float32 per pixel.
	Pixels []float32
	NearestFilter bool

	PackedTextureIndex uint32
}

// CreateTexture appends a new texture owning pixels (row-major RGBA,
// len == width*height*4) to the scene and returns its index.
func (s *Scene) CreateTexture(name string, texType TextureType, width, height int, pixels []float32, nearest bool) int {
	if name == "" {
		name = "texture-" + uuid.NewString()
	}
	s.Textures = append(s.Textures, &Texture{
		Name:               name,
		Type:               texType,
		Width:              width,
		Height:             height,
		Pixels:             pixels,
		NearestFilter:      nearest,
		PackedTextureIndex: PackedTextureIndexNone,
	})
	s.Dirty |= DirtyTextures
	return len(s.Textures) - 1
}

// CreateCheckerTexture procedurally generates a resolution x resolution
// checker pattern alternating between colorA and colorB, ported from
// original_source's CreateCheckerTexture: a texture fixture that needs no
// external image loader.
func (s *Scene) CreateCheckerTexture(name string, resolution int, colorA, colorB [4]float32) int {
	pixels := make([]float32, resolution*resolution*4)
	for y := 0; y < resolution; y++ {
		for x := 0; x < resolution; x++ {
			c := colorA
			if (x+y)%2 == 1 {
				c = colorB
			}
			i := (y*resolution + x) * 4
			pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = c[0], c[1], c[2], c[3]
		}
	}
	return s.CreateTexture(name, TextureTypeReflectanceWithAlpha, resolution, resolution, pixels, false)
}

// DestroyTexture removes the texture at index, scrubbing every material
// reference to it to NoTexture before deletion. The scene's
// Textures and Materials tiers are both marked dirty.
func (s *Scene) DestroyTexture(index int) {
	if index < 0 || index >= len(s.Textures) {
		return
	}
	for _, m := range s.Materials {
		m.scrubTextureReference(index)
	}
	s.Textures = append(s.Textures[:index], s.Textures[index+1:]...)
	s.reindexTexturesAfterRemoval(index)
	s.Dirty |= DirtyTextures | DirtyMaterials
}

// reindexTexturesAfterRemoval shifts down every material's texture
// reference that pointed past the removed slot.
func (s *Scene) reindexTexturesAfterRemoval(removed int) {
	for _, m := range s.Materials {
		m.shiftTextureReferences(removed)
	}
}
