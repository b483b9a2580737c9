package scene

import (
	"github.com/spaghettifunk/anima/engine/atlas"
	enginemath "github.com/spaghettifunk/anima/engine/math"
	"github.com/spaghettifunk/anima/engine/spectrum"
)

// packTextures runs the scene's textures through the atlas packer, fills
// in each Texture's PackedTextureIndex, and returns the packed texture
// table plus the rasterized atlas pages. The per-texture-type color
// transform (plain copy / spectral upsample / radiance split) happens here
// rather than inside the atlas package, since it needs the spectrum table
// the atlas package itself knows nothing about.
func (s *Scene) packTextures(table *spectrum.Table) ([]PackedTexture, []*atlas.Page, error) {
	pageSize := s.AtlasPageSize
	if pageSize == 0 {
		pageSize = 4096
	}
	bin := atlas.New(pageSize)

	packed := make([]PackedTexture, len(s.Textures))
	for i, tex := range s.Textures {
		region, err := bin.Pack(atlas.Source{
			Width:   tex.Width,
			Height:  tex.Height,
			Pixels:  spectrallyTransform(tex, table),
			Format:  atlas.Raw, // already transformed below; atlas only memcpys
			Nearest: tex.NearestFilter,
		})
		if err != nil {
			return nil, nil, err
		}
		tex.PackedTextureIndex = uint32(i)

		var flags uint32
		if tex.NearestFilter {
			flags |= TextureFlagFilterNearest
		}
		packed[i] = PackedTexture{
			AtlasMin:        enginemath.Vec2{X: region.U0, Y: region.V0},
			AtlasMax:        enginemath.Vec2{X: region.U1, Y: region.V1},
			AtlasImageIndex: uint32(region.PageIndex),
			Type:            uint32(tex.Type),
			Flags:           flags,
		}
	}
	return packed, bin.Pages, nil
}

// spectrallyTransform applies tex.Type's color transform per SPEC_FULL.md
// 4.B, returning a fresh row-major RGBA float32 buffer ready for the atlas
// packer (always handed to it as atlas.Raw, since the domain-specific
// transform already happened).
func spectrallyTransform(tex *Texture, table *spectrum.Table) []float32 {
	out := make([]float32, len(tex.Pixels))
	switch tex.Type {
	case TextureTypeRaw:
		copy(out, tex.Pixels)
	case TextureTypeReflectanceWithAlpha:
		for i := 0; i < len(tex.Pixels); i += 4 {
			rgb := enginemath.Vec3{X: tex.Pixels[i], Y: tex.Pixels[i+1], Z: tex.Pixels[i+2]}
			c := spectrum.Coefficients(table, rgb)
			out[i], out[i+1], out[i+2] = c.X, c.Y, c.Z
			out[i+3] = tex.Pixels[i+3]
		}
	case TextureTypeRadiance:
		for i := 0; i < len(tex.Pixels); i += 4 {
			r, g, b := tex.Pixels[i], tex.Pixels[i+1], tex.Pixels[i+2]
			intensity := 2 * maxFloat32(r, maxFloat32(g, b))
			if intensity <= 1e-6 {
				out[i], out[i+1], out[i+2], out[i+3] = 0, 0, 0, 0
				continue
			}
			c := spectrum.Coefficients(table, enginemath.Vec3{X: r / intensity, Y: g / intensity, Z: b / intensity})
			out[i], out[i+1], out[i+2], out[i+3] = c.X, c.Y, c.Z, intensity
		}
	}
	return out
}

func maxFloat32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
