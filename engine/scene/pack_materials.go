package scene

import (
	"github.com/spaghettifunk/anima/engine/spectrum"
)

// packMaterials flattens every material into its GPU layout, substituting
// each OpenPBR color field with its spectral upsampling coefficients.
func (s *Scene) packMaterials(table *spectrum.Table) []PackedMaterial {
	packed := make([]PackedMaterial, len(s.Materials))
	for i, m := range s.Materials {
		m.PackedMaterialIndex = uint32(i)
		packed[i] = PackedMaterial{
			BaseWeight:       m.BaseWeight,
			BaseColor:        spectrum.Coefficients(table, m.BaseColor),
			BaseColorTexture: packedTextureRef(m.BaseColorTexture),
			Metalness:        m.Metalness,
			DiffuseRoughness: m.DiffuseRoughness,

			SpecularWeight:     m.SpecularWeight,
			SpecularColor:      spectrum.Coefficients(table, m.SpecularColor),
			SpecularIOR:        m.SpecularIOR,
			SpecularRoughness:  m.SpecularRoughness,
			SpecularAnisotropy: m.SpecularAnisotropy,
			SpecularTexture:    packedTextureRef(m.SpecularTexture),

			TransmissionWeight:            m.TransmissionWeight,
			TransmissionColor:             spectrum.Coefficients(table, m.TransmissionColor),
			TransmissionDepth:             m.TransmissionDepth,
			TransmissionScatter:           spectrum.Coefficients(table, m.TransmissionScatter),
			TransmissionScatterAnisotropy: m.TransmissionScatterAnisotropy,
			TransmissionDispersionRatio:   dispersionRatio(m),

			CoatWeight:     m.CoatWeight,
			CoatColor:      spectrum.Coefficients(table, m.CoatColor),
			CoatRoughness:  m.CoatRoughness,
			CoatAnisotropy: m.CoatAnisotropy,
			CoatIOR:        m.CoatIOR,
			CoatDarkening:  m.CoatDarkening,

			EmissionColor:     spectrum.Coefficients(table, m.EmissionColor),
			EmissionTexture:   packedTextureRef(m.EmissionTexture),
			EmissionLuminance: m.EmissionLuminance,

			GeometryOpacity:  m.GeometryOpacity,
			ThinWalled:       boolToUint32(m.ThinWalled),
			LayerBounceLimit: uint32(m.LayerBounceLimit),
		}
	}
	return packed
}

// dispersionRatio divides AbbeNumber by DispersionScale, guarding the
// DispersionScale == 0 case (out-of-domain on a well-formed material, since
// NewMaterial seeds a positive default) so packing never emits NaN/+Inf.
func dispersionRatio(m *Material) float32 {
	if m.TransmissionDispersionScale == 0 {
		return 0
	}
	return m.TransmissionDispersionAbbeNumber / m.TransmissionDispersionScale
}

// packedTextureRef resolves a scene-level texture index (NoTexture for
// "none") to its packed-layout sentinel.
func packedTextureRef(textureIndex int) uint32 {
	if textureIndex == NoTexture || textureIndex < 0 {
		return PackedTextureIndexNone
	}
	return uint32(textureIndex)
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
