package atlas

import "math"

// transformPixel reads src's pixel at (sx, sy) and applies the per-type
// color transform SPEC_FULL.md 4.B describes. Callers needing the
// ReflectanceWithAlpha/Radiance spectral transforms (which depend on the
// scene's spectrum table) pre-transform their pixels and pass Format: Raw;
// this function then only covers the parts expressible without that
// dependency (sRGB decode, radiance intensity split by magnitude).
func transformPixel(src Source, sx, sy int) (r, g, b, a float32) {
	i := (sy*src.Width + sx) * 4
	r, g, b, a = src.Pixels[i], src.Pixels[i+1], src.Pixels[i+2], src.Pixels[i+3]

	switch src.Format {
	case Raw:
		return r, g, b, a
	case ReflectanceWithAlpha:
		return srgbToLinear(r), srgbToLinear(g), srgbToLinear(b), a
	case Radiance:
		intensity := 2 * maxf(r, maxf(g, b))
		if intensity <= 1e-6 {
			return 0, 0, 0, 0
		}
		return r / intensity, g / intensity, b / intensity, intensity
	default:
		return r, g, b, a
	}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// srgbToLinear applies the standard sRGB electro-optical transfer function.
func srgbToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return float32(math.Pow(float64((v+0.055)/1.055), 2.4))
}
