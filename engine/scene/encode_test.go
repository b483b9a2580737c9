package scene

import (
	"math"
	"testing"

	enginemath "github.com/spaghettifunk/anima/engine/math"
)

func TestPackUnitVectorRoundTrip(t *testing.T) {
	vectors := []enginemath.Vec3{
		{X: 0, Y: 0, Z: 1},
		{X: 0, Y: 0, Z: -1},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 1, Z: 1},
		{X: -1, Y: -1, Z: -1},
		{X: 0.3, Y: -0.7, Z: 0.2},
	}
	for _, v := range vectors {
		n := v.Normalize()
		got := UnpackUnitVector(PackUnitVector(n))
		dot := n.X*got.X + n.Y*got.Y + n.Z*got.Z
		if dot < 0.9999 {
			t.Errorf("PackUnitVector/UnpackUnitVector(%v) round-trip dot = %v, want >= 0.9999", n, dot)
		}
	}
}

func TestPackUVRoundTrip(t *testing.T) {
	uvs := []enginemath.Vec2{
		{X: 0, Y: 0},
		{X: 1, Y: 1},
		{X: 0.5, Y: 0.25},
		{X: 0.125, Y: 0.875},
	}
	for _, uv := range uvs {
		got := UnpackUV(PackUV(uv))
		if math.Abs(float64(got.X-uv.X)) > 1e-3 || math.Abs(float64(got.Y-uv.Y)) > 1e-3 {
			t.Errorf("PackUV/UnpackUV(%v) round-trip = %v, want within 1e-3", uv, got)
		}
	}
}

func TestFloat32ToHalfRoundTrip(t *testing.T) {
	values := []float32{0, 1, -1, 0.5, -0.5, 2.0, 100.0}
	for _, v := range values {
		got := halfToFloat32(float32ToHalf(v))
		if math.Abs(float64(got-v)) > 1e-2 {
			t.Errorf("float32ToHalf/halfToFloat32(%v) = %v, want within 1e-2", v, got)
		}
	}
}
