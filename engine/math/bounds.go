package math

// EmptyExtents3D returns the canonical empty/degenerate AABB, ready to be
// grown via Grow or Union. Min starts at K_INFINITY (1e30), Max at
// -K_INFINITY per axis so that
// union with any real point or box yields that point/box unchanged.
func EmptyExtents3D() Extents3D {
	return Extents3D{
		Min: Vec3{K_INFINITY, K_INFINITY, K_INFINITY},
		Max: Vec3{-K_INFINITY, -K_INFINITY, -K_INFINITY},
	}
}

// Grow returns the smallest box containing e and the point p.
func (e Extents3D) Grow(p Vec3) Extents3D {
	return Extents3D{
		Min: Vec3{minf(e.Min.X, p.X), minf(e.Min.Y, p.Y), minf(e.Min.Z, p.Z)},
		Max: Vec3{maxf(e.Max.X, p.X), maxf(e.Max.Y, p.Y), maxf(e.Max.Z, p.Z)},
	}
}

// Union returns the smallest box containing both e and other.
func (e Extents3D) Union(other Extents3D) Extents3D {
	return Extents3D{
		Min: Vec3{minf(e.Min.X, other.Min.X), minf(e.Min.Y, other.Min.Y), minf(e.Min.Z, other.Min.Z)},
		Max: Vec3{maxf(e.Max.X, other.Max.X), maxf(e.Max.Y, other.Max.Y), maxf(e.Max.Z, other.Max.Z)},
	}
}

// Size returns Max - Min component-wise.
func (e Extents3D) Size() Vec3 {
	return e.Max.Sub(e.Min)
}

// Centroid returns the midpoint of the box.
func (e Extents3D) Centroid() Vec3 {
	return e.Min.Add(e.Max).MulScalar(0.5)
}

// HalfArea returns sx*sy + sy*sz + sz*sx, half the surface area of the box.
// Used as the SAH cost metric.
func (e Extents3D) HalfArea() float32 {
	s := e.Size()
	return s.X*s.Y + s.Y*s.Z + s.Z*s.X
}

// Contains reports whether p lies within the box (inclusive).
func (e Extents3D) Contains(p Vec3) bool {
	return p.X >= e.Min.X && p.X <= e.Max.X &&
		p.Y >= e.Min.Y && p.Y <= e.Max.Y &&
		p.Z >= e.Min.Z && p.Z <= e.Max.Z
}

// ContainsBox reports whether e fully contains other.
func (e Extents3D) ContainsBox(other Extents3D) bool {
	return e.Contains(other.Min) && e.Contains(other.Max)
}

// Corners returns the 8 corners of the box, used to transform local-space
// bounds through a world matrix.
func (e Extents3D) Corners() [8]Vec3 {
	return [8]Vec3{
		{e.Min.X, e.Min.Y, e.Min.Z},
		{e.Max.X, e.Min.Y, e.Min.Z},
		{e.Min.X, e.Max.Y, e.Min.Z},
		{e.Max.X, e.Max.Y, e.Min.Z},
		{e.Min.X, e.Min.Y, e.Max.Z},
		{e.Max.X, e.Min.Y, e.Max.Z},
		{e.Min.X, e.Max.Y, e.Max.Z},
		{e.Max.X, e.Max.Y, e.Max.Z},
	}
}

// Transform returns the AABB of e's 8 corners after being transformed by m.
func (e Extents3D) Transform(m Mat4) Extents3D {
	out := EmptyExtents3D()
	for _, c := range e.Corners() {
		out = out.Grow(c.Transform(m))
	}
	return out
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
