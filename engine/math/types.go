package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/** @brief a 4x4 matrix, typically used to represent object transformations. */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

// Mat3 is a 3x3 matrix, column-major like Mat4. Used for the packed scene
// globals' skybox sampling frame (tangent/bitangent/normal basis).
type Mat3 struct {
	Data [9]float32
}

// NewMat3Identity returns the 3x3 identity matrix.
func NewMat3Identity() Mat3 {
	return Mat3{Data: [9]float32{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}}
}

/**
 * @brief Represents the extents of a 2d object.
 */
type Extents2D struct {
	/** @brief The minimum extents of the object. */
	Min Vec2
	/** @brief The maximum extents of the object. */
	Max Vec2
}

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}

/**
 * @brief Represents a single vertex in 3D space.
 */
type Vertex3D struct {
	/** @brief The position of the vertex */
	Position Vec3
	/** @brief The normal of the vertex. */
	Normal Vec3
	/** @brief The texture coordinate of the vertex. */
	Texcoord Vec2
	/** @brief The colour of the vertex. */
	Colour Vec4
	/** @brief The tangent of the vertex. */
	Tangent Vec3
}

/**
 * @brief Represents a single vertex in 2D space.
 */
type Vertex2D struct {
	/** @brief The position of the vertex */
	Position Vec2
	/** @brief The texture coordinate of the vertex. */
	Texcoord Vec2
}

/**
 * @brief Represents the transform of an object in the world.
 * Transforms can have a parent whose own transform is then
 * taken into account. NOTE: The properties of this should not
 * be edited directly, but done via the functions in transform.go
 * to ensure proper matrix generation.
 */
type Transform struct {
	/** @brief The position in the world. */
	Position Vec3
	/** @brief The rotation in the world, as Euler angles (radians) applied in x, y, z order. */
	Rotation Vec3
	/** @brief The scale in the world. */
	Scale Vec3
	/** @brief When true, editors/tools may assume Scale.X == Scale.Y == Scale.Z. Cosmetic only; packing always uses the full anisotropic scale. */
	UniformScale bool
	/**
	 * @brief Indicates if the position, rotation or scale have changed,
	 * indicating that the local matrix needs to be recalculated.
	 */
	IsDirty bool
	/**
	 * @brief The local transformation matrix, updated whenever
	 * the position, rotation or scale have changed.
	 */
	Local Mat4
	/** @brief A pointer to a parent transform if one is assigned. Can also be null. */
	Parent *Transform
}

// Ray is a parametric ray Origin + t*Vector used throughout the tracer.
type Ray struct {
	Origin Vec3
	Vector Vec3
}

// At evaluates the ray at parameter t.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Vector.MulScalar(t))
}
