package math

import "github.com/go-gl/mathgl/mgl32"

// Vertex3D is the interleaved vertex layout uploaded to the GPU.
type Vertex3D struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Texcoord mgl32.Vec2
}

// Transform holds a position, an Euler rotation applied in X, Y, Z order
// and a per-axis scale. The local matrix is cached until one of them changes.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	// Set whenever position, rotation or scale change so Local is rebuilt.
	IsDirty bool
	Local   mgl32.Mat4
	Parent  *Transform
}

type Extents3D struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}
