package metadata

import "github.com/go-gl/mathgl/mgl32"

// AmbientLight lights every surface equally from all directions.
type AmbientLight struct {
	Colour    mgl32.Vec3
	Intensity float32
}

// DirectionalLight shines from Position towards the origin, parallel rays.
type DirectionalLight struct {
	Colour    mgl32.Vec3
	Intensity float32
	Position  mgl32.Vec3
}

// Direction is the unit vector the light travels along.
func (l DirectionalLight) Direction() mgl32.Vec3 {
	if l.Position.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return l.Position.Mul(-1).Normalize()
}
