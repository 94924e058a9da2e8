package metadata

import "github.com/go-gl/mathgl/mgl32"

// Material is a metallic/roughness surface description. Colours are linear.
type Material struct {
	Name          string
	DiffuseColour mgl32.Vec3
	Metalness     float32
	Roughness     float32
}
