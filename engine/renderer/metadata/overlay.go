package metadata

import "github.com/go-gl/mathgl/mgl32"

type BlendMode uint8

const (
	BlendModeNormal BlendMode = iota
	BlendModeAdditive
	BlendModeDifference
)

// OverlayMask is a single channel coverage texture drawn in screen space.
type OverlayMask struct {
	ID         uint32
	InternalID uint32
	Name       string
	// Texture size in device pixels.
	Width  uint32
	Height uint32
}

type OverlayRenderData struct {
	Mask *OverlayMask
	// Centre of the quad in logical window pixels, origin top-left.
	Position mgl32.Vec2
	// Quad size in logical pixels.
	Size    mgl32.Vec2
	Colour  mgl32.Vec3
	Opacity float32
	Blend   BlendMode
}
