package renderer

import (
	"github.com/spaghettifunk/bubble/engine/math"
	"github.com/spaghettifunk/bubble/engine/renderer/metadata"
)

type RendererBackend interface {
	Initialize(config *metadata.RendererBackendConfig, surface metadata.Surface) error
	Shutdown() error
	Resized(surface metadata.Surface) error
	BeginFrame(packet *metadata.RenderPacket) error
	DrawGeometry(data *metadata.GeometryRenderData) error
	DrawOverlay(data *metadata.OverlayRenderData) error
	EndFrame(packet *metadata.RenderPacket) error
	CreateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D, indices []uint32) error
	UpdateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D) error
	DestroyGeometry(geometry *metadata.Geometry)
	CreateOverlayMask(mask *metadata.OverlayMask, pixels []uint8) error
	DestroyOverlayMask(mask *metadata.OverlayMask)
}

type RendererType uint8

const (
	RendererTypeOpenGL RendererType = iota
	RendererTypeHeadless
)

func (t RendererType) String() string {
	switch t {
	case RendererTypeOpenGL:
		return "opengl"
	case RendererTypeHeadless:
		return "headless"
	default:
		return "unknown"
	}
}
