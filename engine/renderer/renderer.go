package renderer

import (
	"fmt"
	"image"
	gomath "math"

	"github.com/spaghettifunk/bubble/engine/core"
	"github.com/spaghettifunk/bubble/engine/math"
	"github.com/spaghettifunk/bubble/engine/renderer/metadata"
)

const DefaultMaxPixelRatio = 2.0

// Renderer is the frontend every system talks to. It owns the surface
// sizing rules and forwards GPU work to the backend.
type Renderer struct {
	backend       RendererBackend
	config        *metadata.RendererBackendConfig
	surface       metadata.Surface
	maxPixelRatio float64
	frameNumber   uint64
	initialized   bool
}

func New(backend RendererBackend, maxPixelRatio float64) *Renderer {
	if maxPixelRatio <= 0 {
		maxPixelRatio = DefaultMaxPixelRatio
	}
	return &Renderer{
		backend:       backend,
		maxPixelRatio: maxPixelRatio,
	}
}

// ComputeSurface derives the drawing buffer size from the logical window
// size and the device pixel ratio capped at maxPixelRatio.
func ComputeSurface(width, height uint32, devicePixelRatio, maxPixelRatio float64, framebufferWidth, framebufferHeight uint32) metadata.Surface {
	if devicePixelRatio <= 0 {
		devicePixelRatio = 1
	}
	ratio := gomath.Min(devicePixelRatio, maxPixelRatio)
	s := metadata.Surface{
		Width:             width,
		Height:            height,
		PixelRatio:        ratio,
		DrawingWidth:      uint32(gomath.Round(float64(width) * ratio)),
		DrawingHeight:     uint32(gomath.Round(float64(height) * ratio)),
		FramebufferWidth:  framebufferWidth,
		FramebufferHeight: framebufferHeight,
	}
	if s.FramebufferWidth == 0 || s.FramebufferHeight == 0 {
		s.FramebufferWidth, s.FramebufferHeight = s.DrawingWidth, s.DrawingHeight
	}
	return s
}

func (r *Renderer) Initialize(config *metadata.RendererBackendConfig, width, height uint32, devicePixelRatio float64, framebufferWidth, framebufferHeight uint32) error {
	if r.initialized {
		return core.ErrAlreadyInitialized
	}
	r.config = config
	r.surface = ComputeSurface(width, height, devicePixelRatio, r.maxPixelRatio, framebufferWidth, framebufferHeight)
	if err := r.backend.Initialize(config, r.surface); err != nil {
		err = fmt.Errorf("renderer backend failed to initialize: %w", err)
		core.LogError(err.Error())
		return err
	}
	r.initialized = true
	core.LogInfo("renderer initialized: %dx%d logical, %dx%d drawing (ratio %.2f)",
		r.surface.Width, r.surface.Height, r.surface.DrawingWidth, r.surface.DrawingHeight, r.surface.PixelRatio)
	return nil
}

func (r *Renderer) Shutdown() error {
	if !r.initialized {
		return nil
	}
	r.initialized = false
	return r.backend.Shutdown()
}

// SetSize resizes the render surface to width x height logical pixels.
func (r *Renderer) SetSize(width, height uint32, devicePixelRatio float64, framebufferWidth, framebufferHeight uint32) error {
	r.surface = ComputeSurface(width, height, devicePixelRatio, r.maxPixelRatio, framebufferWidth, framebufferHeight)
	if !r.initialized {
		return nil
	}
	core.LogDebug("renderer resized: %dx%d logical, %dx%d drawing", width, height, r.surface.DrawingWidth, r.surface.DrawingHeight)
	return r.backend.Resized(r.surface)
}

func (r *Renderer) Surface() metadata.Surface {
	return r.surface
}

func (r *Renderer) FrameNumber() uint64 {
	return r.frameNumber
}

// DrawFrame renders the packet: scene geometry first, overlays on top.
func (r *Renderer) DrawFrame(packet *metadata.RenderPacket) error {
	if !r.initialized {
		return core.ErrNotInitialized
	}
	packet.FrameNumber = r.frameNumber
	if err := r.backend.BeginFrame(packet); err != nil {
		return err
	}
	for i := range packet.Geometries {
		if err := r.backend.DrawGeometry(&packet.Geometries[i]); err != nil {
			core.LogError("failed to draw geometry %s: %s", packet.Geometries[i].Geometry.Name, err)
		}
	}
	for i := range packet.Overlays {
		if err := r.backend.DrawOverlay(&packet.Overlays[i]); err != nil {
			core.LogError("failed to draw overlay: %s", err)
		}
	}
	if err := r.backend.EndFrame(packet); err != nil {
		return err
	}
	r.frameNumber++
	return nil
}

func (r *Renderer) CreateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D, indices []uint32) error {
	return r.backend.CreateGeometry(geometry, vertices, indices)
}

func (r *Renderer) UpdateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D) error {
	return r.backend.UpdateGeometry(geometry, vertices)
}

func (r *Renderer) DestroyGeometry(geometry *metadata.Geometry) {
	r.backend.DestroyGeometry(geometry)
}

func (r *Renderer) CreateOverlayMask(mask *metadata.OverlayMask, pixels *image.Alpha) error {
	b := pixels.Bounds()
	mask.Width = uint32(b.Dx())
	mask.Height = uint32(b.Dy())
	// Pix rows may be padded when the image is a sub-image.
	data := make([]uint8, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		start := pixels.PixOffset(b.Min.X, y)
		data = append(data, pixels.Pix[start:start+b.Dx()]...)
	}
	return r.backend.CreateOverlayMask(mask, data)
}

func (r *Renderer) DestroyOverlayMask(mask *metadata.OverlayMask) {
	r.backend.DestroyOverlayMask(mask)
}
