// Package headless is a renderer backend that draws nothing. It keeps the
// bookkeeping a GPU backend would and records what it was asked to do.
package headless

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/bubble/engine/core"
	"github.com/spaghettifunk/bubble/engine/math"
	"github.com/spaghettifunk/bubble/engine/renderer/metadata"
)

type geometryBuffer struct {
	vertices []math.Vertex3D
	indices  []uint32
}

type Backend struct {
	mu sync.Mutex

	config  *metadata.RendererBackendConfig
	surface metadata.Surface

	geometries map[uint32]*geometryBuffer
	masks      map[uint32][]uint8
	nextID     uint32

	inFrame      bool
	frames       uint64
	uploads      uint64
	drawCalls    uint64
	overlayCalls uint64
	resizes      []metadata.Surface
	lastPacket   metadata.RenderPacket
	shutdown     bool
}

func New() *Backend {
	return &Backend{
		geometries: make(map[uint32]*geometryBuffer),
		masks:      make(map[uint32][]uint8),
	}
}

func (b *Backend) Initialize(config *metadata.RendererBackendConfig, surface metadata.Surface) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.config = config
	b.surface = surface
	b.shutdown = false
	core.LogInfo("headless renderer initialized for %q", config.ApplicationName)
	return nil
}

func (b *Backend) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.geometries = make(map[uint32]*geometryBuffer)
	b.masks = make(map[uint32][]uint8)
	b.shutdown = true
	return nil
}

func (b *Backend) Resized(surface metadata.Surface) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.surface = surface
	b.resizes = append(b.resizes, surface)
	return nil
}

func (b *Backend) BeginFrame(packet *metadata.RenderPacket) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inFrame {
		return fmt.Errorf("headless: BeginFrame called twice")
	}
	b.inFrame = true
	return nil
}

func (b *Backend) DrawGeometry(data *metadata.GeometryRenderData) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.geometries[data.Geometry.InternalID]; !ok {
		return fmt.Errorf("headless: geometry %q was never created", data.Geometry.Name)
	}
	b.drawCalls++
	return nil
}

func (b *Backend) DrawOverlay(data *metadata.OverlayRenderData) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.masks[data.Mask.InternalID]; !ok {
		return fmt.Errorf("headless: overlay mask %q was never created", data.Mask.Name)
	}
	b.overlayCalls++
	return nil
}

func (b *Backend) EndFrame(packet *metadata.RenderPacket) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.inFrame {
		return fmt.Errorf("headless: EndFrame without BeginFrame")
	}
	b.inFrame = false
	b.frames++
	b.lastPacket = *packet
	return nil
}

func (b *Backend) CreateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D, indices []uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.geometries[id] = &geometryBuffer{
		vertices: append([]math.Vertex3D(nil), vertices...),
		indices:  append([]uint32(nil), indices...),
	}
	geometry.InternalID = id
	return nil
}

func (b *Backend) UpdateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf, ok := b.geometries[geometry.InternalID]
	if !ok {
		return fmt.Errorf("headless: geometry %q was never created", geometry.Name)
	}
	if len(vertices) != len(buf.vertices) {
		return fmt.Errorf("headless: vertex count changed from %d to %d", len(buf.vertices), len(vertices))
	}
	copy(buf.vertices, vertices)
	b.uploads++
	return nil
}

func (b *Backend) DestroyGeometry(geometry *metadata.Geometry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.geometries, geometry.InternalID)
}

func (b *Backend) CreateOverlayMask(mask *metadata.OverlayMask, pixels []uint8) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(pixels) != int(mask.Width*mask.Height) {
		return fmt.Errorf("headless: mask %q has %d bytes for %dx%d", mask.Name, len(pixels), mask.Width, mask.Height)
	}
	id := b.nextID
	b.nextID++
	b.masks[id] = append([]uint8(nil), pixels...)
	mask.InternalID = id
	return nil
}

func (b *Backend) DestroyOverlayMask(mask *metadata.OverlayMask) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.masks, mask.InternalID)
}

// Stats is a snapshot of what the backend has been asked to do.
type Stats struct {
	Frames       uint64
	Uploads      uint64
	DrawCalls    uint64
	OverlayCalls uint64
	Geometries   int
	Masks        int
	Resizes      int
	Surface      metadata.Surface
	Shutdown     bool
}

func (b *Backend) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{
		Frames:       b.frames,
		Uploads:      b.uploads,
		DrawCalls:    b.drawCalls,
		OverlayCalls: b.overlayCalls,
		Geometries:   len(b.geometries),
		Masks:        len(b.masks),
		Resizes:      len(b.resizes),
		Surface:      b.surface,
		Shutdown:     b.shutdown,
	}
}

// LastPacket is a copy of the packet of the last completed frame.
func (b *Backend) LastPacket() metadata.RenderPacket {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastPacket
}

// GeometryVertices returns the uploaded vertices of a geometry.
func (b *Backend) GeometryVertices(geometry *metadata.Geometry) []math.Vertex3D {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf, ok := b.geometries[geometry.InternalID]
	if !ok {
		return nil
	}
	return append([]math.Vertex3D(nil), buf.vertices...)
}
