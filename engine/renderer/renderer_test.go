package renderer_test

import (
	"errors"
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/bubble/engine/core"
	"github.com/spaghettifunk/bubble/engine/math"
	"github.com/spaghettifunk/bubble/engine/renderer"
	"github.com/spaghettifunk/bubble/engine/renderer/headless"
	"github.com/spaghettifunk/bubble/engine/renderer/metadata"
)

func TestComputeSurface(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
		dpr           float64
		fbW, fbH      uint32
		wantRatio     float64
		wantW, wantH  uint32
		offscreen     bool
	}{
		{"standard", 800, 600, 1, 800, 600, 1, 800, 600, false},
		{"retina", 800, 600, 2, 1600, 1200, 2, 1600, 1200, false},
		{"capped", 800, 600, 3, 2400, 1800, 2, 1600, 1200, true},
		{"no framebuffer", 640, 480, 1.5, 0, 0, 1.5, 960, 720, false},
		{"zero ratio", 100, 100, 0, 100, 100, 1, 100, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := renderer.ComputeSurface(tt.width, tt.height, tt.dpr, renderer.DefaultMaxPixelRatio, tt.fbW, tt.fbH)
			if s.PixelRatio != tt.wantRatio {
				t.Errorf("ratio = %v, want %v", s.PixelRatio, tt.wantRatio)
			}
			if s.DrawingWidth != tt.wantW || s.DrawingHeight != tt.wantH {
				t.Errorf("drawing = %dx%d, want %dx%d", s.DrawingWidth, s.DrawingHeight, tt.wantW, tt.wantH)
			}
			if s.NeedsOffscreen() != tt.offscreen {
				t.Errorf("NeedsOffscreen = %v, want %v", s.NeedsOffscreen(), tt.offscreen)
			}
		})
	}
}

func newRenderer(t *testing.T) (*renderer.Renderer, *headless.Backend) {
	t.Helper()
	backend := headless.New()
	r := renderer.New(backend, 0)
	cfg := &metadata.RendererBackendConfig{ApplicationName: "test"}
	if err := r.Initialize(cfg, 800, 600, 1, 800, 600); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return r, backend
}

func TestInitializeTwice(t *testing.T) {
	r, _ := newRenderer(t)
	err := r.Initialize(&metadata.RendererBackendConfig{}, 1, 1, 1, 1, 1)
	if !errors.Is(err, core.ErrAlreadyInitialized) {
		t.Fatalf("second Initialize = %v, want ErrAlreadyInitialized", err)
	}
}

func TestSetSizeNotifiesBackend(t *testing.T) {
	r, backend := newRenderer(t)
	if err := r.SetSize(1024, 512, 2, 2048, 1024); err != nil {
		t.Fatalf("SetSize: %v", err)
	}
	stats := backend.Stats()
	if stats.Resizes != 1 {
		t.Fatalf("resizes = %d, want 1", stats.Resizes)
	}
	if stats.Surface.Width != 1024 || stats.Surface.DrawingWidth != 2048 {
		t.Errorf("backend surface = %+v", stats.Surface)
	}
	if r.Surface() != stats.Surface {
		t.Errorf("frontend and backend surfaces differ")
	}
}

func TestDrawFrameBeforeInitialize(t *testing.T) {
	r := renderer.New(headless.New(), 2)
	if err := r.DrawFrame(&metadata.RenderPacket{}); !errors.Is(err, core.ErrNotInitialized) {
		t.Fatalf("DrawFrame = %v, want ErrNotInitialized", err)
	}
}

func TestDrawFrame(t *testing.T) {
	r, backend := newRenderer(t)

	vertices, indices := math.GenerateSphere(1, 8, 6)
	geometry := &metadata.Geometry{Name: metadata.BubbleGeometryName}
	if err := r.CreateGeometry(geometry, vertices, indices); err != nil {
		t.Fatalf("CreateGeometry: %v", err)
	}
	vertices[0].Position = mgl32.Vec3{0, 2, 0}
	if err := r.UpdateGeometry(geometry, vertices); err != nil {
		t.Fatalf("UpdateGeometry: %v", err)
	}
	if got := backend.GeometryVertices(geometry)[0].Position; got != (mgl32.Vec3{0, 2, 0}) {
		t.Errorf("uploaded vertex = %v", got)
	}

	img := image.NewAlpha(image.Rect(0, 0, 4, 4))
	mask := &metadata.OverlayMask{Name: "cursor"}
	if err := r.CreateOverlayMask(mask, img); err != nil {
		t.Fatalf("CreateOverlayMask: %v", err)
	}
	if mask.Width != 4 || mask.Height != 4 {
		t.Errorf("mask size = %dx%d", mask.Width, mask.Height)
	}

	packet := &metadata.RenderPacket{
		Geometries: []metadata.GeometryRenderData{{Model: mgl32.Ident4(), Geometry: geometry}},
		Overlays:   []metadata.OverlayRenderData{{Mask: mask}},
	}
	for i := 0; i < 3; i++ {
		if err := r.DrawFrame(packet); err != nil {
			t.Fatalf("DrawFrame: %v", err)
		}
	}

	stats := backend.Stats()
	if stats.Frames != 3 || stats.DrawCalls != 3 || stats.OverlayCalls != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if r.FrameNumber() != 3 {
		t.Errorf("frame number = %d, want 3", r.FrameNumber())
	}
	if backend.LastPacket().FrameNumber != 2 {
		t.Errorf("last packet frame = %d, want 2", backend.LastPacket().FrameNumber)
	}

	r.DestroyGeometry(geometry)
	r.DestroyOverlayMask(mask)
	if err := r.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if stats := backend.Stats(); !stats.Shutdown || stats.Geometries != 0 || stats.Masks != 0 {
		t.Errorf("after shutdown stats = %+v", stats)
	}
}
