package engine

import (
	"context"
	"testing"
	"time"

	"github.com/spaghettifunk/bubble/engine/core"
	"github.com/spaghettifunk/bubble/engine/math"
	"github.com/spaghettifunk/bubble/engine/platform/headless"
	headlessrenderer "github.com/spaghettifunk/bubble/engine/renderer/headless"
	"github.com/spaghettifunk/bubble/engine/renderer/metadata"
)

type fakeGame struct {
	*Game
	updates  int
	renders  int
	resizes  [][2]uint32
	shutdown int
	onUpdate func(n int)
}

func newFakeGame(maxFrames uint64) *fakeGame {
	g := &fakeGame{}
	g.Game = &Game{
		ApplicationConfig: &ApplicationConfig{
			Name:        "test",
			StartWidth:  800,
			StartHeight: 600,
			LogLevel:    core.WarnLevel,
			Workers:     1,
			CameraFOV:   45,
			CameraNear:  0.1,
			CameraFar:   1000,
			MaxFrames:   maxFrames,
		},
	}
	g.FnInitialize = func() error {
		vertices, indices := math.GenerateSphere(1, 8, 6)
		_, err := g.SystemManager.GeometrySystem().AcquireFromConfig(&metadata.GeometryConfig{
			Name: "sphere", Vertices: vertices, Indices: indices,
		})
		return err
	}
	g.FnUpdate = func(delta, elapsedMS float64) error {
		g.updates++
		if g.onUpdate != nil {
			g.onUpdate(g.updates)
		}
		return nil
	}
	g.FnRender = func(packet *metadata.RenderPacket, delta float64) error {
		g.renders++
		return nil
	}
	g.FnOnResize = func(w, h uint32) error {
		g.resizes = append(g.resizes, [2]uint32{w, h})
		return nil
	}
	g.FnShutdown = func() error {
		g.shutdown++
		return nil
	}
	return g
}

func newEngine(t *testing.T, g *fakeGame, p *headless.Platform) (*Engine, *headlessrenderer.Backend) {
	t.Helper()
	backend := headlessrenderer.New()
	e, err := New(g.Game, p, backend)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { e.Shutdown() })
	return e, backend
}

func TestRunStopsAfterMaxFrames(t *testing.T) {
	g := newFakeGame(5)
	e, backend := newEngine(t, g, headless.New(1).WithoutSleep())

	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if g.updates != 5 || g.renders != 5 || backend.Stats().Frames != 5 {
		t.Fatalf("updates=%d renders=%d frames=%d, want 5", g.updates, g.renders, backend.Stats().Frames)
	}
	if core.MetricsTotalFrames() != 5 {
		t.Errorf("metrics frames = %d", core.MetricsTotalFrames())
	}
}

func TestNoFramesAfterStop(t *testing.T) {
	g := newFakeGame(0)
	e, backend := newEngine(t, g, headless.New(1).WithoutSleep())
	g.onUpdate = func(n int) {
		if n == 3 {
			e.Stop()
		}
	}

	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if backend.Stats().Frames != 3 {
		t.Fatalf("frames = %d, want 3", backend.Stats().Frames)
	}

	// a stopped engine never renders again
	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := e.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if backend.Stats().Frames != 3 || g.updates != 3 {
		t.Fatalf("rendered after stop: frames=%d updates=%d", backend.Stats().Frames, g.updates)
	}
	if !backend.Stats().Shutdown || g.shutdown != 1 {
		t.Error("shutdown did not reach the backend and the game")
	}
	if err := e.Shutdown(); err != nil {
		t.Errorf("second Shutdown: %v", err)
	}
	if g.shutdown != 1 {
		t.Errorf("game shut down %d times", g.shutdown)
	}
}

func TestCancelledContext(t *testing.T) {
	g := newFakeGame(0)
	e, _ := newEngine(t, g, headless.New(1).WithoutSleep())
	ctx, cancel := context.WithCancel(context.Background())
	g.onUpdate = func(n int) {
		if n == 2 {
			cancel()
		}
	}
	if err := e.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if g.updates != 2 {
		t.Errorf("updates = %d, want 2", g.updates)
	}
}

func TestResizeUpdatesCameraAndSurface(t *testing.T) {
	g := newFakeGame(1)
	p := headless.New(2).WithoutSleep()
	e, backend := newEngine(t, g, p)

	p.Resize(1000, 500)
	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	camera := g.SystemManager.CameraSystem().GetDefault()
	if camera.Aspect != 2 {
		t.Errorf("aspect = %v, want 2", camera.Aspect)
	}
	surface := g.Renderer.Surface()
	if surface.Width != 1000 || surface.Height != 500 {
		t.Errorf("surface = %dx%d", surface.Width, surface.Height)
	}
	if surface.DrawingWidth != 2000 || surface.DrawingHeight != 1000 {
		t.Errorf("drawing = %dx%d", surface.DrawingWidth, surface.DrawingHeight)
	}
	if backend.Stats().Surface != surface {
		t.Error("backend surface not updated")
	}
	last := g.resizes[len(g.resizes)-1]
	if last != [2]uint32{1000, 500} {
		t.Errorf("game resize = %v", last)
	}
	if w, h := e.GetFramebufferSize(); w != 1000 || h != 500 {
		t.Errorf("engine size = %dx%d", w, h)
	}
}

func TestMinimizeSuspends(t *testing.T) {
	g := newFakeGame(0)
	var e *Engine
	sleeps := 0
	p := headless.New(1).WithSleep(func(time.Duration) {
		sleeps++
		if sleeps == 3 {
			e.Stop()
		}
	})
	e, _ = newEngine(t, g, p)

	p.Resize(0, 0)
	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !e.IsSuspended() {
		t.Fatal("engine not suspended")
	}
	if g.updates != 0 {
		t.Errorf("updated %d times while minimized", g.updates)
	}
}

func TestEscapeQuits(t *testing.T) {
	g := newFakeGame(0)
	p := headless.New(1).WithoutSleep()
	e, _ := newEngine(t, g, p)

	p.PressKey(core.KEY_ESCAPE)
	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if g.updates != 0 {
		t.Errorf("updates = %d, want 0", g.updates)
	}
	if e.IsRunning() {
		t.Error("engine still running")
	}
}
