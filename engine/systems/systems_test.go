package systems

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/bubble/engine/math"
	"github.com/spaghettifunk/bubble/engine/renderer"
	"github.com/spaghettifunk/bubble/engine/renderer/components"
	"github.com/spaghettifunk/bubble/engine/renderer/headless"
	"github.com/spaghettifunk/bubble/engine/renderer/metadata"
)

func TestNewJobSystemRejectsBadConfig(t *testing.T) {
	if _, err := NewJobSystem(0, 1); !errors.Is(err, ErrNoWorkers) {
		t.Errorf("0 workers: %v", err)
	}
	if _, err := NewJobSystem(1, -1); !errors.Is(err, ErrNegativeChannelSize) {
		t.Errorf("negative channel: %v", err)
	}
}

func TestParallelForCoversRange(t *testing.T) {
	js, err := NewJobSystem(4, 8)
	if err != nil {
		t.Fatal(err)
	}
	defer js.Shutdown()

	for _, n := range []int{0, 1, 3, 4, 17, 4225} {
		hits := make([]int32, n)
		if err := js.ParallelFor(n, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		}); err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, h)
			}
		}
	}
}

func TestJobSystemShutdown(t *testing.T) {
	js, err := NewJobSystem(2, 0)
	if err != nil {
		t.Fatal(err)
	}
	var done, failed int32
	for i := 0; i < 10; i++ {
		fail := i%2 == 0
		js.Submit(JobTask{
			Run: func() error {
				if fail {
					return errors.New("boom")
				}
				return nil
			},
			OnComplete: func() { atomic.AddInt32(&done, 1) },
			OnFailure:  func(error) { atomic.AddInt32(&failed, 1) },
		})
	}
	if err := js.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if done != 5 || failed != 5 {
		t.Errorf("done=%d failed=%d, want 5/5", done, failed)
	}
	if err := js.Submit(JobTask{Run: func() error { return nil }}); !errors.Is(err, ErrJobSystemClosed) {
		t.Errorf("Submit after shutdown: %v", err)
	}
	if err := js.ParallelFor(10, func(int, int) {}); !errors.Is(err, ErrJobSystemClosed) {
		t.Errorf("ParallelFor after shutdown: %v", err)
	}
	if err := js.Shutdown(); !errors.Is(err, ErrJobSystemClosed) {
		t.Errorf("second Shutdown: %v", err)
	}
}

func TestCameraSystem(t *testing.T) {
	cs, err := NewCameraSystem(&CameraSystemConfig{MaxCameraCount: 1, FOV: 45, Near: 0.1, Far: 100})
	if err != nil {
		t.Fatal(err)
	}
	def, _ := cs.Acquire(components.DEFAULT_CAMERA_NAME)
	if def != cs.GetDefault() {
		t.Fatal("default camera not returned")
	}

	a, err := cs.Acquire("orbit")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := cs.Acquire("orbit")
	if a != b {
		t.Fatal("same name returned different cameras")
	}
	if _, err := cs.Acquire("other"); err == nil {
		t.Fatal("expected no free slot")
	}

	cs.SetAspect(2)
	if def.Aspect != 2 || a.Aspect != 2 {
		t.Errorf("aspect not propagated: %v %v", def.Aspect, a.Aspect)
	}

	cs.Release("orbit")
	cs.Release("orbit")
	if _, err := cs.Acquire("other"); err != nil {
		t.Errorf("slot not freed: %v", err)
	}
}

func TestGeometrySystem(t *testing.T) {
	backend := headless.New()
	r := renderer.New(backend, 2)
	if err := r.Initialize(&metadata.RendererBackendConfig{}, 100, 100, 1, 100, 100); err != nil {
		t.Fatal(err)
	}
	gs, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: 2}, r)
	if err != nil {
		t.Fatal(err)
	}

	vertices, indices := math.GenerateSphere(1, 8, 6)
	cfg := &metadata.GeometryConfig{Name: "sphere", Vertices: vertices, Indices: indices, Dynamic: true}
	g, err := gs.AcquireFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	again, _ := gs.AcquireFromConfig(cfg)
	if g != again {
		t.Fatal("second acquire created a new geometry")
	}
	if g.Extents.Max.Y() < 0.99 {
		t.Errorf("extents = %+v", g.Extents)
	}

	for i := range vertices {
		vertices[i].Position = vertices[i].Position.Mul(2)
	}
	if err := gs.Update(g, vertices); err != nil {
		t.Fatal(err)
	}
	if got := backend.GeometryVertices(g)[0].Position; got != (mgl32.Vec3{0, 2, 0}) {
		t.Errorf("uploaded north pole = %v", got)
	}

	gs.Release(g)
	if gs.Count() != 1 || backend.Stats().Geometries != 1 {
		t.Fatal("geometry destroyed while still referenced")
	}
	gs.Release(g)
	if gs.Count() != 0 || backend.Stats().Geometries != 0 {
		t.Fatal("geometry not destroyed")
	}

	static := &metadata.GeometryConfig{Name: "static", Vertices: vertices, Indices: indices}
	sg, _ := gs.AcquireFromConfig(static)
	if err := gs.Update(sg, vertices); err == nil {
		t.Error("static geometry accepted an update")
	}
	gs.Shutdown()
	if backend.Stats().Geometries != 0 {
		t.Error("Shutdown left geometries behind")
	}
}
