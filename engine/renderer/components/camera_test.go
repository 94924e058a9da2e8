package components

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSetAspectUpdatesProjection(t *testing.T) {
	c := NewCamera(45, 1, 0.1, 1000)
	before := c.GetProjection()

	c.SetAspect(1920.0 / 1080.0)
	if c.Aspect != float32(1920.0/1080.0) {
		t.Fatalf("aspect = %v", c.Aspect)
	}
	after := c.GetProjection()
	if before == after {
		t.Fatal("projection did not change")
	}
	// x scale is f / aspect, y scale is f.
	if !mgl32.FloatEqualThreshold(after.At(0, 0)*c.Aspect, after.At(1, 1), 1e-5) {
		t.Errorf("projection x/y scale does not match aspect: %v", after)
	}

	c.SetAspect(0)
	if c.Aspect != float32(1920.0/1080.0) {
		t.Errorf("zero aspect was accepted")
	}
}

func TestViewLooksAtTarget(t *testing.T) {
	c := NewCamera(45, 1, 0.1, 1000)
	c.SetPosition(mgl32.Vec3{0, 0, 5})
	view := c.GetView()
	if c.IsDirty {
		t.Fatal("view still dirty after GetView")
	}
	origin := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !mgl32.FloatEqualThreshold(origin.Z(), -5, 1e-5) {
		t.Errorf("origin in view space = %v, want z=-5", origin)
	}
}
