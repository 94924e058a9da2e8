package cursor

import (
	"testing"

	"github.com/spaghettifunk/bubble/engine/core"
)

func withEvents(t *testing.T) {
	t.Helper()
	core.EventSystemInitialize()
	t.Cleanup(func() { core.EventSystemShutdown() })
}

func TestFollowerTracksPointer(t *testing.T) {
	withEvents(t)
	layer := NewLayer()
	f := NewFollower(layer, "")
	defer f.Dispose()

	if f.Class() != DefaultClass {
		t.Fatalf("class = %q", f.Class())
	}
	if !layer.Contains(f.ID()) {
		t.Fatal("marker should be attached on mount")
	}
	if els := layer.Elements(); len(els) != 1 || els[0].Visible {
		t.Fatalf("marker should start hidden: %+v", els)
	}

	f.OnPointerMove(Point{X: 120, Y: 45})
	els := layer.Elements()
	if els[0].Position != (Point{120, 45}) || !els[0].Visible {
		t.Fatalf("marker = %+v", els[0])
	}

	// pointer events from the input layer reach the follower too
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_MOUSE_MOVED,
		Data: &core.MouseEvent{PosX: 7.5, PosY: 300},
	})
	p, seen := f.Position()
	if !seen || p != (Point{7.5, 300}) {
		t.Fatalf("position = %+v, %v", p, seen)
	}
	if layer.Elements()[0].Position != p {
		t.Fatal("layer not updated by event")
	}
}

func TestFollowerDispose(t *testing.T) {
	withEvents(t)
	layer := NewLayer()
	f := NewFollower(layer, "custom-cursor")
	f.OnPointerMove(Point{1, 2})

	f.Dispose()
	if layer.Contains(f.ID()) || layer.Len() != 0 {
		t.Fatal("marker must be removed on dispose")
	}
	if n := core.EventListenerCount(core.EVENT_CODE_MOUSE_MOVED); n != 0 {
		t.Fatalf("%d listeners left after dispose", n)
	}

	f.OnPointerMove(Point{50, 60})
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_MOUSE_MOVED,
		Data: &core.MouseEvent{PosX: 70, PosY: 80},
	})
	if _, seen := f.Position(); seen {
		t.Fatal("disposed follower must ignore moves")
	}
	if layer.Len() != 0 {
		t.Fatal("move after dispose re-attached the marker")
	}

	// second dispose is a no-op
	f.Dispose()
}

func TestFollowerIgnoresBadPayload(t *testing.T) {
	withEvents(t)
	layer := NewLayer()
	f := NewFollower(layer, "")
	defer f.Dispose()

	core.EventFire(core.EventContext{Type: core.EVENT_CODE_MOUSE_MOVED, Data: "nope"})
	if _, seen := f.Position(); seen {
		t.Fatal("bad payload should be dropped")
	}
}

func TestLayerStyles(t *testing.T) {
	layer := NewLayer()
	if _, ok := layer.Style(DefaultClass); !ok {
		t.Fatal("default class must always be styled")
	}
	dot := Style{Shape: ShapeDisc, Size: 8, Colour: "#ff0000", Opacity: 1, Blend: BlendNormal}
	layer.SetStyles(map[string]Style{"dot": dot})
	if s, ok := layer.Style("dot"); !ok || s != dot {
		t.Fatalf("dot style = %+v, %v", s, ok)
	}
	if _, ok := layer.Style(DefaultClass); !ok {
		t.Fatal("default class lost after SetStyles")
	}
}

func TestStyleValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Style)
		ok     bool
	}{
		{"default", func(*Style) {}, true},
		{"disc", func(s *Style) { s.Shape = ShapeDisc; s.Thickness = 0 }, true},
		{"bad shape", func(s *Style) { s.Shape = "star" }, false},
		{"bad blend", func(s *Style) { s.Blend = "multiply" }, false},
		{"fat ring", func(s *Style) { s.Thickness = 12 }, false},
		{"bad colour", func(s *Style) { s.Colour = "white" }, false},
		{"opacity", func(s *Style) { s.Opacity = 2 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStyle()
			tt.mutate(&s)
			if err := s.Validate(); (err == nil) != tt.ok {
				t.Fatalf("validate = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestRasterize(t *testing.T) {
	disc := Style{Shape: ShapeDisc, Size: 24}
	m := Rasterize(disc, 1)
	if b := m.Bounds(); b.Dx() != 26 || b.Dy() != 26 {
		t.Fatalf("bounds = %v", b)
	}
	if a := m.AlphaAt(13, 13).A; a < 250 {
		t.Fatalf("disc centre alpha = %d", a)
	}
	if a := m.AlphaAt(0, 0).A; a != 0 {
		t.Fatalf("corner alpha = %d", a)
	}

	ring := Style{Shape: ShapeRing, Size: 24, Thickness: 2}
	r := Rasterize(ring, 1)
	if a := r.AlphaAt(13, 13).A; a != 0 {
		t.Fatalf("ring centre alpha = %d", a)
	}
	if a := r.AlphaAt(24, 13).A; a < 200 {
		t.Fatalf("ring stroke alpha = %d", a)
	}

	hi := Rasterize(disc, 2)
	if hi.Bounds().Dx() != 50 {
		t.Fatalf("hi-dpi bounds = %v", hi.Bounds())
	}
}
