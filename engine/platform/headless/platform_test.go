package headless

import (
	"testing"

	"github.com/spaghettifunk/bubble/engine/core"
	"github.com/spaghettifunk/bubble/engine/platform"
)

func setup(t *testing.T) *Platform {
	t.Helper()
	core.EventSystemInitialize()
	if err := core.InputInitialize(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		core.InputShutdown()
		core.EventSystemShutdown()
	})
	p := New(2).WithoutSleep()
	if err := p.Startup(platform.WindowConfig{Width: 800, Height: 600, HideCursor: true}); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestResizeIsDeliveredOnPump(t *testing.T) {
	p := setup(t)

	var got []core.SystemEvent
	core.EventRegister(core.EVENT_CODE_RESIZED, t, func(ctx core.EventContext) {
		got = append(got, *ctx.Data.(*core.SystemEvent))
	})

	p.Resize(1024, 768)
	if len(got) != 0 {
		t.Fatal("resize delivered before PumpMessages")
	}
	if !p.PumpMessages() {
		t.Fatal("PumpMessages reported closed window")
	}
	if len(got) != 1 || got[0].WindowWidth != 1024 || got[0].WindowHeight != 768 {
		t.Fatalf("resize events = %+v", got)
	}
	if w, h := p.FramebufferSize(); w != 2048 || h != 1536 {
		t.Errorf("framebuffer = %dx%d, want 2048x1536", w, h)
	}
}

func TestCursorAndKeys(t *testing.T) {
	p := setup(t)
	if p.CursorVisible() {
		t.Error("cursor should start hidden")
	}

	var keys []core.KeyCode
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, t, func(ctx core.EventContext) {
		keys = append(keys, ctx.Data.(*core.KeyEvent).KeyCode)
	})

	p.MoveCursor(10, 20)
	p.PressKey(core.KEY_R)
	p.PumpMessages()

	if x, y := core.InputGetMousePosition(); x != 10 || y != 20 {
		t.Errorf("mouse = %v,%v", x, y)
	}
	if len(keys) != 1 || keys[0] != core.KEY_R {
		t.Errorf("keys = %v", keys)
	}
	if core.InputIsKeyDown(core.KEY_R) {
		t.Error("key should be released again")
	}
}

func TestClose(t *testing.T) {
	p := setup(t)
	p.Close()
	if p.PumpMessages() {
		t.Fatal("window should be closed")
	}
}

func TestPixelRatioFor(t *testing.T) {
	if r := platform.PixelRatioFor(800, 1600); r != 2 {
		t.Errorf("ratio = %v", r)
	}
	if r := platform.PixelRatioFor(0, 1600); r != 1 {
		t.Errorf("ratio for empty window = %v", r)
	}
}
