package core

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

type scriptedTime struct {
	t time.Time
}

func (s *scriptedTime) now() time.Time { return s.t }

func (s *scriptedTime) advance(d time.Duration) { s.t = s.t.Add(d) }

func TestClockDeltaAndElapsed(t *testing.T) {
	st := &scriptedTime{t: time.Unix(100, 0)}
	c := NewClockWithSource(st.now)

	c.Update()
	if c.Elapsed() != 0 {
		t.Fatalf("non-started clock must not advance, got %v", c.Elapsed())
	}

	c.Start()
	st.advance(16 * time.Millisecond)
	c.Update()
	if d := c.Delta(); math.Abs(d-0.016) > 1e-9 {
		t.Fatalf("delta = %v, want 0.016", d)
	}
	st.advance(34 * time.Millisecond)
	c.Update()
	if d := c.Delta(); math.Abs(d-0.034) > 1e-9 {
		t.Fatalf("delta = %v, want 0.034", d)
	}
	if ms := c.ElapsedMS(); math.Abs(ms-50) > 1e-6 {
		t.Fatalf("elapsed ms = %v, want 50", ms)
	}

	c.Stop()
	st.advance(time.Second)
	c.Update()
	if ms := c.ElapsedMS(); math.Abs(ms-50) > 1e-6 {
		t.Fatalf("stopped clock advanced to %v", ms)
	}
}

func TestEventRegisterFireUnregister(t *testing.T) {
	if !EventSystemInitialize() {
		t.Fatal("event system failed to initialize")
	}
	defer EventSystemShutdown()

	if EventSystemInitialize() {
		t.Fatal("second initialize must report false")
	}

	type listener struct{ calls int }
	a, b := &listener{}, &listener{}

	if !EventRegister(EVENT_CODE_RESIZED, a, func(EventContext) { a.calls++ }) {
		t.Fatal("register a")
	}
	if EventRegister(EVENT_CODE_RESIZED, a, func(EventContext) { a.calls++ }) {
		t.Fatal("duplicate register must fail")
	}
	EventRegister(EVENT_CODE_RESIZED, b, func(EventContext) { b.calls++ })

	if !EventFire(EventContext{Type: EVENT_CODE_RESIZED}) {
		t.Fatal("fire should reach listeners")
	}
	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("calls = %d/%d", a.calls, b.calls)
	}

	if !EventUnregister(EVENT_CODE_RESIZED, a) {
		t.Fatal("unregister a")
	}
	if EventUnregister(EVENT_CODE_RESIZED, a) {
		t.Fatal("second unregister must fail")
	}
	EventFire(EventContext{Type: EVENT_CODE_RESIZED})
	if a.calls != 1 || b.calls != 2 {
		t.Fatalf("after unregister calls = %d/%d", a.calls, b.calls)
	}
	if n := EventListenerCount(EVENT_CODE_RESIZED); n != 1 {
		t.Fatalf("listener count = %d", n)
	}
}

func TestEventUnregisterDuringDispatch(t *testing.T) {
	EventSystemInitialize()
	defer EventSystemShutdown()

	type listener struct{ calls int }
	l := &listener{}
	EventRegister(EVENT_CODE_MOUSE_MOVED, l, func(EventContext) {
		l.calls++
		EventUnregister(EVENT_CODE_MOUSE_MOVED, l)
	})
	EventFire(EventContext{Type: EVENT_CODE_MOUSE_MOVED})
	EventFire(EventContext{Type: EVENT_CODE_MOUSE_MOVED})
	if l.calls != 1 {
		t.Fatalf("calls = %d, want 1", l.calls)
	}
}

func TestEventShutdownTwice(t *testing.T) {
	EventSystemInitialize()
	if err := EventSystemShutdown(); err != nil {
		t.Fatal(err)
	}
	if err := EventSystemShutdown(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if EventFire(EventContext{Type: EVENT_CODE_RESIZED}) {
		t.Fatal("fire after shutdown must be a no-op")
	}
}

func TestInputMouseMoveFiresEvent(t *testing.T) {
	EventSystemInitialize()
	defer EventSystemShutdown()
	InputInitialize()
	defer InputShutdown()

	var got *MouseEvent
	EventRegister(EVENT_CODE_MOUSE_MOVED, t, func(ctx EventContext) {
		got = ctx.Data.(*MouseEvent)
	})

	InputProcessMouseMove(12.5, 40)
	if got == nil || got.PosX != 12.5 || got.PosY != 40 {
		t.Fatalf("event = %+v", got)
	}
	x, y := InputGetMousePosition()
	if x != 12.5 || y != 40 {
		t.Fatalf("position = %v,%v", x, y)
	}

	InputUpdate()
	InputProcessMouseMove(1, 2)
	px, py := InputGetPreviousMousePosition()
	if px != 12.5 || py != 40 {
		t.Fatalf("previous position = %v,%v", px, py)
	}
}

func TestInputKeyEdges(t *testing.T) {
	EventSystemInitialize()
	defer EventSystemShutdown()
	InputInitialize()
	defer InputShutdown()

	var pressed, released int
	EventRegister(EVENT_CODE_KEY_PRESSED, &pressed, func(EventContext) { pressed++ })
	EventRegister(EVENT_CODE_KEY_RELEASED, &released, func(EventContext) { released++ })

	InputProcessKey(KEY_ESCAPE, true)
	InputProcessKey(KEY_ESCAPE, true)
	if pressed != 1 {
		t.Fatalf("repeat press should not refire, pressed = %d", pressed)
	}
	if !InputIsKeyDown(KEY_ESCAPE) || InputWasKeyDown(KEY_ESCAPE) {
		t.Fatal("unexpected key state before update")
	}
	InputUpdate()
	InputProcessKey(KEY_ESCAPE, false)
	if released != 1 || !InputWasKeyDown(KEY_ESCAPE) {
		t.Fatalf("released = %d", released)
	}
}

func TestMetricsRollingAverage(t *testing.T) {
	MetricsInitialize()
	for i := 0; i < AVG_COUNT; i++ {
		MetricsUpdate(0.010)
	}
	for i := 0; i < AVG_COUNT; i++ {
		MetricsUpdate(0.020)
	}
	if avg := MetricsFrameTime(); math.Abs(avg-20) > 1e-9 {
		t.Fatalf("average = %v, want 20", avg)
	}
	// 30 frames at 10ms + 30 at 20ms = 900ms, not a full second yet
	if MetricsFPS() != 0 {
		t.Fatalf("fps = %v before one second", MetricsFPS())
	}
	for i := 0; i < 5; i++ {
		MetricsUpdate(0.020)
	}
	if fps := MetricsFPS(); fps < 60 || fps > 70 {
		t.Fatalf("fps = %v", fps)
	}
	if MetricsTotalFrames() != 65 {
		t.Fatalf("total frames = %d", MetricsTotalFrames())
	}
}

func TestIdentifierReuse(t *testing.T) {
	a := IdentifierAcquireNewID("a")
	b := IdentifierAcquireNewID("b")
	if a == b {
		t.Fatal("ids must differ")
	}
	if err := IdentifierReleaseID(a); err != nil {
		t.Fatal(err)
	}
	if _, ok := IdentifierOwner(a); ok {
		t.Fatal("released id still owned")
	}
	c := IdentifierAcquireNewID("c")
	if c != a {
		t.Fatalf("expected reuse of %d, got %d", a, c)
	}
	if err := IdentifierReleaseID(1 << 20); err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestLogLevelConfigurable(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(nopWriter{})

	lvl, err := ParseLogLevel("warn")
	if err != nil {
		t.Fatal(err)
	}
	SetLogLevel(lvl)
	defer SetLogLevel(InfoLevel)

	LogInfo("hidden %d", 1)
	LogWarn("shown %d", 2)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown 2") {
		t.Fatalf("unexpected log output %q", out)
	}
	if _, err := ParseLogLevel("loud"); err == nil {
		t.Fatal("expected parse error")
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
