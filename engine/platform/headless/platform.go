// Package headless is a window-less platform. Window events are injected by
// the caller instead of coming from an OS window.
package headless

import (
	"sync"
	"time"

	"github.com/spaghettifunk/bubble/engine/core"
	"github.com/spaghettifunk/bubble/engine/platform"
)

type Platform struct {
	mu sync.Mutex

	config        platform.WindowConfig
	width         uint32
	height        uint32
	pixelRatio    float64
	cursorVisible bool
	closed        bool
	swaps         uint64
	started       time.Time
	pending       []func()
	sleep         func(time.Duration)
}

func New(pixelRatio float64) *Platform {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	return &Platform{
		pixelRatio:    pixelRatio,
		cursorVisible: true,
		sleep:         time.Sleep,
	}
}

// WithSleep replaces the function Sleep delegates to.
func (p *Platform) WithSleep(fn func(time.Duration)) *Platform {
	p.sleep = fn
	return p
}

// WithoutSleep makes Sleep return immediately, for tests.
func (p *Platform) WithoutSleep() *Platform {
	return p.WithSleep(func(time.Duration) {})
}

func (p *Platform) Startup(config platform.WindowConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.config = config
	p.width = config.Width
	p.height = config.Height
	p.cursorVisible = !config.HideCursor
	p.started = time.Now()
	p.closed = false
	core.LogInfo("headless platform started at %dx%d", p.width, p.height)
	return nil
}

func (p *Platform) Shutdown() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.pending = nil
	return nil
}

// PumpMessages delivers the events queued since the last call, in order.
func (p *Platform) PumpMessages() bool {
	p.mu.Lock()
	pending := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, fn := range pending {
		fn()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.closed
}

func (p *Platform) SwapBuffers() {
	p.mu.Lock()
	p.swaps++
	p.mu.Unlock()
}

func (p *Platform) Swaps() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.swaps
}

func (p *Platform) WindowSize() (uint32, uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width, p.height
}

func (p *Platform) FramebufferSize() (uint32, uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return uint32(float64(p.width) * p.pixelRatio), uint32(float64(p.height) * p.pixelRatio)
}

func (p *Platform) PixelRatio() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pixelRatio
}

func (p *Platform) SetCursorVisible(visible bool) {
	p.mu.Lock()
	p.cursorVisible = visible
	p.mu.Unlock()
}

func (p *Platform) CursorVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursorVisible
}

func (p *Platform) GetAbsoluteTime() float64 {
	return time.Since(p.started).Seconds()
}

func (p *Platform) Sleep(ms uint64) {
	p.sleep(time.Duration(ms) * time.Millisecond)
}

func (p *Platform) enqueue(fn func()) {
	p.mu.Lock()
	p.pending = append(p.pending, fn)
	p.mu.Unlock()
}

// Resize changes the window size on the next PumpMessages.
func (p *Platform) Resize(width, height uint32) {
	p.enqueue(func() {
		p.mu.Lock()
		p.width, p.height = width, height
		p.mu.Unlock()
		platform.ProcessResize(width, height)
	})
}

// MoveCursor moves the pointer on the next PumpMessages.
func (p *Platform) MoveCursor(x, y float64) {
	p.enqueue(func() {
		core.InputProcessMouseMove(x, y)
	})
}

// PressKey presses and releases a key on the next PumpMessages.
func (p *Platform) PressKey(key core.KeyCode) {
	p.enqueue(func() {
		core.InputProcessKey(key, true)
		core.InputProcessKey(key, false)
	})
}

// Close behaves like the user closing the window.
func (p *Platform) Close() {
	p.enqueue(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
	})
}
