package platform

import "github.com/spaghettifunk/bubble/engine/core"

type WindowConfig struct {
	ApplicationName string
	X               uint32
	Y               uint32
	Width           uint32
	Height          uint32
	Resizable       bool
	VSync           bool
	// Multisample sample count, 0 disables antialiasing.
	Samples int
	// Hide the system cursor while it is over the window.
	HideCursor bool
}

// Platform is the window system. Implementations translate native input
// into the core input and event systems and must be driven from the main
// thread.
type Platform interface {
	Startup(config WindowConfig) error
	Shutdown() error
	// PumpMessages processes pending window events. It returns false once
	// the window has been asked to close.
	PumpMessages() bool
	SwapBuffers()
	// WindowSize is the logical client area size.
	WindowSize() (uint32, uint32)
	// FramebufferSize is the size in device pixels.
	FramebufferSize() (uint32, uint32)
	// PixelRatio is device pixels per logical pixel.
	PixelRatio() float64
	SetCursorVisible(visible bool)
	GetAbsoluteTime() float64
	Sleep(ms uint64)
}

// ProcessResize publishes a new logical window size.
func ProcessResize(width, height uint32) {
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.SystemEvent{
			WindowWidth:  width,
			WindowHeight: height,
		},
	})
}

// RequestQuit asks the engine to stop after the current frame.
func RequestQuit() {
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
}

// PixelRatioFor derives the device pixel ratio from the two sizes.
func PixelRatioFor(windowWidth, framebufferWidth uint32) float64 {
	if windowWidth == 0 || framebufferWidth == 0 {
		return 1
	}
	return float64(framebufferWidth) / float64(windowWidth)
}
