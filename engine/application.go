package engine

import (
	"time"

	"github.com/spaghettifunk/bubble/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name      string
	LogLevel  core.LogLevel
	Resizable bool

	VSync     bool
	Antialias bool
	Samples   int
	// Upper bound for the device pixel ratio used for the drawing buffer.
	MaxPixelRatio float64
	// Frame limiter, 0 disables it.
	MaxFPS float64
	// Stop after this many frames, 0 runs until stopped.
	MaxFrames uint64
	// Hide the OS cursor while the window has focus.
	HideCursor bool

	// Worker goroutines for per-vertex work, see systems.SystemManagerConfig.
	Workers    int
	CameraFOV  float32
	CameraNear float32
	CameraFar  float32

	// Configuration file to watch for changes. Empty disables watching.
	ConfigPath    string
	WatchDebounce time.Duration
}
