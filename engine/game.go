package engine

import (
	"github.com/spaghettifunk/bubble/engine/renderer"
	"github.com/spaghettifunk/bubble/engine/renderer/metadata"
	"github.com/spaghettifunk/bubble/engine/systems"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	Renderer          *renderer.Renderer
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func() error

// Update advances the game by deltaTime seconds. elapsedMS is the
// monotonic time since the loop started, in milliseconds.
type Update func(deltaTime float64, elapsedMS float64) error
type Render func(packet *metadata.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
