package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/bubble/engine/assets"
	"github.com/spaghettifunk/bubble/engine/core"
	"github.com/spaghettifunk/bubble/engine/platform"
	"github.com/spaghettifunk/bubble/engine/renderer"
	"github.com/spaghettifunk/bubble/engine/renderer/metadata"
	"github.com/spaghettifunk/bubble/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released everything and cannot be restarted
	EngineStageShutdown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     atomic.Bool
	isSuspended   bool
	platform      platform.Platform
	renderer      *renderer.Renderer
	systemManager *systems.SystemManager
	watcher       *assets.ConfigWatcher
	width         uint32
	height        uint32
	clock         *core.Clock
	frameCount    uint64
}

func New(g *Game, p platform.Platform, backend renderer.RendererBackend) (*Engine, error) {
	cfg := g.ApplicationConfig
	r := renderer.New(backend, cfg.MaxPixelRatio)

	sm, err := systems.NewSystemManager(systems.SystemManagerConfig{
		Workers:   cfg.Workers,
		CameraFOV: cfg.CameraFOV,
		Near:      cfg.CameraNear,
		Far:       cfg.CameraFar,
	}, r)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	g.SystemManager = sm
	g.Renderer = r

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		clock:         core.NewClock(),
		platform:      p,
		renderer:      r,
		systemManager: sm,
		width:         cfg.StartWidth,
		height:        cfg.StartHeight,
	}, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return core.ErrAlreadyInitialized
	}
	e.currentStage = EngineStageInitializing
	cfg := e.gameInstance.ApplicationConfig

	core.SetLogLevel(cfg.LogLevel)

	// initialize events
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system: %w", core.ErrAlreadyInitialized)
	}
	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)

	if err := e.platform.Startup(platform.WindowConfig{
		ApplicationName: cfg.Name,
		X:               cfg.StartPosX,
		Y:               cfg.StartPosY,
		Width:           cfg.StartWidth,
		Height:          cfg.StartHeight,
		Resizable:       cfg.Resizable,
		VSync:           cfg.VSync,
		Samples:         samples(cfg),
		HideCursor:      cfg.HideCursor,
	}); err != nil {
		return fmt.Errorf("failed to start platform: %w", err)
	}

	e.width, e.height = e.platform.WindowSize()
	fbWidth, fbHeight := e.platform.FramebufferSize()
	if err := e.renderer.Initialize(&metadata.RendererBackendConfig{
		ApplicationName: cfg.Name,
		Antialias:       cfg.Antialias,
		Samples:         cfg.Samples,
		VSync:           cfg.VSync,
	}, e.width, e.height, e.platform.PixelRatio(), fbWidth, fbHeight); err != nil {
		return err
	}
	e.updateAspect(e.width, e.height)

	if cfg.ConfigPath != "" {
		w, err := assets.NewConfigWatcher(cfg.ConfigPath, cfg.WatchDebounce)
		if err != nil {
			// not fatal, the application simply won't hot reload
			core.LogWarn("failed to watch %s: %s", cfg.ConfigPath, err)
		} else {
			e.watcher = w
		}
	}

	if err := e.gameInstance.FnInitialize(); err != nil {
		return fmt.Errorf("game failed to initialize: %w", err)
	}
	if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}

	e.isRunning.Store(true)
	e.currentStage = EngineStageInitialized
	return nil
}

func samples(cfg *ApplicationConfig) int {
	if !cfg.Antialias {
		return 0
	}
	return cfg.Samples
}

// Run drives the frame loop until Stop is called, the window closes, the
// frame budget is exhausted or ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return core.ErrNotInitialized
	}
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()

	cfg := e.gameInstance.ApplicationConfig
	var targetFrameSeconds float64
	if cfg.MaxFPS > 0 {
		targetFrameSeconds = 1.0 / cfg.MaxFPS
	}

	for e.isRunning.Load() {
		if ctx.Err() != nil {
			break
		}
		if !e.platform.PumpMessages() {
			e.isRunning.Store(false)
			break
		}
		// input handlers may have asked to quit
		if !e.isRunning.Load() {
			break
		}

		e.pollConfig()

		if e.isSuspended {
			// keep the clock moving so the first frame after restore
			// does not see the whole pause as its delta
			e.clock.Update()
			e.clock.Delta()
			e.platform.Sleep(10)
			continue
		}

		e.clock.Update()
		delta := e.clock.Delta()
		frameStartTime := e.platform.GetAbsoluteTime()

		if err := e.gameInstance.FnUpdate(delta, e.clock.ElapsedMS()); err != nil {
			e.isRunning.Store(false)
			err = fmt.Errorf("game update failed: %w", err)
			core.LogError(err.Error())
			return err
		}

		packet := &metadata.RenderPacket{DeltaTime: delta}
		if err := e.gameInstance.FnRender(packet, delta); err != nil {
			e.isRunning.Store(false)
			err = fmt.Errorf("game render failed: %w", err)
			core.LogError(err.Error())
			return err
		}
		if err := e.renderer.DrawFrame(packet); err != nil {
			e.isRunning.Store(false)
			err = fmt.Errorf("failed to draw frame %d: %w", packet.FrameNumber, err)
			core.LogError(err.Error())
			return err
		}

		// Figure out how long the frame took and, if below the target, sleep.
		frameElapsedTime := e.platform.GetAbsoluteTime() - frameStartTime
		core.MetricsUpdate(frameElapsedTime)

		if targetFrameSeconds > 0 {
			remainingMS := (targetFrameSeconds - frameElapsedTime) * 1000
			// If there is time left, give it back to the OS.
			if remainingMS > 1 {
				e.platform.Sleep(uint64(remainingMS - 1))
			}
		}

		// NOTE: Input update/state copying should always be handled
		// after any input should be recorded; I.E. before this line.
		// As a safety, input is the last thing to be updated before
		// this frame ends.
		core.InputUpdate()

		e.frameCount++
		if cfg.MaxFrames > 0 && e.frameCount >= cfg.MaxFrames {
			e.isRunning.Store(false)
		}
	}

	e.clock.Stop()
	e.currentStage = EngineStageInitialized
	return nil
}

// Stop asks the loop to exit before the next frame. Safe from any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

func (e *Engine) IsRunning() bool {
	return e.isRunning.Load()
}

func (e *Engine) IsSuspended() bool {
	return e.isSuspended
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// FrameCount is the number of frames rendered by Run.
func (e *Engine) FrameCount() uint64 {
	return e.frameCount
}

// Shutdown releases everything in reverse order of creation. Calling it more
// than once is a no-op.
func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutdown || e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning.Store(false)

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	if e.watcher != nil {
		errs = append(errs, e.watcher.Close())
		e.watcher = nil
	}

	core.EventUnregister(core.EVENT_CODE_APPLICATION_QUIT, e)
	core.EventUnregister(core.EVENT_CODE_KEY_PRESSED, e)
	core.EventUnregister(core.EVENT_CODE_RESIZED, e)

	errs = append(errs, e.systemManager.Shutdown())
	errs = append(errs, e.renderer.Shutdown())
	errs = append(errs, e.platform.Shutdown())
	errs = append(errs, core.InputShutdown())
	if err := core.EventSystemShutdown(); err != nil && !errors.Is(err, core.ErrNotInitialized) {
		errs = append(errs, err)
	}

	e.currentStage = EngineStageShutdown
	if err := errors.Join(errs...); err != nil {
		core.LogError("shutdown finished with errors: %s", err)
		return err
	}
	core.LogInfo("engine shut down after %d frames", e.frameCount)
	return nil
}

// GetFramebufferSize returns the logical width and height (in this order)
// of the application window.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) pollConfig() {
	if e.watcher == nil {
		return
	}
	cfg := e.watcher.Poll()
	if cfg == nil {
		return
	}
	if level, err := core.ParseLogLevel(cfg.Logging.Level); err == nil {
		core.SetLogLevel(level)
	}
	core.LogInfo("configuration reloaded from %s", cfg.Source)
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_CONFIG_RELOADED,
		Data: cfg,
	})
}

// ConfigWatcher is nil when hot reload is disabled.
func (e *Engine) ConfigWatcher() *assets.ConfigWatcher {
	return e.watcher
}

func (e *Engine) updateAspect(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	e.systemManager.CameraSystem().SetAspect(float32(width) / float32(height))
}

func (e *Engine) onEvent(context core.EventContext) {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
	}
}

func (e *Engine) onKey(context core.EventContext) {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}
	if ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
	}
}

// onResized runs synchronously inside the platform's event dispatch so the
// camera and the surface are updated before the next frame renders.
func (e *Engine) onResized(context core.EventContext) {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}

	width := se.WindowWidth
	height := se.WindowHeight

	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height

	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}

	e.updateAspect(width, height)
	fbWidth, fbHeight := e.platform.FramebufferSize()
	if err := e.renderer.SetSize(width, height, e.platform.PixelRatio(), fbWidth, fbHeight); err != nil {
		core.LogError(err.Error())
	}
	if err := e.gameInstance.FnOnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
}
