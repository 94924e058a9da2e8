/*
Bubble renders a slowly turning, noise-deformed sphere with a custom
pointer marker on top of it.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/bubble/background"
	"github.com/spaghettifunk/bubble/engine"
	"github.com/spaghettifunk/bubble/engine/config"
	"github.com/spaghettifunk/bubble/engine/core"
	"github.com/spaghettifunk/bubble/engine/platform"
	"github.com/spaghettifunk/bubble/engine/platform/glfw"
	"github.com/spaghettifunk/bubble/engine/platform/headless"
	"github.com/spaghettifunk/bubble/engine/renderer"
	headlessrenderer "github.com/spaghettifunk/bubble/engine/renderer/headless"
	"github.com/spaghettifunk/bubble/engine/renderer/opengl"
)

func main() {
	configPath := flag.String("config", "assets/bubble.toml", "path to the TOML configuration")
	preset := flag.String("preset", "", "animation preset, overrides the configuration")
	seed := flag.Int64("seed", 0, "noise seed, overrides the configuration")
	noWindow := flag.Bool("headless", false, "run without a window or GPU")
	frames := flag.Uint64("frames", 0, "stop after this many frames, 0 runs until closed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogWarn("%s not found, using the built-in configuration", *configPath)
		cfg, err = config.Default(), nil
	}
	if err != nil {
		core.LogFatal(err.Error())
	}

	bg, err := background.NewBubbleGame(cfg, background.Overrides{Preset: *preset, Seed: *seed})
	if err != nil {
		core.LogFatal(err.Error())
	}
	bg.ApplicationConfig.MaxFrames = *frames

	var p platform.Platform
	var backend renderer.RendererBackend
	if *noWindow {
		p = headless.New(1)
		backend = headlessrenderer.New()
	} else {
		gp := glfw.New()
		p = gp
		backend = opengl.New(gp)
	}

	e, err := engine.New(bg.Game, p, backend)
	if err != nil {
		core.LogFatal(err.Error())
	}
	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		core.LogFatal(err.Error())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer cancel()

	runErr := e.Run(ctx)
	core.LogInfo("stopped after %d frames, %.1f fps, %.2f ms/frame",
		e.FrameCount(), core.MetricsFPS(), core.MetricsFrameTime())
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogError(runErr.Error())
		os.Exit(1)
	}
}
