/*
The bubble background: a noise-deformed sphere slowly turning behind a
custom pointer marker.
*/
package background

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/bubble/engine"
	"github.com/spaghettifunk/bubble/engine/bubble"
	"github.com/spaghettifunk/bubble/engine/config"
	"github.com/spaghettifunk/bubble/engine/core"
	"github.com/spaghettifunk/bubble/engine/cursor"
	"github.com/spaghettifunk/bubble/engine/math"
	"github.com/spaghettifunk/bubble/engine/noise"
	"github.com/spaghettifunk/bubble/engine/renderer/components"
	"github.com/spaghettifunk/bubble/engine/renderer/metadata"
)

// Overrides come from the command line and win over the configuration
// file, including after a reload.
type Overrides struct {
	Preset string
	Seed   int64
}

type BubbleGame struct {
	*engine.Game
}

type gameState struct {
	config    *config.Config
	overrides Overrides

	bubble   *bubble.Bubble
	geometry *metadata.Geometry
	material *metadata.Material
	camera   *components.Camera

	clearColour mgl32.Vec3
	ambient     metadata.AmbientLight
	directional metadata.DirectionalLight
	debugMode   metadata.RendererDebugViewMode

	layer    *cursor.Layer
	follower *cursor.Follower
	// overlay masks by cursor class, rasterized at maskRatio
	masks     map[string]*metadata.OverlayMask
	maskRatio float64

	width  uint32
	height uint32
}

// ApplicationConfigFrom maps the file configuration onto the engine's.
func ApplicationConfigFrom(cfg *config.Config) (*engine.ApplicationConfig, error) {
	level, err := core.ParseLogLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	hideCursor := false
	if cfg.Cursor.Enabled {
		if s, ok := cfg.Cursor.Styles[cfg.Cursor.Class]; ok {
			hideCursor = s.HideSystemCursor
		}
	}
	app := &engine.ApplicationConfig{
		StartPosX:     uint32(max(cfg.Window.X, 0)),
		StartPosY:     uint32(max(cfg.Window.Y, 0)),
		StartWidth:    cfg.Window.Width,
		StartHeight:   cfg.Window.Height,
		Name:          cfg.Window.Title,
		LogLevel:      level,
		Resizable:     cfg.Window.Resizable,
		VSync:         cfg.Renderer.VSync,
		Antialias:     cfg.Renderer.Antialias,
		Samples:       cfg.Renderer.Samples,
		MaxPixelRatio: cfg.Renderer.MaxPixelRatio,
		MaxFPS:        float64(cfg.Renderer.MaxFPS),
		HideCursor:    hideCursor,
		Workers:       cfg.Bubble.Workers,
		CameraFOV:     float32(cfg.Camera.FOV),
		CameraNear:    float32(cfg.Camera.Near),
		CameraFar:     float32(cfg.Camera.Far),
	}
	if cfg.Assets.Watch && cfg.Source != "" {
		app.ConfigPath = cfg.Source
		app.WatchDebounce = time.Duration(cfg.Assets.DebounceMS) * time.Millisecond
	}
	return app, nil
}

func NewBubbleGame(cfg *config.Config, overrides Overrides) (*BubbleGame, error) {
	applyOverrides(cfg, overrides)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	app, err := ApplicationConfigFrom(cfg)
	if err != nil {
		return nil, err
	}

	bg := &BubbleGame{
		Game: &engine.Game{
			ApplicationConfig: app,
			State: &gameState{
				config:    cfg,
				overrides: overrides,
				layer:     cursor.NewLayer(),
				masks:     make(map[string]*metadata.OverlayMask),
				width:     app.StartWidth,
				height:    app.StartHeight,
			},
		},
	}

	bg.FnInitialize = bg.Initialize
	bg.FnUpdate = bg.Update
	bg.FnRender = bg.Render
	bg.FnOnResize = bg.OnResize
	bg.FnShutdown = bg.Shutdown

	return bg, nil
}

func applyOverrides(cfg *config.Config, o Overrides) {
	if o.Preset != "" {
		cfg.Bubble.Preset = o.Preset
	}
	if o.Seed != 0 {
		cfg.Bubble.Seed = o.Seed
	}
}

func (g *BubbleGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *BubbleGame) Initialize() error {
	core.LogDebug("BubbleGame Initialize fn....")

	if g.SystemManager == nil || g.Renderer == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}
	state := g.state()
	cfg := state.config

	field, err := newField(cfg, 0)
	if err != nil {
		return err
	}
	preset, err := cfg.ResolvePreset()
	if err != nil {
		return err
	}
	b, err := bubble.New(preset, field, cfg.Bubble.WidthSegments, cfg.Bubble.HeightSegments)
	if err != nil {
		return err
	}
	if js := g.SystemManager.JobSystem(); js != nil {
		b.SetDispatcher(js)
	}
	state.bubble = b

	if err := state.applyAppearance(cfg); err != nil {
		return err
	}

	geometry, err := g.SystemManager.GeometrySystem().AcquireFromConfig(&metadata.GeometryConfig{
		Name:     metadata.BubbleGeometryName,
		Vertices: b.Vertices(),
		Indices:  b.Indices(),
		Dynamic:  true,
		Material: state.material,
	})
	if err != nil {
		return err
	}
	state.geometry = geometry
	b.ClearDirty()

	state.camera = g.SystemManager.CameraSystem().GetDefault()
	state.camera.SetPosition(vec3(cfg.Camera.Position))
	state.camera.LookAt(mgl32.Vec3{})

	if err := g.mountCursor(cfg); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, g, g.onKey)
	core.EventRegister(core.EVENT_CODE_CONFIG_RELOADED, g, g.onConfigReloaded)

	core.LogInfo("bubble ready: preset=%s noise=%s seed=%d vertices=%d",
		preset.Name, cfg.Bubble.Noise, field.Seed(), len(b.Vertices()))
	return nil
}

// newField builds the noise field. keepSeed is used when the configuration
// asks for a random seed, so a reload does not reshuffle the surface.
func newField(cfg *config.Config, keepSeed int64) (noise.Field, error) {
	seed := cfg.Bubble.Seed
	if seed == 0 {
		seed = keepSeed
	}
	if seed == 0 {
		seed = noise.NewSeed()
	}
	return noise.New(seed, cfg.NoiseOptions())
}

func vec3(v [3]float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// applyAppearance converts the colour settings. Material and light colours
// are linear, the clear colour is written to the framebuffer as is.
func (s *gameState) applyAppearance(cfg *config.Config) error {
	clear, err := math.ParseHexColour(cfg.Renderer.ClearColour)
	if err != nil {
		return err
	}
	diffuse, err := math.ParseHexColour(cfg.Material.Colour)
	if err != nil {
		return err
	}
	ambient, err := math.ParseHexColour(cfg.Lights.Ambient.Colour)
	if err != nil {
		return err
	}
	directional, err := math.ParseHexColour(cfg.Lights.Directional.Colour)
	if err != nil {
		return err
	}

	s.clearColour = clear
	if s.material == nil {
		s.material = &metadata.Material{Name: "bubble"}
	}
	s.material.DiffuseColour = math.SRGBToLinear(diffuse)
	s.material.Metalness = float32(cfg.Material.Metalness)
	s.material.Roughness = float32(cfg.Material.Roughness)
	s.ambient = metadata.AmbientLight{
		Colour:    math.SRGBToLinear(ambient),
		Intensity: float32(cfg.Lights.Ambient.Intensity),
	}
	s.directional = metadata.DirectionalLight{
		Colour:    math.SRGBToLinear(directional),
		Intensity: float32(cfg.Lights.Directional.Intensity),
		Position:  vec3(cfg.Lights.Directional.Position),
	}
	return nil
}

func (g *BubbleGame) Update(deltaTime float64, elapsedMS float64) error {
	state := g.state()
	if err := state.bubble.Update(deltaTime, elapsedMS); err != nil {
		return err
	}
	if state.bubble.IsDirty() {
		if err := g.SystemManager.GeometrySystem().Update(state.geometry, state.bubble.Vertices()); err != nil {
			return err
		}
		state.bubble.ClearDirty()
	}
	return nil
}

func (g *BubbleGame) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	state := g.state()

	packet.ClearColour = state.clearColour
	packet.View = state.camera.GetView()
	packet.Projection = state.camera.GetProjection()
	packet.ViewPosition = state.camera.Position
	packet.CullMode = metadata.FaceCullModeBack
	packet.DebugMode = state.debugMode
	packet.Ambient = state.ambient
	packet.Directional = state.directional
	packet.Geometries = append(packet.Geometries, metadata.GeometryRenderData{
		Model:    state.bubble.Transform.GetWorld(),
		Geometry: state.geometry,
	})

	for _, el := range state.layer.Elements() {
		if !el.Visible {
			continue
		}
		style, ok := state.layer.Style(el.Class)
		if !ok {
			continue
		}
		mask, ok := state.masks[el.Class]
		if !ok {
			continue
		}
		colour, err := math.ParseHexColour(style.Colour)
		if err != nil {
			continue
		}
		side := float32(float64(mask.Width) / state.maskRatio)
		packet.Overlays = append(packet.Overlays, metadata.OverlayRenderData{
			Mask:     mask,
			Position: mgl32.Vec2{float32(el.Position.X), float32(el.Position.Y)},
			Size:     mgl32.Vec2{side, side},
			Colour:   colour,
			Opacity:  float32(style.Opacity),
			Blend:    blendMode(style.Blend),
		})
	}
	return nil
}

func blendMode(b cursor.BlendMode) metadata.BlendMode {
	switch b {
	case cursor.BlendAdditive:
		return metadata.BlendModeAdditive
	case cursor.BlendDifference:
		return metadata.BlendModeDifference
	default:
		return metadata.BlendModeNormal
	}
}

func (g *BubbleGame) OnResize(width uint32, height uint32) error {
	state := g.state()
	state.width = width
	state.height = height
	// markers are rasterized in device pixels
	if ratio := g.Renderer.Surface().PixelRatio; ratio != state.maskRatio {
		return g.rebuildMasks()
	}
	return nil
}

func (g *BubbleGame) Shutdown() error {
	state := g.state()
	core.EventUnregister(core.EVENT_CODE_KEY_PRESSED, g)
	core.EventUnregister(core.EVENT_CODE_CONFIG_RELOADED, g)

	g.unmountCursor()
	if state.geometry != nil {
		g.SystemManager.GeometrySystem().Release(state.geometry)
		state.geometry = nil
	}
	return nil
}
