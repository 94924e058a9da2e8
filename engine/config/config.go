// Package config loads the TOML configuration of the bubble background.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/bubble/engine/bubble"
	"github.com/spaghettifunk/bubble/engine/core"
	"github.com/spaghettifunk/bubble/engine/cursor"
	"github.com/spaghettifunk/bubble/engine/math"
	"github.com/spaghettifunk/bubble/engine/noise"
)

type Config struct {
	Window   WindowConfig
	Logging  LoggingConfig
	Renderer RendererConfig
	Camera   CameraConfig
	Bubble   BubbleConfig
	Material MaterialConfig
	Lights   LightsConfig
	Cursor   CursorConfig
	Assets   AssetsConfig
	// Custom presets by name, already merged onto their base.
	Presets map[string]bubble.Preset
	// Path the configuration was read from, empty for defaults.
	Source string
}

type WindowConfig struct {
	Title     string `toml:"title"`
	X         int    `toml:"x"`
	Y         int    `toml:"y"`
	Width     uint32 `toml:"width"`
	Height    uint32 `toml:"height"`
	Resizable bool   `toml:"resizable"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type RendererConfig struct {
	ClearColour string `toml:"clear_colour"`
	Antialias   bool   `toml:"antialias"`
	Samples     int    `toml:"samples"`
	// Upper bound applied to the device pixel ratio.
	MaxPixelRatio float64 `toml:"max_pixel_ratio"`
	// Zero disables frame limiting.
	MaxFPS int  `toml:"max_fps"`
	VSync  bool `toml:"vsync"`
}

type CameraConfig struct {
	FOV      float64    `toml:"fov"`
	Near     float64    `toml:"near"`
	Far      float64    `toml:"far"`
	Position [3]float64 `toml:"position"`
}

type BubbleConfig struct {
	Preset string `toml:"preset"`
	// Zero draws a fresh seed at startup.
	Seed           int64  `toml:"seed"`
	Noise          string `toml:"noise"`
	Octaves        int32  `toml:"octaves"`
	WidthSegments  uint32 `toml:"width_segments"`
	HeightSegments uint32 `toml:"height_segments"`
	// Deformation workers. Zero uses one per CPU, one disables the pool.
	Workers int `toml:"workers"`
}

type MaterialConfig struct {
	Colour    string  `toml:"colour"`
	Metalness float64 `toml:"metalness"`
	Roughness float64 `toml:"roughness"`
}

type AmbientLightConfig struct {
	Colour    string  `toml:"colour"`
	Intensity float64 `toml:"intensity"`
}

type DirectionalLightConfig struct {
	Colour    string     `toml:"colour"`
	Intensity float64    `toml:"intensity"`
	Position  [3]float64 `toml:"position"`
}

type LightsConfig struct {
	Ambient     AmbientLightConfig     `toml:"ambient"`
	Directional DirectionalLightConfig `toml:"directional"`
}

type CursorConfig struct {
	Enabled bool
	Class   string
	Styles  map[string]cursor.Style
}

type AssetsConfig struct {
	// Reload the configuration file when it changes on disk.
	Watch      bool `toml:"watch"`
	DebounceMS int  `toml:"debounce_ms"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "Bubble",
			X:         100,
			Y:         100,
			Width:     1280,
			Height:    720,
			Resizable: true,
		},
		Logging: LoggingConfig{Level: "info"},
		Renderer: RendererConfig{
			ClearColour:   "#2a2927",
			Antialias:     true,
			Samples:       4,
			MaxPixelRatio: 2,
			VSync:         true,
		},
		Camera: CameraConfig{
			FOV:      45,
			Near:     0.1,
			Far:      1000,
			Position: [3]float64{0, 0, 5},
		},
		Bubble: BubbleConfig{
			Preset:         bubble.DefaultPreset,
			Noise:          string(noise.KindPerlin),
			Octaves:        1,
			WidthSegments:  bubble.DefaultWidthSegments,
			HeightSegments: bubble.DefaultHeightSegments,
		},
		Material: MaterialConfig{
			Colour:    "#a9a9a9",
			Metalness: 0.6,
			Roughness: 0.4,
		},
		Lights: LightsConfig{
			Ambient: AmbientLightConfig{Colour: "#798296", Intensity: 0.7},
			Directional: DirectionalLightConfig{
				Colour:    "#ffffff",
				Intensity: 0.5,
				Position:  [3]float64{5, 10, 7},
			},
		},
		Cursor: CursorConfig{
			Enabled: true,
			Class:   cursor.DefaultClass,
			Styles:  map[string]cursor.Style{cursor.DefaultClass: cursor.DefaultStyle()},
		},
		Assets:  AssetsConfig{Watch: true, DebounceMS: 100},
		Presets: map[string]bubble.Preset{},
	}
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// Parse decodes a TOML document on top of the defaults. Unknown keys are
// rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	doc := newDocument(cfg)

	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", core.ErrInvalidConfig, strict.String())
		}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			return nil, fmt.Errorf("%w: line %d column %d: %s", core.ErrInvalidConfig, row, col, de.Error())
		}
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidConfig, err)
	}
	if err := doc.apply(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolvePreset returns the active preset, custom presets first.
func (c *Config) ResolvePreset() (bubble.Preset, error) {
	return bubble.Lookup(c.Bubble.Preset, c.Presets)
}

// PresetNames lists built-in and custom presets.
func (c *Config) PresetNames() []string {
	names := bubble.BuiltinNames()
	for n := range c.Presets {
		if _, ok := bubble.Builtin(n); !ok {
			names = append(names, n)
		}
	}
	return names
}

func (c *Config) NoiseOptions() noise.Options {
	return noise.Options{Kind: noise.Kind(c.Bubble.Noise), Octaves: c.Bubble.Octaves}
}

func (c *Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", core.ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Window.Width == 0 || c.Window.Height == 0 {
		return invalid("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := core.ParseLogLevel(c.Logging.Level); err != nil {
		return invalid("logging.level: %s", err)
	}
	if c.Renderer.MaxPixelRatio <= 0 {
		return invalid("renderer.max_pixel_ratio must be positive")
	}
	if c.Renderer.MaxFPS < 0 || c.Renderer.Samples < 0 {
		return invalid("renderer.max_fps and renderer.samples must not be negative")
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return invalid("camera.fov must be in (0, 180)")
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return invalid("camera planes must satisfy 0 < near < far")
	}
	if _, err := noise.New(1, c.NoiseOptions()); err != nil {
		return invalid("bubble.noise: %s", err)
	}
	if c.Bubble.Workers < 0 {
		return invalid("bubble.workers must not be negative")
	}
	if c.Material.Metalness < 0 || c.Material.Metalness > 1 || c.Material.Roughness < 0 || c.Material.Roughness > 1 {
		return invalid("material metalness and roughness must be in [0, 1]")
	}
	if c.Lights.Ambient.Intensity < 0 || c.Lights.Directional.Intensity < 0 {
		return invalid("light intensities must not be negative")
	}
	for name, colour := range map[string]string{
		"renderer.clear_colour":     c.Renderer.ClearColour,
		"material.colour":           c.Material.Colour,
		"lights.ambient.colour":     c.Lights.Ambient.Colour,
		"lights.directional.colour": c.Lights.Directional.Colour,
	} {
		if _, err := math.ParseHexColour(colour); err != nil {
			return invalid("%s: %s", name, err)
		}
	}
	for name, p := range c.Presets {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: presets.%s: %w", core.ErrInvalidConfig, name, err)
		}
	}
	if _, err := c.ResolvePreset(); err != nil {
		return fmt.Errorf("%w: bubble.preset: %w", core.ErrInvalidConfig, err)
	}
	for class, s := range c.Cursor.Styles {
		if err := s.Validate(); err != nil {
			return invalid("cursor.styles.%s: %s", class, err)
		}
	}
	if c.Cursor.Enabled {
		if _, ok := c.Cursor.Styles[c.Cursor.Class]; !ok {
			return invalid("cursor.class %q has no style", c.Cursor.Class)
		}
	}
	if c.Assets.DebounceMS < 0 {
		return invalid("assets.debounce_ms must not be negative")
	}
	return nil
}
