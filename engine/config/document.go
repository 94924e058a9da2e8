package config

import (
	"fmt"

	"github.com/spaghettifunk/bubble/engine/bubble"
	"github.com/spaghettifunk/bubble/engine/core"
	"github.com/spaghettifunk/bubble/engine/cursor"
)

// document is the on-disk layout. Presets and cursor styles use optional
// fields so a table only needs the keys it changes.
type document struct {
	Window   *WindowConfig         `toml:"window"`
	Logging  *LoggingConfig        `toml:"logging"`
	Renderer *RendererConfig       `toml:"renderer"`
	Camera   *CameraConfig         `toml:"camera"`
	Bubble   *BubbleConfig         `toml:"bubble"`
	Material *MaterialConfig       `toml:"material"`
	Lights   *LightsConfig         `toml:"lights"`
	Assets   *AssetsConfig         `toml:"assets"`
	Cursor   cursorDocument        `toml:"cursor"`
	Presets  map[string]presetFile `toml:"presets"`
}

type cursorDocument struct {
	Enabled *bool                `toml:"enabled"`
	Class   *string              `toml:"class"`
	Styles  map[string]styleFile `toml:"styles"`
}

type presetFile struct {
	// Preset the table starts from, "bubble" when empty.
	Base               string   `toml:"base"`
	Radius             *float64 `toml:"radius"`
	RotationSpeed      *float64 `toml:"rotation_speed"`
	TimeScale          *float64 `toml:"time_scale"`
	NoiseAmplitude     *float64 `toml:"noise_amplitude"`
	WobbleAmplitude    *float64 `toml:"wobble_amplitude"`
	WobbleFrequency    *float64 `toml:"wobble_frequency"`
	BreathingRate      *float64 `toml:"breathing_rate"`
	BreathingAmplitude *float64 `toml:"breathing_amplitude"`
}

type styleFile struct {
	Shape            *cursor.Shape     `toml:"shape"`
	Size             *float64          `toml:"size"`
	Thickness        *float64          `toml:"thickness"`
	Colour           *string           `toml:"colour"`
	Opacity          *float64          `toml:"opacity"`
	Blend            *cursor.BlendMode `toml:"blend"`
	HideSystemCursor *bool             `toml:"hide_system_cursor"`
}

// newDocument points the plain sections at cfg so decoding overwrites only
// the keys present in the file.
func newDocument(cfg *Config) *document {
	return &document{
		Window:   &cfg.Window,
		Logging:  &cfg.Logging,
		Renderer: &cfg.Renderer,
		Camera:   &cfg.Camera,
		Bubble:   &cfg.Bubble,
		Material: &cfg.Material,
		Lights:   &cfg.Lights,
		Assets:   &cfg.Assets,
	}
}

func (d *document) apply(cfg *Config) error {
	if d.Cursor.Enabled != nil {
		cfg.Cursor.Enabled = *d.Cursor.Enabled
	}
	if d.Cursor.Class != nil {
		cfg.Cursor.Class = *d.Cursor.Class
	}
	for class, sf := range d.Cursor.Styles {
		base, ok := cfg.Cursor.Styles[class]
		if !ok {
			base = cursor.DefaultStyle()
		}
		cfg.Cursor.Styles[class] = sf.merge(base)
	}

	for name, pf := range d.Presets {
		baseName := pf.Base
		if baseName == "" {
			baseName = bubble.DefaultPreset
		}
		base, ok := bubble.Builtin(baseName)
		if !ok {
			return fmt.Errorf("%w: presets.%s: base %q must be a built-in preset", core.ErrInvalidConfig, name, baseName)
		}
		p := pf.merge(base)
		p.Name = name
		cfg.Presets[name] = p
	}
	return nil
}

func (pf presetFile) merge(p bubble.Preset) bubble.Preset {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Radius, pf.Radius)
	set(&p.RotationSpeed, pf.RotationSpeed)
	set(&p.TimeScale, pf.TimeScale)
	set(&p.NoiseAmplitude, pf.NoiseAmplitude)
	set(&p.WobbleAmplitude, pf.WobbleAmplitude)
	set(&p.WobbleFrequency, pf.WobbleFrequency)
	set(&p.BreathingRate, pf.BreathingRate)
	set(&p.BreathingAmplitude, pf.BreathingAmplitude)
	return p
}

func (sf styleFile) merge(s cursor.Style) cursor.Style {
	if sf.Shape != nil {
		s.Shape = *sf.Shape
	}
	if sf.Size != nil {
		s.Size = *sf.Size
	}
	if sf.Thickness != nil {
		s.Thickness = *sf.Thickness
	}
	if sf.Colour != nil {
		s.Colour = *sf.Colour
	}
	if sf.Opacity != nil {
		s.Opacity = *sf.Opacity
	}
	if sf.Blend != nil {
		s.Blend = *sf.Blend
	}
	if sf.HideSystemCursor != nil {
		s.HideSystemCursor = *sf.HideSystemCursor
	}
	return s
}
