package bubble

import (
	"fmt"
	gomath "math"
	"sort"

	"github.com/spaghettifunk/bubble/engine/core"
)

const (
	PresetBubble  = "bubble"
	PresetClassic = "classic"

	DefaultPreset = PresetBubble
)

// Preset holds every tunable of the deformation and whole-mesh motion.
type Preset struct {
	Name string `toml:"-"`
	// Base radius k every vertex is reset to before displacement.
	Radius float64 `toml:"radius"`
	// Rotation about X and Y in radians per second.
	RotationSpeed float64 `toml:"rotation_speed"`
	// Multiplier turning the high-resolution clock (ms) into noise time.
	TimeScale float64 `toml:"time_scale"`
	// Weight of the noise sample in the scale factor.
	NoiseAmplitude float64 `toml:"noise_amplitude"`
	// Weight and spatial frequency of the sin(time + x*f) term. Zero disables it.
	WobbleAmplitude float64 `toml:"wobble_amplitude"`
	WobbleFrequency float64 `toml:"wobble_frequency"`
	// Uniform breathing scale 1 + sin(t)*amplitude, t advancing at rate per second.
	// Zero amplitude disables it.
	BreathingRate      float64 `toml:"breathing_rate"`
	BreathingAmplitude float64 `toml:"breathing_amplitude"`
}

var builtinPresets = map[string]Preset{
	PresetBubble: {
		Name:               PresetBubble,
		Radius:             1,
		RotationSpeed:      0.3,
		TimeScale:          0.0001,
		NoiseAmplitude:     0.3,
		WobbleAmplitude:    0.1,
		WobbleFrequency:    3,
		BreathingRate:      0.1,
		BreathingAmplitude: 0.2,
	},
	PresetClassic: {
		Name:           PresetClassic,
		Radius:         1,
		RotationSpeed:  0.01,
		TimeScale:      0.003,
		NoiseAmplitude: 0.3,
	},
}

// Builtin returns a copy of a named built-in preset.
func Builtin(name string) (Preset, bool) {
	p, ok := builtinPresets[name]
	return p, ok
}

func BuiltinNames() []string {
	names := make([]string, 0, len(builtinPresets))
	for n := range builtinPresets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves name against custom presets first, then the built-ins.
func Lookup(name string, custom map[string]Preset) (Preset, error) {
	if p, ok := custom[name]; ok {
		p.Name = name
		return p, nil
	}
	if p, ok := Builtin(name); ok {
		return p, nil
	}
	return Preset{}, fmt.Errorf("preset %q: %w", name, core.ErrUnknownPreset)
}

func (p Preset) WobbleEnabled() bool {
	return p.WobbleAmplitude != 0
}

func (p Preset) BreathingEnabled() bool {
	return p.BreathingAmplitude != 0 && p.BreathingRate != 0
}

// ScaleFactorBounds returns the closed interval every per-vertex scale
// factor falls in for noise values in [-1, 1].
func (p Preset) ScaleFactorBounds() (float64, float64) {
	spread := gomath.Abs(p.NoiseAmplitude) + gomath.Abs(p.WobbleAmplitude)
	return p.Radius - spread, p.Radius + spread
}

// Validate rejects presets that could collapse or invert the mesh.
func (p Preset) Validate() error {
	switch {
	case p.Radius <= 0:
		return fmt.Errorf("preset %q: radius must be positive: %w", p.Name, core.ErrInvalidPreset)
	case p.TimeScale < 0:
		return fmt.Errorf("preset %q: time_scale must not be negative: %w", p.Name, core.ErrInvalidPreset)
	case p.NoiseAmplitude < 0 || p.WobbleAmplitude < 0:
		return fmt.Errorf("preset %q: amplitudes must not be negative: %w", p.Name, core.ErrInvalidPreset)
	case p.BreathingAmplitude < 0 || p.BreathingAmplitude >= 1:
		return fmt.Errorf("preset %q: breathing_amplitude must be in [0, 1): %w", p.Name, core.ErrInvalidPreset)
	}
	if lo, _ := p.ScaleFactorBounds(); lo <= 0 {
		return fmt.Errorf("preset %q: minimum scale factor %.3f is not positive: %w", p.Name, lo, core.ErrInvalidPreset)
	}
	return nil
}
