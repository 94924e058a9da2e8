package background

import (
	"slices"

	"github.com/spaghettifunk/bubble/engine/bubble"
	"github.com/spaghettifunk/bubble/engine/config"
	"github.com/spaghettifunk/bubble/engine/core"
	"github.com/spaghettifunk/bubble/engine/cursor"
	"github.com/spaghettifunk/bubble/engine/noise"
)

func (g *BubbleGame) onKey(context core.EventContext) {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}
	state := g.state()

	switch ke.KeyCode {
	case core.KEY_1:
		g.switchPreset(bubble.PresetBubble)
	case core.KEY_2:
		g.switchPreset(bubble.PresetClassic)
	case core.KEY_C:
		names := state.config.PresetNames()
		slices.Sort(names)
		next := names[0]
		if i := slices.Index(names, state.bubble.Preset().Name); i >= 0 {
			next = names[(i+1)%len(names)]
		}
		g.switchPreset(next)
	case core.KEY_R:
		field, err := noise.New(noise.NewSeed(), state.config.NoiseOptions())
		if err != nil {
			core.LogError(err.Error())
			return
		}
		state.bubble.SetField(field)
		core.LogInfo("reseeded noise field: %d", field.Seed())
	case core.KEY_N:
		state.debugMode = state.debugMode.Next()
		core.LogInfo("debug view: %s", state.debugMode)
	}
}

func (g *BubbleGame) switchPreset(name string) {
	state := g.state()
	preset, err := bubble.Lookup(name, state.config.Presets)
	if err != nil {
		core.LogError(err.Error())
		return
	}
	if err := state.bubble.SetPreset(preset); err != nil {
		core.LogError(err.Error())
		return
	}
	core.LogInfo("preset: %s", preset.Name)
}

// onConfigReloaded applies whatever can change without rebuilding the
// mesh or the window.
func (g *BubbleGame) onConfigReloaded(context core.EventContext) {
	cfg, ok := context.Data.(*config.Config)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}
	state := g.state()
	old := state.config
	applyOverrides(cfg, state.overrides)
	if err := cfg.Validate(); err != nil {
		core.LogError("ignoring reloaded configuration: %s", err)
		return
	}

	if err := state.applyAppearance(cfg); err != nil {
		core.LogError(err.Error())
		return
	}

	preset, err := cfg.ResolvePreset()
	if err != nil {
		core.LogError(err.Error())
		return
	}
	if preset != state.bubble.Preset() {
		if err := state.bubble.SetPreset(preset); err != nil {
			core.LogError(err.Error())
			return
		}
	}

	if cfg.Bubble.Seed != old.Bubble.Seed || cfg.NoiseOptions() != old.NoiseOptions() {
		field, err := newField(cfg, state.bubble.Field().Seed())
		if err != nil {
			core.LogError(err.Error())
			return
		}
		state.bubble.SetField(field)
	}
	if cfg.Bubble.WidthSegments != old.Bubble.WidthSegments || cfg.Bubble.HeightSegments != old.Bubble.HeightSegments {
		core.LogWarn("sphere tessellation changes need a restart")
	}

	state.config = cfg
	var last cursor.Point
	var seen bool
	if state.follower != nil {
		last, seen = state.follower.Position()
	}
	g.unmountCursor()
	if err := g.mountCursor(cfg); err != nil {
		core.LogError(err.Error())
	}
	if state.follower != nil && seen {
		state.follower.OnPointerMove(last)
	}
	core.LogDebug("configuration applied: preset=%s", preset.Name)
}
