package background

import (
	"fmt"

	"github.com/spaghettifunk/bubble/engine/config"
	"github.com/spaghettifunk/bubble/engine/cursor"
	"github.com/spaghettifunk/bubble/engine/renderer/metadata"
)

func (g *BubbleGame) mountCursor(cfg *config.Config) error {
	state := g.state()
	state.layer.SetStyles(cfg.Cursor.Styles)
	if err := g.rebuildMasks(); err != nil {
		return err
	}
	if cfg.Cursor.Enabled {
		state.follower = cursor.NewFollower(state.layer, cfg.Cursor.Class)
	}
	return nil
}

func (g *BubbleGame) unmountCursor() {
	state := g.state()
	if state.follower != nil {
		state.follower.Dispose()
		state.follower = nil
	}
	g.destroyMasks()
}

// rebuildMasks rasterizes one overlay mask per configured class at the
// current pixel ratio.
func (g *BubbleGame) rebuildMasks() error {
	state := g.state()
	g.destroyMasks()

	ratio := g.Renderer.Surface().PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	for class := range state.config.Cursor.Styles {
		style, ok := state.layer.Style(class)
		if !ok {
			continue
		}
		mask := &metadata.OverlayMask{Name: "cursor." + class}
		if err := g.Renderer.CreateOverlayMask(mask, cursor.Rasterize(style, ratio)); err != nil {
			return fmt.Errorf("failed to upload cursor mask %q: %w", class, err)
		}
		state.masks[class] = mask
	}
	state.maskRatio = ratio
	return nil
}

func (g *BubbleGame) destroyMasks() {
	state := g.state()
	for class, mask := range state.masks {
		g.Renderer.DestroyOverlayMask(mask)
		delete(state.masks, class)
	}
}
