package cursor

import (
	"fmt"
	"image"
	"image/draw"
	gomath "math"

	"github.com/spaghettifunk/bubble/engine/math"
	"golang.org/x/image/vector"
)

type Shape string

const (
	ShapeDisc Shape = "disc"
	ShapeRing Shape = "ring"
)

type BlendMode string

const (
	BlendNormal     BlendMode = "normal"
	BlendAdditive   BlendMode = "additive"
	BlendDifference BlendMode = "difference"
)

// Style is the appearance of a marker class.
type Style struct {
	Shape Shape `toml:"shape"`
	// Outer diameter in logical pixels.
	Size float64 `toml:"size"`
	// Stroke width of a ring in logical pixels.
	Thickness float64   `toml:"thickness"`
	Colour    string    `toml:"colour"`
	Opacity   float64   `toml:"opacity"`
	Blend     BlendMode `toml:"blend"`
	// Hide the OS pointer while a marker with this class is mounted.
	HideSystemCursor bool `toml:"hide_system_cursor"`
}

func DefaultStyle() Style {
	return Style{
		Shape:            ShapeRing,
		Size:             24,
		Thickness:        2,
		Colour:           "#ffffff",
		Opacity:          0.9,
		Blend:            BlendDifference,
		HideSystemCursor: true,
	}
}

func (s Style) Validate() error {
	switch s.Shape {
	case ShapeDisc, ShapeRing:
	default:
		return fmt.Errorf("cursor style: unknown shape %q", s.Shape)
	}
	switch s.Blend {
	case BlendNormal, BlendAdditive, BlendDifference:
	default:
		return fmt.Errorf("cursor style: unknown blend mode %q", s.Blend)
	}
	if s.Size <= 0 {
		return fmt.Errorf("cursor style: size must be positive")
	}
	if s.Shape == ShapeRing && (s.Thickness <= 0 || s.Thickness*2 >= s.Size) {
		return fmt.Errorf("cursor style: ring thickness %.1f does not fit size %.1f", s.Thickness, s.Size)
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("cursor style: opacity must be in [0, 1]")
	}
	if _, err := math.ParseHexColour(s.Colour); err != nil {
		return fmt.Errorf("cursor style: %w", err)
	}
	return nil
}

// bezier handle length for a quarter circle
const kappa = 0.5522847498

// Rasterize renders the style's shape into a square coverage mask at the
// given device pixel ratio. The shape is centred with one pixel of padding.
func Rasterize(s Style, pixelRatio float64) *image.Alpha {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	side := int(gomath.Ceil(s.Size*pixelRatio)) + 2
	mask := image.NewAlpha(image.Rect(0, 0, side, side))

	z := vector.NewRasterizer(side, side)
	z.DrawOp = draw.Src
	c := float32(side) / 2
	outer := float32(s.Size * pixelRatio / 2)
	circle(z, c, c, outer, false)
	if s.Shape == ShapeRing {
		inner := outer - float32(s.Thickness*pixelRatio)
		if inner > 0 {
			// opposite winding cuts the hole
			circle(z, c, c, inner, true)
		}
	}
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

func circle(z *vector.Rasterizer, cx, cy, r float32, reverse bool) {
	k := r * kappa
	if !reverse {
		z.MoveTo(cx+r, cy)
		z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	} else {
		z.MoveTo(cx+r, cy)
		z.CubeTo(cx+r, cy-k, cx+k, cy-r, cx, cy-r)
		z.CubeTo(cx-k, cy-r, cx-r, cy-k, cx-r, cy)
		z.CubeTo(cx-r, cy+k, cx-k, cy+r, cx, cy+r)
		z.CubeTo(cx+k, cy+r, cx+r, cy+k, cx+r, cy)
	}
	z.ClosePath()
}
