package math

import (
	"fmt"
	gomath "math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ParseHexColour reads "#rrggbb", "rrggbb" or "0xrrggbb" into sRGB
// components in [0, 1].
func ParseHexColour(s string) (mgl32.Vec3, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	h = strings.TrimPrefix(strings.ToLower(h), "0x")
	if len(h) != 6 {
		return mgl32.Vec3{}, fmt.Errorf("colour %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return mgl32.Vec3{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return mgl32.Vec3{
		float32((v>>16)&0xff) / 255.0,
		float32((v>>8)&0xff) / 255.0,
		float32(v&0xff) / 255.0,
	}, nil
}

// SRGBToLinear converts a colour to linear space for lighting.
func SRGBToLinear(c mgl32.Vec3) mgl32.Vec3 {
	var out mgl32.Vec3
	for i := 0; i < 3; i++ {
		v := float64(c[i])
		if v <= 0.04045 {
			out[i] = float32(v / 12.92)
		} else {
			out[i] = float32(gomath.Pow((v+0.055)/1.055, 2.4))
		}
	}
	return out
}
