package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/bubble/engine/renderer/metadata"
)

// x, y, u, v. The mask's first row is its top, so v grows downwards.
var quadVertices = []float32{
	-0.5, -0.5, 0, 1,
	0.5, -0.5, 1, 1,
	0.5, 0.5, 1, 0,
	-0.5, -0.5, 0, 1,
	0.5, 0.5, 1, 0,
	-0.5, 0.5, 0, 0,
}

func (gr *OpenGLRenderer) createQuad() {
	gl.GenVertexArrays(1, &gr.context.QuadVAO)
	gl.BindVertexArray(gr.context.QuadVAO)

	gl.GenBuffers(1, &gr.context.QuadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, gr.context.QuadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 16, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 16, 8)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

func (gr *OpenGLRenderer) destroyQuad() {
	gl.DeleteBuffers(1, &gr.context.QuadVBO)
	gl.DeleteVertexArrays(1, &gr.context.QuadVAO)
}

func (gr *OpenGLRenderer) CreateOverlayMask(mask *metadata.OverlayMask, pixels []uint8) error {
	if len(pixels) != int(mask.Width*mask.Height) || len(pixels) == 0 {
		return fmt.Errorf("overlay mask %q has %d bytes for %dx%d", mask.Name, len(pixels), mask.Width, mask.Height)
	}

	var internal *opengl_overlay_data
	for i := uint32(0); i < OPENGL_MAX_OVERLAY_COUNT; i++ {
		if !gr.context.Overlays[i].InUse {
			mask.InternalID = i
			internal = &gr.context.Overlays[i]
			break
		}
	}
	if internal == nil {
		return fmt.Errorf("no free overlay slot, max is %d", OPENGL_MAX_OVERLAY_COUNT)
	}

	*internal = opengl_overlay_data{Width: mask.Width, Height: mask.Height, InUse: true}

	gl.GenTextures(1, &internal.Texture)
	gl.BindTexture(gl.TEXTURE_2D, internal.Texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(mask.Width), int32(mask.Height), 0, gl.RED, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (gr *OpenGLRenderer) DestroyOverlayMask(mask *metadata.OverlayMask) {
	if mask == nil || mask.InternalID >= OPENGL_MAX_OVERLAY_COUNT {
		return
	}
	internal := &gr.context.Overlays[mask.InternalID]
	if !internal.InUse {
		return
	}
	gl.DeleteTextures(1, &internal.Texture)
	*internal = opengl_overlay_data{}
}

func (gr *OpenGLRenderer) DrawOverlay(data *metadata.OverlayRenderData) error {
	if data.Mask == nil || data.Mask.InternalID >= OPENGL_MAX_OVERLAY_COUNT || !gr.context.Overlays[data.Mask.InternalID].InUse {
		return fmt.Errorf("overlay mask is not uploaded")
	}
	internal := &gr.context.Overlays[data.Mask.InternalID]
	surface := gr.context.Surface
	if surface.Width == 0 || surface.Height == 0 {
		return nil
	}

	w, h := float32(surface.Width), float32(surface.Height)
	centre := mgl32.Vec2{data.Position.X()/w*2 - 1, 1 - data.Position.Y()/h*2}
	size := mgl32.Vec2{data.Size.X() / w * 2, data.Size.Y() / h * 2}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	setBlendMode(data.Blend)

	shader := gr.context.OverlayShader
	shader.Use()
	shader.SetVec2("uCentre", centre)
	shader.SetVec2("uSize", size)
	shader.SetVec3("uColour", data.Colour)
	shader.SetFloat("uOpacity", data.Opacity)
	shader.SetInt("uMask", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, internal.Texture)
	gl.BindVertexArray(gr.context.QuadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.Disable(gl.BLEND)
	return nil
}

// setBlendMode expects premultiplied source colour. Difference is
// approximated with exclusion, src + dst - 2*src*dst, which matches it
// exactly for white and black sources.
func setBlendMode(mode metadata.BlendMode) {
	gl.BlendEquation(gl.FUNC_ADD)
	switch mode {
	case metadata.BlendModeAdditive:
		gl.BlendFunc(gl.ONE, gl.ONE)
	case metadata.BlendModeDifference:
		gl.BlendFunc(gl.ONE_MINUS_DST_COLOR, gl.ONE_MINUS_SRC_COLOR)
	default:
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	}
}
