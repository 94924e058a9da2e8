package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Offscreen is a colour + depth render target sized to the drawing buffer.
// It is used whenever the drawing buffer and the window framebuffer differ.
type Offscreen struct {
	FBO          uint32
	ColorTexture uint32
	DepthRBO     uint32
	Width        int32
	Height       int32
}

func NewOffscreen(width, height int32) (*Offscreen, error) {
	o := &Offscreen{Width: width, Height: height}

	gl.GenFramebuffers(1, &o.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, o.FBO)

	gl.GenTextures(1, &o.ColorTexture)
	gl.BindTexture(gl.TEXTURE_2D, o.ColorTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, o.ColorTexture, 0)

	gl.GenRenderbuffers(1, &o.DepthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, o.DepthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, width, height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, o.DepthRBO)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		o.Destroy()
		return nil, fmt.Errorf("offscreen framebuffer incomplete: 0x%x", status)
	}
	return o, nil
}

func (o *Offscreen) Destroy() {
	if o.FBO != 0 {
		gl.DeleteFramebuffers(1, &o.FBO)
	}
	if o.ColorTexture != 0 {
		gl.DeleteTextures(1, &o.ColorTexture)
	}
	if o.DepthRBO != 0 {
		gl.DeleteRenderbuffers(1, &o.DepthRBO)
	}
	*o = Offscreen{}
}
