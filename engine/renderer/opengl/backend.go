package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/spaghettifunk/bubble/engine/core"
	"github.com/spaghettifunk/bubble/engine/renderer/metadata"
)

// Presenter owns the GL context and shows the finished frame.
type Presenter interface {
	SwapBuffers()
}

type OpenGLRenderer struct {
	presenter   Presenter
	FrameNumber uint64
	context     *OpenGLContext
	config      *metadata.RendererBackendConfig
}

// New expects the presenter's GL context to be current on the calling thread.
func New(presenter Presenter) *OpenGLRenderer {
	return &OpenGLRenderer{
		presenter: presenter,
		context:   &OpenGLContext{},
	}
}

func (gr *OpenGLRenderer) Initialize(config *metadata.RendererBackendConfig, surface metadata.Surface) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	gr.config = config
	core.LogInfo("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))
	core.LogDebug("OpenGL renderer %s", gl.GoStr(gl.GetString(gl.RENDERER)))

	var err error
	if gr.context.SceneShader, err = NewShaderProgram("scene", sceneVertexShader, sceneFragmentShader); err != nil {
		return err
	}
	if gr.context.OverlayShader, err = NewShaderProgram("overlay", overlayVertexShader, overlayFragmentShader); err != nil {
		return err
	}
	if gr.context.BlitShader, err = NewShaderProgram("blit", blitVertexShader, blitFragmentShader); err != nil {
		return err
	}

	gr.createQuad()
	gl.GenVertexArrays(1, &gr.context.BlitVAO)

	if config.Antialias {
		gl.Enable(gl.MULTISAMPLE)
	}

	gr.context.Surface = surface
	gr.context.SurfaceGeneration++

	core.LogInfo("OpenGL renderer initialized successfully")
	return nil
}

func (gr *OpenGLRenderer) Shutdown() error {
	for i := range gr.context.Geometries {
		if gr.context.Geometries[i].InUse {
			gr.DestroyGeometry(&metadata.Geometry{InternalID: uint32(i)})
		}
	}
	for i := range gr.context.Overlays {
		if gr.context.Overlays[i].InUse {
			gr.DestroyOverlayMask(&metadata.OverlayMask{InternalID: uint32(i)})
		}
	}
	if gr.context.Offscreen != nil {
		gr.context.Offscreen.Destroy()
		gr.context.Offscreen = nil
	}
	gr.destroyQuad()
	gl.DeleteVertexArrays(1, &gr.context.BlitVAO)
	for _, s := range []*ShaderProgram{gr.context.SceneShader, gr.context.OverlayShader, gr.context.BlitShader} {
		if s != nil {
			s.Destroy()
		}
	}
	gr.context = &OpenGLContext{}
	core.LogInfo("OpenGL renderer shut down")
	return nil
}

func (gr *OpenGLRenderer) Resized(surface metadata.Surface) error {
	gr.context.Surface = surface
	gr.context.SurfaceGeneration++
	core.LogDebug("OpenGL renderer resized: drawing %dx%d, framebuffer %dx%d",
		surface.DrawingWidth, surface.DrawingHeight, surface.FramebufferWidth, surface.FramebufferHeight)
	return nil
}

// prepareTarget binds the framebuffer this frame draws into, rebuilding the
// offscreen target when the surface changed.
func (gr *OpenGLRenderer) prepareTarget() error {
	ctx := gr.context
	surface := ctx.Surface

	if ctx.OffscreenGeneration != ctx.SurfaceGeneration {
		if ctx.Offscreen != nil {
			ctx.Offscreen.Destroy()
			ctx.Offscreen = nil
		}
		if surface.NeedsOffscreen() {
			o, err := NewOffscreen(int32(surface.DrawingWidth), int32(surface.DrawingHeight))
			if err != nil {
				return err
			}
			ctx.Offscreen = o
		}
		ctx.OffscreenGeneration = ctx.SurfaceGeneration
	}

	if ctx.Offscreen != nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, ctx.Offscreen.FBO)
		gl.Viewport(0, 0, ctx.Offscreen.Width, ctx.Offscreen.Height)
		return nil
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(surface.FramebufferWidth), int32(surface.FramebufferHeight))
	return nil
}

func (gr *OpenGLRenderer) BeginFrame(packet *metadata.RenderPacket) error {
	if gr.context.SceneShader == nil {
		return core.ErrNotInitialized
	}
	if err := gr.prepareTarget(); err != nil {
		return err
	}
	gr.context.Packet = packet

	c := packet.ClearColour
	gl.ClearColor(c[0], c[1], c[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	switch packet.CullMode {
	case metadata.FaceCullModeBack:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	case metadata.FaceCullModeFront:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	default:
		gl.Disable(gl.CULL_FACE)
	}

	shader := gr.context.SceneShader
	shader.Use()
	shader.SetMat4("uView", packet.View)
	shader.SetMat4("uProjection", packet.Projection)
	shader.SetVec3("uViewPosition", packet.ViewPosition)
	shader.SetVec3("uAmbientColour", packet.Ambient.Colour)
	shader.SetFloat("uAmbientIntensity", packet.Ambient.Intensity)
	shader.SetVec3("uLightColour", packet.Directional.Colour)
	shader.SetFloat("uLightIntensity", packet.Directional.Intensity)
	shader.SetVec3("uLightDirection", packet.Directional.Direction())
	shader.SetInt("uMode", int32(packet.DebugMode))
	return nil
}

func (gr *OpenGLRenderer) EndFrame(packet *metadata.RenderPacket) error {
	ctx := gr.context
	if ctx.Offscreen != nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(ctx.Surface.FramebufferWidth), int32(ctx.Surface.FramebufferHeight))
		gl.Disable(gl.DEPTH_TEST)
		gl.Disable(gl.CULL_FACE)
		gl.Disable(gl.BLEND)

		ctx.BlitShader.Use()
		ctx.BlitShader.SetInt("uSource", 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, ctx.Offscreen.ColorTexture)
		gl.BindVertexArray(ctx.BlitVAO)
		gl.DrawArrays(gl.TRIANGLES, 0, 3)
		gl.BindVertexArray(0)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}

	if gr.presenter != nil {
		gr.presenter.SwapBuffers()
	}
	ctx.Packet = nil
	gr.FrameNumber++
	return nil
}
