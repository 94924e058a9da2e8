package opengl

import "github.com/spaghettifunk/bubble/engine/renderer/metadata"

/**
 * @brief Max number of simultaneously uploaded geometries
 */
const OPENGL_MAX_GEOMETRY_COUNT uint32 = 64

/**
 * @brief Max number of overlay masks
 */
const OPENGL_MAX_OVERLAY_COUNT uint32 = 32

/**
 * @brief Internal buffer data for geometry.
 */
type opengl_geometry_data struct {
	/** @brief The unique geometry identifier. */
	ID uint32
	/** @brief The geometry generation. Incremented every time the geometry data changes. */
	Generation uint32
	VAO        uint32
	VBO        uint32
	EBO        uint32
	/** @brief The vertex count. */
	VertexCount uint32
	/** @brief The index count. */
	IndexCount uint32
	Dynamic    bool
	InUse      bool
}

type opengl_overlay_data struct {
	Texture uint32
	Width   uint32
	Height  uint32
	InUse   bool
}

type OpenGLContext struct {
	Surface metadata.Surface

	// Current generation of surface size. The offscreen target is rebuilt
	// when it does not match OffscreenGeneration.
	SurfaceGeneration   uint64
	OffscreenGeneration uint64

	Geometries [OPENGL_MAX_GEOMETRY_COUNT]opengl_geometry_data
	Overlays   [OPENGL_MAX_OVERLAY_COUNT]opengl_overlay_data

	SceneShader   *ShaderProgram
	OverlayShader *ShaderProgram
	BlitShader    *ShaderProgram

	// unit quad shared by overlays
	QuadVAO uint32
	QuadVBO uint32
	// empty VAO for the fullscreen triangle
	BlitVAO uint32

	Offscreen *Offscreen

	// per frame state
	Packet *metadata.RenderPacket
}
