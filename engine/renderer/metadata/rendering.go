package metadata

import "github.com/go-gl/mathgl/mgl32"

/** @brief Determines face culling mode during rendering. */
type FaceCullMode int

const (
	/** @brief No faces are culled. */
	FaceCullModeNone FaceCullMode = 0x0
	/** @brief Only front faces are culled. */
	FaceCullModeFront FaceCullMode = 0x1
	/** @brief Only back faces are culled. */
	FaceCullModeBack FaceCullMode = 0x2
)

/**
 * @brief Everything the backend needs to draw one frame.
 */
type RenderPacket struct {
	DeltaTime   float64
	FrameNumber uint64

	ClearColour  mgl32.Vec3
	View         mgl32.Mat4
	Projection   mgl32.Mat4
	ViewPosition mgl32.Vec3
	CullMode     FaceCullMode
	DebugMode    RendererDebugViewMode

	Ambient     AmbientLight
	Directional DirectionalLight

	Geometries []GeometryRenderData
	Overlays   []OverlayRenderData
}
