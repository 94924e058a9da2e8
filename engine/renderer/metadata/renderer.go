package metadata

type RendererBackendConfig struct {
	/** @brief The name of the application */
	ApplicationName string
	/** @brief Multisample the default framebuffer. */
	Antialias bool
	/** @brief Sample count used when Antialias is set. */
	Samples int
	VSync   bool
}

type RendererDebugViewMode uint32

const (
	RENDERER_VIEW_MODE_DEFAULT  RendererDebugViewMode = 0
	RENDERER_VIEW_MODE_LIGHTING RendererDebugViewMode = 1
	RENDERER_VIEW_MODE_NORMALS  RendererDebugViewMode = 2
)

func (m RendererDebugViewMode) Next() RendererDebugViewMode {
	return (m + 1) % 3
}

func (m RendererDebugViewMode) String() string {
	switch m {
	case RENDERER_VIEW_MODE_LIGHTING:
		return "lighting"
	case RENDERER_VIEW_MODE_NORMALS:
		return "normals"
	default:
		return "default"
	}
}

/**
 * @brief The size of everything the renderer draws to. Width and Height are
 * logical window pixels; the drawing buffer is the logical size times the
 * capped pixel ratio; the framebuffer is what the window system gives us.
 */
type Surface struct {
	Width             uint32
	Height            uint32
	PixelRatio        float64
	DrawingWidth      uint32
	DrawingHeight     uint32
	FramebufferWidth  uint32
	FramebufferHeight uint32
}

// NeedsOffscreen reports whether the drawing buffer differs from the
// framebuffer and has to be scaled onto it.
func (s Surface) NeedsOffscreen() bool {
	return s.DrawingWidth != s.FramebufferWidth || s.DrawingHeight != s.FramebufferHeight
}
