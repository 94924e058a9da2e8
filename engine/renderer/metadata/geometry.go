package metadata

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/bubble/engine/math"
)

/** @brief The name of the bubble geometry. */
const BubbleGeometryName string = "bubble"

/**
 * @brief Represents the configuration for a geometry.
 */
type GeometryConfig struct {
	/** @brief The Name of the geometry. */
	Name string
	/** @brief An array of Vertices. */
	Vertices []math.Vertex3D
	/** @brief An array of Indices. */
	Indices []uint32
	/** @brief Vertex data is rewritten often, keep it in a dynamic buffer. */
	Dynamic bool
	/** @brief The material drawn with the geometry. */
	Material *Material
}

/**
 * @brief Represents actual geometry in the world.
 */
type Geometry struct {
	/** @brief The geometry identifier. */
	ID uint32
	/** @brief The internal geometry identifier, used by the renderer backend to map to internal resources. */
	InternalID uint32
	/** @brief The geometry generation. Incremented every time the geometry changes. */
	Generation uint16
	/** @brief The extents of the geometry in local coordinates. */
	Extents math.Extents3D
	/** @brief The geometry name. */
	Name        string
	VertexCount uint32
	IndexCount  uint32
	Dynamic     bool
	Material    *Material
}

type GeometryRenderData struct {
	Model    mgl32.Mat4
	Geometry *Geometry
}
