package systems

import (
	"fmt"

	"github.com/spaghettifunk/bubble/engine/core"
	"github.com/spaghettifunk/bubble/engine/math"
	"github.com/spaghettifunk/bubble/engine/renderer"
	"github.com/spaghettifunk/bubble/engine/renderer/metadata"
)

type geometryReference struct {
	ReferenceCount uint64
	Geometry       *metadata.Geometry
}

type GeometrySystem struct {
	Config   *GeometrySystemConfig
	renderer *renderer.Renderer
	// registered geometries by name
	registered map[string]*geometryReference
}

/** @brief The geometry system configuration. */
type GeometrySystemConfig struct {
	/**
	 * @brief NOTE: Should be significantly greater than the number of static meshes because
	 * the there can and will be more than one of these per mesh.
	 */
	MaxGeometryCount uint32
}

func NewGeometrySystem(config *GeometrySystemConfig, r *renderer.Renderer) (*GeometrySystem, error) {
	if config.MaxGeometryCount == 0 {
		err := fmt.Errorf("func NewGeometrySystem - config.MaxGeometryCount must be > 0")
		core.LogWarn(err.Error())
		return nil, err
	}
	return &GeometrySystem{
		Config:     config,
		renderer:   r,
		registered: make(map[string]*geometryReference),
	}, nil
}

/**
 * @brief Registers and acquires a new geometry using the given config, or
 * acquires an existing one with the same name.
 *
 * @param config The geometry configuration.
 * @return A pointer to the acquired geometry.
 */
func (gs *GeometrySystem) AcquireFromConfig(config *metadata.GeometryConfig) (*metadata.Geometry, error) {
	if ref, ok := gs.registered[config.Name]; ok {
		ref.ReferenceCount++
		return ref.Geometry, nil
	}
	if uint32(len(gs.registered)) >= gs.Config.MaxGeometryCount {
		err := fmt.Errorf("unable to obtain free slot for geometry. Adjust configuration to allow more space")
		core.LogError(err.Error())
		return nil, err
	}

	geometry := &metadata.Geometry{
		Name:        config.Name,
		VertexCount: uint32(len(config.Vertices)),
		IndexCount:  uint32(len(config.Indices)),
		Dynamic:     config.Dynamic,
		Material:    config.Material,
		Extents:     math.GeometryCalculateExtents(config.Vertices),
	}
	geometry.ID = core.IdentifierAcquireNewID(geometry)

	if err := gs.renderer.CreateGeometry(geometry, config.Vertices, config.Indices); err != nil {
		core.IdentifierReleaseID(geometry.ID)
		err = fmt.Errorf("failed to create geometry %q: %w", config.Name, err)
		core.LogError(err.Error())
		return nil, err
	}

	gs.registered[config.Name] = &geometryReference{ReferenceCount: 1, Geometry: geometry}
	return geometry, nil
}

// Update uploads new vertex data for a dynamic geometry.
func (gs *GeometrySystem) Update(geometry *metadata.Geometry, vertices []math.Vertex3D) error {
	if !geometry.Dynamic {
		return fmt.Errorf("geometry %q is not dynamic", geometry.Name)
	}
	if err := gs.renderer.UpdateGeometry(geometry, vertices); err != nil {
		return err
	}
	geometry.Extents = math.GeometryCalculateExtents(vertices)
	return nil
}

/**
 * @brief Releases a reference to the provided geometry. The GPU resources
 * are destroyed once nothing references it.
 */
func (gs *GeometrySystem) Release(geometry *metadata.Geometry) {
	ref, ok := gs.registered[geometry.Name]
	if !ok || ref.Geometry != geometry {
		core.LogWarn("geometry %q is not registered. Nothing was done.", geometry.Name)
		return
	}
	ref.ReferenceCount--
	if ref.ReferenceCount > 0 {
		return
	}
	gs.destroy(ref.Geometry)
	delete(gs.registered, geometry.Name)
}

func (gs *GeometrySystem) destroy(geometry *metadata.Geometry) {
	gs.renderer.DestroyGeometry(geometry)
	if err := core.IdentifierReleaseID(geometry.ID); err != nil {
		core.LogWarn("failed to release geometry id %d: %s", geometry.ID, err)
	}
}

func (gs *GeometrySystem) Count() int {
	return len(gs.registered)
}

/**
 * @brief Shuts down the geometry system, destroying whatever is still
 * registered.
 */
func (gs *GeometrySystem) Shutdown() error {
	for name, ref := range gs.registered {
		gs.destroy(ref.Geometry)
		delete(gs.registered, name)
	}
	return nil
}
