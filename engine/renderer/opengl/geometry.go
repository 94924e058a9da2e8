package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/bubble/engine/math"
	"github.com/spaghettifunk/bubble/engine/renderer/metadata"
)

var vertexStride = int32(unsafe.Sizeof(math.Vertex3D{}))

func (gr *OpenGLRenderer) CreateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D, indices []uint32) error {
	if len(vertices) == 0 || len(indices) == 0 {
		return fmt.Errorf("geometry %q has no vertex or index data", geometry.Name)
	}

	var internal *opengl_geometry_data
	for i := uint32(0); i < OPENGL_MAX_GEOMETRY_COUNT; i++ {
		if !gr.context.Geometries[i].InUse {
			geometry.InternalID = i
			internal = &gr.context.Geometries[i]
			break
		}
	}
	if internal == nil {
		return fmt.Errorf("no free geometry slot, max is %d", OPENGL_MAX_GEOMETRY_COUNT)
	}

	usage := uint32(gl.STATIC_DRAW)
	if geometry.Dynamic {
		usage = gl.DYNAMIC_DRAW
	}

	*internal = opengl_geometry_data{
		ID:          geometry.InternalID,
		Generation:  0,
		VertexCount: uint32(len(vertices)),
		IndexCount:  uint32(len(indices)),
		Dynamic:     geometry.Dynamic,
		InUse:       true,
	}

	gl.GenVertexArrays(1, &internal.VAO)
	gl.BindVertexArray(internal.VAO)

	gl.GenBuffers(1, &internal.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, internal.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(vertexStride), unsafe.Pointer(&vertices[0]), usage)

	gl.GenBuffers(1, &internal.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, internal.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	// position, normal, texcoord
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 12)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexStride, 24)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	geometry.Generation++
	return nil
}

// UpdateGeometry rewrites the whole vertex buffer in place. The vertex count
// must not change.
func (gr *OpenGLRenderer) UpdateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D) error {
	internal, err := gr.geometryData(geometry)
	if err != nil {
		return err
	}
	if uint32(len(vertices)) != internal.VertexCount {
		return fmt.Errorf("geometry %q vertex count changed from %d to %d", geometry.Name, internal.VertexCount, len(vertices))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, internal.VBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*int(vertexStride), unsafe.Pointer(&vertices[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	internal.Generation++
	geometry.Generation++
	return nil
}

func (gr *OpenGLRenderer) DestroyGeometry(geometry *metadata.Geometry) {
	internal, err := gr.geometryData(geometry)
	if err != nil {
		return
	}
	gl.DeleteBuffers(1, &internal.VBO)
	gl.DeleteBuffers(1, &internal.EBO)
	gl.DeleteVertexArrays(1, &internal.VAO)
	*internal = opengl_geometry_data{}
}

func (gr *OpenGLRenderer) DrawGeometry(data *metadata.GeometryRenderData) error {
	internal, err := gr.geometryData(data.Geometry)
	if err != nil {
		return err
	}

	shader := gr.context.SceneShader
	shader.Use()
	shader.SetMat4("uModel", data.Model)
	shader.SetMat3("uNormalMatrix", data.Model.Mat3().Inv().Transpose())

	material := data.Geometry.Material
	if material == nil {
		material = &metadata.Material{DiffuseColour: mgl32.Vec3{1, 1, 1}, Roughness: 1}
	}
	shader.SetVec3("uDiffuseColour", material.DiffuseColour)
	shader.SetFloat("uMetalness", material.Metalness)
	shader.SetFloat("uRoughness", material.Roughness)

	gl.BindVertexArray(internal.VAO)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(internal.IndexCount), gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
	return nil
}

func (gr *OpenGLRenderer) geometryData(geometry *metadata.Geometry) (*opengl_geometry_data, error) {
	if geometry == nil || geometry.InternalID >= OPENGL_MAX_GEOMETRY_COUNT {
		return nil, fmt.Errorf("invalid geometry")
	}
	internal := &gr.context.Geometries[geometry.InternalID]
	if !internal.InUse {
		return nil, fmt.Errorf("geometry %q is not uploaded", geometry.Name)
	}
	return internal, nil
}
