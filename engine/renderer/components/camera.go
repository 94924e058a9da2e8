package components

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/bubble/engine/math"
)

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

/**
 * @brief A perspective camera looking at a target. Projection and view are
 * cached and rebuilt only when something they depend on changes.
 */
type Camera struct {
	/** @brief Vertical field of view in degrees. */
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty          bool
	ViewMatrix       mgl32.Mat4
	ProjectionMatrix mgl32.Mat4
}

type CameraLookup struct {
	ID             uint16
	ReferenceCount uint16
	Camera         *Camera
}

func NewCamera(fov, aspect, near, far float32) *Camera {
	c := &Camera{}
	c.Reset()
	c.FOV, c.Aspect, c.Near, c.Far = fov, aspect, near, far
	c.UpdateProjectionMatrix()
	return c
}

func (c *Camera) Reset() {
	c.FOV = 45
	c.Aspect = 1
	c.Near = 0.1
	c.Far = 1000
	c.Position = mgl32.Vec3{0, 0, 5}
	c.Target = mgl32.Vec3{}
	c.Up = mgl32.Vec3{0, 1, 0}
	c.IsDirty = true
	c.ViewMatrix = mgl32.Ident4()
	c.UpdateProjectionMatrix()
}

func (c *Camera) SetPosition(position mgl32.Vec3) {
	c.Position = position
	c.IsDirty = true
}

func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target
	c.IsDirty = true
}

// SetAspect stores the new aspect ratio and recomputes the projection.
func (c *Camera) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.Aspect = aspect
	c.UpdateProjectionMatrix()
}

func (c *Camera) UpdateProjectionMatrix() {
	c.ProjectionMatrix = mgl32.Perspective(math.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

func (c *Camera) GetProjection() mgl32.Mat4 {
	return c.ProjectionMatrix
}

func (c *Camera) GetView() mgl32.Mat4 {
	if c.IsDirty {
		c.ViewMatrix = mgl32.LookAtV(c.Position, c.Target, c.Up)
		c.IsDirty = false
	}
	return c.ViewMatrix
}
