package math

import "github.com/go-gl/mathgl/mgl32"

func TransformCreate() *Transform {
	return TransformFromPositionRotationScale(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})
}

func TransformFromPosition(position mgl32.Vec3) *Transform {
	return TransformFromPositionRotationScale(position, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})
}

func TransformFromPositionRotationScale(position, rotation, scale mgl32.Vec3) *Transform {
	t := &Transform{Local: mgl32.Ident4()}
	t.SetPositionRotationScale(position, rotation, scale)
	return t
}

func (t *Transform) SetPosition(position mgl32.Vec3) {
	t.Position = position
	t.IsDirty = true
}

func (t *Transform) Translate(translation mgl32.Vec3) {
	t.Position = t.Position.Add(translation)
	t.IsDirty = true
}

// SetRotation sets the Euler angles in radians.
func (t *Transform) SetRotation(rotation mgl32.Vec3) {
	t.Rotation = rotation
	t.IsDirty = true
}

// Rotate adds delta radians to each Euler angle.
func (t *Transform) Rotate(delta mgl32.Vec3) {
	t.Rotation = t.Rotation.Add(delta)
	t.IsDirty = true
}

func (t *Transform) SetScale(scale mgl32.Vec3) {
	t.Scale = scale
	t.IsDirty = true
}

func (t *Transform) SetUniformScale(s float32) {
	t.SetScale(mgl32.Vec3{s, s, s})
}

func (t *Transform) SetPositionRotationScale(position, rotation, scale mgl32.Vec3) {
	t.Position = position
	t.Rotation = rotation
	t.Scale = scale
	t.IsDirty = true
}

// RotationMatrix returns Rx * Ry * Rz for the current Euler angles.
func (t *Transform) RotationMatrix() mgl32.Mat4 {
	rx := mgl32.HomogRotate3DX(t.Rotation.X())
	ry := mgl32.HomogRotate3DY(t.Rotation.Y())
	rz := mgl32.HomogRotate3DZ(t.Rotation.Z())
	return rx.Mul4(ry).Mul4(rz)
}

// GetLocal returns translation * rotation * scale.
func (t *Transform) GetLocal() mgl32.Mat4 {
	if t == nil {
		return mgl32.Ident4()
	}
	if t.IsDirty {
		tr := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
		s := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
		t.Local = tr.Mul4(t.RotationMatrix()).Mul4(s)
		t.IsDirty = false
	}
	return t.Local
}

func (t *Transform) GetWorld() mgl32.Mat4 {
	if t == nil {
		return mgl32.Ident4()
	}
	l := t.GetLocal()
	if t.Parent != nil {
		return t.Parent.GetWorld().Mul4(l)
	}
	return l
}

// NormalMatrix is the inverse transpose of the upper 3x3 of the world matrix.
func (t *Transform) NormalMatrix() mgl32.Mat3 {
	return t.GetWorld().Mat3().Inv().Transpose()
}
