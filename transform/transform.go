// SPDX-License-Identifier: GPL-2.0-or-later

// Package transform holds the position, rotation and scale of a scene
// object together with its cached local-to-world matrix.
package transform

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"skelview/math"
)

// Transform is position, Euler rotation (degrees, x=pitch y=yaw z=roll) and
// scale. The matrix is always T*R*S of the last set fields.
type Transform struct {
	position mgl32.Vec3
	euler    mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3
	matrix   mgl32.Mat4
}

func New() *Transform {
	t := &Transform{}
	t.Reset()
	return t
}

// Reset restores the identity transform.
func (t *Transform) Reset() {
	t.position = mgl32.Vec3{}
	t.euler = mgl32.Vec3{}
	t.rotation = mgl32.QuatIdent()
	t.scale = mgl32.Vec3{1, 1, 1}
	t.update()
}

func (t *Transform) Position() mgl32.Vec3   { return t.position }
func (t *Transform) EulerAngles() mgl32.Vec3 { return t.euler }
func (t *Transform) Rotation() mgl32.Quat   { return t.rotation }
func (t *Transform) Scale() mgl32.Vec3      { return t.scale }

// LocalToWorld returns the cached matrix.
func (t *Transform) LocalToWorld() mgl32.Mat4 { return t.matrix }

func (t *Transform) SetPosition(p mgl32.Vec3) {
	t.position = p
	t.update()
}

// SetEulerAngles replaces the rotation. Angles are in degrees.
func (t *Transform) SetEulerAngles(e mgl32.Vec3) {
	t.euler = e
	t.rotation = eulerToQuat(e)
	t.update()
}

// SetYawPitchRoll is SetEulerAngles with the arguments in yaw, pitch, roll order.
func (t *Transform) SetYawPitchRoll(yaw, pitch, roll float32) {
	t.SetEulerAngles(mgl32.Vec3{pitch, yaw, roll})
}

func (t *Transform) SetRotation(q mgl32.Quat) {
	t.rotation = q.Normalize()
	t.euler = quatToEuler(t.rotation)
	t.update()
}

func (t *Transform) SetScale(s mgl32.Vec3) {
	t.scale = s
	t.update()
}

// Rotate sets the rotation to the shortest arc taking from onto to.
// It does not accumulate with the previous rotation.
func (t *Transform) Rotate(from, to mgl32.Vec3) {
	t.SetRotation(mgl32.QuatBetweenVectors(from, to))
}

func (t *Transform) update() {
	tr := mgl32.Translate3D(t.position[0], t.position[1], t.position[2])
	sc := mgl32.Scale3D(t.scale[0], t.scale[1], t.scale[2])
	t.matrix = tr.Mul4(t.rotation.Mat4()).Mul4(sc)
}

func eulerToQuat(e mgl32.Vec3) mgl32.Quat {
	return mgl32.AnglesToQuat(
		math.Radians(e[2]), math.Radians(e[1]), math.Radians(e[0]), mgl32.ZYX)
}

func quatToEuler(q mgl32.Quat) mgl32.Vec3 {
	w, x, y, z := q.W, q.V[0], q.V[1], q.V[2]
	pitch := math32.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))
	yaw := math32.Asin(math.Clamp(-1, 2*(w*y-z*x), 1))
	roll := math32.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))
	return mgl32.Vec3{math.Degrees(pitch), math.Degrees(yaw), math.Degrees(roll)}
}
