// SPDX-License-Identifier: GPL-2.0-or-later

package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"skelview/math"
)

const maxPitch = 89

// Camera is a fly camera moving in the XZ plane with mouse look.
type Camera struct {
	Node
	Fov         float32 // degrees
	Near, Far   float32
	Speed       float32
	Sensitivity float32

	yaw, pitch   float32
	lastX, lastY float32
	dragging     bool
}

func NewCamera(name string) *Camera {
	c := &Camera{
		Fov:         45,
		Near:        0.001,
		Far:         100,
		Speed:       0.5,
		Sensitivity: 0.1,
	}
	c.init(c, KindCamera, name)
	return c
}

func (c *Camera) Awake() {
	c.transform.SetYawPitchRoll(c.yaw, c.pitch, 0)
}

func (c *Camera) Yaw() float32   { return c.yaw }
func (c *Camera) Pitch() float32 { return c.pitch }

// SetYawPitch turns the camera. Pitch is limited to +-89 degrees.
func (c *Camera) SetYawPitch(yaw, pitch float32) {
	c.yaw = math.AngleMod(yaw)
	c.pitch = math.Clamp(-maxPitch, pitch, maxPitch)
	c.transform.SetYawPitchRoll(c.yaw, c.pitch, 0)
}

func (c *Camera) Forward() mgl32.Vec3 {
	return c.transform.Rotation().Rotate(mgl32.Vec3{0, 0, -1}).Normalize()
}

func (c *Camera) Right() mgl32.Vec3 {
	return c.Forward().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

func (c *Camera) View() mgl32.Mat4 {
	p := c.transform.Position()
	return mgl32.LookAtV(p, p.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
}

func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(math.Radians(c.Fov), aspect, c.Near, c.Far)
}

// Update moves along the ground plane and turns while Look is held.
func (c *Camera) Update(f *Frame) {
	in := f.Controls
	fw := c.Forward()
	fwXZ := mgl32.Vec3{fw.X(), 0, fw.Z()}
	if fwXZ.Len() > 0 {
		fwXZ = fwXZ.Normalize()
	}
	rightXZ := mgl32.Vec3{-fwXZ.Z(), 0, fwXZ.X()}
	step := c.Speed * f.Delta

	var move mgl32.Vec3
	if in.Forward {
		move = move.Add(fwXZ)
	}
	if in.Back {
		move = move.Sub(fwXZ)
	}
	if in.Right {
		move = move.Add(rightXZ)
	}
	if in.Left {
		move = move.Sub(rightXZ)
	}
	if in.Up {
		move = move.Add(mgl32.Vec3{0, 1, 0})
	}
	if in.Down {
		move = move.Sub(mgl32.Vec3{0, 1, 0})
	}
	if move != (mgl32.Vec3{}) {
		c.transform.SetPosition(c.transform.Position().Add(move.Mul(step)))
	}

	if !in.Look {
		c.dragging = false
		return
	}
	if !c.dragging {
		c.lastX, c.lastY = in.MouseX, in.MouseY
		c.dragging = true
	}
	dx := (in.MouseX - c.lastX) * c.Sensitivity
	dy := (c.lastY - in.MouseY) * c.Sensitivity
	c.lastX, c.lastY = in.MouseX, in.MouseY
	if dx != 0 || dy != 0 {
		c.SetYawPitch(c.yaw-dx, c.pitch+dy)
	}
}
