// SPDX-License-Identifier: GPL-2.0-or-later

// Package gpu defines the narrow graphics surface used by the mesh, material
// and render packages. The GL backend lives in glrender.
package gpu

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Variant selects the shader program flavour for a draw.
type Variant int

const (
	Basic Variant = iota
	Instanced
)

func (v Variant) String() string {
	switch v {
	case Basic:
		return "basic"
	case Instanced:
		return "instanced"
	}
	return "unknown"
}

// BlendFactor mirrors the blend functions the viewer needs.
type BlendFactor int

const (
	One BlendFactor = iota
	Zero
	SrcAlpha
	OneMinusSrcAlpha
)

type RenderState struct {
	DepthTest  bool
	DepthWrite bool
	Blend      bool
	CullFace   bool
	BlendSrc   BlendFactor
	BlendDst   BlendFactor
}

// DefaultRenderState is opaque drawing with depth test and write.
func DefaultRenderState() RenderState {
	return RenderState{
		DepthTest:  true,
		DepthWrite: true,
		CullFace:   true,
		BlendSrc:   SrcAlpha,
		BlendDst:   OneMinusSrcAlpha,
	}
}

// TransparentRenderState blends over what is already drawn without writing depth.
func TransparentRenderState() RenderState {
	return RenderState{
		DepthTest: true,
		Blend:     true,
		BlendSrc:  SrcAlpha,
		BlendDst:  OneMinusSrcAlpha,
	}
}

type Shader interface {
	Use(v Variant)
	SetMat4(name string, m mgl32.Mat4)
	SetVec4(name string, v mgl32.Vec4)
	SetVec3(name string, v mgl32.Vec3)
	SetFloat(name string, f float32)
	SetInt(name string, i int32)
}

// Buffer is a GPU buffer with a fixed byte capacity.
type Buffer interface {
	Size() int
	// Write overwrites the start of the buffer.
	Write(data []float32)
	Release()
}

type Geometry interface {
	IndexCount() int
	// SetColors replaces the per-vertex color channel (rgba).
	SetColors(c []float32)
	// BindInstances attaches b as the per-instance model matrix source.
	BindInstances(b Buffer)
	Release()
}

type Texture interface {
	Release()
}

// Device creates GPU resources and issues draws. All calls happen on the
// render thread.
type Device interface {
	NewGeometry(vertices, colors []float32, indices []uint32) (Geometry, error)
	NewInstanceBuffer(size int) (Buffer, error)
	NewTexture(img image.Image) (Texture, error)
	ApplyState(s RenderState)
	BindTexture(unit int, t Texture)
	Draw(g Geometry)
	DrawInstanced(g Geometry, count int)
}
