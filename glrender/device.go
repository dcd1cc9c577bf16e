// SPDX-License-Identifier: GPL-2.0-or-later

// Package glrender implements the gpu interfaces with OpenGL 4.6 core.
package glrender

import (
	"image"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/pkg/errors"

	"skelview/glh"
	"skelview/gpu"
)

// Vertex attribute locations shared by every program.
const (
	attrPosition = 0
	attrNormal   = 1
	attrUV       = 2
	attrColor    = 3
	attrInstance = 4 // 4..7
)

// Device draws with the current GL context. It must only be used on the
// thread owning that context.
type Device struct {
	state gpu.RenderState
	init  bool
}

func NewDevice() *Device {
	return &Device{}
}

type geometry struct {
	vao      *glh.VertexArray
	vbo      *glh.Buffer
	cbo      *glh.Buffer
	ebo      *glh.Buffer
	count    int32
	vertices int
}

func (d *Device) NewGeometry(vertices, colors []float32, indices []uint32) (gpu.Geometry, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, errors.New("glrender: empty geometry")
	}
	g := &geometry{
		vao:      glh.NewVertexArray(),
		vbo:      glh.NewBuffer(glh.ArrayBuffer),
		cbo:      glh.NewBuffer(glh.ArrayBuffer),
		ebo:      glh.NewBuffer(glh.ElementArrayBuffer),
		count:    int32(len(indices)),
		vertices: len(vertices) / 8,
	}
	g.vao.Bind()
	g.vbo.Bind()
	g.vbo.SetData(4*len(vertices), glh.Ptr(vertices), glh.StaticDraw)
	glh.FloatAttrib(attrPosition, 3, 8, 0)
	glh.FloatAttrib(attrNormal, 3, 8, 3)
	glh.FloatAttrib(attrUV, 2, 8, 6)

	g.cbo.Bind()
	g.uploadColors(colors)
	glh.FloatAttrib(attrColor, 4, 4, 0)

	g.ebo.Bind()
	g.ebo.SetData(4*len(indices), glh.Ptr(indices), glh.StaticDraw)
	g.vao.Unbind()
	return g, nil
}

// uploadColors fills the color buffer, white when c does not cover every
// vertex. The buffer must be bound.
func (g *geometry) uploadColors(c []float32) {
	if len(c) != g.vertices*4 {
		c = make([]float32, g.vertices*4)
		for i := range c {
			c[i] = 1
		}
	}
	if g.cbo.Size() == 4*len(c) {
		g.cbo.SetSubData(0, 4*len(c), glh.Ptr(c))
		return
	}
	g.cbo.SetData(4*len(c), glh.Ptr(c), glh.DynamicDraw)
}

func (g *geometry) IndexCount() int { return int(g.count) }

func (g *geometry) SetColors(c []float32) {
	g.cbo.Bind()
	g.uploadColors(c)
}

func (g *geometry) BindInstances(b gpu.Buffer) {
	ib := b.(*instanceBuffer)
	g.vao.Bind()
	ib.buf.Bind()
	glh.Mat4Attrib(attrInstance)
	g.vao.Unbind()
}

func (g *geometry) Release() {
	g.vao.Delete()
	g.vbo.Delete()
	g.cbo.Delete()
	g.ebo.Delete()
}

type instanceBuffer struct {
	buf *glh.Buffer
}

// NewInstanceBuffer allocates size bytes of per-instance matrices.
func (d *Device) NewInstanceBuffer(size int) (gpu.Buffer, error) {
	if size <= 0 {
		return nil, errors.Errorf("glrender: instance buffer of %d bytes", size)
	}
	b := &instanceBuffer{buf: glh.NewBuffer(glh.ArrayBuffer)}
	b.buf.Bind()
	b.buf.SetData(size, nil, glh.DynamicDraw)
	return b, nil
}

func (b *instanceBuffer) Size() int { return b.buf.Size() }

func (b *instanceBuffer) Write(data []float32) {
	if len(data) == 0 {
		return
	}
	b.buf.Bind()
	b.buf.SetSubData(0, 4*len(data), glh.Ptr(data))
}

func (b *instanceBuffer) Release() { b.buf.Delete() }

type texture struct {
	tex *glh.Texture2D
}

func (d *Device) NewTexture(img image.Image) (gpu.Texture, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New("glrender: empty image")
	}
	t := &texture{tex: glh.NewTexture2D()}
	t.tex.Upload(img)
	return t, nil
}

func (t *texture) Release() { t.tex.Delete() }

func (d *Device) BindTexture(unit int, t gpu.Texture) {
	t.(*texture).tex.BindUnit(unit)
}

// ApplyState only touches the GL switches that changed.
func (d *Device) ApplyState(s gpu.RenderState) {
	if d.init && s == d.state {
		return
	}
	toggle(gl.DEPTH_TEST, s.DepthTest)
	toggle(gl.BLEND, s.Blend)
	toggle(gl.CULL_FACE, s.CullFace)
	gl.DepthMask(s.DepthWrite)
	gl.BlendFunc(blendFactor(s.BlendSrc), blendFactor(s.BlendDst))
	d.state = s
	d.init = true
}

func toggle(c uint32, on bool) {
	if on {
		gl.Enable(c)
	} else {
		gl.Disable(c)
	}
}

func blendFactor(f gpu.BlendFactor) uint32 {
	switch f {
	case gpu.Zero:
		return gl.ZERO
	case gpu.SrcAlpha:
		return gl.SRC_ALPHA
	case gpu.OneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	}
	return gl.ONE
}

func (d *Device) Draw(g gpu.Geometry) {
	geo := g.(*geometry)
	geo.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, geo.count, gl.UNSIGNED_INT, nil)
	geo.vao.Unbind()
}

func (d *Device) DrawInstanced(g gpu.Geometry, count int) {
	geo := g.(*geometry)
	geo.vao.Bind()
	gl.DrawElementsInstanced(gl.TRIANGLES, geo.count, gl.UNSIGNED_INT, nil, int32(count))
	geo.vao.Unbind()
}

// Clear wipes color and depth of the default framebuffer.
func (d *Device) Clear(r, g, b float32) {
	d.ApplyState(gpu.DefaultRenderState())
	gl.ClearColor(r, g, b, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) Viewport(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

// ReadPixels reads the back buffer as RGBA rows, bottom row first.
func (d *Device) ReadPixels(w, h int) []byte {
	buf := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(buf))
	return buf
}
