// SPDX-License-Identifier: GPL-2.0-or-later

// Package gputest provides a recording gpu.Device for tests.
package gputest

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"skelview/gpu"
)

// DrawCall is one recorded Draw or DrawInstanced.
type DrawCall struct {
	Geometry  *Geometry
	Shader    string
	Variant   gpu.Variant
	State     gpu.RenderState
	Instances int
	// Model is the "model" uniform at draw time.
	Model mgl32.Mat4
	// Matrices is a copy of the instance buffer for instanced draws.
	Matrices []mgl32.Mat4
}

type Device struct {
	Draws    []DrawCall
	Buffers  []*Buffer
	Textures int
	Binds    int
	FailNext error

	state  gpu.RenderState
	active *Shader
}

func NewDevice() *Device {
	return &Device{}
}

// NewShader returns a shader that reports its binds to d.
func (d *Device) NewShader(name string) *Shader {
	return &Shader{Name: name, dev: d, Mat4s: map[string]mgl32.Mat4{},
		Vec4s: map[string]mgl32.Vec4{}, Floats: map[string]float32{}, Ints: map[string]int32{}}
}

func (d *Device) NewGeometry(vertices, colors []float32, indices []uint32) (gpu.Geometry, error) {
	if err := d.FailNext; err != nil {
		d.FailNext = nil
		return nil, err
	}
	return &Geometry{Vertices: len(vertices), Colors: append([]float32(nil), colors...), Indices: len(indices)}, nil
}

func (d *Device) NewInstanceBuffer(size int) (gpu.Buffer, error) {
	b := &Buffer{size: size}
	d.Buffers = append(d.Buffers, b)
	return b, nil
}

func (d *Device) NewTexture(img image.Image) (gpu.Texture, error) {
	d.Textures++
	return &Texture{}, nil
}

func (d *Device) ApplyState(s gpu.RenderState) { d.state = s }

func (d *Device) BindTexture(unit int, t gpu.Texture) {}

func (d *Device) Draw(g gpu.Geometry) {
	d.record(g.(*Geometry), 1)
}

func (d *Device) DrawInstanced(g gpu.Geometry, count int) {
	d.record(g.(*Geometry), count)
}

func (d *Device) record(g *Geometry, count int) {
	c := DrawCall{Geometry: g, State: d.state, Instances: count}
	if s := d.active; s != nil {
		c.Shader = s.Name
		c.Variant = s.Variant
		c.Model = s.Mat4s["model"]
	}
	if c.Variant == gpu.Instanced && g.Instances != nil {
		data := g.Instances.Data
		for i := 0; i+16 <= len(data) && i/16 < count; i += 16 {
			var m mgl32.Mat4
			copy(m[:], data[i:i+16])
			c.Matrices = append(c.Matrices, m)
		}
	}
	d.Draws = append(d.Draws, c)
}

// Reset forgets recorded draws.
func (d *Device) Reset() {
	d.Draws = nil
	d.Binds = 0
}

type Shader struct {
	Name    string
	Variant gpu.Variant
	Mat4s   map[string]mgl32.Mat4
	Vec4s   map[string]mgl32.Vec4
	Floats  map[string]float32
	Ints    map[string]int32
	dev     *Device
}

func (s *Shader) Use(v gpu.Variant) {
	s.Variant = v
	s.dev.active = s
	s.dev.Binds++
}

func (s *Shader) SetMat4(name string, m mgl32.Mat4) { s.Mat4s[name] = m }
func (s *Shader) SetVec4(name string, v mgl32.Vec4) { s.Vec4s[name] = v }
func (s *Shader) SetVec3(name string, v mgl32.Vec3) { s.Vec4s[name] = v.Vec4(0) }
func (s *Shader) SetFloat(name string, f float32)   { s.Floats[name] = f }
func (s *Shader) SetInt(name string, i int32)       { s.Ints[name] = i }

type Buffer struct {
	size     int
	Data     []float32
	Released bool
	Writes   int
}

func (b *Buffer) Size() int { return b.size }

func (b *Buffer) Write(data []float32) {
	b.Data = append(b.Data[:0], data...)
	b.Writes++
}

func (b *Buffer) Release() { b.Released = true }

type Geometry struct {
	Vertices  int
	Indices   int
	Colors    []float32
	Instances *Buffer
	Released  bool
}

func (g *Geometry) IndexCount() int { return g.Indices }

func (g *Geometry) SetColors(c []float32) { g.Colors = append(g.Colors[:0], c...) }

func (g *Geometry) BindInstances(b gpu.Buffer) { g.Instances = b.(*Buffer) }

func (g *Geometry) Release() { g.Released = true }

type Texture struct {
	Released bool
}

func (t *Texture) Release() { t.Released = true }
