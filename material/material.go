// SPDX-License-Identifier: GPL-2.0-or-later

// Package material binds a shader to a render queue, a render state and a set
// of uniform values.
package material

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"skelview/gpu"
)

// Render queue priorities. Lower queues are drawn first.
const (
	Background  = 1000
	Geometry    = 2000
	AlphaTest   = 2450
	Transparent = 3000
	Overlay     = 4000
)

// IsTransparent reports whether queue q is sorted back to front.
func IsTransparent(q int) bool {
	return q >= Transparent && q < Overlay
}

// QueueName returns the name of the closest queue at or below q.
func QueueName(q int) string {
	switch {
	case q >= Overlay:
		return "overlay"
	case q >= Transparent:
		return "transparent"
	case q >= AlphaTest:
		return "alphatest"
	case q >= Geometry:
		return "geometry"
	default:
		return "background"
	}
}

type Material struct {
	ID     uuid.UUID
	Name   string
	Queue  int
	State  gpu.RenderState
	shader gpu.Shader

	uniforms map[string]any
	order    []string
}

// New creates a Geometry queue material with opaque render state.
func New(name string, shader gpu.Shader) *Material {
	return &Material{
		ID:       uuid.New(),
		Name:     name,
		Queue:    Geometry,
		State:    gpu.DefaultRenderState(),
		shader:   shader,
		uniforms: make(map[string]any),
	}
}

// NewTransparent creates a material in the Transparent queue with blending on.
func NewTransparent(name string, shader gpu.Shader) *Material {
	m := New(name, shader)
	m.Queue = Transparent
	m.State = gpu.TransparentRenderState()
	return m
}

func (m *Material) Shader() gpu.Shader {
	return m.shader
}

// Valid reports whether m can be drawn.
func (m *Material) Valid() bool {
	return m != nil && m.shader != nil
}

// SetUniform stores a value applied on every Apply. Supported types are
// float32, int32, mgl32.Vec3, mgl32.Vec4 and mgl32.Mat4.
func (m *Material) SetUniform(name string, v any) error {
	switch v.(type) {
	case float32, int32, mgl32.Vec3, mgl32.Vec4, mgl32.Mat4:
	default:
		return fmt.Errorf("material %s: unsupported uniform type %T for %q", m.Name, v, name)
	}
	if _, ok := m.uniforms[name]; !ok {
		m.order = append(m.order, name)
	}
	m.uniforms[name] = v
	return nil
}

func (m *Material) Uniform(name string) (any, bool) {
	v, ok := m.uniforms[name]
	return v, ok
}

// Color is the "color" uniform or white.
func (m *Material) Color() mgl32.Vec4 {
	if c, ok := m.uniforms["color"].(mgl32.Vec4); ok {
		return c
	}
	return mgl32.Vec4{1, 1, 1, 1}
}

func (m *Material) ApplyUniforms() {
	for _, n := range m.order {
		switch v := m.uniforms[n].(type) {
		case float32:
			m.shader.SetFloat(n, v)
		case int32:
			m.shader.SetInt(n, v)
		case mgl32.Vec3:
			m.shader.SetVec3(n, v)
		case mgl32.Vec4:
			m.shader.SetVec4(n, v)
		case mgl32.Mat4:
			m.shader.SetMat4(n, v)
		}
	}
}

func (m *Material) ApplyRenderState(dev gpu.Device) {
	dev.ApplyState(m.State)
}

// Apply binds the shader variant and sets uniforms and render state.
func (m *Material) Apply(dev gpu.Device, v gpu.Variant) {
	m.shader.Use(v)
	m.ApplyUniforms()
	m.ApplyRenderState(dev)
}

// UniformNames lists the uniforms in name order.
func (m *Material) UniformNames() []string {
	n := append([]string(nil), m.order...)
	sort.Strings(n)
	return n
}

func (m *Material) String() string {
	return fmt.Sprintf("%s(%s, %s)", m.Name, QueueName(m.Queue), m.ID)
}
