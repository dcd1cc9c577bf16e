// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/mainthread/v2"
)

const (
	ArrayBuffer        = gl.ARRAY_BUFFER
	ElementArrayBuffer = gl.ELEMENT_ARRAY_BUFFER

	StaticDraw  = gl.STATIC_DRAW
	DynamicDraw = gl.DYNAMIC_DRAW
)

type Program struct {
	prog     uint32
	uniforms map[string]int32
}

func NewProgram(vertex, fragment string) (*Program, error) {
	vert, err := GetShader(vertex, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	frag, err := GetShader(fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return nil, err
	}
	p := &Program{
		prog:     gl.CreateProgram(),
		uniforms: make(map[string]int32),
	}
	gl.AttachShader(p.prog, vert)
	gl.AttachShader(p.prog, frag)
	gl.LinkProgram(p.prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	var status int32
	gl.GetProgramiv(p.prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(p.prog, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(p.prog, logLength, nil, gl.Str(log))
		gl.DeleteProgram(p.prog)
		return nil, fmt.Errorf("Failed to link program: %v", log)
	}
	runtime.AddCleanup(p, deleteProgram, p.prog)
	return p, nil
}

func deleteProgram(p uint32) {
	mainthread.CallNonBlock(func() {
		gl.DeleteProgram(p)
	})
}

func (p *Program) Use() {
	gl.UseProgram(p.prog)
}

// GetUniformLocation caches lookups. Unknown names map to -1 which GL
// ignores on upload.
func (p *Program) GetUniformLocation(n string) int32 {
	if l, ok := p.uniforms[n]; ok {
		return l
	}
	l := gl.GetUniformLocation(p.prog, gl.Str(n+"\x00"))
	p.uniforms[n] = l
	return l
}

// The setters expect the program to be in use.

func (p *Program) SetMat4(n string, m mgl32.Mat4) {
	SetMat4(p.GetUniformLocation(n), m)
}

func (p *Program) SetMat3(n string, m mgl32.Mat3) {
	gl.UniformMatrix3fv(p.GetUniformLocation(n), 1, false, &m[0])
}

func (p *Program) SetVec4(n string, v mgl32.Vec4) {
	gl.Uniform4f(p.GetUniformLocation(n), v[0], v[1], v[2], v[3])
}

func (p *Program) SetVec3(n string, v mgl32.Vec3) {
	gl.Uniform3f(p.GetUniformLocation(n), v[0], v[1], v[2])
}

func (p *Program) SetFloat(n string, f float32) {
	gl.Uniform1f(p.GetUniformLocation(n), f)
}

func (p *Program) SetInt(n string, i int32) {
	gl.Uniform1i(p.GetUniformLocation(n), i)
}

type Buffer struct {
	buf     uint32
	target  uint32
	size    int
	cleanup runtime.Cleanup
}

func NewBuffer(target uint32) *Buffer {
	b := &Buffer{
		target: target,
	}
	gl.GenBuffers(1, &b.buf)
	b.cleanup = runtime.AddCleanup(b, deleteBuffer, b.buf)
	return b
}

func deleteBuffer(buf uint32) {
	mainthread.CallNonBlock(func() {
		gl.DeleteBuffers(1, &buf)
	})
}

func (b *Buffer) Bind() {
	gl.BindBuffer(b.target, b.buf)
}

// SetData sets the data for this buffer. It needs to be bound first.
func (b *Buffer) SetData(size int, data unsafe.Pointer, usage uint32) {
	// It would be nice to just call b.Bind() first.
	// But even in the effective noop case this is not free.
	gl.BufferData(b.target, size, data, usage)
	b.size = size
}

// SetSubData overwrites size bytes from offset. It needs to be bound first.
func (b *Buffer) SetSubData(offset, size int, data unsafe.Pointer) {
	gl.BufferSubData(b.target, offset, size, data)
}

// Size is the byte size of the last SetData.
func (b *Buffer) Size() int {
	return b.size
}

// Delete frees the buffer now instead of on collection.
func (b *Buffer) Delete() {
	if b.buf == 0 {
		return
	}
	b.cleanup.Stop()
	gl.DeleteBuffers(1, &b.buf)
	b.buf = 0
	b.size = 0
}

func Ptr(data interface{}) unsafe.Pointer {
	return gl.Ptr(data)
}

type VertexArray struct {
	a       uint32
	cleanup runtime.Cleanup
}

func NewVertexArray() *VertexArray {
	va := &VertexArray{}
	gl.GenVertexArrays(1, &va.a)
	va.cleanup = runtime.AddCleanup(va, deleteVertexArray, va.a)
	return va
}

func deleteVertexArray(va uint32) {
	mainthread.CallNonBlock(func() {
		gl.DeleteVertexArrays(1, &va)
	})
}

func (va *VertexArray) Bind() {
	gl.BindVertexArray(va.a)
}

func (va *VertexArray) Unbind() {
	gl.BindVertexArray(0)
}

func (va *VertexArray) Delete() {
	if va.a == 0 {
		return
	}
	va.cleanup.Stop()
	gl.DeleteVertexArrays(1, &va.a)
	va.a = 0
}

// FloatAttrib describes float attribute index as size components at offset
// within a stride in floats. The source buffer must be bound.
func FloatAttrib(index uint32, size, stride, offset int32) {
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride*4, uintptr(offset*4))
}

// Mat4Attrib spreads a per-instance mat4 over four vec4 attributes starting
// at index. The source buffer must be bound.
func Mat4Attrib(index uint32) {
	for i := uint32(0); i < 4; i++ {
		FloatAttrib(index+i, 4, 16, int32(i*4))
		gl.VertexAttribDivisor(index+i, 1)
	}
}

func GetShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(src)
	defer free()
	length := int32(len(src))
	gl.ShaderSource(shader, 1, csource, &length)
	gl.CompileShader(shader)
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("Failed to compile shader: %v", log)
	}
	return shader, nil
}
