// SPDX-License-Identifier: GPL-2.0-or-later

// Package mesh holds indexed triangle geometry and its GPU handles.
//
// Vertices are interleaved, 8 floats each:
//
//	pos.x pos.y pos.z nor.x nor.y nor.z tex.u tex.v
//
// An optional rgba color channel is kept apart from the vertex data so it
// can be rewritten for weight display without touching the geometry.
package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"skelview/gpu"
	"skelview/texture"
)

const (
	VertexSize = 8
	ColorSize  = 4
	// matrixSize is the byte size of one mat4 in the instance buffer.
	matrixSize = 16 * 4
)

// Key builds the identity key of sub-mesh ordinal of file in dir.
func Key(dir, file string, ordinal int) string {
	return fmt.Sprintf("%s/%s_%d", dir, file, ordinal)
}

// Bone is a skeleton joint in bind pose, head and tail in model space.
type Bone struct {
	Name string
	Head mgl32.Vec3
	Tail mgl32.Vec3
}

// Length is the head to tail distance.
func (b Bone) Length() float32 {
	return b.Tail.Sub(b.Head).Len()
}

// Influence is up to four bone weights of one vertex.
type Influence struct {
	Bones   [4]int
	Weights [4]float32
}

type Mesh struct {
	key      string
	vertices []float32
	indices  []uint32
	colors   []float32
	textures []*texture.Texture

	// Influences is indexed by vertex, empty for unrigged meshes.
	Influences []Influence
	// BoneNames maps Influence.Bones entries to names.
	BoneNames []string

	geom        gpu.Geometry
	instances   gpu.Buffer
	colorsDirty bool
	refs        int
	released    bool
}

// New creates a mesh from interleaved vertices and triangle indices.
func New(key string, vertices []float32, indices []uint32) (*Mesh, error) {
	if len(vertices)%VertexSize != 0 {
		return nil, errors.Errorf("mesh %s: vertex data length %d is not a multiple of %d", key, len(vertices), VertexSize)
	}
	if len(indices)%3 != 0 {
		return nil, errors.Errorf("mesh %s: index count %d is not a multiple of 3", key, len(indices))
	}
	n := uint32(len(vertices) / VertexSize)
	for _, i := range indices {
		if i >= n {
			return nil, errors.Errorf("mesh %s: index %d out of range, %d vertices", key, i, n)
		}
	}
	return &Mesh{
		key:      key,
		vertices: vertices,
		indices:  indices,
	}, nil
}

func (m *Mesh) Key() string         { return m.key }
func (m *Mesh) VertexCount() int    { return len(m.vertices) / VertexSize }
func (m *Mesh) TriangleCount() int  { return len(m.indices) / 3 }
func (m *Mesh) Vertices() []float32 { return m.vertices }
func (m *Mesh) Indices() []uint32   { return m.indices }

func (m *Mesh) Position(i int) mgl32.Vec3 {
	v := m.vertices[i*VertexSize:]
	return mgl32.Vec3{v[0], v[1], v[2]}
}

// Bounds returns the axis aligned box of all positions.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if m.VertexCount() == 0 {
		return
	}
	lo = m.Position(0)
	hi = lo
	for i := 1; i < m.VertexCount(); i++ {
		p := m.Position(i)
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], p[k])
			hi[k] = max(hi[k], p[k])
		}
	}
	return lo, hi
}

func (m *Mesh) AddTexture(t *texture.Texture) {
	m.textures = append(m.textures, t)
}

func (m *Mesh) Textures() []*texture.Texture {
	return m.textures
}

// Colors returns the color channel or nil if the mesh has none.
func (m *Mesh) Colors() []float32 {
	return m.colors
}

// SetColors replaces the per-vertex rgba channel. The upload happens on the
// next draw.
func (m *Mesh) SetColors(c []float32) error {
	if len(c) != m.VertexCount()*ColorSize {
		return errors.Errorf("mesh %s: %d color floats for %d vertices", m.key, len(c), m.VertexCount())
	}
	if m.colors == nil {
		m.colors = make([]float32, len(c))
	}
	copy(m.colors, c)
	m.colorsDirty = true
	return nil
}

// FillColor sets every vertex to c.
func (m *Mesh) FillColor(c mgl32.Vec4) {
	buf := make([]float32, m.VertexCount()*ColorSize)
	for i := 0; i < len(buf); i += ColorSize {
		copy(buf[i:], c[:])
	}
	_ = m.SetColors(buf)
}

// Acquire marks one more owner of m and returns it.
func (m *Mesh) Acquire() *Mesh {
	m.refs++
	return m
}

// Drop releases one ownership taken with Acquire.
func (m *Mesh) Drop() {
	if m.refs > 0 {
		m.refs--
	}
}

// Refs is the number of live owners, the cache included.
func (m *Mesh) Refs() int {
	return m.refs
}

// Released reports whether the GPU resources were freed. A released mesh
// must not be drawn.
func (m *Mesh) Released() bool {
	return m.released
}

// Valid reports whether m can be submitted for drawing.
func (m *Mesh) Valid() bool {
	return m != nil && !m.released && len(m.indices) > 0
}

func (m *Mesh) String() string {
	return fmt.Sprintf("%s (%d vertices, %d triangles, %d refs)", m.key, m.VertexCount(), m.TriangleCount(), m.refs)
}
