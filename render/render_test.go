// SPDX-License-Identifier: GPL-2.0-or-later

package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skelview/gpu"
	"skelview/gpu/gputest"
	"skelview/material"
	"skelview/mesh"
)

func newMesh(t *testing.T, key string) *mesh.Mesh {
	t.Helper()
	m, err := mesh.New(key, []float32{
		0, 0, 0, 0, 0, 1, 0, 0,
		1, 0, 0, 0, 0, 1, 1, 0,
		0, 1, 0, 0, 0, 1, 0, 1,
	}, []uint32{0, 1, 2})
	require.NoError(t, err)
	return m
}

func at(x, y, z float32) mgl32.Mat4 {
	return mgl32.Translate3D(x, y, z)
}

// camera at the origin looking down -Z
var view = mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})

func TestEndToEnd(t *testing.T) {
	dev := gputest.NewDevice()
	e := New(dev)
	m := newMesh(t, "m")
	n := newMesh(t, "n")
	opaque := material.New("opaque", dev.NewShader("opaque"))
	glass := material.NewTransparent("glass", dev.NewShader("glass"))

	i1, i2, i3 := at(1, 0, 0), at(2, 0, 0), at(3, 0, 0)
	require.True(t, e.Submit(n, glass, at(0, 0, -5)))
	require.True(t, e.Submit(m, opaque, i1))
	require.True(t, e.Submit(n, glass, at(0, 0, -1)))
	require.True(t, e.Submit(m, opaque, i2))
	require.True(t, e.Submit(n, glass, at(0, 0, -3)))
	require.True(t, e.Submit(m, opaque, i3))
	assert.Equal(t, Accepting, e.Phase())

	e.Flush(view, mgl32.Ident4())
	assert.Equal(t, Empty, e.Phase())

	require.Len(t, dev.Draws, 4)
	d := dev.Draws[0]
	assert.Equal(t, "opaque", d.Shader)
	assert.Equal(t, gpu.Instanced, d.Variant)
	assert.Equal(t, 3, d.Instances)
	assert.Equal(t, []mgl32.Mat4{i1, i2, i3}, d.Matrices)

	var z []float32
	for _, d := range dev.Draws[1:] {
		assert.Equal(t, "glass", d.Shader)
		assert.Equal(t, gpu.Basic, d.Variant)
		assert.True(t, d.State.Blend)
		z = append(z, d.Model.Col(3).Z())
	}
	assert.Equal(t, []float32{-5, -3, -1}, z)

	s := e.Stats()
	assert.Equal(t, 4, s.DrawCalls)
	assert.Equal(t, 1, s.InstancedDraws)
	assert.Equal(t, 3, s.TransparentDraws)
	assert.Equal(t, 6, s.Submitted)
}

func TestSingleInstanceIsBasic(t *testing.T) {
	dev := gputest.NewDevice()
	e := New(dev)
	mat := material.New("a", dev.NewShader("a"))
	e.Submit(newMesh(t, "m"), mat, at(4, 5, 6))
	e.Flush(view, mgl32.Ident4())

	require.Len(t, dev.Draws, 1)
	assert.Equal(t, gpu.Basic, dev.Draws[0].Variant)
	assert.Equal(t, at(4, 5, 6), dev.Draws[0].Model)
	assert.Empty(t, dev.Buffers)
}

func TestFlushEmpties(t *testing.T) {
	dev := gputest.NewDevice()
	e := New(dev)
	mat := material.New("a", dev.NewShader("a"))
	e.Submit(newMesh(t, "m"), mat, at(0, 0, 0))
	e.Flush(view, mgl32.Ident4())
	dev.Reset()

	e.Flush(view, mgl32.Ident4())
	assert.Empty(t, dev.Draws)
	assert.Equal(t, 0, e.Pending())
	assert.Equal(t, Stats{}, e.Stats())
}

func TestRejectInvalid(t *testing.T) {
	dev := gputest.NewDevice()
	e := New(dev)
	mat := material.New("a", dev.NewShader("a"))
	m := newMesh(t, "m")
	released := newMesh(t, "r")
	released.Release()

	assert.False(t, e.Submit(nil, mat, mgl32.Ident4()))
	assert.False(t, e.Submit(released, mat, mgl32.Ident4()))
	assert.False(t, e.Submit(m, nil, mgl32.Ident4()))
	assert.False(t, e.Submit(m, material.New("noshader", nil), mgl32.Ident4()))
	assert.Equal(t, Empty, e.Phase())

	e.Flush(view, mgl32.Ident4())
	assert.Empty(t, dev.Draws)
	assert.Equal(t, 4, e.Stats().Rejected)
}

func TestQueuesInAscendingOrder(t *testing.T) {
	dev := gputest.NewDevice()
	e := New(dev)
	m := newMesh(t, "m")
	overlay := material.New("overlay", dev.NewShader("overlay"))
	overlay.Queue = material.Overlay
	background := material.New("background", dev.NewShader("background"))
	background.Queue = material.Background
	glass := material.NewTransparent("glass", dev.NewShader("glass"))
	geometry := material.New("geometry", dev.NewShader("geometry"))
	alpha := material.New("alpha", dev.NewShader("alpha"))
	alpha.Queue = material.AlphaTest

	for _, mat := range []*material.Material{overlay, glass, alpha, geometry, background} {
		e.Submit(m, mat, at(0, 0, -1))
	}
	e.Flush(view, mgl32.Ident4())

	var got []string
	for _, d := range dev.Draws {
		got = append(got, d.Shader)
	}
	assert.Equal(t, []string{"background", "geometry", "alpha", "glass", "overlay"}, got)
}

func TestMaterialsContiguous(t *testing.T) {
	dev := gputest.NewDevice()
	e := New(dev)
	a := material.New("a", dev.NewShader("a"))
	b := material.New("b", dev.NewShader("b"))
	meshes := []*mesh.Mesh{newMesh(t, "m1"), newMesh(t, "m2"), newMesh(t, "m3")}
	for _, m := range meshes {
		e.Submit(m, a, at(0, 0, 0))
		e.Submit(m, b, at(0, 0, 0))
	}
	e.Flush(view, mgl32.Ident4())

	require.Len(t, dev.Draws, 6)
	switches := 0
	for i := 1; i < len(dev.Draws); i++ {
		if dev.Draws[i].Shader != dev.Draws[i-1].Shader {
			switches++
		}
	}
	assert.Equal(t, 1, switches)
	assert.Equal(t, 2, e.Stats().MaterialBinds)
}

func TestSortKey(t *testing.T) {
	dev := gputest.NewDevice()
	a := material.New("a", dev.NewShader("a"))
	m := newMesh(t, "m")
	n := newMesh(t, "n")
	assert.Equal(t, SortKey(a, m), SortKey(a, m))
	assert.Equal(t, SortKey(a, m)>>24, SortKey(a, n)>>24)
	assert.NotEqual(t, SortKey(a, m), SortKey(a, n))
}

func TestInstanceBufferReusedAcrossFrames(t *testing.T) {
	dev := gputest.NewDevice()
	e := New(dev)
	mat := material.New("a", dev.NewShader("a"))
	m := newMesh(t, "m")
	for frame, count := range []int{4, 2, 4, 6} {
		for i := 0; i < count; i++ {
			e.Submit(m, mat, at(float32(i), 0, 0))
		}
		e.Flush(view, mgl32.Ident4())
		last := dev.Draws[len(dev.Draws)-1]
		assert.Equal(t, count, last.Instances, "frame %d", frame)
		assert.Len(t, last.Matrices, count, "frame %d", frame)
	}
	assert.Len(t, dev.Buffers, 2)
}
