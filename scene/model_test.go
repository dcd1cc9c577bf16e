// SPDX-License-Identifier: GPL-2.0-or-later

package scene

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skelview/gpu/gputest"
	"skelview/material"
	"skelview/mesh"
	"skelview/meshcache"
)

// boxLoader yields one mesh spanning (0,0,0)-(2,4,2) and a two bone chain.
type boxLoader struct{}

func (boxLoader) Load(cache *meshcache.Cache, dir, file string) ([]*mesh.Mesh, []mesh.Bone, error) {
	if file == "missing.obj" {
		return nil, nil, fmt.Errorf("open %s/%s: no such file", dir, file)
	}
	m, err := cache.LoadOrGet(mesh.Key(dir, file, 0), func(key string) (*mesh.Mesh, error) {
		return mesh.New(key, []float32{
			0, 0, 0, 0, 0, 1, 0, 0,
			2, 0, 2, 0, 0, 1, 1, 0,
			0, 4, 0, 0, 0, 1, 0, 1,
		}, []uint32{0, 1, 2})
	})
	if err != nil {
		return nil, nil, err
	}
	bones := []mesh.Bone{
		{Name: "hip", Head: mgl32.Vec3{1, 0, 1}, Tail: mgl32.Vec3{1, 2, 1}},
		{Name: "spine", Head: mgl32.Vec3{1, 2, 1}, Tail: mgl32.Vec3{1, 4, 1}},
	}
	return []*mesh.Mesh{m}, bones, nil
}

func loadBox(t *testing.T, cache *meshcache.Cache, name string) *Model {
	t.Helper()
	m := NewModel(name)
	m.Dir, m.File = "assets", name
	require.NoError(t, m.Load(boxLoader{}, cache))
	return m
}

func TestModelLoadError(t *testing.T) {
	m := NewModel("missing.obj")
	m.Dir, m.File = "assets", "missing.obj"
	assert.Error(t, m.Load(boxLoader{}, meshcache.New()))
	assert.Empty(t, m.Meshes())
}

func TestModelDraw(t *testing.T) {
	dev := gputest.NewDevice()
	cache := meshcache.New()
	m := loadBox(t, cache, "box.obj")
	r := &recorder{}
	m.Draw(r)
	assert.Empty(t, r.subs, "no material, nothing to draw")

	m.Material = material.New("model", dev.NewShader("s"))
	m.Transform().SetPosition(mgl32.Vec3{1, 2, 3})
	m.Draw(r)
	require.Len(t, r.subs, 1)
	assert.Same(t, m.Meshes()[0], r.subs[0].mesh)
	assert.Equal(t, mgl32.Translate3D(1, 2, 3), r.subs[0].world)
}

func TestModelNormalize(t *testing.T) {
	cache := meshcache.New()
	m := loadBox(t, cache, "box.obj")
	m.Normalize = true
	s := New()
	require.True(t, s.Add(m))

	assert.Equal(t, mgl32.Vec3{0.25, 0.25, 0.25}, m.Transform().Scale())
	lo, hi, ok := m.Bounds()
	require.True(t, ok)
	w := m.Transform().LocalToWorld()
	assert.True(t, mgl32.TransformCoordinate(lo, w).ApproxEqual(mgl32.Vec3{-0.25, -0.5, -0.25}))
	assert.True(t, mgl32.TransformCoordinate(hi, w).ApproxEqual(mgl32.Vec3{0.25, 0.5, 0.25}))
	assert.True(t, m.Bones()[0].Head.ApproxEqual(mgl32.Vec3{0, -0.5, 0}))
	assert.True(t, m.Bones()[1].Tail.ApproxEqual(mgl32.Vec3{0, 0.5, 0}))
}

func TestAddBoneNodes(t *testing.T) {
	dev := gputest.NewDevice()
	cache := meshcache.New()
	s := New()
	a := loadBox(t, cache, "a.obj")
	b := loadBox(t, cache, "b.obj")
	require.True(t, s.Add(a))
	require.True(t, s.Add(b))

	node := material.New("node", dev.NewShader("s"))
	link := material.New("link", dev.NewShader("s"))
	style := BoneStyle{NodeSize: 0.1, LinkScale: 1}
	require.NoError(t, a.AddBoneNodes(node, link, cache, style))
	require.NoError(t, b.AddBoneNodes(node, link, cache, style))

	assert.Len(t, a.Children(), 4)
	hip := s.Model(LinkName("a.obj", "hip"))
	require.NotNil(t, hip)
	dir := hip.Transform().LocalToWorld().Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	assert.True(t, dir.ApproxEqualThreshold(mgl32.Vec3{0, 2, 0}, 1e-5), "link spans the bone, got %v", dir)
	assert.NotNil(t, s.Model(NodeName("b.obj", "spine")))

	sphere, ok := cache.Get(mesh.SphereKey)
	require.True(t, ok)
	assert.Equal(t, 5, sphere.Refs(), "cache plus four nodes")

	r := &recorder{}
	s.Draw(r)
	assert.Len(t, r.subs, 2+8)

	s.Remove("a.obj")
	assert.Equal(t, 3, sphere.Refs())
	assert.Nil(t, s.Model(NodeName("a.obj", "hip")))
	box, _ := cache.Get(mesh.Key("assets", "a.obj", 0))
	assert.Equal(t, 1, box.Refs(), "only the cache holds a.obj now")
}

func TestBoneWeights(t *testing.T) {
	cache := meshcache.New()
	m := loadBox(t, cache, "box.obj")
	ms := m.Meshes()[0]
	ms.BoneNames = []string{"hip"}
	ms.Influences = []mesh.Influence{
		{Weights: [4]float32{1}},
		{Weights: [4]float32{0.5}},
		{Bones: [4]int{-1, -1, -1, -1}},
	}
	assert.Equal(t, 1, m.ShowBoneWeights("hip"))
	assert.Equal(t, 0, m.ShowBoneWeights("spine"))
	m.ClearBoneWeights()
	assert.Equal(t, []float32{1, 1, 1, 1}, ms.Colors()[:4])
}

func TestModelInfo(t *testing.T) {
	m := loadBox(t, meshcache.New(), "box.obj")
	assert.Equal(t, "mesh number: 1\n  mesh0: 3\ntotal: 3\n", m.Info())
}
