// SPDX-License-Identifier: GPL-2.0-or-later

package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"skelview/conlog"
	"skelview/material"
	"skelview/mesh"
	"skelview/meshcache"
)

// Loader reads a model file into cached meshes and its bind pose skeleton.
// Every returned mesh carries one reference owned by the caller.
type Loader interface {
	Load(cache *meshcache.Cache, dir, file string) ([]*mesh.Mesh, []mesh.Bone, error)
}

// Model draws a set of shared meshes with one material.
type Model struct {
	Node
	Dir      string
	File     string
	Material *material.Material
	// Normalize fits the model into a unit cube around the origin on Awake.
	Normalize bool

	meshes     []*mesh.Mesh
	bones      []mesh.Bone
	normalized bool
}

func NewModel(name string) *Model {
	m := &Model{}
	m.init(m, KindModel, name)
	return m
}

// SetMeshes hands references on ms to the model. Previously held meshes are
// dropped.
func (m *Model) SetMeshes(ms []*mesh.Mesh) {
	m.dropMeshes()
	m.meshes = ms
}

func (m *Model) Meshes() []*mesh.Mesh {
	return m.meshes
}

func (m *Model) Bones() []mesh.Bone {
	return m.bones
}

func (m *Model) SetBones(b []mesh.Bone) {
	m.bones = b
}

// Load fills the model from Dir and File.
func (m *Model) Load(l Loader, cache *meshcache.Cache) error {
	ms, bones, err := l.Load(cache, m.Dir, m.File)
	if err != nil {
		return err
	}
	m.SetMeshes(ms)
	m.bones = bones
	return nil
}

func (m *Model) Awake() {
	if m.Normalize && !m.normalized {
		m.normalize()
	}
}

// Bounds is the box around all meshes in model space.
func (m *Model) Bounds() (lo, hi mgl32.Vec3, ok bool) {
	for _, ms := range m.meshes {
		if ms.VertexCount() == 0 {
			continue
		}
		l, h := ms.Bounds()
		if !ok {
			lo, hi, ok = l, h, true
			continue
		}
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], l[k])
			hi[k] = max(hi[k], h[k])
		}
	}
	return lo, hi, ok
}

// normalize centers the model and scales its largest extent to 1. Bones are
// moved by the same matrix since children do not inherit transforms.
func (m *Model) normalize() {
	m.normalized = true
	lo, hi, ok := m.Bounds()
	if !ok {
		return
	}
	size := hi.Sub(lo)
	extent := max(size[0], size[1], size[2])
	if extent <= 0 {
		return
	}
	s := 1 / extent
	center := lo.Add(hi).Mul(0.5)
	m.transform.SetScale(mgl32.Vec3{s, s, s})
	m.transform.SetPosition(center.Mul(-s))

	mat := m.transform.LocalToWorld()
	for i, b := range m.bones {
		m.bones[i].Head = mgl32.TransformCoordinate(b.Head, mat)
		m.bones[i].Tail = mgl32.TransformCoordinate(b.Tail, mat)
	}
}

func (m *Model) Draw(s Submitter) {
	if m.Material == nil {
		return
	}
	world := m.transform.LocalToWorld()
	for _, ms := range m.meshes {
		s.Submit(ms, m.Material, world)
	}
}

// ShowBoneWeights colors the vertices by the influence of the named bone.
// It returns the number of meshes the bone influences.
func (m *Model) ShowBoneWeights(bone string) int {
	n := 0
	for _, ms := range m.meshes {
		if ms.ShowWeights(bone) {
			n++
		}
	}
	return n
}

func (m *Model) ClearBoneWeights() {
	for _, ms := range m.meshes {
		ms.ClearWeights()
	}
}

func (m *Model) dropMeshes() {
	for _, ms := range m.meshes {
		ms.Drop()
	}
	m.meshes = nil
}

// Destroy resets the weight colors of the shared meshes and drops the
// references so the cache can evict them.
func (m *Model) Destroy() {
	m.ClearBoneWeights()
	m.dropMeshes()
	m.Node.Destroy()
}

// Info summarizes mesh sizes.
func (m *Model) Info() string {
	var sb strings.Builder
	total := 0
	fmt.Fprintf(&sb, "mesh number: %d\n", len(m.meshes))
	for i, ms := range m.meshes {
		fmt.Fprintf(&sb, "  mesh%d: %d\n", i, ms.VertexCount())
		total += ms.VertexCount()
	}
	fmt.Fprintf(&sb, "total: %d\n", total)
	return sb.String()
}

func (m *Model) PrintBoneInfo() {
	conlog.Printf("%s: %d bones\n", filepath.Join(m.Dir, m.File), len(m.bones))
	for _, b := range m.bones {
		conlog.Debugf("  %s: head%v tail%v\n", b.Name, b.Head, b.Tail)
	}
}
