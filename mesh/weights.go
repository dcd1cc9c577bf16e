// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"skelview/math"
)

// NoInfluence is the color of vertices the bone does not touch.
var NoInfluence = mgl32.Vec4{0.6, 0.6, 0.6, 1}

// Rigged reports whether the mesh carries per-vertex bone weights.
func (m *Mesh) Rigged() bool {
	return len(m.Influences) == m.VertexCount() && len(m.Influences) > 0
}

// Weight is the influence of bone on vertex i.
func (m *Mesh) Weight(i, bone int) float32 {
	in := m.Influences[i]
	var w float32
	for k, b := range in.Bones {
		if b == bone {
			w += in.Weights[k]
		}
	}
	return w
}

// BoneIndex finds a bone by name, -1 if the mesh is not influenced by it.
func (m *Mesh) BoneIndex(name string) int {
	for i, n := range m.BoneNames {
		if n == name {
			return i
		}
	}
	return -1
}

// HeatColor maps a weight in [0,1] from blue over green to red.
func HeatColor(w float32) mgl32.Vec4 {
	w = math.Saturate(w)
	if w < 0.5 {
		f := w * 2
		return mgl32.Vec4{0, f, 1 - f, 1}
	}
	f := (w - 0.5) * 2
	return mgl32.Vec4{f, 1 - f, 0, 1}
}

// ShowWeights colors every vertex by the weight of the named bone.
// It returns false if the mesh has no weights for that bone.
func (m *Mesh) ShowWeights(bone string) bool {
	b := m.BoneIndex(bone)
	if !m.Rigged() || b < 0 {
		m.FillColor(NoInfluence)
		return false
	}
	c := make([]float32, 0, m.VertexCount()*ColorSize)
	for i := 0; i < m.VertexCount(); i++ {
		col := NoInfluence
		if w := m.Weight(i, b); w > 0 {
			col = HeatColor(w)
		}
		c = append(c, col[:]...)
	}
	_ = m.SetColors(c)
	return true
}

// ClearWeights resets the color channel to white.
func (m *Mesh) ClearWeights() {
	if m.colors == nil {
		return
	}
	m.FillColor(mgl32.Vec4{1, 1, 1, 1})
}
