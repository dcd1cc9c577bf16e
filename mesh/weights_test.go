// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestHeatColor(t *testing.T) {
	assert.Equal(t, mgl32.Vec4{0, 0, 1, 1}, HeatColor(0))
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, HeatColor(1))
	assert.Equal(t, mgl32.Vec4{0, 1, 0, 1}, HeatColor(0.5))
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, HeatColor(7))
}

func TestShowWeights(t *testing.T) {
	m := triangle(t)
	assert.False(t, m.ShowWeights("hip"))
	assert.Equal(t, NoInfluence[:], m.Colors()[:4])

	m.BoneNames = []string{"hip", "knee"}
	m.Influences = []Influence{
		{Bones: [4]int{0, 1}, Weights: [4]float32{1, 0}},
		{Bones: [4]int{0, 1}, Weights: [4]float32{0.5, 0.5}},
		{Bones: [4]int{1}, Weights: [4]float32{1}},
	}
	assert.True(t, m.ShowWeights("knee"))
	c := m.Colors()
	assert.Equal(t, NoInfluence[:], c[0:4])
	assert.Equal(t, []float32{0, 1, 0, 1}, c[4:8])
	assert.Equal(t, []float32{1, 0, 0, 1}, c[8:12])

	m.ClearWeights()
	assert.Equal(t, []float32{1, 1, 1, 1}, m.Colors()[8:12])
}
