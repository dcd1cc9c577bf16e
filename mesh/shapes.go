// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Identity keys of the generated shapes.
const (
	SphereKey = "builtin/sphere_0"
	LinkKey   = "builtin/link_0"
)

// Sphere builds a unit radius UV sphere.
func Sphere(stacks, sectors int) (*Mesh, error) {
	var v []float32
	var idx []uint32
	for i := 0; i <= stacks; i++ {
		phi := math32.Pi/2 - float32(i)*math32.Pi/float32(stacks)
		y := math32.Sin(phi)
		r := math32.Cos(phi)
		for j := 0; j <= sectors; j++ {
			theta := float32(j) * 2 * math32.Pi / float32(sectors)
			x := r * math32.Cos(theta)
			z := r * math32.Sin(theta)
			v = append(v, x, y, z, x, y, z,
				float32(j)/float32(sectors), float32(i)/float32(stacks))
		}
	}
	row := uint32(sectors + 1)
	for i := 0; i < stacks; i++ {
		k1 := uint32(i) * row
		k2 := k1 + row
		for j := 0; j < sectors; j, k1, k2 = j+1, k1+1, k2+1 {
			if i != 0 {
				idx = append(idx, k1, k2, k1+1)
			}
			if i != stacks-1 {
				idx = append(idx, k1+1, k2, k2+1)
			}
		}
	}
	return New(SphereKey, v, idx)
}

// Link builds a flat shaded octahedral bone link from the origin to (0,1,0).
// The widest ring sits at 10% of the length.
func Link() (*Mesh, error) {
	const w = 0.1
	head := mgl32.Vec3{0, 0, 0}
	tail := mgl32.Vec3{0, 1, 0}
	ring := [4]mgl32.Vec3{{w, w, 0}, {0, w, w}, {-w, w, 0}, {0, w, -w}}

	var v []float32
	var idx []uint32
	tri := func(a, b, c mgl32.Vec3) {
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		base := uint32(len(v) / VertexSize)
		for _, p := range [3]mgl32.Vec3{a, b, c} {
			v = append(v, p[0], p[1], p[2], n[0], n[1], n[2], 0, 0)
		}
		idx = append(idx, base, base+1, base+2)
	}
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		tri(head, a, b)
		tri(tail, b, a)
	}
	return New(LinkKey, v, idx)
}
