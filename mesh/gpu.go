// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"skelview/conlog"
	"skelview/gpu"
	"skelview/texture"
)

// Upload creates the GPU geometry on first use and pushes pending color
// changes. It is safe to call every frame.
func (m *Mesh) Upload(dev gpu.Device) error {
	if m.released {
		return errors.Errorf("mesh %s: upload after release", m.key)
	}
	if m.geom == nil {
		g, err := dev.NewGeometry(m.vertices, m.colors, m.indices)
		if err != nil {
			return errors.Wrapf(err, "mesh %s: upload", m.key)
		}
		m.geom = g
		m.colorsDirty = false
		for _, t := range m.textures {
			if err := t.Upload(dev); err != nil {
				conlog.Printf("mesh %s: skipping texture %s: %v\n", m.key, t.Name, err)
			}
		}
	}
	if m.colorsDirty {
		m.geom.SetColors(m.colors)
		m.colorsDirty = false
	}
	return nil
}

func (m *Mesh) Uploaded() bool {
	return m.geom != nil
}

// bindTextures binds textures to units starting at 1 and points the
// utexture_diffuseN samplers at the diffuse ones.
func (m *Mesh) bindTextures(dev gpu.Device, sh gpu.Shader) {
	diffuse := 1
	for i, t := range m.textures {
		if !t.Uploaded() {
			continue
		}
		t.Bind(dev, i+1)
		if t.Kind == texture.Diffuse {
			sh.SetInt(fmt.Sprintf("utexture_diffuse%d", diffuse), int32(i+1))
			diffuse++
		}
	}
	useTexture := int32(0)
	if diffuse > 1 {
		useTexture = 1
	}
	sh.SetInt("uTextureSample", useTexture)
}

// Draw issues a single draw. The shader must already be bound with its
// model uniform set.
func (m *Mesh) Draw(dev gpu.Device, sh gpu.Shader) error {
	if err := m.Upload(dev); err != nil {
		return err
	}
	m.bindTextures(dev, sh)
	dev.Draw(m.geom)
	return nil
}

// DrawInstanced draws the mesh once per matrix in one call. The instance
// buffer only grows: it is recreated when too small and overwritten
// otherwise.
func (m *Mesh) DrawInstanced(dev gpu.Device, sh gpu.Shader, matrices []mgl32.Mat4) error {
	if len(matrices) == 0 {
		return nil
	}
	if err := m.Upload(dev); err != nil {
		return err
	}
	need := len(matrices) * matrixSize
	if m.instances == nil || need > m.instances.Size() {
		if m.instances != nil {
			m.instances.Release()
		}
		b, err := dev.NewInstanceBuffer(need)
		if err != nil {
			m.instances = nil
			return errors.Wrapf(err, "mesh %s: instance buffer of %d bytes", m.key, need)
		}
		m.instances = b
		m.geom.BindInstances(b)
	}
	m.instances.Write(flatten(matrices))
	m.bindTextures(dev, sh)
	dev.DrawInstanced(m.geom, len(matrices))
	return nil
}

// InstanceCapacity is the current instance buffer size in matrices.
func (m *Mesh) InstanceCapacity() int {
	if m.instances == nil {
		return 0
	}
	return m.instances.Size() / matrixSize
}

// Release frees all GPU resources. The mesh stays readable on the CPU side.
func (m *Mesh) Release() {
	if m.released {
		return
	}
	if m.instances != nil {
		m.instances.Release()
		m.instances = nil
	}
	if m.geom != nil {
		m.geom.Release()
		m.geom = nil
	}
	for _, t := range m.textures {
		t.Release()
	}
	m.released = true
}

// flatten lays the matrices out column major, the order GL expects.
func flatten(ms []mgl32.Mat4) []float32 {
	out := make([]float32, 0, len(ms)*16)
	for _, mat := range ms {
		out = append(out, mat[:]...)
	}
	return out
}
