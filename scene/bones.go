// SPDX-License-Identifier: GPL-2.0-or-later

package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"skelview/material"
	"skelview/mesh"
	"skelview/meshcache"
)

// BoneStyle sizes the generated skeleton display.
type BoneStyle struct {
	NodeSize  float32
	LinkScale float32
}

var up = mgl32.Vec3{0, 1, 0}

func loadSphere(string) (*mesh.Mesh, error) { return mesh.Sphere(12, 16) }
func loadLink(string) (*mesh.Mesh, error)   { return mesh.Link() }

// NodeName and LinkName are the names of the generated bone children.
func NodeName(model, bone string) string { return model + "/node/" + bone }
func LinkName(model, bone string) string { return model + "/link/" + bone }

// AddBoneNodes adds one sphere child per bone head and one link child per
// bone. All of them share two cached meshes and are drawn instanced.
func (m *Model) AddBoneNodes(node, link *material.Material, cache *meshcache.Cache, style BoneStyle) error {
	for _, b := range m.bones {
		sphere, err := cache.LoadOrGet(mesh.SphereKey, loadSphere)
		if err != nil {
			return errors.Wrap(err, "bone node mesh")
		}
		n := NewModel(NodeName(m.name, b.Name))
		n.Material = node
		n.SetMeshes([]*mesh.Mesh{sphere})
		n.transform.SetPosition(b.Head)
		n.transform.SetScale(mgl32.Vec3{style.NodeSize, style.NodeSize, style.NodeSize})
		if !m.AddChild(n) {
			n.Destroy()
			continue
		}

		length := b.Length()
		if length <= 0 {
			continue
		}
		bone, err := cache.LoadOrGet(mesh.LinkKey, loadLink)
		if err != nil {
			return errors.Wrap(err, "bone link mesh")
		}
		l := NewModel(LinkName(m.name, b.Name))
		l.Material = link
		l.SetMeshes([]*mesh.Mesh{bone})
		l.transform.SetPosition(b.Head)
		l.transform.Rotate(up, b.Tail.Sub(b.Head).Normalize())
		w := length * style.LinkScale
		l.transform.SetScale(mgl32.Vec3{w, length, w})
		if !m.AddChild(l) {
			l.Destroy()
		}
	}
	return nil
}
