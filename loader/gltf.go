// SPDX-License-Identifier: GPL-2.0-or-later

package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"skelview/conlog"
	"skelview/mesh"
	"skelview/texture"
)

// gltfReader walks the node tree of one document.
type gltfReader struct {
	doc     *gltf.Document
	dir     string
	tail    float32
	parents []int
	src     []source
	bones   []mesh.Bone
	seen    map[string]bool
}

// readGLTF collects every triangle primitive in node order and the joints of
// every skin used by a mesh node.
func (l *Loader) readGLTF(path string) ([]source, []mesh.Bone, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r := &gltfReader{
		doc:     doc,
		dir:     filepath.Dir(path),
		tail:    l.DefaultTail,
		parents: make([]int, len(doc.Nodes)),
		seen:    map[string]bool{},
	}
	for i := range r.parents {
		r.parents[i] = -1
	}
	for i, n := range doc.Nodes {
		for _, c := range n.Children {
			r.parents[int(c)] = i
		}
	}
	for _, root := range r.roots() {
		if err := r.walk(root); err != nil {
			return nil, nil, err
		}
	}
	return r.src, r.bones, nil
}

func (r *gltfReader) roots() []int {
	doc := r.doc
	if len(doc.Scenes) > 0 {
		sc := doc.Scenes[0]
		if doc.Scene != nil {
			sc = doc.Scenes[int(*doc.Scene)]
		}
		out := make([]int, 0, len(sc.Nodes))
		for _, n := range sc.Nodes {
			out = append(out, int(n))
		}
		return out
	}
	var out []int
	for i, p := range r.parents {
		if p < 0 {
			out = append(out, i)
		}
	}
	return out
}

func (r *gltfReader) walk(ni int) error {
	n := r.doc.Nodes[ni]
	if n.Mesh != nil {
		var joints []string
		if n.Skin != nil {
			joints = r.addSkin(r.doc.Skins[int(*n.Skin)])
		}
		for pi, p := range r.doc.Meshes[int(*n.Mesh)].Primitives {
			if p.Mode != gltf.PrimitiveTriangles {
				conlog.Debugf("loader: %s primitive %d: mode %v skipped\n", n.Name, pi, p.Mode)
				continue
			}
			s, err := r.primitive(p, joints)
			if err != nil {
				return errors.Wrapf(err, "node %q primitive %d", n.Name, pi)
			}
			r.src = append(r.src, s)
		}
	}
	for _, c := range n.Children {
		if err := r.walk(int(c)); err != nil {
			return err
		}
	}
	return nil
}

func (r *gltfReader) primitive(p *gltf.Primitive, joints []string) (source, error) {
	doc := r.doc
	var s source
	pi, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return s, errors.New("no positions")
	}
	pos, err := modeler.ReadPosition(doc, doc.Accessors[int(pi)], nil)
	if err != nil {
		return s, err
	}
	var normals [][3]float32
	if i, ok := p.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[int(i)], nil); err != nil {
			return s, err
		}
	}
	var uvs [][2]float32
	if i, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[int(i)], nil); err != nil {
			return s, err
		}
	}

	s.vertices = make([]float32, 0, len(pos)*mesh.VertexSize)
	for i, v := range pos {
		var n [3]float32
		var uv [2]float32
		if i < len(normals) {
			n = normals[i]
		}
		if i < len(uvs) {
			uv = uvs[i]
		}
		s.vertices = append(s.vertices, v[0], v[1], v[2], n[0], n[1], n[2], uv[0], uv[1])
	}

	if p.Indices != nil {
		if s.indices, err = modeler.ReadIndices(doc, doc.Accessors[int(*p.Indices)], nil); err != nil {
			return s, err
		}
	} else {
		s.indices = make([]uint32, len(pos))
		for i := range s.indices {
			s.indices[i] = uint32(i)
		}
	}

	if joints != nil {
		if s.influences, err = r.influences(p, len(pos)); err != nil {
			return s, err
		}
		s.boneNames = joints
	}
	if p.Material != nil {
		s.textures = r.textures(doc.Materials[int(*p.Material)])
	}
	return s, nil
}

// influences reads JOINTS_0 and WEIGHTS_0. Zero weights get no bone.
func (r *gltfReader) influences(p *gltf.Primitive, count int) ([]mesh.Influence, error) {
	ji, ok1 := p.Attributes[gltf.JOINTS_0]
	wi, ok2 := p.Attributes[gltf.WEIGHTS_0]
	if !ok1 || !ok2 {
		return nil, nil
	}
	joints, err := modeler.ReadJoints(r.doc, r.doc.Accessors[int(ji)], nil)
	if err != nil {
		return nil, err
	}
	weights, err := modeler.ReadWeights(r.doc, r.doc.Accessors[int(wi)], nil)
	if err != nil {
		return nil, err
	}
	if len(joints) != count || len(weights) != count {
		return nil, errors.Errorf("%d joints and %d weights for %d vertices", len(joints), len(weights), count)
	}
	out := make([]mesh.Influence, count)
	for i := range out {
		for k := 0; k < 4; k++ {
			out[i].Bones[k] = -1
			if weights[i][k] > 0 {
				out[i].Bones[k] = int(joints[i][k])
				out[i].Weights[k] = weights[i][k]
			}
		}
	}
	return out, nil
}

// addSkin records the bones of a skin once and returns its joint names in
// joint order.
func (r *gltfReader) addSkin(sk *gltf.Skin) []string {
	names := make([]string, len(sk.Joints))
	for i, j := range sk.Joints {
		ji := int(j)
		name := r.nodeName(ji)
		names[i] = name
		if r.seen[name] {
			continue
		}
		r.seen[name] = true
		r.bones = append(r.bones, mesh.Bone{
			Name: name,
			Head: r.global(ji).Col(3).Vec3(),
			Tail: r.boneTail(ji),
		})
	}
	return names
}

// boneTail is the head of the _end child, or a short step along the
// joint's local Y axis.
func (r *gltfReader) boneTail(ni int) mgl32.Vec3 {
	for _, c := range r.doc.Nodes[ni].Children {
		if strings.Contains(r.doc.Nodes[int(c)].Name, "_end") {
			return r.global(int(c)).Col(3).Vec3()
		}
	}
	return mgl32.TransformCoordinate(mgl32.Vec3{0, r.tail, 0}, r.global(ni))
}

func (r *gltfReader) nodeName(ni int) string {
	if n := r.doc.Nodes[ni].Name; n != "" {
		return n
	}
	return fmt.Sprintf("joint%d", ni)
}

func (r *gltfReader) global(ni int) mgl32.Mat4 {
	m := r.local(ni)
	for p := r.parents[ni]; p >= 0; p = r.parents[p] {
		m = r.local(p).Mul4(m)
	}
	return m
}

func (r *gltfReader) local(ni int) mgl32.Mat4 {
	n := r.doc.Nodes[ni]
	if mat := n.MatrixOrDefault(); mat != gltf.DefaultMatrix {
		var m mgl32.Mat4
		for i, v := range mat {
			m[i] = float32(v)
		}
		return m
	}
	t := n.TranslationOrDefault()
	q := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	rot := mgl32.Quat{W: float32(q[3]), V: mgl32.Vec3{float32(q[0]), float32(q[1]), float32(q[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

// textures resolves the base color texture of a material.
func (r *gltfReader) textures(mat *gltf.Material) []texRef {
	if mat == nil || mat.PBRMetallicRoughness == nil || mat.PBRMetallicRoughness.BaseColorTexture == nil {
		return nil
	}
	tex := r.doc.Textures[int(mat.PBRMetallicRoughness.BaseColorTexture.Index)]
	if tex.Source == nil {
		return nil
	}
	img := r.doc.Images[int(*tex.Source)]
	ref := texRef{kind: texture.Diffuse, name: img.Name}
	switch {
	case img.BufferView != nil:
		data, err := modeler.ReadBufferView(r.doc, r.doc.BufferViews[int(*img.BufferView)])
		if err != nil {
			conlog.Printf("loader: image %s: %v, skipped\n", img.Name, err)
			return nil
		}
		ref.data = data
	case img.IsEmbeddedResource():
		data, err := img.MarshalData()
		if err != nil {
			conlog.Printf("loader: image %s: %v, skipped\n", img.Name, err)
			return nil
		}
		ref.data = data
	default:
		ref.path = filepath.Join(r.dir, filepath.FromSlash(img.URI))
		if ref.name == "" {
			ref.name = img.URI
		}
	}
	if ref.name == "" {
		ref.name = fmt.Sprintf("image%d", int(*tex.Source))
	}
	return []texRef{ref}
}
