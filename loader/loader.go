// SPDX-License-Identifier: GPL-2.0-or-later

// Package loader turns model files into cached meshes and bind pose bones.
package loader

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"skelview/mesh"
	"skelview/meshcache"
)

// Loader reads .obj, .gltf and .glb files.
type Loader struct {
	// DefaultTail is the bone length used when a joint has no _end child.
	DefaultTail float32
}

func New() *Loader {
	return &Loader{DefaultTail: 0.1}
}

// Supported reports whether the file extension is readable.
func Supported(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".obj", ".gltf", ".glb":
		return true
	}
	return false
}

// Load parses dir/file and hands every mesh to the cache under
// mesh.Key(dir, file, i). Meshes already cached are not rebuilt.
func (l *Loader) Load(cache *meshcache.Cache, dir, file string) ([]*mesh.Mesh, []mesh.Bone, error) {
	path := filepath.Join(dir, file)
	var (
		src   []source
		bones []mesh.Bone
		err   error
	)
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".obj":
		src, err = readOBJ(path)
	case ".gltf", ".glb":
		src, bones, err = l.readGLTF(path)
	default:
		return nil, nil, errors.Errorf("%s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read %s", path)
	}

	out := make([]*mesh.Mesh, 0, len(src))
	for i, s := range src {
		m, err := cache.LoadOrGet(mesh.Key(dir, file, i), s.build)
		if err != nil {
			for _, m := range out {
				m.Drop()
			}
			return nil, nil, err
		}
		out = append(out, m)
	}
	return out, bones, nil
}

// source builds one mesh on a cache miss.
type source struct {
	vertices   []float32
	indices    []uint32
	influences []mesh.Influence
	boneNames  []string
	textures   []texRef
}

func (s source) build(key string) (*mesh.Mesh, error) {
	m, err := mesh.New(key, s.vertices, s.indices)
	if err != nil {
		return nil, err
	}
	if len(s.influences) == m.VertexCount() {
		m.Influences = s.influences
		m.BoneNames = s.boneNames
	}
	for _, t := range s.textures {
		if tex := t.load(); tex != nil {
			m.AddTexture(tex)
		}
	}
	return m, nil
}
