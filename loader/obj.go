// SPDX-License-Identifier: GPL-2.0-or-later

package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"

	"skelview/conlog"
	"skelview/mesh"
	"skelview/texture"
)

// readOBJ decodes a Wavefront file. Every object with faces becomes one
// mesh. The material library next to the file is used when present.
func readOBJ(path string) ([]source, error) {
	dec, err := decodeOBJ(path)
	if err != nil {
		return nil, err
	}
	for _, w := range dec.Warnings {
		conlog.Debugf("loader: %s: %s\n", path, w)
	}
	dir := filepath.Dir(path)
	var out []source
	for i := range dec.Objects {
		o := &dec.Objects[i]
		if len(o.Faces) == 0 {
			continue
		}
		out = append(out, objSource(dec, o, dir))
	}
	return out, nil
}

func decodeOBJ(path string) (*obj.Decoder, error) {
	mtl := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"
	if _, err := os.Stat(mtl); err == nil {
		return obj.Decode(path, mtl)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return obj.DecodeReader(f, strings.NewReader(""))
}

// objSource fans out every polygon into triangles with one vertex per
// corner. V is flipped so row 0 of the image is the top.
func objSource(dec *obj.Decoder, o *obj.Object, dir string) source {
	var s source
	seen := map[string]bool{}
	for _, f := range o.Faces {
		if len(f.Vertices) < 3 {
			continue
		}
		flat, hasFlat := faceNormal(dec, f)
		if !hasFlat {
			flat = mgl32.Vec3{0, 1, 0}
		}
		base := uint32(len(s.vertices) / mesh.VertexSize)
		for k := range f.Vertices {
			p := vec3At(dec.Vertices, f.Vertices[k])
			// corners without a vn get the flat face normal
			n := flat
			if k < len(f.Normals) {
				if vn, ok := at3(dec.Normals, f.Normals[k]); ok {
					n = vn
				}
			}
			var u, v float32
			if k < len(f.Uvs) {
				if i := f.Uvs[k]; i >= 0 && i*2+1 < len(dec.Uvs) {
					u, v = dec.Uvs[i*2], 1-dec.Uvs[i*2+1]
				}
			}
			s.vertices = append(s.vertices, p[0], p[1], p[2], n[0], n[1], n[2], u, v)
		}
		for k := 1; k+1 < len(f.Vertices); k++ {
			s.indices = append(s.indices, base, base+uint32(k), base+uint32(k+1))
		}

		mat, ok := dec.Materials[f.Material]
		if !ok || mat.MapKd == "" || seen[mat.MapKd] {
			continue
		}
		seen[mat.MapKd] = true
		s.textures = append(s.textures, texRef{
			kind: texture.Diffuse,
			name: mat.MapKd,
			path: filepath.Join(dir, filepath.FromSlash(mat.MapKd)),
		})
	}
	return s
}

// faceNormal is the flat normal of the first triangle of f.
func faceNormal(dec *obj.Decoder, f obj.Face) (mgl32.Vec3, bool) {
	a := vec3At(dec.Vertices, f.Vertices[0])
	b := vec3At(dec.Vertices, f.Vertices[1])
	c := vec3At(dec.Vertices, f.Vertices[2])
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return n, false
	}
	return n.Normalize(), true
}

func vec3At(data []float32, i int) mgl32.Vec3 {
	v, _ := at3(data, i)
	return v
}

func at3(data []float32, i int) (mgl32.Vec3, bool) {
	if i < 0 || i*3+2 >= len(data) {
		return mgl32.Vec3{}, false
	}
	return mgl32.Vec3{data[i*3], data[i*3+1], data[i*3+2]}, true
}
