// SPDX-License-Identifier: GPL-2.0-or-later

package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skelview/mesh"
	"skelview/meshcache"
)

const quadOBJ = `mtllib quad.mtl
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl skin
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a/b/model.OBJ"))
	assert.True(t, Supported("x.glb"))
	assert.True(t, Supported("x.gltf"))
	assert.False(t, Supported("x.fbx"))
	assert.False(t, Supported("obj"))
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	cache := meshcache.New()
	_, _, err := New().Load(cache, dir, "model.fbx")
	assert.ErrorContains(t, err, "unsupported format")
	_, _, err = New().Load(cache, dir, "missing.obj")
	assert.Error(t, err)
	assert.Equal(t, 0, cache.Len())
}

func TestLoadOBJ(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "quad.obj", quadOBJ)
	writeFile(t, dir, "quad.mtl", "newmtl skin\nKd 1 1 1\nmap_Kd skin.png\n")
	writePNG(t, filepath.Join(dir, "skin.png"))

	cache := meshcache.New()
	ms, bones, err := New().Load(cache, dir, "quad.obj")
	require.NoError(t, err)
	assert.Empty(t, bones)
	require.Len(t, ms, 1)

	m := ms[0]
	assert.Equal(t, mesh.Key(dir, "quad.obj", 0), m.Key())
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 1, 0, 1}, m.Vertices()[:mesh.VertexSize], "v is flipped")
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices())
	require.Len(t, m.Textures(), 1)
	assert.Equal(t, 2, m.Textures()[0].Width)
	assert.Equal(t, 2, m.Refs())
}

func TestLoadOBJMissingTexture(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "quad.obj", quadOBJ)
	writeFile(t, dir, "quad.mtl", "newmtl skin\nKd 1 1 1\nmap_Kd nowhere.png\n")

	ms, _, err := New().Load(meshcache.New(), dir, "quad.obj")
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Empty(t, ms[0].Textures())
}

func TestLoadOBJMixedNormals(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tri.obj", "o tri\nv 0 0 0\nv 1 0 0\nv 1 1 0\nvn 1 0 0\nf 1//1 2 3\n")

	ms, _, err := New().Load(meshcache.New(), dir, "tri.obj")
	require.NoError(t, err)
	require.Len(t, ms, 1)
	vs := ms[0].Vertices()
	assert.Equal(t, []float32{1, 0, 0}, vs[3:6])
	for k := 1; k < 3; k++ {
		o := k*mesh.VertexSize + 3
		assert.Equal(t, []float32{0, 0, 1}, vs[o:o+3], "corner %d gets the face normal", k)
	}
}

func TestLoadSharesCachedMeshes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "quad.obj", quadOBJ)
	writeFile(t, dir, "quad.mtl", "newmtl skin\nKd 1 1 1\n")

	cache := meshcache.New()
	a, _, err := New().Load(cache, dir, "quad.obj")
	require.NoError(t, err)
	b, _, err := New().Load(cache, dir, "quad.obj")
	require.NoError(t, err)
	assert.Same(t, a[0], b[0])
	assert.Equal(t, 3, a[0].Refs())
	assert.Equal(t, 1, cache.Len())
}

// skinnedGLTF is one triangle skinned to a hip and spine joint. The spine
// ends in a spine_end node, the hip has none.
func skinnedGLTF(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	le := func(v any) { require.NoError(t, binary.Write(&buf, binary.LittleEndian, v)) }
	le([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0})
	le([]uint16{0, 1, 2, 0})
	le([]uint8{0, 1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0})
	le([]float32{0.5, 0.5, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0})
	data := base64.StdEncoding.EncodeToString(buf.Bytes())
	return fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0, 1]}],
  "nodes": [
    {"name": "body", "mesh": 0, "skin": 0},
    {"name": "hip", "translation": [0, 1, 0], "children": [2]},
    {"name": "spine", "translation": [0, 1, 0], "children": [3]},
    {"name": "spine_end", "translation": [0, 0.5, 0]}
  ],
  "skins": [{"joints": [1, 2]}],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0, "JOINTS_0": 2, "WEIGHTS_0": 3}, "indices": 1}]}],
  "buffers": [{"byteLength": %d, "uri": "data:application/octet-stream;base64,%s"}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 6},
    {"buffer": 0, "byteOffset": 44, "byteLength": 12},
    {"buffer": 0, "byteOffset": 56, "byteLength": 48}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"},
    {"bufferView": 2, "componentType": 5121, "count": 3, "type": "VEC4"},
    {"bufferView": 3, "componentType": 5126, "count": 3, "type": "VEC4"}
  ]
}`, buf.Len(), data)
}

func TestLoadGLTFBones(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rig.gltf", skinnedGLTF(t))

	ms, bones, err := New().Load(meshcache.New(), dir, "rig.gltf")
	require.NoError(t, err)
	require.Len(t, ms, 1)
	require.Len(t, bones, 2)

	assert.Equal(t, "hip", bones[0].Name)
	assert.True(t, bones[0].Head.ApproxEqual(mgl32.Vec3{0, 1, 0}))
	assert.True(t, bones[0].Tail.ApproxEqual(mgl32.Vec3{0, 1.1, 0}), "default tail, got %v", bones[0].Tail)
	assert.Equal(t, "spine", bones[1].Name)
	assert.True(t, bones[1].Head.ApproxEqual(mgl32.Vec3{0, 2, 0}))
	assert.True(t, bones[1].Tail.ApproxEqual(mgl32.Vec3{0, 2.5, 0}), "tail at spine_end, got %v", bones[1].Tail)

	m := ms[0]
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices())
	require.True(t, m.Rigged())
	assert.Equal(t, []string{"hip", "spine"}, m.BoneNames)
	assert.Equal(t, [4]int{0, 1, -1, -1}, m.Influences[0].Bones)
	assert.InDelta(t, 0.5, m.Weight(0, 1), 1e-6)
	assert.InDelta(t, 1, m.Weight(1, 1), 1e-6)
	assert.Zero(t, m.Weight(2, 1))
}

func TestDecodeTGA(t *testing.T) {
	// 1x1 uncompressed true color, bottom-left origin.
	raw := []byte{0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 24, 0, 0, 0, 255}
	img, err := decodeImage("red.TGA", bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1, 1), img.Bounds())
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})
}
