// SPDX-License-Identifier: GPL-2.0-or-later
package glh

import (
	"image"
	"image/draw"
	"runtime"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gopxl/mainthread/v2"
)

type TexID uint32

type Texture2D struct {
	id      uint32
	cleanup runtime.Cleanup
}

func deleteTexture(id uint32) {
	mainthread.CallNonBlock(func() {
		gl.DeleteTextures(1, &id)
	})
}

func NewTexture2D() *Texture2D {
	t := &Texture2D{}
	gl.GenTextures(1, &t.id)
	t.cleanup = runtime.AddCleanup(t, deleteTexture, t.id)
	return t
}

func (t *Texture2D) ID() TexID {
	return TexID(t.id)
}

func (t *Texture2D) Bind() {
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// BindUnit makes t the 2D texture of texture unit u.
func (t *Texture2D) BindUnit(u int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(u))
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Upload stores img as RGBA with mipmaps and repeat wrapping.
func (t *Texture2D) Upload(img image.Image) {
	rgba := ToRGBA(img)
	t.Bind()
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	b := rgba.Bounds()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (t *Texture2D) Delete() {
	if t.id == 0 {
		return
	}
	t.cleanup.Stop()
	gl.DeleteTextures(1, &t.id)
	t.id = 0
}

// ToRGBA returns img as a tightly packed RGBA image with origin 0,0.
func ToRGBA(img image.Image) *image.RGBA {
	if r, ok := img.(*image.RGBA); ok && r.Rect.Min == (image.Point{}) && r.Stride == 4*r.Rect.Dx() {
		return r
	}
	b := img.Bounds()
	r := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(r, r.Bounds(), img, b.Min, draw.Src)
	return r
}
