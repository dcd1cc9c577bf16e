// SPDX-License-Identifier: GPL-2.0-or-later

// Package texture holds decoded mesh textures and their lazily created GPU
// handles.
package texture

import (
	"fmt"
	"image"

	"skelview/gpu"
)

type Kind int

const (
	Diffuse Kind = iota
	Specular
	Ambient
)

func (k Kind) String() string {
	switch k {
	case Diffuse:
		return "diffuse"
	case Specular:
		return "specular"
	case Ambient:
		return "ambient"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type Texture struct {
	Kind   Kind
	Name   string
	Width  int
	Height int

	img image.Image
	gpu gpu.Texture
}

func New(kind Kind, name string, img image.Image) *Texture {
	b := img.Bounds()
	return &Texture{
		Kind:   kind,
		Name:   name,
		Width:  b.Dx(),
		Height: b.Dy(),
		img:    img,
	}
}

// Upload creates the GPU texture on first use. The decoded image is dropped
// afterwards.
func (t *Texture) Upload(dev gpu.Device) error {
	if t.gpu != nil {
		return nil
	}
	if t.img == nil {
		return fmt.Errorf("texture %s: no image data", t.Name)
	}
	g, err := dev.NewTexture(t.img)
	if err != nil {
		return err
	}
	t.gpu = g
	t.img = nil
	return nil
}

func (t *Texture) Bind(dev gpu.Device, unit int) {
	if t.gpu != nil {
		dev.BindTexture(unit, t.gpu)
	}
}

func (t *Texture) Uploaded() bool {
	return t.gpu != nil
}

func (t *Texture) Release() {
	if t.gpu != nil {
		t.gpu.Release()
		t.gpu = nil
	}
}
