// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import (
	"image"
	"testing"

	"skelview/gpu/gputest"
)

func TestUploadOnce(t *testing.T) {
	dev := gputest.NewDevice()
	tex := New(Diffuse, "skin.png", image.NewRGBA(image.Rect(0, 0, 4, 2)))
	if tex.Width != 4 || tex.Height != 2 {
		t.Errorf("size = %dx%d, want 4x2", tex.Width, tex.Height)
	}
	if err := tex.Upload(dev); err != nil {
		t.Fatalf("Upload() = %v", err)
	}
	if err := tex.Upload(dev); err != nil {
		t.Fatalf("second Upload() = %v", err)
	}
	if dev.Textures != 1 {
		t.Errorf("device textures = %d, want 1", dev.Textures)
	}
	tex.Release()
	if tex.Uploaded() {
		t.Errorf("Uploaded() after Release = true")
	}
	if err := tex.Upload(dev); err == nil {
		t.Errorf("Upload() after Release without image succeeded")
	}
}

func TestKindString(t *testing.T) {
	if got := Specular.String(); got != "specular" {
		t.Errorf("Specular.String() = %q", got)
	}
}
