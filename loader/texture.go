// SPDX-License-Identifier: GPL-2.0-or-later

package loader

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"skelview/conlog"
	"skelview/texture"
)

// texRef names a texture image either on disk or embedded in the model.
type texRef struct {
	kind texture.Kind
	name string
	path string
	data []byte
}

// load decodes the image. Missing or broken images are logged and skipped.
func (t texRef) load() *texture.Texture {
	var r io.Reader
	if t.data != nil {
		r = bytes.NewReader(t.data)
	} else {
		f, err := os.Open(t.path)
		if err != nil {
			conlog.Printf("loader: %v, texture skipped\n", err)
			return nil
		}
		defer f.Close()
		r = f
	}
	img, err := decodeImage(t.name, r)
	if err != nil {
		conlog.Printf("loader: texture %s: %v, skipped\n", t.name, err)
		return nil
	}
	return texture.New(t.kind, t.name, img)
}

// decodeImage dispatches on the registered image formats. TGA has no magic
// number so it goes by extension.
func decodeImage(name string, r io.Reader) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return tga.Decode(r)
	}
	img, _, err := image.Decode(r)
	return img, err
}
