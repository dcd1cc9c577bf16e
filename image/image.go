// SPDX-License-Identifier: GPL-2.0-or-later

// Package image writes framebuffer captures.
package image

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const maxShots = 10000

// Write expects RGBA 8bit data. Rows start at the bottom when flip is set,
// as glReadPixels returns them.
func Write(name string, data []byte, width, height int, flip bool) error {
	if len(data) < width*height*4 {
		return fmt.Errorf("Tried to write an image but there is not enough data")
	}
	r := image.Rect(0, 0, width, height)
	img := &image.NRGBA{
		Pix:    data,
		Stride: 4 * width,
		Rect:   r,
	}
	if flip {
		img = flipped(img)
	}

	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "screenshot")
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return errors.Wrapf(err, "encode %s", name)
	}
	return nil
}

func flipped(img *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Rect)
	h := img.Rect.Dy()
	for y := 0; y < h; y++ {
		copy(out.Pix[y*out.Stride:(y+1)*out.Stride], img.Pix[(h-1-y)*img.Stride:(h-y)*img.Stride])
	}
	return out
}

// NextName is the first unused prefixNNNN.png in dir.
func NextName(dir, prefix string) (string, error) {
	for i := 0; i < maxShots; i++ {
		n := filepath.Join(dir, fmt.Sprintf("%s%04d.png", prefix, i))
		if _, err := os.Stat(n); os.IsNotExist(err) {
			return n, nil
		}
	}
	return "", errors.Errorf("Couldn't create a screenshot file in %s", dir)
}
