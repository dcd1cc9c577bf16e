// SPDX-License-Identifier: GPL-2.0-or-later

package image

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFlip(t *testing.T) {
	// 1x2, bottom row red, top row blue as read from GL
	data := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	name := filepath.Join(t.TempDir(), "shot.png")
	if err := Write(name, data, 1, 2, true); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b != 0xffff {
		t.Errorf("top pixel r=%x b=%x, want blue", r, b)
	}
	if r, _, _, _ := img.At(0, 1).RGBA(); r != 0xffff {
		t.Errorf("bottom pixel r=%x, want red", r)
	}
}

func TestWriteShortData(t *testing.T) {
	if err := Write(filepath.Join(t.TempDir(), "x.png"), make([]byte, 4), 2, 2, false); err == nil {
		t.Errorf("Write accepted too little data")
	}
}

func TestNextName(t *testing.T) {
	dir := t.TempDir()
	n, err := NextName(dir, "skelview")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "skelview0000.png"); n != want {
		t.Errorf("NextName = %q, want %q", n, want)
	}
	if err := os.WriteFile(n, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	n, _ = NextName(dir, "skelview")
	if want := filepath.Join(dir, "skelview0001.png"); n != want {
		t.Errorf("NextName = %q, want %q", n, want)
	}
}
