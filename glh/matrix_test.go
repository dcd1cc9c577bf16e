// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	e = 1.e-6
)

func TestNormalMatrixUniformScale(t *testing.T) {
	m := mgl32.Translate3D(4, 5, 6).Mul4(mgl32.Scale3D(2, 2, 2))
	n := NormalMatrix(m)
	want := mgl32.Ident3().Mul(0.5)
	if !n.ApproxEqualThreshold(want, e) {
		t.Errorf("NormalMatrix broken: %v", n)
	}
}

func TestNormalMatrixKeepsNormalsPerpendicular(t *testing.T) {
	m := mgl32.Scale3D(1, 4, 1)
	// surface of the plane x+y=0 in model space
	tangent := mgl32.Vec3{1, -1, 0}
	normal := mgl32.Vec3{1, 1, 0}
	wt := m.Mat3().Mul3x1(tangent)
	wn := NormalMatrix(m).Mul3x1(normal)
	if d := wt.Dot(wn); d > e || d < -e {
		t.Errorf("normal not perpendicular: %v . %v = %v", wt, wn, d)
	}
}

func TestNormalMatrixSingular(t *testing.T) {
	m := mgl32.Scale3D(1, 0, 1)
	if n := NormalMatrix(m); n != m.Mat3() {
		t.Errorf("singular matrix changed: %v", n)
	}
}

func TestSprint(t *testing.T) {
	s := Sprint(mgl32.Translate3D(2, 3, 5))
	if !strings.Contains(s, "1 0 0 2\n0 1 0 3\n0 0 1 5\n0 0 0 1\n") {
		t.Errorf("Sprint broken: %q", s)
	}
}

func TestToRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(2, 2, 4, 3))
	src.Set(2, 2, color.NRGBA{255, 0, 0, 255})
	r := ToRGBA(src)
	if r.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds %v", r.Bounds())
	}
	if c := r.RGBAAt(0, 0); c != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel %v", c)
	}
	if again := ToRGBA(r); again != r {
		t.Errorf("packed RGBA copied")
	}
}
