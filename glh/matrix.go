// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// SetMat4 uploads m to the uniform at id. mgl32 is column major like GL.
func SetMat4(id int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(id, 1, false, &m[0])
}

// NormalMatrix is the inverse transpose of the upper 3x3 of m. Singular
// matrices yield the plain upper 3x3.
func NormalMatrix(m mgl32.Mat4) mgl32.Mat3 {
	u := m.Mat3()
	if u.Det() == 0 {
		return u
	}
	return u.Inv().Transpose()
}

// Sprint formats m row by row.
func Sprint(m mgl32.Mat4) string {
	return fmt.Sprintf("Matrx:\n%v %v %v %v\n%v %v %v %v\n%v %v %v %v\n%v %v %v %v\n",
		m.At(0, 0), m.At(0, 1), m.At(0, 2), m.At(0, 3),
		m.At(1, 0), m.At(1, 1), m.At(1, 2), m.At(1, 3),
		m.At(2, 0), m.At(2, 1), m.At(2, 2), m.At(2, 3),
		m.At(3, 0), m.At(3, 1), m.At(3, 2), m.At(3, 3),
	)
}
