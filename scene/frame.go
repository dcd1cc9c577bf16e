// SPDX-License-Identifier: GPL-2.0-or-later

package scene

// Controls is the input state sampled once per frame.
type Controls struct {
	Forward, Back bool
	Left, Right   bool
	Up, Down      bool
	// Look is true while the look button is held.
	Look           bool
	MouseX, MouseY float32
}

// Frame is passed to every Update.
type Frame struct {
	// Delta is the frame time in seconds.
	Delta    float32
	Controls Controls
}
