// SPDX-License-Identifier: GPL-2.0-or-later

// Package window owns the sdl window and its GL context.
package window

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"

	"skelview/conlog"
)

const title = "skelview"

var (
	window  *sdl.Window
	context sdl.GLContext
)

func Get() *sdl.Window {
	return window
}

func Size() (int, int) {
	w, h := window.GetSize()
	return int(w), int(h)
}

// Aspect is width over height, 1 for a degenerate window.
func Aspect() float32 {
	w, h := Size()
	if w <= 0 || h <= 0 {
		return 1
	}
	return float32(w) / float32(h)
}

func Shutdown() {
	if context != nil {
		sdl.GLDeleteContext(context)
		context = nil
	}
	if window != nil {
		window.Destroy()
		window = nil
	}
}

func SetTitle(t string) {
	if t == "" {
		window.SetTitle(title)
		return
	}
	window.SetTitle(title + " - " + t)
}

func Fullscreen() bool {
	return window.GetFlags()&sdl.WINDOW_FULLSCREEN != 0
}

func VSync() bool {
	i, _ := sdl.GLGetSwapInterval()
	return i == 1
}

func InputFocus() bool {
	return window.GetFlags()&(sdl.WINDOW_MOUSE_FOCUS|sdl.WINDOW_INPUT_FOCUS) != 0
}

func Minimized() bool {
	return window.GetFlags()&sdl.WINDOW_SHOWN == 0
}

func createWindow(width, height int32) (*sdl.Window, error) {
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_HIDDEN | sdl.WINDOW_RESIZABLE)
	w, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, width, height, flags)
	if err == nil {
		return w, nil
	}
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 0)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 0)
	w, err = sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, width, height, flags)
	if err == nil {
		return w, nil
	}
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 16)
	w, err = sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, width, height, flags)
	return w, errors.Wrap(err, "create window")
}

// SetMode creates the window on first use and applies size, fullscreen and
// vsync. The first call also creates the GL 4.6 core context.
func SetMode(width, height int32, fullscreen, vsync bool) error {
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 6)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 4)

	if window == nil {
		w, err := createWindow(width, height)
		if err != nil {
			return err
		}
		window = w
	}
	if Fullscreen() {
		if err := window.SetFullscreen(0); err != nil {
			return errors.Wrap(err, "leave fullscreen")
		}
	}
	window.SetSize(width, height)
	window.SetPosition(sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED)
	if fullscreen {
		if err := window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP); err != nil {
			return errors.Wrap(err, "set fullscreen")
		}
	}

	window.Show()

	if context == nil {
		var err error
		context, err = window.GLCreateContext()
		if err != nil {
			return errors.Wrap(err, "create GL context")
		}
		if err := gl.Init(); err != nil {
			return errors.Wrap(err, "init gl")
		}
		gl.Enable(gl.DEBUG_OUTPUT)
		gl.DebugMessageCallback(debugCb, unsafe.Pointer(nil))
	}
	SetVSync(vsync)
	return nil
}

func SetVSync(on bool) {
	interval := 0
	if on {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		conlog.Printf("vsync: %v\n", err)
	}
}

func debugCb(
	source uint32,
	gltype uint32,
	id uint32,
	severity uint32,
	length int32,
	message string,
	userParam unsafe.Pointer) {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		conlog.Printf("[GL_DEBUG] source %d type %d id %d: %s\n", source, gltype, id, message)
	case gl.DEBUG_SEVERITY_NOTIFICATION:
	default:
		conlog.Debugf("[GL_DEBUG] source %d type %d id %d severity %d: %s\n", source, gltype, id, severity, message)
	}
}

func EndRendering() {
	window.GLSwap()
}
