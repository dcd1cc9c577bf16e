// SPDX-License-Identifier: GPL-2.0-or-later

package viewer

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/mainthread/v2"
	"github.com/veandco/go-sdl2/sdl"

	cmdl "skelview/commandline"
	"skelview/config"
	"skelview/conlog"
	"skelview/cvars"
	"skelview/gametime"
	"skelview/glrender"
	"skelview/history"
	"skelview/image"
	"skelview/window"
)

const autoexec = "autoexec.cfg"

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

type app struct {
	v       *Viewer
	dev     *glrender.Device
	time    *gametime.GameTime
	cfg     *config.File
	cfgPath string
	watcher *config.Watcher
	histDir string
	title   string
}

// Run opens the window and draws until quit. It must be passed to
// mainthread.Run; every sdl and GL call happens on the main thread.
func Run() {
	var a *app
	if err := mainthread.CallErr(func() error {
		var err error
		a, err = start()
		return err
	}); err != nil {
		log.Fatalf("skelview: %v", err)
	}
	for !a.v.Quit() {
		mainthread.Call(a.frame)
	}
	mainthread.Call(a.stop)
}

func start() (*app, error) {
	v := sdl.Version{}
	sdl.GetVersion(&v)
	conlog.Printf("Found SDL version %d.%d.%d\n", v.Major, v.Minor, v.Patch)
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, err
	}
	if dev, _ := cmdl.Developer(); dev {
		cvars.Developer.SetByString("1")
	}

	a := &app{time: gametime.New(), cfgPath: cmdl.ConfigFile()}
	if a.cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		a.cfgPath = p
	}
	a.histDir = filepath.Dir(a.cfgPath)
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		conlog.Printf("%v\n", err)
		cfg = &config.File{}
	}
	a.cfg = cfg
	// the file may set the video mode, command line flags win
	cfg.Apply()
	if w := cmdl.Width(); w > 0 {
		cvars.VideoWidth.SetValue(float32(w))
	}
	if h := cmdl.Height(); h > 0 {
		cvars.VideoHeight.SetValue(float32(h))
	}

	if err := window.SetMode(int32(cvars.VideoWidth.Int()), int32(cvars.VideoHeight.Int()),
		cmdl.Fullscreen(), cvars.VideoVSync.Bool()); err != nil {
		return nil, err
	}
	sdl.EventState(sdl.DROPFILE, sdl.ENABLE)

	a.dev = glrender.NewDevice()
	sh, err := glrender.NewDefaultShader()
	if err != nil {
		return nil, err
	}
	if a.v, err = New(a.dev, sh); err != nil {
		return nil, err
	}
	a.v.ApplyConfig(cfg)

	if err := os.MkdirAll(a.histDir, 0o755); err != nil {
		conlog.Printf("%v\n", err)
	}
	if a.watcher, err = config.Watch(a.cfgPath); err != nil {
		conlog.Printf("%v\n", err)
	}
	if err := a.v.History().Load(filepath.Join(a.histDir, history.Filename)); err != nil {
		conlog.Printf("%v\n", err)
	}
	if script := filepath.Join(a.histDir, autoexec); fileExists(script) {
		if err := a.v.ExecFile(script); err != nil {
			conlog.Printf("%v\n", err)
		}
	}
	for _, f := range cmdl.Files() {
		if !filepath.IsAbs(f) {
			f = filepath.Join(cmdl.BaseDirectory(), f)
		}
		if err := a.v.Open(f); err != nil {
			conlog.Printf("%v\n", err)
		}
	}
	conlog.Printf("\n========= skelview initialized =========\n\n")
	return a, nil
}

func (a *app) frame() {
	a.pumpEvents()
	if !window.InputFocus() {
		time.Sleep(16 * time.Millisecond)
	}
	if window.Minimized() {
		time.Sleep(32 * time.Millisecond)
	}
	if a.watcher != nil && a.watcher.Changed() {
		a.reloadConfig()
	}
	window.SetVSync(cvars.VideoVSync.Bool())

	a.time.UpdateTime()
	w, h := window.Size()
	a.dev.Viewport(w, h)
	a.dev.Clear(0.1, 0.1, 0.1)
	a.v.Frame(float32(a.time.FrameTime()), window.Aspect())

	if a.v.TakeScreenshot() {
		a.screenshot(w, h)
	}
	if t := a.v.Title(); t != a.title {
		a.title = t
		window.SetTitle(t)
	}
	window.EndRendering()
}

func (a *app) screenshot(w, h int) {
	name, err := image.NextName(a.histDir, "skelview")
	if err == nil {
		err = image.Write(name, a.dev.ReadPixels(w, h), w, h, true)
	}
	if err != nil {
		conlog.Printf("%v\n", err)
		return
	}
	conlog.Printf("Wrote %s\n", name)
}

func (a *app) reloadConfig() {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		conlog.Printf("%v\n", err)
		return
	}
	a.cfg = cfg
	a.v.ApplyConfig(cfg)
	conlog.Printf("reloaded %s\n", a.cfgPath)
}

func (a *app) stop() {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if err := a.v.History().Save(filepath.Join(a.histDir, history.Filename)); err != nil {
		conlog.Printf("%v\n", err)
	}
	if err := config.Save(a.cfgPath, a.cfg); err != nil {
		conlog.Printf("%v\n", err)
	}
	a.v.Close()
	window.Shutdown()
	sdl.Quit()
}

func (a *app) pumpEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_FOCUS_LOST {
				a.v.ReleaseKeys()
			}
		case *sdl.DropEvent:
			if e.Type == sdl.DROPFILE {
				if err := a.v.Open(e.File); err != nil {
					conlog.Printf("%v\n", err)
				}
			}
		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				break
			}
			name := strings.ToLower(sdl.GetKeyName(e.Keysym.Sym))
			a.v.Key(name, int(e.Keysym.Sym), e.State == sdl.PRESSED)
		case *sdl.MouseButtonEvent:
			// keep mouse numbers clear of the keyboard range
			num := 1<<20 | int(e.Button)
			a.v.Key(fmt.Sprintf("mouse%d", e.Button), num, e.State == sdl.PRESSED)
		case *sdl.MouseMotionEvent:
			a.v.Mouse(float32(e.X), float32(e.Y))
		case *sdl.QuitEvent:
			a.v.quit = true
		}
	}
}
