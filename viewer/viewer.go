// SPDX-License-Identifier: GPL-2.0-or-later

// Package viewer drives the scene, cache and render engine once per frame
// and owns the console commands of the application.
package viewer

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"skelview/alias"
	"skelview/cbuf"
	"skelview/cmd"
	"skelview/config"
	"skelview/conlog"
	"skelview/cvar"
	"skelview/cvars"
	"skelview/gpu"
	"skelview/history"
	"skelview/input"
	"skelview/loader"
	"skelview/material"
	"skelview/meshcache"
	"skelview/render"
	"skelview/scene"
)

var (
	modelColor = mgl32.Vec4{2.0 / 255, 163.0 / 255, 218.0 / 255, 1}
	nodeColor  = mgl32.Vec4{218.0 / 255, 169.0 / 255, 2.0 / 255, 1}
	linkColor  = mgl32.Vec4{113.0 / 255, 121.0 / 255, 224.0 / 255, 1}
)

const cameraName = "main camera"

// Viewer holds everything one window shows.
type Viewer struct {
	scene    *scene.Scene
	cache    *meshcache.Cache
	engine   *render.Engine
	shader   gpu.Shader
	loader   *loader.Loader
	commands *cmd.Commands
	aliases  *alias.Aliases
	buf      cbuf.CommandBuffer
	bindings input.Bindings
	history  history.History

	modelMat, nodeMat, linkMat *material.Material
	baseModelColor             mgl32.Vec4

	// models are the opened model names, oldest first.
	models  []string
	current int
	bone    int

	mouseX, mouseY float32
	quit           bool
	screenshot     bool
}

// New builds a viewer drawing through dev with sh. The scene starts with a
// camera and two lights.
func New(dev gpu.Device, sh gpu.Shader) (*Viewer, error) {
	v := &Viewer{
		scene:          scene.New(),
		cache:          meshcache.New(),
		engine:         render.New(dev),
		shader:         sh,
		loader:         loader.New(),
		commands:       cmd.New(),
		aliases:        alias.New(),
		bindings:       input.DefaultBindings(),
		modelMat:       material.NewTransparent("model", sh),
		nodeMat:        material.New("bone node", sh),
		linkMat:        material.New("bone link", sh),
		baseModelColor: modelColor,
		current:        -1,
		bone:           -1,
	}
	v.nodeMat.SetUniform("color", nodeColor)
	v.linkMat.SetUniform("color", linkColor)
	v.syncModelColor()

	cam := scene.NewCamera(cameraName)
	cam.Transform().SetPosition(mgl32.Vec3{0, 0, 2})
	v.scene.Add(cam)
	v.scene.SetMainCamera(cam)

	sun := scene.NewLight("sun", scene.Directional)
	sun.Direction = mgl32.Vec3{-0.3, -1, -0.5}
	v.scene.Add(sun)
	fill := scene.NewLight("fill", scene.Point)
	fill.Transform().SetPosition(mgl32.Vec3{2, 2, 2})
	fill.Intensity = 0.5
	v.scene.Add(fill)

	if err := v.addCommands(); err != nil {
		return nil, err
	}
	if err := v.aliases.Register(v.commands); err != nil {
		return nil, err
	}
	v.buf.SetCommandExecutors([]cbuf.Efunc{
		cbuf.Commands(v.commands),
		v.aliases.Execute(),
		func(_ *cbuf.CommandBuffer, a cmd.Arguments) (bool, error) { return cmd.Execute(a) },
		func(_ *cbuf.CommandBuffer, a cmd.Arguments) (bool, error) { return cvar.Execute(a) },
	})
	return v, nil
}

func (v *Viewer) Scene() *scene.Scene       { return v.scene }
func (v *Viewer) Cache() *meshcache.Cache   { return v.cache }
func (v *Viewer) Engine() *render.Engine    { return v.engine }
func (v *Viewer) History() *history.History { return &v.history }
func (v *Viewer) Quit() bool                { return v.quit }

// TakeScreenshot reports a pending screenshot request and clears it.
func (v *Viewer) TakeScreenshot() bool {
	s := v.screenshot
	v.screenshot = false
	return s
}

// Current is the name of the shown model, "" if there is none.
func (v *Viewer) Current() string {
	if v.current < 0 || v.current >= len(v.models) {
		return ""
	}
	return v.models[v.current]
}

func (v *Viewer) currentModel() *scene.Model {
	return v.scene.Model(v.Current())
}

// ApplyConfig sets cvars and colors from a config file.
func (v *Viewer) ApplyConfig(f *config.File) {
	f.Apply()
	v.baseModelColor = f.Color("model", modelColor)
	v.nodeMat.SetUniform("color", f.Color("node", nodeColor))
	v.linkMat.SetUniform("color", f.Color("link", linkColor))
	v.syncModelColor()
}

func (v *Viewer) syncModelColor() {
	c := v.baseModelColor
	c[3] = cvars.ModelAlpha.Value()
	v.modelMat.SetUniform("color", c)
}

// Open loads a model file and makes it the only active model. A file that
// is already open is selected instead.
func (v *Viewer) Open(path string) error {
	if !loader.Supported(path) {
		return errors.Errorf("%s: unsupported file type", path)
	}
	dir, file := filepath.Split(path)
	if v.scene.Model(file) != nil {
		return v.Select(file)
	}
	m := scene.NewModel(file)
	m.Dir, m.File = dir, file
	m.Material = v.modelMat
	m.Normalize = cvars.ModelNormalize.Bool()
	if err := m.Load(v.loader, v.cache); err != nil {
		return err
	}
	if !v.scene.Add(m) {
		m.Destroy()
		return errors.Errorf("%s: could not add model", file)
	}
	style := scene.BoneStyle{
		NodeSize:  cvars.BoneNodeSize.Value(),
		LinkScale: cvars.BoneLinkScale.Value(),
	}
	if err := m.AddBoneNodes(v.nodeMat, v.linkMat, v.cache, style); err != nil {
		conlog.Printf("%s: %v\n", file, err)
	}
	if old := v.currentModel(); old != nil {
		old.SetActive(false)
	}
	v.models = append(v.models, file)
	v.current = len(v.models) - 1
	v.bone = -1
	v.history.Add(path)
	conlog.Printf("%s", m.Info())
	m.PrintBoneInfo()
	return nil
}

// Select shows the named model and hides the current one.
func (v *Viewer) Select(name string) error {
	i := slices.Index(v.models, name)
	if i < 0 {
		return errors.Errorf("no model %q", name)
	}
	if old := v.currentModel(); old != nil {
		old.ClearBoneWeights()
		old.SetActive(false)
	}
	v.current = i
	v.bone = -1
	v.currentModel().SetActive(true)
	return nil
}

// RemoveCurrent deletes the shown model and shows the newest remaining one.
func (v *Viewer) RemoveCurrent() bool {
	name := v.Current()
	if name == "" {
		return false
	}
	v.scene.Remove(name)
	v.models = slices.Delete(v.models, v.current, v.current+1)
	v.current = len(v.models) - 1
	v.bone = -1
	if m := v.currentModel(); m != nil {
		m.SetActive(true)
	}
	return true
}

// NextModel cycles through the open models.
func (v *Viewer) NextModel() {
	if len(v.models) < 2 {
		return
	}
	v.Select(v.models[(v.current+1)%len(v.models)])
}

// StepBone moves the weight display to the next or previous bone of the
// current model. Stepping past either end shows no bone.
func (v *Viewer) StepBone(step int) string {
	m := v.currentModel()
	if m == nil || len(m.Bones()) == 0 {
		return ""
	}
	n := len(m.Bones()) + 1
	// index 0 is "no bone"
	i := ((v.bone+1+step)%n + n) % n
	v.bone = i - 1
	if v.bone < 0 {
		m.ClearBoneWeights()
		return ""
	}
	b := m.Bones()[v.bone].Name
	meshes := m.ShowBoneWeights(b)
	conlog.Printf("bone %s influences %d meshes\n", b, meshes)
	return b
}

// Recent opens the history entry step positions away from the last one.
func (v *Viewer) Recent(step int) error {
	for ; step < 0; step++ {
		v.history.Up()
	}
	for ; step > 0; step-- {
		v.history.Down()
	}
	p := v.history.String()
	if p == "" {
		return nil
	}
	return v.Open(p)
}

// Title is the window title suffix.
func (v *Viewer) Title() string {
	name := v.Current()
	if name == "" || v.bone < 0 {
		return name
	}
	return fmt.Sprintf("%s [%s]", name, v.currentModel().Bones()[v.bone].Name)
}

// Exec runs a console line now, ahead of anything queued.
func (v *Viewer) Exec(line string) {
	v.buf.InsertText(line)
	v.buf.Execute()
}

// ExecFile queues the lines of a script.
func (v *Viewer) ExecFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "exec")
	}
	v.buf.InsertText(string(data))
	return nil
}

// Key queues the bound line of a key event. It runs with the next frame.
func (v *Viewer) Key(name string, keynum int, down bool) {
	if line, ok := v.bindings.Line(name, keynum, down); ok {
		v.buf.AddText(line + "\n")
	}
}

func (v *Viewer) Mouse(x, y float32) {
	v.mouseX, v.mouseY = x, y
}

// ReleaseKeys lifts every held button, used when focus is lost.
func (v *Viewer) ReleaseKeys() {
	for _, k := range v.bindings.Keys() {
		v.Key(k, -1, false)
	}
}

func (v *Viewer) syncCamera() {
	cam := v.scene.MainCamera()
	if cam == nil {
		return
	}
	cam.Fov = cvars.CamFov.Value()
	cam.Near = cvars.CamNear.Value()
	cam.Far = cvars.CamFar.Value()
	cam.Speed = cvars.CamSpeed.Value()
	cam.Sensitivity = cvars.CamSensitivity.Value()
}

// Frame runs one update, draw and flush. dt is in seconds.
func (v *Viewer) Frame(dt, aspect float32) {
	v.buf.Execute()
	v.syncCamera()
	v.syncModelColor()
	v.scene.Update(&scene.Frame{
		Delta:    dt,
		Controls: input.Controls(v.mouseX, v.mouseY),
	})

	// uniforms live per program
	for _, variant := range []gpu.Variant{gpu.Basic, gpu.Instanced} {
		v.shader.Use(variant)
		v.scene.Lights().Apply(v.shader)
	}

	view, proj := mgl32.Ident4(), mgl32.Ident4()
	if cam := v.scene.MainCamera(); cam != nil {
		view, proj = cam.View(), cam.Projection(aspect)
	}
	v.scene.Draw(v.engine)
	v.engine.Flush(view, proj)
	v.cache.CleanupUnused(cvars.MeshKeepFrames.Int())
}

// Close releases the scene before the cache so every mesh reference is
// dropped before the GPU buffers go.
func (v *Viewer) Close() {
	v.scene.Clear()
	v.models = nil
	v.current = -1
	v.cache.Clear()
}
