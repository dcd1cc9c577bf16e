// SPDX-License-Identifier: GPL-2.0-or-later

package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"skelview/conlog"
	"skelview/gpu"
)

// MaxLights is the size of the light array in the shaders.
const MaxLights = 32

type LightType int32

const (
	Directional LightType = iota
	Point
	Spot
)

type Light struct {
	Node
	Type      LightType
	Color     mgl32.Vec3
	Intensity float32
	// Direction is used by directional and spot lights.
	Direction mgl32.Vec3
	// Range is used by point and spot lights.
	Range float32
	// InnerCone and OuterCone are spot cone half angles in degrees.
	InnerCone, OuterCone float32

	handle LightHandle
}

func NewLight(name string, t LightType) *Light {
	l := &Light{
		Type:      t,
		Color:     mgl32.Vec3{1, 1, 1},
		Intensity: 1,
		Direction: mgl32.Vec3{0, -1, 0},
		Range:     10,
		InnerCone: 25,
		OuterCone: 30,
	}
	l.init(l, KindLight, name)
	return l
}

func (l *Light) Awake() {
	if l.Direction.Len() > 0 {
		l.Direction = l.Direction.Normalize()
	}
}

// Handle is the registration of l in its scene's light set.
func (l *Light) Handle() LightHandle {
	return l.handle
}

// LightHandle names a light slot of one LightSet. A handle goes stale when
// the light is removed, even if the slot is reused later.
type LightHandle struct {
	owner *LightSet
	index int
	gen   uint32
}

type lightSlot struct {
	light *Light
	gen   uint32
}

// LightSet tracks the lights of a scene without owning them.
type LightSet struct {
	scene *Scene
	slots []lightSlot
	free  []int
}

func NewLightSet(s *Scene) *LightSet {
	return &LightSet{scene: s}
}

func (ls *LightSet) register(l *Light) LightHandle {
	var i int
	if n := len(ls.free); n > 0 {
		i = ls.free[n-1]
		ls.free = ls.free[:n-1]
	} else {
		ls.slots = append(ls.slots, lightSlot{})
		i = len(ls.slots) - 1
	}
	ls.slots[i].light = l
	l.handle = LightHandle{owner: ls, index: i, gen: ls.slots[i].gen}
	if ls.Len() > MaxLights {
		conlog.Printf("scene: %d lights, only %d are used\n", ls.Len(), MaxLights)
	}
	return l.handle
}

func (ls *LightSet) unregister(l *Light) {
	h := l.handle
	if _, ok := ls.Get(h); !ok {
		return
	}
	ls.slots[h.index].light = nil
	ls.slots[h.index].gen++
	ls.free = append(ls.free, h.index)
	l.handle = LightHandle{}
}

// Get resolves h. It fails for handles of other sets and removed lights.
func (ls *LightSet) Get(h LightHandle) (*Light, bool) {
	if h.owner != ls || h.index < 0 || h.index >= len(ls.slots) {
		return nil, false
	}
	s := ls.slots[h.index]
	if s.light == nil || s.gen != h.gen {
		return nil, false
	}
	return s.light, true
}

func (ls *LightSet) Len() int {
	return len(ls.slots) - len(ls.free)
}

// GPULight is the shader side layout of one light.
type GPULight struct {
	Type      int32
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
	Range     float32
	InnerCone float32
	OuterCone float32
}

// Pack collects up to MaxLights active lights in slot order.
func (ls *LightSet) Pack() []GPULight {
	var out []GPULight
	for _, s := range ls.slots {
		l := s.light
		if l == nil || !l.Active() {
			continue
		}
		if len(out) == MaxLights {
			break
		}
		out = append(out, GPULight{
			Type:      int32(l.Type),
			Position:  l.Transform().Position(),
			Direction: l.Direction,
			Color:     l.Color,
			Intensity: l.Intensity,
			Range:     l.Range,
			InnerCone: l.InnerCone,
			OuterCone: l.OuterCone,
		})
	}
	return out
}

// Apply uploads the packed lights as the lights[] uniform array.
func (ls *LightSet) Apply(sh gpu.Shader) {
	lights := ls.Pack()
	sh.SetInt("lightCount", int32(len(lights)))
	for i, g := range lights {
		p := fmt.Sprintf("lights[%d].", i)
		sh.SetInt(p+"type", g.Type)
		sh.SetVec3(p+"position", g.Position)
		sh.SetVec3(p+"direction", g.Direction)
		sh.SetVec3(p+"color", g.Color)
		sh.SetFloat(p+"intensity", g.Intensity)
		sh.SetFloat(p+"range", g.Range)
		sh.SetFloat(p+"innerCone", g.InnerCone)
		sh.SetFloat(p+"outerCone", g.OuterCone)
	}
}
