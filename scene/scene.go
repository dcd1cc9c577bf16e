// SPDX-License-Identifier: GPL-2.0-or-later

package scene

import (
	"skelview/conlog"
)

// Scene owns its objects by unique name. Root objects are updated and drawn
// in insertion order, each followed by its active descendants.
type Scene struct {
	byName map[string]Object
	roots  []Object
	camera *Camera
	lights *LightSet
}

func New() *Scene {
	s := &Scene{
		byName: make(map[string]Object),
	}
	s.lights = NewLightSet(s)
	return s
}

// Add inserts o and its subtree. It is a no-op returning false if o or any
// descendant name is already taken.
func (s *Scene) Add(o Object) bool {
	if o == nil {
		return false
	}
	if !s.attach(o) {
		return false
	}
	if p := o.Parent(); p != nil {
		p.node().removeChild(o)
	}
	s.roots = append(s.roots, o)
	conlog.Printf("Added <%v>%s\n", o.Kind(), o.Name())
	return true
}

// attach registers the subtree of o and wakes it up.
func (s *Scene) attach(o Object) bool {
	dup := ""
	Walk(o, func(c Object) bool {
		if _, ok := s.byName[c.Name()]; ok {
			dup = c.Name()
			return false
		}
		return true
	})
	if dup != "" {
		conlog.Printf("scene: %s already exists, ignoring %s\n", dup, o.Name())
		return false
	}
	Walk(o, func(c Object) bool {
		s.byName[c.Name()] = c
		c.node().scene = s
		if l, ok := c.(*Light); ok {
			s.lights.register(l)
		}
		c.Awake()
		return true
	})
	return true
}

// Get looks up any object of the scene by name.
func (s *Scene) Get(name string) Object {
	return s.byName[name]
}

// Model is Get restricted to models.
func (s *Scene) Model(name string) *Model {
	m, _ := s.byName[name].(*Model)
	return m
}

// Remove deletes the named object after its children. Unknown names are
// ignored.
func (s *Scene) Remove(name string) bool {
	o, ok := s.byName[name]
	if !ok {
		return false
	}
	for _, c := range append([]Object(nil), o.Children()...) {
		s.Remove(c.Name())
	}
	delete(s.byName, name)
	o.node().scene = nil
	if l, ok := o.(*Light); ok {
		s.lights.unregister(l)
	}
	if p := o.Parent(); p != nil {
		p.node().removeChild(o)
	} else {
		for i, r := range s.roots {
			if r == o {
				s.roots = append(s.roots[:i], s.roots[i+1:]...)
				break
			}
		}
	}
	if c, ok := o.(*Camera); ok && c == s.camera {
		s.camera = nil
	}
	o.Destroy()
	conlog.Printf("Removed <%v>%s\n", o.Kind(), name)
	return true
}

// Objects returns the root objects in insertion order.
func (s *Scene) Objects() []Object {
	return s.roots
}

func (s *Scene) Len() int {
	return len(s.byName)
}

// Update runs Update on every active object. Inactive subtrees are skipped.
func (s *Scene) Update(f *Frame) {
	for _, o := range s.roots {
		eachActive(o, func(c Object) { c.Update(f) })
	}
}

// Draw runs Draw on every active object. Inactive subtrees are skipped.
func (s *Scene) Draw(sub Submitter) {
	for _, o := range s.roots {
		eachActive(o, func(c Object) { c.Draw(sub) })
	}
}

func eachActive(o Object, fn func(Object)) {
	if !o.Active() {
		return
	}
	fn(o)
	for _, c := range o.Children() {
		eachActive(c, fn)
	}
}

func (s *Scene) SetMainCamera(c *Camera) {
	s.camera = c
}

func (s *Scene) MainCamera() *Camera {
	return s.camera
}

func (s *Scene) Lights() *LightSet {
	return s.lights
}

// Clear removes every object.
func (s *Scene) Clear() {
	for len(s.roots) > 0 {
		s.Remove(s.roots[0].Name())
	}
}
