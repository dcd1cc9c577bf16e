// SPDX-License-Identifier: GPL-2.0-or-later

// Package scene holds the live scene objects of the viewer and drives their
// per frame update and draw.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"skelview/material"
	"skelview/mesh"
	"skelview/transform"
)

// Kind is the closed set of scene object types.
type Kind int

const (
	KindNode Kind = iota
	KindCamera
	KindModel
	KindLight
)

var kindNames = map[Kind]string{
	KindNode:   "Node",
	KindCamera: "Camera",
	KindModel:  "Model",
	KindLight:  "Light",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a type tag like "Model" back to its Kind.
func ParseKind(tag string) (Kind, bool) {
	for k, n := range kindNames {
		if n == tag {
			return k, true
		}
	}
	return 0, false
}

// Submitter accepts draw submissions, usually a *render.Engine.
type Submitter interface {
	Submit(m *mesh.Mesh, mat *material.Material, world mgl32.Mat4) bool
}

// Object is implemented by *Node, *Camera, *Model and *Light only.
type Object interface {
	Name() string
	Kind() Kind
	Transform() *transform.Transform
	Active() bool
	// SetActive changes the flag of the object and its whole subtree.
	SetActive(bool)
	Parent() Object
	Children() []Object
	// AddChild makes the object the owner of c. If the object belongs to a
	// scene, c is registered there too and the call fails on a name clash.
	AddChild(c Object) bool

	Awake()
	Update(f *Frame)
	Draw(s Submitter)
	// Destroy frees what the object holds. The scene calls it on removal.
	Destroy()

	node() *Node
}

// Node is the plain scene object. The other kinds embed it.
type Node struct {
	name      string
	kind      Kind
	transform *transform.Transform
	active    bool
	parent    Object
	children  []Object
	self      Object
	scene     *Scene
}

func (n *Node) init(self Object, kind Kind, name string) {
	n.name = name
	n.kind = kind
	n.transform = transform.New()
	n.active = true
	n.self = self
}

// NewNode creates an empty grouping node.
func NewNode(name string) *Node {
	n := &Node{}
	n.init(n, KindNode, name)
	return n
}

func (n *Node) node() *Node                     { return n }
func (n *Node) Name() string                    { return n.name }
func (n *Node) Kind() Kind                      { return n.kind }
func (n *Node) Transform() *transform.Transform { return n.transform }
func (n *Node) Active() bool                    { return n.active }
func (n *Node) Parent() Object                  { return n.parent }
func (n *Node) Children() []Object              { return n.children }

func (n *Node) SetActive(a bool) {
	n.active = a
	for _, c := range n.children {
		c.SetActive(a)
	}
}

// AddChild makes n the exclusive owner of c.
func (n *Node) AddChild(c Object) bool {
	if n.scene != nil && !n.scene.attach(c) {
		return false
	}
	cn := c.node()
	if cn.parent != nil {
		cn.parent.node().removeChild(c)
	}
	cn.parent = n.self
	n.children = append(n.children, c)
	return true
}

// Scene is the scene n was added to, or nil.
func (n *Node) Scene() *Scene {
	return n.scene
}

func (n *Node) removeChild(c Object) {
	for i, o := range n.children {
		if o == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.node().parent = nil
			return
		}
	}
}

func (n *Node) Awake()           {}
func (n *Node) Update(f *Frame)  {}
func (n *Node) Draw(s Submitter) {}

func (n *Node) Destroy() {
	for _, c := range n.children {
		c.Destroy()
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("<%v>%s", n.kind, n.name)
}

// Walk calls fn on o and its descendants depth first until fn returns false.
func Walk(o Object, fn func(Object) bool) bool {
	if !fn(o) {
		return false
	}
	for _, c := range o.Children() {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}
