// SPDX-License-Identifier: GPL-2.0-or-later

// Package render batches a frame of draw submissions into as few draw calls
// as possible.
//
// Submissions are bucketed by the render queue of their material. Opaque
// buckets merge equal (mesh, material) pairs into instanced draws ordered by
// material. Transparent buckets draw every submission on its own, farthest
// from the camera first. Buckets are drained in ascending queue order and
// nothing survives a Flush.
package render

import (
	"hash/fnv"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"skelview/conlog"
	"skelview/gpu"
	"skelview/material"
	"skelview/mesh"
)

type Phase int

const (
	Empty Phase = iota
	Accepting
	Flushing
)

func (p Phase) String() string {
	switch p {
	case Empty:
		return "empty"
	case Accepting:
		return "accepting"
	case Flushing:
		return "flushing"
	}
	return "unknown"
}

// Stats counts the work of one Flush.
type Stats struct {
	Submitted        int
	Rejected         int
	DrawCalls        int
	InstancedDraws   int
	Instances        int
	TransparentDraws int
	MaterialBinds    int
	Failed           int
}

type groupKey struct {
	mesh *mesh.Mesh
	mat  *material.Material
}

type group struct {
	groupKey
	sortKey  uint64
	matrices []mgl32.Mat4
}

type item struct {
	mesh  *mesh.Mesh
	mat   *material.Material
	world mgl32.Mat4
	dist  float32
}

type bucket struct {
	groups map[groupKey]*group
	order  []*group
	items  []item
}

type Engine struct {
	dev     gpu.Device
	buckets map[int]*bucket
	phase   Phase
	cur     Stats
	last    Stats

	// state of the current flush
	view, proj mgl32.Mat4
	bound      *material.Material
	boundVar   gpu.Variant
}

func New(dev gpu.Device) *Engine {
	return &Engine{
		dev:     dev,
		buckets: make(map[int]*bucket),
	}
}

func (e *Engine) Phase() Phase {
	return e.phase
}

// Stats returns the counters of the last Flush.
func (e *Engine) Stats() Stats {
	return e.last
}

// Pending is the number of accepted submissions not yet flushed.
func (e *Engine) Pending() int {
	return e.cur.Submitted
}

// Submit queues one draw of m with mat at world. Invalid or released meshes,
// materials without a shader and submissions during a flush are dropped and
// reported as false.
func (e *Engine) Submit(m *mesh.Mesh, mat *material.Material, world mgl32.Mat4) bool {
	if e.phase == Flushing || !m.Valid() || !mat.Valid() {
		e.cur.Rejected++
		conlog.Debugf("render: rejected submission (phase %v)\n", e.phase)
		return false
	}
	e.phase = Accepting
	e.cur.Submitted++

	b := e.buckets[mat.Queue]
	if b == nil {
		b = &bucket{groups: make(map[groupKey]*group)}
		e.buckets[mat.Queue] = b
	}
	if material.IsTransparent(mat.Queue) {
		b.items = append(b.items, item{mesh: m, mat: mat, world: world})
		return true
	}
	k := groupKey{m, mat}
	g := b.groups[k]
	if g == nil {
		g = &group{groupKey: k, sortKey: SortKey(mat, m)}
		b.groups[k] = g
		b.order = append(b.order, g)
	}
	g.matrices = append(g.matrices, world)
	return true
}

// Flush issues every queued submission with the given camera matrices and
// empties the engine.
func (e *Engine) Flush(view, proj mgl32.Mat4) {
	e.phase = Flushing
	e.view, e.proj = view, proj
	e.bound = nil

	for _, q := range e.queues() {
		b := e.buckets[q]
		if material.IsTransparent(q) {
			e.flushTransparent(b)
		} else {
			e.flushOpaque(b)
		}
	}

	e.buckets = make(map[int]*bucket)
	e.bound = nil
	e.last = e.cur
	e.cur = Stats{}
	e.phase = Empty
}

func (e *Engine) queues() []int {
	qs := make([]int, 0, len(e.buckets))
	for q := range e.buckets {
		qs = append(qs, q)
	}
	sort.Ints(qs)
	return qs
}

func (e *Engine) flushOpaque(b *bucket) {
	groups := b.order
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].sortKey < groups[j].sortKey
	})
	for _, g := range groups {
		if len(g.matrices) == 1 {
			e.drawSingle(g.mesh, g.mat, g.matrices[0])
			continue
		}
		e.bind(g.mat, gpu.Instanced)
		if err := g.mesh.DrawInstanced(e.dev, g.mat.Shader(), g.matrices); err != nil {
			e.cur.Failed++
			conlog.Printf("render: %v\n", err)
			continue
		}
		e.cur.DrawCalls++
		e.cur.InstancedDraws++
		e.cur.Instances += len(g.matrices)
	}
}

func (e *Engine) flushTransparent(b *bucket) {
	items := b.items
	for i := range items {
		p := items[i].world.Col(3)
		items[i].dist = -e.view.Mul4x1(p).Z()
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].dist > items[j].dist
	})
	for _, it := range items {
		// render state may differ per submission, so always rebind
		e.bound = nil
		if e.drawSingle(it.mesh, it.mat, it.world) {
			e.cur.TransparentDraws++
		}
	}
}

func (e *Engine) drawSingle(m *mesh.Mesh, mat *material.Material, world mgl32.Mat4) bool {
	e.bind(mat, gpu.Basic)
	mat.Shader().SetMat4("model", world)
	if err := m.Draw(e.dev, mat.Shader()); err != nil {
		e.cur.Failed++
		conlog.Printf("render: %v\n", err)
		return false
	}
	e.cur.DrawCalls++
	e.cur.Instances++
	return true
}

// bind applies mat with variant v unless it is already bound.
func (e *Engine) bind(mat *material.Material, v gpu.Variant) {
	if e.bound == mat && e.boundVar == v {
		return
	}
	mat.Apply(e.dev, v)
	sh := mat.Shader()
	sh.SetMat4("view", e.view)
	sh.SetMat4("projection", e.proj)
	e.bound = mat
	e.boundVar = v
	e.cur.MaterialBinds++
}

// SortKey orders opaque groups by material first and mesh second.
func SortKey(mat *material.Material, m *mesh.Mesh) uint64 {
	hm := fnv.New64a()
	hm.Write(mat.ID[:])
	hk := fnv.New64a()
	hk.Write([]byte(m.Key()))
	return hm.Sum64()<<24 | hk.Sum64()&0xFFFFFF
}
