// SPDX-License-Identifier: GPL-2.0-or-later

// Package meshcache deduplicates mesh loads by identity key and frees GPU
// resources of meshes no scene object holds any more.
package meshcache

import (
	"sort"

	"github.com/pkg/errors"

	"skelview/conlog"
	"skelview/mesh"
)

// LoadFunc produces the mesh for a key on a cache miss.
type LoadFunc func(key string) (*mesh.Mesh, error)

type entry struct {
	mesh     *mesh.Mesh
	lastUsed uint64
}

// Cache owns one reference on every mesh it holds. A mesh whose only owner
// is the cache is evicted after staying unreferenced for keepFrames sweeps.
type Cache struct {
	entries map[string]*entry
	frame   uint64
	loads   int
	hits    int
	evicted int
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
	}
}

// LoadOrGet returns the cached mesh for key or loads, stores and returns it.
// The caller receives its own reference and must Drop it when done.
func (c *Cache) LoadOrGet(key string, load LoadFunc) (*mesh.Mesh, error) {
	if e, ok := c.entries[key]; ok {
		c.hits++
		e.lastUsed = c.frame
		return e.mesh.Acquire(), nil
	}
	m, err := load(key)
	if err != nil {
		return nil, errors.Wrapf(err, "load mesh %q", key)
	}
	if m == nil {
		return nil, errors.Errorf("load mesh %q: loader returned no mesh", key)
	}
	c.loads++
	c.entries[key] = &entry{mesh: m.Acquire(), lastUsed: c.frame}
	conlog.Debugf("meshcache: loaded %s\n", m)
	return m.Acquire(), nil
}

// Get returns the cached mesh without taking a reference.
func (c *Cache) Get(key string) (*mesh.Mesh, bool) {
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.mesh, true
}

func (c *Cache) Len() int {
	return len(c.entries)
}

// Frame is the number of sweeps run so far.
func (c *Cache) Frame() uint64 {
	return c.frame
}

// CleanupUnused advances the frame counter and evicts meshes only the cache
// still holds that were last used more than keepFrames sweeps ago. Meshes
// held elsewhere are marked used. It must run after the frame's draws were
// issued. Returns the number of evicted meshes.
func (c *Cache) CleanupUnused(keepFrames int) int {
	c.frame++
	keepFrames = max(keepFrames, 0)
	n := 0
	for _, key := range c.keys() {
		e := c.entries[key]
		if e.mesh.Refs() > 1 {
			e.lastUsed = c.frame
			continue
		}
		if c.frame-e.lastUsed > uint64(keepFrames) {
			e.mesh.Drop()
			e.mesh.Release()
			delete(c.entries, key)
			conlog.Debugf("meshcache: evicted %s\n", key)
			n++
		}
	}
	c.evicted += n
	return n
}

// Clear releases every mesh. It must run before the graphics context goes
// away.
func (c *Cache) Clear() {
	for key, e := range c.entries {
		e.mesh.Drop()
		e.mesh.Release()
		delete(c.entries, key)
	}
}

func (c *Cache) keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
