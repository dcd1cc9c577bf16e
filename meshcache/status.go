// SPDX-License-Identifier: GPL-2.0-or-later

package meshcache

import (
	"skelview/conlog"
)

// EntryStatus describes one cached mesh.
type EntryStatus struct {
	Key      string
	Refs     int
	LastUsed uint64
	Uploaded bool
	Vertices int
}

type Status struct {
	Frame   uint64
	Loads   int
	Hits    int
	Evicted int
	Entries []EntryStatus
}

// Status snapshots the cache, entries in key order.
func (c *Cache) Status() Status {
	s := Status{
		Frame:   c.frame,
		Loads:   c.loads,
		Hits:    c.hits,
		Evicted: c.evicted,
	}
	for _, k := range c.keys() {
		e := c.entries[k]
		s.Entries = append(s.Entries, EntryStatus{
			Key:      k,
			Refs:     e.mesh.Refs(),
			LastUsed: e.lastUsed,
			Uploaded: e.mesh.Uploaded(),
			Vertices: e.mesh.VertexCount(),
		})
	}
	return s
}

func (c *Cache) PrintStatus() {
	s := c.Status()
	conlog.SafePrintf("mesh cache: %d meshes, frame %d, %d loads, %d hits, %d evicted\n",
		len(s.Entries), s.Frame, s.Loads, s.Hits, s.Evicted)
	for _, e := range s.Entries {
		conlog.SafePrintf("  %s refs=%d last=%d verts=%d\n", e.Key, e.Refs, e.LastUsed, e.Vertices)
	}
}
