// SPDX-License-Identifier: GPL-2.0-or-later

package meshcache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skelview/gpu/gputest"
	"skelview/mesh"
)

type countingLoader struct {
	calls int
}

func (l *countingLoader) load(key string) (*mesh.Mesh, error) {
	l.calls++
	return mesh.New(key, []float32{
		0, 0, 0, 0, 0, 1, 0, 0,
		1, 0, 0, 0, 0, 1, 1, 0,
		0, 1, 0, 0, 0, 1, 0, 1,
	}, []uint32{0, 1, 2})
}

func TestLoadOrGetSameInstance(t *testing.T) {
	c := New()
	l := &countingLoader{}
	a, err := c.LoadOrGet("dir/a.obj_0", l.load)
	require.NoError(t, err)
	b, err := c.LoadOrGet("dir/a.obj_0", l.load)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, 1, l.calls)
	assert.Equal(t, 3, a.Refs(), "cache plus two callers")
	assert.Equal(t, 1, c.Len())
}

func TestLoadError(t *testing.T) {
	c := New()
	_, err := c.LoadOrGet("missing", func(string) (*mesh.Mesh, error) {
		return nil, fmt.Errorf("open missing: no such file")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `load mesh "missing"`)
	assert.Equal(t, 0, c.Len())

	_, err = c.LoadOrGet("nil", func(string) (*mesh.Mesh, error) { return nil, nil })
	assert.Error(t, err)
}

func TestGetTakesNoReference(t *testing.T) {
	c := New()
	_, ok := c.Get("nope")
	assert.False(t, ok)

	l := &countingLoader{}
	m, err := c.LoadOrGet("k", l.load)
	require.NoError(t, err)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Same(t, m, got)
	assert.Equal(t, 2, m.Refs())
}

func TestEvictAfterKeepFrames(t *testing.T) {
	const keep = 3
	c := New()
	l := &countingLoader{}
	m, err := c.LoadOrGet("k", l.load)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		assert.Equal(t, 0, c.CleanupUnused(keep), "held meshes are never evicted")
	}
	m.Drop()
	for i := 0; i < keep; i++ {
		assert.Equal(t, 0, c.CleanupUnused(keep), "sweep %d", i)
	}
	assert.Equal(t, 1, c.CleanupUnused(keep))
	assert.Equal(t, 0, c.Len())
	assert.True(t, m.Released())
	assert.Equal(t, 0, m.Refs())

	m2, err := c.LoadOrGet("k", l.load)
	require.NoError(t, err)
	assert.NotSame(t, m, m2)
	assert.Equal(t, 2, l.calls)
}

func TestNegativeKeepFramesEvicts(t *testing.T) {
	c := New()
	l := &countingLoader{}
	m, err := c.LoadOrGet("k", l.load)
	require.NoError(t, err)
	assert.Equal(t, 0, c.CleanupUnused(-1))
	m.Drop()
	assert.Equal(t, 1, c.CleanupUnused(-1))
	assert.Equal(t, 0, c.Len())
}

func TestRequestRefreshesLastUsed(t *testing.T) {
	c := New()
	l := &countingLoader{}
	m, _ := c.LoadOrGet("k", l.load)
	m.Drop()
	c.CleanupUnused(2)
	c.CleanupUnused(2)
	m, _ = c.LoadOrGet("k", l.load)
	m.Drop()
	assert.Equal(t, 0, c.CleanupUnused(2))
	assert.Equal(t, 0, c.CleanupUnused(2))
	assert.Equal(t, 1, c.CleanupUnused(2))
	assert.Equal(t, 1, l.calls)
}

func TestClearReleasesGPU(t *testing.T) {
	dev := gputest.NewDevice()
	c := New()
	l := &countingLoader{}
	m, _ := c.LoadOrGet("a", l.load)
	require.NoError(t, m.Draw(dev, dev.NewShader("s")))
	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.True(t, m.Released())
	assert.True(t, dev.Draws[0].Geometry.Released)
}

func TestStatus(t *testing.T) {
	c := New()
	l := &countingLoader{}
	c.LoadOrGet("b", l.load)
	c.LoadOrGet("a", l.load)
	c.LoadOrGet("a", l.load)
	c.CleanupUnused(5)

	s := c.Status()
	assert.Equal(t, uint64(1), s.Frame)
	assert.Equal(t, 2, s.Loads)
	assert.Equal(t, 1, s.Hits)
	require.Len(t, s.Entries, 2)
	assert.Equal(t, "a", s.Entries[0].Key)
	assert.Equal(t, 3, s.Entries[0].Refs)
	assert.Equal(t, uint64(1), s.Entries[0].LastUsed)
	assert.Equal(t, 3, s.Entries[1].Vertices)
}
