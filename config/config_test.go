// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skelview/cvar"
)

var (
	testSpeed = cvar.MustRegister("test_cfg_speed", "0.5", cvar.ARCHIVE)
	testShow  = cvar.MustRegister("test_cfg_show", "0", cvar.ARCHIVE)
	testName  = cvar.MustRegister("test_cfg_name", "a", cvar.NONE)
)

const sample = `
[cvars]
test_cfg_speed = 2.5
test_cfg_show = true
test_cfg_name = "hero"
no_such_cvar = 1

[colors]
model = [0.1, 0.2, 0.3]
node = [1, 0, 0, 0.5]
link = [1]
`

func TestLoadApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Apply())
	assert.Equal(t, float32(2.5), testSpeed.Value())
	assert.True(t, testShow.Bool())
	assert.Equal(t, "hero", testName.String())

	def := mgl32.Vec4{9, 9, 9, 9}
	assert.Equal(t, mgl32.Vec4{0.1, 0.2, 0.3, 1}, f.Color("model", def))
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 0.5}, f.Color("node", def))
	assert.Equal(t, def, f.Color("link", def))
	assert.Equal(t, def, f.Color("missing", def))
}

func TestLoadMissingAndBroken(t *testing.T) {
	dir := t.TempDir()
	f, err := Load(filepath.Join(dir, "none.toml"))
	require.NoError(t, err)
	assert.Zero(t, f.Apply())

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[cvars\nx="), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "bad.toml")
}

func TestSaveArchivedOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "config.toml")
	testSpeed.SetByString("4")
	require.NoError(t, Save(path, &File{Colors: map[string][]float32{"model": {1, 1, 1}}}))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "4", f.Cvars["test_cfg_speed"])
	assert.NotContains(t, f.Cvars, "test_cfg_name")
	assert.Equal(t, []float32{1, 1, 1}, f.Colors["model"])
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	assert.False(t, w.Changed())
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.toml"), nil, 0o644))
	require.NoError(t, os.WriteFile(path, []byte("[cvars]\n"), 0o644))
	assert.Eventually(t, w.Changed, 2*time.Second, 10*time.Millisecond)
}
