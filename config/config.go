// SPDX-License-Identifier: GPL-2.0-or-later

// Package config reads and writes the TOML settings file. The [cvars] table
// feeds the cvar registry, [colors] holds the material colors.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"skelview/conlog"
	"skelview/cvar"
)

const defaultPath = "~/.skelview/config.toml"

type File struct {
	Cvars  map[string]any       `toml:"cvars"`
	Colors map[string][]float32 `toml:"colors"`
}

// Dir is the per-user settings directory.
func Dir() (string, error) {
	p, err := DefaultPath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(p), nil
}

func DefaultPath() (string, error) {
	p, err := homedir.Expand(defaultPath)
	if err != nil {
		return "", errors.Wrap(err, "config path")
	}
	return p, nil
}

// Load parses path. A missing file yields an empty File.
func Load(path string) (*File, error) {
	f := &File{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, errors.Wrap(err, "read config")
	}
	if err := toml.Unmarshal(data, f); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return f, nil
}

// Apply sets every known cvar of the file and returns how many were set.
func (f *File) Apply() int {
	names := make([]string, 0, len(f.Cvars))
	for n := range f.Cvars {
		names = append(names, n)
	}
	sort.Strings(names)
	set := 0
	for _, n := range names {
		v, ok := cvarString(f.Cvars[n])
		if !ok {
			conlog.Printf("config: %s has unsupported value %v\n", n, f.Cvars[n])
			continue
		}
		if err := cvar.Set(n, v); err != nil {
			conlog.Printf("config: %v\n", err)
			continue
		}
		set++
	}
	return set
}

func cvarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		if t {
			return "1", true
		}
		return "0", true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	return "", false
}

// Color is the named color, def if missing or malformed. Three components
// get alpha 1.
func (f *File) Color(name string, def mgl32.Vec4) mgl32.Vec4 {
	c, ok := f.Colors[name]
	switch {
	case !ok:
		return def
	case len(c) == 3:
		return mgl32.Vec4{c[0], c[1], c[2], 1}
	case len(c) == 4:
		return mgl32.Vec4{c[0], c[1], c[2], c[3]}
	}
	conlog.Printf("config: color %s needs 3 or 4 components\n", name)
	return def
}

// Save writes the archived cvars, keeping the colors of f.
func Save(path string, f *File) error {
	out := struct {
		Cvars  map[string]string    `toml:"cvars"`
		Colors map[string][]float32 `toml:"colors,omitempty"`
	}{
		Cvars: map[string]string{},
	}
	for _, cv := range cvar.All() {
		if cv.Archive() {
			out.Cvars[cv.Name()] = cv.String()
		}
	}
	if f != nil {
		out.Colors = f.Colors
	}
	data, err := toml.Marshal(out)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "config directory")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write config")
}
