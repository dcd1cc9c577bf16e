// SPDX-License-Identifier: GPL-2.0-or-later

package viewer

import (
	"github.com/pkg/errors"

	"skelview/cmd"
	"skelview/conlog"
	"skelview/input"
)

func (v *Viewer) addCommands() error {
	if err := input.Commands(v.commands); err != nil {
		return err
	}
	for _, c := range []struct {
		name string
		f    cmd.Func
	}{
		{"open", v.openCmd},
		{"remove", func(cmd.Arguments) error {
			if !v.RemoveCurrent() {
				conlog.Printf("no model to remove\n")
			}
			return nil
		}},
		{"select", func(a cmd.Arguments) error {
			if len(a.Args()) < 2 {
				return errors.New("usage: select <model>")
			}
			return v.Select(a.Argv(1).String())
		}},
		{"models", func(cmd.Arguments) error {
			for i, m := range v.models {
				mark := " "
				if i == v.current {
					mark = "*"
				}
				conlog.SafePrintf("%s %s\n", mark, m)
			}
			return nil
		}},
		{"nextmodel", func(cmd.Arguments) error {
			v.NextModel()
			return nil
		}},
		{"nextbone", func(cmd.Arguments) error {
			v.StepBone(1)
			return nil
		}},
		{"prevbone", func(cmd.Arguments) error {
			v.StepBone(-1)
			return nil
		}},
		{"bonelist", func(cmd.Arguments) error {
			if m := v.currentModel(); m != nil {
				m.PrintBoneInfo()
			}
			return nil
		}},
		{"modelinfo", func(cmd.Arguments) error {
			if m := v.currentModel(); m != nil {
				conlog.SafePrintf("%s", m.Info())
			}
			return nil
		}},
		{"meshlist", func(cmd.Arguments) error {
			v.cache.PrintStatus()
			return nil
		}},
		{"renderstats", func(cmd.Arguments) error {
			s := v.engine.Stats()
			conlog.SafePrintf("%+v\n", s)
			return nil
		}},
		{"recent", func(a cmd.Arguments) error {
			step := -1
			if len(a.Args()) > 1 {
				step = a.Argv(1).Int()
			}
			return v.Recent(step)
		}},
		{"bind", v.bindCmd},
		{"exec", func(a cmd.Arguments) error {
			if len(a.Args()) != 2 {
				return errors.New("usage: exec <file>")
			}
			return v.ExecFile(a.Argv(1).String())
		}},
		{"screenshot", func(cmd.Arguments) error {
			v.screenshot = true
			return nil
		}},
		{"quit", func(cmd.Arguments) error {
			v.quit = true
			return nil
		}},
	} {
		if err := v.commands.Add(c.name, c.f); err != nil {
			return err
		}
	}
	return nil
}

func (v *Viewer) openCmd(a cmd.Arguments) error {
	if len(a.Args()) < 2 {
		return errors.New("usage: open <file>")
	}
	for _, p := range a.Args()[1:] {
		if err := v.Open(p.String()); err != nil {
			return err
		}
	}
	return nil
}

func (v *Viewer) bindCmd(a cmd.Arguments) error {
	args := a.Args()
	switch len(args) {
	case 1:
		for _, k := range v.bindings.Keys() {
			conlog.SafePrintf("%s \"%s\"\n", k, v.bindings[k])
		}
	case 2:
		conlog.SafePrintf("%s \"%s\"\n", args[1].String(), v.bindings[args[1].String()])
	default:
		v.bindings.Bind(args[1].String(), args[2].String())
	}
	return nil
}
