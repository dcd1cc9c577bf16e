// SPDX-License-Identifier: GPL-2.0-or-later

// Package alias lets the console name a sequence of commands.
package alias

import (
	"sort"
	"strings"

	"skelview/cbuf"
	"skelview/cmd"
	"skelview/conlog"
)

type Aliases struct {
	aliases map[string]string
}

func New() *Aliases {
	return &Aliases{aliases: make(map[string]string)}
}

func (al *Aliases) alias(a cmd.Arguments) error {
	args := a.Args()[1:]
	switch len(args) {
	case 0:
		al.list()
	case 1:
		al.print(args[0].String())
	default:
		// the words have their quotes removed already
		parts := make([]string, 0, len(args)-1)
		for _, w := range args[1:] {
			parts = append(parts, w.String())
		}
		al.aliases[args[0].String()] = strings.TrimSpace(strings.Join(parts, " ")) + "\n"
	}
	return nil
}

func (al *Aliases) list() {
	if len(al.aliases) == 0 {
		conlog.SafePrintf("no alias commands found\n")
		return
	}
	names := make([]string, 0, len(al.aliases))
	for k := range al.aliases {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		// each alias value ends with a '\n'
		conlog.SafePrintf("  %s: %s", k, al.aliases[k])
	}
	conlog.SafePrintf("%v alias command(s)\n", len(al.aliases))
}

func (al *Aliases) print(name string) {
	if v, ok := al.aliases[name]; ok {
		conlog.Printf("  %s: %s", name, v)
	}
}

func (al *Aliases) unalias(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		conlog.Printf("unalias <name> : delete alias\n")
		return nil
	}
	name := args[0].String()
	if _, ok := al.aliases[name]; !ok {
		conlog.Printf("No alias named %s\n", name)
		return nil
	}
	delete(al.aliases, name)
	return nil
}

func (al *Aliases) Get(name string) (string, bool) {
	a, ok := al.aliases[name]
	return a, ok
}

// Execute expands aliases in front of the buffer.
func (al *Aliases) Execute() cbuf.Efunc {
	return func(c *cbuf.CommandBuffer, a cmd.Arguments) (bool, error) {
		args := a.Args()
		if len(args) == 0 {
			return false, nil
		}
		if v, ok := al.Get(args[0].String()); ok {
			c.InsertText(v)
			return true, nil
		}
		return false, nil
	}
}

func (al *Aliases) Register(c *cmd.Commands) error {
	if err := c.Add("alias", al.alias); err != nil {
		return err
	}
	if err := c.Add("unalias", al.unalias); err != nil {
		return err
	}
	return c.Add("unaliasall", func(cmd.Arguments) error {
		al.aliases = make(map[string]string)
		return nil
	})
}
