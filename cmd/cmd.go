// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"sort"
	"strings"

	"skelview/conlog"
)

// Func runs one console command. args[0] is the command name.
type Func func(args Arguments) error

type Commands map[string]Func

func New() *Commands {
	c := make(Commands)
	return &c
}

func (c *Commands) Add(name string, f Func) error {
	ln := strings.ToLower(name)
	if _, ok := (*c)[ln]; ok {
		return fmt.Errorf("cmd: %s already defined", ln)
	}
	(*c)[ln] = f
	return nil
}

func (c *Commands) Exists(name string) bool {
	_, ok := (*c)[strings.ToLower(name)]
	return ok
}

func (c *Commands) List() []string {
	cmds := make([]string, 0, len(*c))
	for name := range *c {
		cmds = append(cmds, name)
	}
	sort.Strings(cmds)
	return cmds
}

// Execute runs the command named by the first argument. It reports false if
// there is no such command.
func (c *Commands) Execute(a Arguments) (bool, error) {
	n := a.Args()
	if len(n) == 0 {
		return false, nil
	}
	f, ok := (*c)[strings.ToLower(n[0].String())]
	if !ok {
		return false, nil
	}
	if err := f(a); err != nil {
		return true, err
	}
	return true, nil
}

// PrintList writes the command names starting with prefix.
func (c *Commands) PrintList(prefix string) {
	count := 0
	for _, name := range c.List() {
		if strings.HasPrefix(name, prefix) {
			conlog.SafePrintf("  %s\n", name)
			count++
		}
	}
	if prefix == "" {
		conlog.SafePrintf("%v commands\n", count)
		return
	}
	conlog.SafePrintf("%v commands beginning with \"%v\"\n", count, prefix)
}

var (
	commands = make(Commands)
)

func Must(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func AddCommand(name string, f Func) error {
	return commands.Add(name, f)
}

func Exists(name string) bool {
	return commands.Exists(name)
}

func Execute(a Arguments) (bool, error) {
	return commands.Execute(a)
}

func List() []string {
	return commands.List()
}

func init() {
	Must(AddCommand("cmdlist", func(a Arguments) error {
		commands.PrintList(a.Argv(1).String())
		return nil
	}))
}
