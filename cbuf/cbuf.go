// SPDX-License-Identifier: GPL-2.0-or-later

// Package cbuf queues console text and runs it line by line.
package cbuf

import (
	"skelview/cmd"
	"skelview/conlog"
)

// Efunc tries to run one parsed line and reports whether it knew the
// command.
type Efunc func(*CommandBuffer, cmd.Arguments) (bool, error)

type CommandBuffer struct {
	text string
	// wait stops Execute until the next call, so the following commands
	// run one frame later
	wait      bool
	executors []Efunc
}

func (c *CommandBuffer) SetCommandExecutors(e []Efunc) {
	c.executors = e
}

func (c *CommandBuffer) AddText(text string) {
	c.text = c.text + text
}

// InsertText puts text in front of everything queued.
func (c *CommandBuffer) InsertText(text string) {
	c.text = text + "\n" + c.text
}

func (c *CommandBuffer) Pending() bool {
	return len(c.text) != 0
}

// Execute runs queued lines. Lines end at a newline or a ';' outside of
// quotes.
func (c *CommandBuffer) Execute() {
	for len(c.text) != 0 {
		i := 0
		quote := false
	LineLoop:
		for i = 0; i < len(c.text); i++ {
			switch c.text[i] {
			case '"':
				quote = !quote
				continue LineLoop
			case ';':
				if quote {
					continue LineLoop
				}
				break LineLoop
			case '\n':
				break LineLoop
			}
		}
		line := c.text[:i]
		// drop the separator too
		if i < len(c.text) {
			i++
		}
		c.text = c.text[i:]
		if err := c.execute(line); err != nil {
			conlog.Printf("%v\n", err)
		}
		if c.wait {
			c.wait = false
			return
		}
	}
}

func (c *CommandBuffer) execute(s string) error {
	a := cmd.Parse(s)
	args := a.Args()
	if len(args) == 0 {
		return nil
	}
	if args[0].String() == "wait" {
		c.wait = true
		return nil
	}
	for _, e := range c.executors {
		if ok, err := e(c, a); err != nil {
			return err
		} else if ok {
			return nil
		}
	}
	conlog.Printf("Unknown command \"%s\"\n", args[0].String())
	return nil
}

// Commands adapts a command table to an executor.
func Commands(c *cmd.Commands) Efunc {
	return func(_ *CommandBuffer, a cmd.Arguments) (bool, error) {
		return c.Execute(a)
	}
}
